package bolt

import "time"

// Config contains bbolt database settings loaded from environment variables.
type Config struct {
	Path     string        `env:"BOLT_PATH,required"`
	FileMode uint32        `env:"BOLT_FILE_MODE" envDefault:"384"` // 0600
	Timeout  time.Duration `env:"BOLT_OPEN_TIMEOUT" envDefault:"1s"`
}

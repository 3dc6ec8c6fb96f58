// Package redis provides a Redis-backed credential store for deployments that
// share authentication state across processes or hosts.
//
// The package has two parts: a connection layer that creates a verified
// go-redis client with retry logic, and a Store implementing credstore.Store
// on top of it. Entry expiry is delegated to Redis TTLs, so expired
// credentials vanish server-side with no cleanup work on the client.
//
// # Configuration
//
// All configuration is handled through the Config struct with environment
// variable mapping:
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//		ScanBatchSize  int           `env:"REDIS_SCAN_BATCH_SIZE" envDefault:"1000"`
//	}
//
// Both redis:// and rediss:// (TLS) URL schemes are supported.
//
// # Usage Example
//
//	package main
//
//	import (
//		"context"
//		"log"
//		"time"
//
//		"github.com/miniappkit/tmauth/core/config"
//		"github.com/miniappkit/tmauth/integration/storage/redis"
//	)
//
//	func main() {
//		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//		defer cancel()
//
//		var cfg redis.Config
//		config.MustLoad(&cfg)
//
//		client, err := redis.Connect(ctx, cfg)
//		if err != nil {
//			log.Fatal("failed to connect to redis:", err)
//		}
//		defer client.Close()
//
//		store := redis.NewStore(client, redis.WithScanBatchSize(cfg.ScanBatchSize))
//
//		if err := store.Set(ctx, "auth_token", "eyJhbGciOi...", 30*24*time.Hour); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// # Health Checking
//
// Healthcheck returns a probe function suitable for readiness endpoints:
//
//	healthCheck := redis.Healthcheck(client)
//
//	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
//		if err := healthCheck(r.Context()); err != nil {
//			http.Error(w, "redis unhealthy", http.StatusServiceUnavailable)
//			return
//		}
//		w.WriteHeader(http.StatusOK)
//	})
//
// # Error Handling
//
// The package defines domain-specific errors that can be checked using errors.Is():
//
//   - ErrFailedToParseConnString: the connection URL is malformed
//   - ErrNotReady: Redis did not become ready within the timeout period
//   - ErrEmptyConnectionURL: no connection URL was provided
//   - ErrHealthcheckFailed: the health check ping failed
//
// Store lookups report missing or expired keys with credstore.ErrNotFound,
// matching the behavior of the other store implementations.
package redis

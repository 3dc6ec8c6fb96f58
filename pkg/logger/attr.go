package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a grouped attribute containing the given attributes.
func Group(key string, attrs ...slog.Attr) slog.Attr {
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}
	return slog.Group(key, args...)
}

// Error creates an "error" attribute. Returns an empty attribute for nil errors
// so it can be passed unconditionally to log calls.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors creates an "errors" group from the non-nil errors.
// Returns an empty attribute when all errors are nil.
func Errors(errs ...error) slog.Attr {
	attrs := make([]slog.Attr, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		attrs = append(attrs, slog.Any(strconv.Itoa(len(attrs)), err))
	}
	if len(attrs) == 0 {
		return slog.Attr{}
	}
	return Group("errors", attrs...)
}

// Duration creates a "duration" attribute.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed creates an "elapsed" attribute measured from start until now.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// ID creates an identifier attribute with a custom key.
// Returns an empty attribute for nil values.
func ID(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// RequestID creates a "request_id" attribute. Empty IDs produce an empty attribute.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component creates a "component" attribute identifying the emitting subsystem.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event creates an "event" attribute.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Result creates a "result" attribute.
func Result(result string) slog.Attr {
	return slog.String("result", result)
}

// Method creates a "method" attribute for HTTP methods.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Path creates a "path" attribute for URL paths.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// StatusCode creates a "status_code" attribute.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// Count creates a counter attribute with a custom key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// RetryCount creates a "retry_count" attribute.
func RetryCount(n int) slog.Attr {
	return slog.Int("retry_count", n)
}

// Key creates an attribute with an arbitrary key and value.
// Returns an empty attribute for nil values.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

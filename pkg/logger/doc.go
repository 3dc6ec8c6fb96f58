// Package logger provides slog attribute helpers with consistent keys used
// across the module. Helpers that receive empty or nil values return an empty
// attribute, which slog drops silently, so they can be passed unconditionally:
//
//	logger.Info("login finished",
//		logger.Component("auth"),
//		logger.Error(err), // no-op when err is nil
//	)
package logger

// Package logger provides slog attribute helpers shared across the module.
//
// Helpers follow the empty Attr pattern for nil safety: passing a nil error
// to Error yields an attribute that slog silently drops, so call sites never
// need explicit nil checks:
//
//	log.Info("mail delivered",
//		logger.Component("smtp-gateway"),
//		logger.Duration(elapsed),
//		logger.Error(err),
//	)
package logger

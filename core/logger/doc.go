// Package logger builds the zap logger used across catalog-sync.
//
// Level accepts debug, info, warn and error. Format selects json output or a
// colored console encoder for local runs.
//
// WithRayID attaches the request's ray id to a logger so every line written
// while handling one HTTP request can be correlated.
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger

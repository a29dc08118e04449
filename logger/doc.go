// Package logger provides structured logging for recs using zerolog.
//
// Record output owns stdout, so logs go to stderr unless configured
// otherwise. Components log through named loggers:
//
//	logger.Init(&cfg)
//	logger.RegisterDefaults("recs", "shell")
//	logger.Get("shell").Debug("spawned", logger.Fields("pid", pid))
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stderr"
package logger

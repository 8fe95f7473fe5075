// Package logger builds the zap loggers used by the server and the CLI.
//
// The level selects zap's preset: debug gives the development configuration
// (ISO8601 timestamps, caller info), any other level the production one. The
// format is json or console.
//
// HTTP handlers log through WithRayID so every line of a request carries the
// ray id assigned by the rayid middleware; Requests logs the request itself.
//
//	log, _ := logger.New(&cfg.Log)
//	app.Use(rayid.New(), logger.Requests(log))
//
//	l := logger.WithRayID(log, c)
//	l.Error("Tag import failed", zap.Error(err))
package logger

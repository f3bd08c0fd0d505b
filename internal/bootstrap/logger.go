package bootstrap

import (
	"io"
	"log"

	"current-weather/config"
	"current-weather/pkg/logger"
	"current-weather/pkg/observe"
)

// NewLogger builds the application logger: console, plus the rotated file
// and the Sentry hook when configured. The returned func flushes and closes
// them.
func NewLogger(cnf *config.Config, console io.Writer) (*logger.Logger, func()) {
	writers := []io.Writer{console}
	var closers []func()

	if cnf.Log.File != "" {
		file := logger.NewRotatingFile(cnf.Log.File, cnf.Log.MaxSizeMB, cnf.Log.MaxBackups)
		writers = append(writers, file)
		closers = append(closers, func() { _ = file.Close() })
	}

	if cnf.SentryDSN != "" {
		hook, err := observe.NewSentryHook(cnf.AppEnv, cnf.AppName, cnf.SentryDSN)
		if err != nil {
			log.Printf("sentry disabled: %v", err)
		} else {
			writers = append(writers, hook)
			closers = append(closers, func() { hook.Flush() })
		}
	}

	l := logger.NewZapLogger(cnf.AppName, cnf.AppEnv, writers...)

	return l, func() {
		_ = l.Stop()
		for _, c := range closers {
			c()
		}
	}
}

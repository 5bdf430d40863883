package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

const serviceName = "yatube"

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// Tests and CLI commands never call Setup, so a usable logger has to exist
// from package init.
func init() {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)
	Log = logger.WithField("service", serviceName)
}

// Setup reconfigures the global logger. Unknown levels fall back to info.
func Setup(level, format string, debug bool) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if debug {
		lvl = logrus.DebugLevel
	}
	logger.SetLevel(lvl)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	Log = logger.WithFields(logrus.Fields{"service": serviceName, "debug": debug})
}

// Logger exposes the underlying logrus logger, mostly for tests that need
// to redirect output.
func Logger() *logrus.Logger {
	return logger
}

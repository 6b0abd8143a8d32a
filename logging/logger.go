// Package logging provides the per-component logrus loggers of the CLI.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/Rifhice/paxada/config"
	"github.com/Rifhice/paxada/diag"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
	settings  = config.Logging{Level: "info", Format: "text"}
	output    io.Writer = os.Stderr
)

// NewLogger returns the logger of a component, creating it on first use.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if entry, ok := loggers[component]; ok {
		return entry
	}
	logger := logrus.New()
	apply(logger)
	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// Configure applies logging settings to existing and future loggers. The
// PAXADA_LOG_LEVEL environment variable wins over cfg.Level.
func Configure(cfg config.Logging) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	settings = cfg
	for _, entry := range loggers {
		apply(entry.Logger)
	}
}

// SetOutput redirects every logger, mainly for tests.
func SetOutput(w io.Writer) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	output = w
	for _, entry := range loggers {
		entry.Logger.SetOutput(w)
	}
}

func apply(logger *logrus.Logger) {
	levelStr := "info"
	if env := os.Getenv(config.EnvLogLevel); env != "" {
		levelStr = env
	} else if settings.Level != "" {
		levelStr = settings.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetOutput(output)

	if settings.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:      isTerminal(output),
		DisableColors:    !isTerminal(output),
		DisableTimestamp: true,
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// LogDiagnostics logs every diagnostic of l: warnings at warn level, the rest
// at info level.
func LogDiagnostics(entry *logrus.Entry, l diag.List) {
	for _, d := range l {
		e := entry.WithField("code", string(d.Code))
		if d.Path != "" {
			e = e.WithField("path", d.Path)
		}
		if d.Severity == diag.Warning {
			e.Warn(d.Message)
		} else {
			e.Info(d.Message)
		}
	}
}

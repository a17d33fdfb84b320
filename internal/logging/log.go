// Package logging configures the process-wide phuslu logger and hands out
// per-component loggers.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"

	"github.com/pranshuparmar/pinfo/internal/config"
)

func init() {
	log.DefaultLogger = log.Logger{
		Level:  log.WarnLevel,
		Writer: &log.ConsoleWriter{ColorOutput: false, EndWithMessage: true, Writer: os.Stderr},
	}
}

// ParseLevel converts a level name to log.Level. Unknown names map to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

func newWriter(cfg config.LoggingConfig, stdout, stderr io.Writer) (log.Writer, error) {
	var base io.Writer
	switch cfg.Writer {
	case "", "stderr":
		base = stderr
	case "stdout":
		base = stdout
	default:
		return nil, fmt.Errorf("unknown log writer %q", cfg.Writer)
	}

	switch cfg.Format {
	case "json":
		return &log.IOWriter{Writer: base}, nil
	case "logfmt":
		return &log.ConsoleWriter{
			Formatter: log.LogfmtFormatter{TimeField: "time"}.Formatter,
			Writer:    base,
		}, nil
	case "", "auto":
		return &log.ConsoleWriter{
			ColorOutput:    cfg.Color,
			QuoteString:    true,
			EndWithMessage: true,
			Writer:         base,
		}, nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

// Configure replaces log.DefaultLogger according to cfg. Loggers returned
// by New before this call keep their old settings.
func Configure(cfg config.LoggingConfig) error {
	writer, err := newWriter(cfg, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}

	log.DefaultLogger = log.Logger{
		Level:      ParseLevel(cfg.Level),
		TimeField:  "time",
		TimeFormat: "15:04:05",
		Writer:     writer,
	}
	return nil
}

// New copies the default logger and tags every entry with component.
func New(component string) *log.Logger {
	bl := &log.DefaultLogger
	return &log.Logger{
		Level:        bl.Level,
		TimeField:    bl.TimeField,
		TimeFormat:   bl.TimeFormat,
		TimeLocation: bl.TimeLocation,
		Writer:       bl.Writer,
		Context:      log.NewContext(bl.Context).Str("component", component).Value(),
	}
}

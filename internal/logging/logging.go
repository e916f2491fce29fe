// Package logging builds the zerolog loggers used by the command line tool.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const (
	colorRed     = 31
	colorGreen   = 32
	colorYellow  = 33
	colorMagenta = 35
	colorBold    = 1
)

// New returns a logger writing to w. format is "console" or "json".
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	var logger zerolog.Logger
	switch strings.ToLower(format) {
	case "", "console":
		logger = zerolog.New(Console(w, false))
	case "json":
		logger = zerolog.New(w)
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}
	return logger.Level(lvl).With().Timestamp().Logger(), nil
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return lvl, nil
}

// Console returns a human readable writer with three-letter levels.
func Console(w io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = w
		cw.NoColor = noColor
		cw.TimeFormat = "15:04:05.000"
		cw.FormatLevel = formatLevel(noColor)
	})
}

func colorize(s interface{}, c int, disabled bool) string {
	if disabled {
		return fmt.Sprintf("%s", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}

func formatLevel(noColor bool) zerolog.Formatter {
	return func(i interface{}) string {
		ll, ok := i.(string)
		if !ok {
			return colorize("???", colorBold, noColor)
		}
		switch ll {
		case "trace":
			return colorize("TRC", colorMagenta, noColor)
		case "debug":
			return colorize("DBG", colorYellow, noColor)
		case "info":
			return colorize("INF", colorGreen, noColor)
		case "warn":
			return colorize("WRN", colorRed, noColor)
		case "error":
			return colorize(colorize("ERR", colorRed, noColor), colorBold, noColor)
		case "fatal":
			return colorize(colorize("FTL", colorRed, noColor), colorBold, noColor)
		case "panic":
			return colorize(colorize("PNC", colorRed, noColor), colorBold, noColor)
		default:
			return colorize("???", colorBold, noColor)
		}
	}
}

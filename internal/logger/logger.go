// Package logger builds the zerolog logger shared by every component.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/selimozcann/RedirectToolkit/internal/config"
)

// Logger pairs a zerolog.Logger with the file it may be writing to.
type Logger struct {
	zerolog.Logger
	file *lumberjack.Logger
}

// Close releases the rotating log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps a config level name to a zerolog level. Empty means warn.
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return lvl, nil
}

func consoleWriter(out io.Writer, format string, noColor bool) io.Writer {
	switch strings.ToLower(format) {
	case "json":
		return out
	case "text":
		noColor = true
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: noColor}
}

// New builds a logger writing to stderr and, when cfg.File is set, to a
// rotating file. File output is JSON unless the format is console or text,
// in which case it is uncolored console output.
func New(cfg config.LogConfig, noColor bool) (*Logger, error) {
	return newLogger(os.Stderr, cfg, noColor)
}

func newLogger(stderr io.Writer, cfg config.LogConfig, noColor bool) (*Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	writers := []io.Writer{consoleWriter(stderr, cfg.Format, noColor)}
	l := &Logger{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
		}
		writers = append(writers, consoleWriter(l.file, cfg.Format, true))
	}

	l.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return l, nil
}

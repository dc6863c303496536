package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"crudeval/internal/config"
)

// Options describes logger construction parameters. Output wins over Path;
// with neither set the logger writes to stderr.
type Options struct {
	Level  string
	Format string
	Output io.Writer
	Path   string
	// Source adds file:line to every record. Debug level implies it.
	Source bool
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	handler, err := newHandler(opts)
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

func newHandler(opts Options) (slog.Handler, error) {
	level := ParseLevel(opts.Level)
	addSource := opts.Source || level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format != "" && format != "console" && format != "json" {
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	w := opts.Output
	if w == nil && strings.TrimSpace(opts.Path) != "" {
		f, err := openLogFile(opts.Path)
		if err != nil {
			return nil, err
		}
		w = f
	}
	if w == nil {
		w = os.Stderr
	}

	if format == "json" {
		return newJSONHandler(w, level, addSource), nil
	}
	return newConsoleHandler(w, level, addSource), nil
}

// NewFromConfig creates the run logger: console (or JSON, per config) lines on
// stderr, teed into a JSON run log in the configured log directory. Run logs
// older than the retention window are pruned first.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info"})
	}

	console, err := New(Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return nil, err
	}
	dir := strings.TrimSpace(cfg.Paths.LogDir)
	if dir == "" {
		return console, nil
	}

	logPath := filepath.Join(dir, RunLogName(time.Now()))
	PruneRunLogs(console, dir, cfg.Logging.RetentionDays, logPath)

	runLog, err := newHandler(Options{Level: cfg.Logging.Level, Format: "json", Path: logPath})
	if err != nil {
		return nil, err
	}
	return TeeLogger(console, runLog), nil
}

// RunLogName returns the file name of the JSON run log started at t.
func RunLogName(t time.Time) string {
	return "crudeval-" + t.UTC().Format("20060102T150405Z") + ".log"
}

const runLogPattern = "crudeval-*.log"

// ParseLevel maps a config level to slog. Unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}

func newJSONHandler(w io.Writer, level slog.Level, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return attr
			}
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	})
}

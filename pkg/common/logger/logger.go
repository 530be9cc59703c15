package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is the minimum severity a logger emits
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format selects the slog handler
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

// Default is the process-wide logger. The CLI replaces it once flags and
// config are known; until then it logs info and above to stderr.
var Default = New(Config{Level: LevelInfo, Format: FormatText, Output: os.Stderr})

// New creates a logger with the given configuration
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	if cfg.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// ParseLevel maps a user-facing level name to a Level.
// Unknown names fall back to LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ParseFormat maps a user-facing format name to a Format
func ParseFormat(name string) Format {
	if strings.EqualFold(strings.TrimSpace(name), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

// Component returns a child of the default logger tagged with the component name
func Component(name string) *slog.Logger {
	return Default.With("component", name)
}

// Debug logs a debug message using the default logger
func Debug(msg string, args ...any) {
	Default.Debug(msg, args...)
}

// Printer adapts a component logger to the Printf-style writer that
// third-party loggers (gorm) expect. Lines are logged at info.
type Printer struct {
	component string
}

// NewPrinter creates a Printer for component
func NewPrinter(component string) Printer {
	return Printer{component: component}
}

// Printf formats and logs one line
func (p Printer) Printf(format string, args ...any) {
	Component(p.component).Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

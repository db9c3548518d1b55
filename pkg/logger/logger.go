// Package logger provides standardized logging for the jama tools
package logger

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// Global logger instance
var (
	defaultLogger  *slog.Logger
	logFile        *os.File
	previousLogger *slog.Logger
	previousOutput io.Writer
	previousFlags  int
)

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Config holds logger configuration
type Config struct {
	Level   LogLevel
	Format  string // "text" or "json"
	Output  io.Writer
	LogFile string // Init only; replaces Output
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: "text",
		Output: os.Stderr,
	}
}

// ParseLevel maps a level name from flags or jama.yml to a LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// New builds a logger writing to cfg.Output without touching the global
// logger. cfg.LogFile is ignored.
func New(cfg Config) (*slog.Logger, error) {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: toSlogLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	case "text", "":
		handler = slog.NewTextHandler(output, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return slog.New(handler), nil
}

// Init initializes the global logger with the given configuration. When
// cfg.LogFile is set records are appended to that file until Close.
func Init(cfg Config) error {
	_ = Close()
	var file *os.File
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		file = f
		cfg.Output = f
	}
	l, err := New(cfg)
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return err
	}
	previousLogger = slog.Default()
	previousOutput, previousFlags = log.Writer(), log.Flags()
	defaultLogger = l
	logFile = file
	slog.SetDefault(defaultLogger)
	return nil
}

// Close releases the log file opened by Init and restores slog's previous
// default logger. It is safe to call without Init.
func Close() error {
	if defaultLogger == nil {
		return nil
	}
	// slog.SetDefault redirected the log package; undo that as well
	slog.SetDefault(previousLogger)
	log.SetOutput(previousOutput)
	log.SetFlags(previousFlags)
	defaultLogger, previousLogger, previousOutput = nil, nil, nil
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Default returns the global logger, falling back to slog's default.
func Default() *slog.Logger {
	if defaultLogger != nil {
		return defaultLogger
	}
	return slog.Default()
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Debug(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Info(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Warn(msg, args...)
	}
}

// Pipeline logging helpers. Each takes the logger explicitly so callers can
// route records to a per-run logger.

// LogPhase logs the start of a front-end phase
func LogPhase(l *slog.Logger, phase string) {
	l.Debug("Starting phase", "phase", phase)
}

// LogLexing logs tokenizer output for one source
func LogLexing(l *slog.Logger, file string, tokenCount int) {
	l.Debug("Lexing complete", "file", file, "tokens", tokenCount)
}

// LogParsing logs parser output for one source
func LogParsing(l *slog.Logger, file string, classCount, methodCount int) {
	l.Debug("Parsing complete", "file", file, "classes", classCount, "methods", methodCount)
}

// LogChecking logs the start of type checking
func LogChecking(l *slog.Logger, methodCount int, parallel bool, workers int) {
	l.Info("Type checking", "methods", methodCount, "parallel", parallel, "workers", workers)
}

// LogDiagnostic logs a rejected program
func LogDiagnostic(l *slog.Logger, phase, file string, line, column int, msg string) {
	l.Warn("Program rejected",
		"phase", phase,
		"file", file,
		"line", line,
		"column", column,
		"message", msg)
}

// LogCheckComplete logs the verdict of a check run
func LogCheckComplete(l *slog.Logger, accepted bool, files int, duration string) {
	if accepted {
		l.Info("Program accepted", "files", files, "duration", duration)
	} else {
		l.Info("Program rejected", "files", files, "duration", duration)
	}
}

// Package logging provides structured logging for the Alfred hooks using slog.
//
// Every hook invocation is a separate process, so the logger is configured
// once per process by Init and torn down by Close:
//
//	if err := logging.Init(dir, sessionID); err != nil {
//	    // handle error
//	}
//	defer logging.Close()
//
//	ctx = logging.WithEvent(ctx, "SessionStart")
//	logging.Debug(ctx, "hook invoked", slog.String("cwd", dir))
//
// Lines from one process share an invocation_id, and the session_id given
// to Init is attached to every line.
package logging

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/paths"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/validation"
)

// LogLevelEnvVar is the environment variable that controls log level.
const LogLevelEnvVar = "ALFRED_LOG_LEVEL"

const logBufferSize = 8 << 10

// sink is the destination of one Init/Close cycle.
type sink struct {
	logger    *slog.Logger
	file      *os.File
	buf       *bufio.Writer
	sessionID string
}

func (s *sink) close() {
	if s == nil {
		return
	}
	if s.buf != nil {
		_ = s.buf.Flush()
	}
	if s.file != nil {
		_ = s.file.Close()
	}
}

var (
	mu      sync.RWMutex
	current *sink

	// levelGetter resolves the configured level for a project directory.
	levelGetter func(dir string) string
)

// SetLogLevelGetter sets a callback that reads the log level from project
// settings, so this package does not import them. The callback is consulted
// only when ALFRED_LOG_LEVEL is unset.
func SetLogLevelGetter(getter func(dir string) string) {
	mu.Lock()
	defer mu.Unlock()
	levelGetter = getter
}

// Init initializes the logger for one hook invocation.
//
// JSON logs are appended to <dir>/.moai/logs/hooks.log when <dir>/.moai exists.
// Projects without a .moai directory log to stderr instead, so the hooks
// never create infrastructure in a project that did not opt in.
// An empty sessionID is allowed; a non-empty one must pass
// validation.ValidateSessionID.
func Init(dir, sessionID string) error {
	if sessionID != "" {
		if err := validation.ValidateSessionID(sessionID); err != nil {
			return fmt.Errorf("invalid session ID for logging: %w", err)
		}
	}

	mu.Lock()
	defer mu.Unlock()

	current.close()
	current = nil

	level := resolveLevel(dir)
	s := openSink(dir)
	s.sessionID = sessionID

	attrs := []any{slog.String("invocation_id", uuid.NewString())}
	if sessionID != "" {
		attrs = append(attrs, slog.String("session_id", sessionID))
	}
	var w io.Writer = os.Stderr
	if s.buf != nil {
		w = s.buf
	}
	s.logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).With(attrs...)

	current = s
	return nil
}

// resolveLevel reads ALFRED_LOG_LEVEL, then the project setting. Callers
// hold mu.
func resolveLevel(dir string) slog.Level {
	raw := os.Getenv(LogLevelEnvVar)
	if raw == "" && levelGetter != nil {
		raw = levelGetter(dir)
	}
	level, ok := lookupLevel(raw)
	if !ok {
		fmt.Fprintf(os.Stderr, "[alfred] Warning: invalid log level %q, defaulting to INFO\n", raw)
	}
	return level
}

// openSink opens the project log file. Any failure leaves the sink without
// a file, which means stderr.
func openSink(dir string) *sink {
	if !paths.IsDir(dir, paths.MoaiDir) {
		return &sink{}
	}
	logsDir := paths.Resolve(dir, paths.MoaiLogsDir)
	if err := os.MkdirAll(logsDir, 0o750); err != nil {
		return &sink{}
	}
	//nolint:gosec // fixed file name under .moai/logs
	f, err := os.OpenFile(paths.Resolve(logsDir, paths.LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return &sink{}
	}
	return &sink{file: f, buf: bufio.NewWriterSize(f, logBufferSize)}
}

// Close flushes and closes the log file if one is open.
// Safe to call multiple times.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	current.close()
	current = nil
}

// resetLogger drops the current sink (for testing).
func resetLogger() {
	Close()
}

func active() *sink {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func getLogger() *slog.Logger {
	if s := active(); s != nil {
		return s.logger
	}
	return slog.Default()
}

// parseLogLevel parses a level name, returning slog.LevelInfo for empty or
// unknown values.
func parseLogLevel(s string) slog.Level {
	level, _ := lookupLevel(s)
	return level
}

// lookupLevel reports ok=false for a non-empty value that names no level.
func lookupLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "", "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Enabled reports whether messages at level would be written.
// Use it to skip building expensive attributes.
func Enabled(level slog.Level) bool {
	return getLogger().Enabled(context.Background(), level)
}

// Debug logs at DEBUG level with context values automatically extracted.
func Debug(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelDebug, msg, attrs...)
}

// Info logs at INFO level with context values automatically extracted.
func Info(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelInfo, msg, attrs...)
}

// Warn logs at WARN level with context values automatically extracted.
func Warn(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelWarn, msg, attrs...)
}

// Error logs at ERROR level with context values automatically extracted.
func Error(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelError, msg, attrs...)
}

// LogDuration logs msg with duration_ms measured from start:
//
//	defer logging.LogDuration(ctx, slog.LevelDebug, "hook completed", time.Now())
func LogDuration(ctx context.Context, level slog.Level, msg string, start time.Time, attrs ...any) {
	withDuration := append([]any{slog.Int64("duration_ms", time.Since(start).Milliseconds())}, attrs...)
	log(ctx, level, msg, withDuration...)
}

func log(ctx context.Context, level slog.Level, msg string, attrs ...any) {
	s := active()
	l := slog.Default()
	boundSession := false
	if s != nil {
		l = s.logger
		boundSession = s.sessionID != ""
	}
	if !l.Enabled(context.Background(), level) {
		return
	}

	all := make([]any, 0, len(attrs)+4)
	for _, a := range attrsFromContext(ctx, boundSession) {
		all = append(all, a)
	}
	all = append(all, attrs...)
	l.Log(context.Background(), level, msg, all...)
}

// attrsFromContext extracts logging attributes from a context. session_id
// is skipped when Init already bound one.
func attrsFromContext(ctx context.Context, sessionBound bool) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var attrs []slog.Attr
	if !sessionBound {
		if s := SessionIDFromContext(ctx); s != "" {
			attrs = append(attrs, slog.String("session_id", s))
		}
	}
	if s := ComponentFromContext(ctx); s != "" {
		attrs = append(attrs, slog.String("component", s))
	}
	if s := EventFromContext(ctx); s != "" {
		attrs = append(attrs, slog.String("event", s))
	}
	if s := ToolNameFromContext(ctx); s != "" {
		attrs = append(attrs, slog.String("tool", s))
	}
	return attrs
}

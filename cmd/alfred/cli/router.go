package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/hook"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/logging"
)

// Prefixes of the fallback body and of the stderr diagnostic.
const (
	parseErrorPrefix      = "JSON parse error: "
	hookErrorPrefix       = "Hook error: "
	unexpectedErrorPrefix = "Unexpected error: "
)

// runHook reads one payload from stdin, dispatches it to the handler for
// event and writes exactly one JSON line to stdout.
//
// Failures still produce a well-formed body on stdout and a diagnostic on
// stderr; the returned error is then a *SilentError.
func runHook(ctx context.Context, event hook.Event, stdin io.Reader, stdout, stderr io.Writer) error {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return reportFailure(stdout, stderr, hookErrorPrefix, unexpectedErrorPrefix, fmt.Errorf("reading stdin: %w", err))
	}

	payload, err := hook.ParsePayload(data)
	if err != nil {
		var syntaxErr *hook.SyntaxError
		if errors.As(err, &syntaxErr) {
			return reportFailure(stdout, stderr, parseErrorPrefix, parseErrorPrefix, err)
		}
		return reportFailure(stdout, stderr, hookErrorPrefix, unexpectedErrorPrefix, err)
	}

	dir := payload.Dir()
	initHookLogging(dir, payload.SessionID)
	defer logging.Close()

	ctx = logging.WithEvent(logging.WithComponent(ctx, "hooks"), event.String())
	if payload.SessionID != "" {
		ctx = logging.WithSession(ctx, payload.SessionID)
	}

	start := time.Now()
	logging.Debug(ctx, "hook invoked",
		slog.String("cwd", dir),
		slog.Int("payload_bytes", len(data)),
	)

	result, err := dispatch(ctx, event, payload)
	if err == nil {
		err = hook.Write(stdout, result.Output(event))
	}

	logging.LogDuration(ctx, slog.LevelDebug, "hook completed", start,
		slog.Bool("success", err == nil),
	)

	if err != nil {
		logging.Error(ctx, "hook failed", slog.String("error", err.Error()))
		return reportFailure(stdout, stderr, hookErrorPrefix, unexpectedErrorPrefix, err)
	}
	return nil
}

// initHookLogging starts logging for this invocation. A session ID that is
// unsafe to log is dropped rather than failing the hook.
func initHookLogging(dir, sessionID string) {
	if err := logging.Init(dir, sessionID); err != nil {
		_ = logging.Init(dir, "") //nolint:errcheck // empty session ID cannot fail validation
		logging.Warn(context.Background(), "ignoring session id", slog.String("error", err.Error()))
	}
}

// dispatch runs the registered handler for event, or returns the default
// result when there is none. A panicking handler is reported as an error.
func dispatch(ctx context.Context, event hook.Event, payload *hook.Payload) (result *hook.Result, err error) {
	handler := GetHookHandler(event)
	if handler == nil {
		logging.Debug(ctx, "no handler registered, using default result")
		return hook.NewResult(), nil
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%s handler panicked: %v", event, r)
		}
	}()

	result, err = handler(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("%s handler: %w", event, err)
	}
	if result == nil {
		result = hook.NewResult()
	}
	return result, nil
}

// reportFailure writes the fallback body to stdout and the diagnostic to
// stderr, then marks err as already reported.
func reportFailure(stdout, stderr io.Writer, bodyPrefix, diagPrefix string, err error) error {
	msg := err.Error()
	//nolint:errcheck // nothing left to report to if stdout is gone
	_ = hook.Write(stdout, hook.NewErrorOutput(bodyPrefix+msg))
	fmt.Fprintln(stderr, diagPrefix+msg)
	return NewSilentError(err)
}

package cli

import (
	"context"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/hook"
)

// handleNotification acknowledges a host notification.
func handleNotification(_ context.Context, _ *hook.Payload) (*hook.Result, error) {
	return hook.NewResult(), nil
}

// handleStop acknowledges the end of a main agent turn.
func handleStop(_ context.Context, _ *hook.Payload) (*hook.Result, error) {
	return hook.NewResult(), nil
}

// handleSubagentStop acknowledges the end of a subagent turn.
func handleSubagentStop(_ context.Context, _ *hook.Payload) (*hook.Result, error) {
	return hook.NewResult(), nil
}

package cli

import (
	"context"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/hook"
)

// HookHandlerFunc handles one hook event.
type HookHandlerFunc func(ctx context.Context, payload *hook.Payload) (*hook.Result, error)

// hookRegistry maps event names to handlers. Events without an entry
// produce the default result.
var hookRegistry = map[hook.Event]HookHandlerFunc{}

// RegisterHookHandler registers the handler for an event, replacing any previous one.
func RegisterHookHandler(event hook.Event, handler HookHandlerFunc) {
	hookRegistry[event] = handler
}

// GetHookHandler returns the handler for an event, or nil if none is registered.
func GetHookHandler(event hook.Event) HookHandlerFunc {
	return hookRegistry[event]
}

//nolint:gochecknoinits // Hook handler registration at startup is the intended pattern
func init() {
	RegisterHookHandler(hook.SessionStart, handleSessionStart)
	RegisterHookHandler(hook.UserPromptSubmit, handleUserPromptSubmit)
	RegisterHookHandler(hook.SessionEnd, handleSessionEnd)
	RegisterHookHandler(hook.PreToolUse, handlePreToolUse)
	RegisterHookHandler(hook.PostToolUse, handlePostToolUse)
	RegisterHookHandler(hook.Notification, handleNotification)
	RegisterHookHandler(hook.Stop, handleStop)
	RegisterHookHandler(hook.SubagentStop, handleSubagentStop)
}

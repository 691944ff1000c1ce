package logging

import (
	"context"
)

// Context keys for logging values.
type contextKey int

const (
	sessionIDKey contextKey = iota
	componentKey
	eventKey
	toolNameKey
)

// WithSession adds a host session ID to the context.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// WithComponent adds a component name to the context.
// Component names identify the subsystem generating logs (e.g., "hooks", "project", "status").
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// WithEvent adds the hook event name to the context.
func WithEvent(ctx context.Context, event string) context.Context {
	return context.WithValue(ctx, eventKey, event)
}

// WithToolName adds a tool name (PreToolUse/PostToolUse) to the context.
func WithToolName(ctx context.Context, tool string) context.Context {
	return context.WithValue(ctx, toolNameKey, tool)
}

// SessionIDFromContext extracts the session ID from the context.
// Returns empty string if not set.
func SessionIDFromContext(ctx context.Context) string {
	return stringValue(ctx, sessionIDKey)
}

// ComponentFromContext extracts the component name from the context.
func ComponentFromContext(ctx context.Context) string {
	return stringValue(ctx, componentKey)
}

// EventFromContext extracts the hook event name from the context.
func EventFromContext(ctx context.Context) string {
	return stringValue(ctx, eventKey)
}

// ToolNameFromContext extracts the tool name from the context.
func ToolNameFromContext(ctx context.Context) string {
	return stringValue(ctx, toolNameKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v := ctx.Value(key); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

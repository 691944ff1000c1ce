package cli

import (
	"context"
	"log/slog"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/hook"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/logging"
	"github.com/moai-adk/alfred-hooks/redact"
)

// handlePreToolUse logs the tool call and lets it proceed.
func handlePreToolUse(ctx context.Context, payload *hook.Payload) (*hook.Result, error) {
	logToolUse(ctx, payload.ToolUse())
	return hook.NewResult(), nil
}

// handlePostToolUse logs the finished tool call.
func handlePostToolUse(ctx context.Context, payload *hook.Payload) (*hook.Result, error) {
	logToolUse(ctx, payload.ToolUse())
	return hook.NewResult(), nil
}

// logToolUse records the tool call. Arguments are scrubbed of secrets first.
func logToolUse(ctx context.Context, in hook.ToolUseInput) {
	if !logging.Enabled(slog.LevelDebug) {
		return
	}
	if in.Tool != "" {
		ctx = logging.WithToolName(ctx, in.Tool)
	}
	logging.Debug(ctx, "tool use",
		slog.Int("arguments_bytes", len(in.Arguments)),
		slog.String("arguments", string(redact.JSON(in.Arguments))),
	)
}

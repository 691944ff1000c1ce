package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/hook"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/jitcontext"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/logging"
	"github.com/moai-adk/alfred-hooks/redact"
)

// handleUserPromptSubmit attaches the project documents the prompt asks for.
func handleUserPromptSubmit(ctx context.Context, payload *hook.Payload) (*hook.Result, error) {
	in, err := payload.UserPromptSubmit()
	if err != nil {
		return nil, err
	}
	files := jitcontext.Recommend(in.Prompt, in.Dir)

	if logging.Enabled(slog.LevelDebug) {
		logging.Debug(ctx, "context recommended",
			slog.String("prompt", redact.String(in.Prompt)),
			slog.Any("files", files),
		)
	}

	result := hook.NewResult()
	if len(files) > 0 {
		result.SystemMessage = fmt.Sprintf("📎 Loaded %d context file(s)", len(files))
	}
	result.ContextFiles = files
	return result, nil
}

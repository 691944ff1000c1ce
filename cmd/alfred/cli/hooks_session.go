package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/checkpoint"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/hook"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/logging"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/project"
)

const (
	sessionBanner      = "🚀 MoAI-ADK Session Started"
	restoreHint        = "   Restore: /alfred:0-project restore"
	notAvailable       = "N/A"
	checkpointsToList  = 10
	checkpointsToShow  = 3
	checkpointIndent   = "      - "
	sessionFieldIndent = "   "
)

// handleSessionStart summarizes the project state for the user.
// The host runs SessionStart in several phases; the clear phase gets an
// empty result so the summary is shown once.
func handleSessionStart(ctx context.Context, payload *hook.Payload) (*hook.Result, error) {
	in := payload.SessionStart()
	if in.IsClearPhase() {
		logging.Debug(ctx, "skipping session summary in clear phase")
		return hook.NewResult(), nil
	}

	summary := sessionSummary{
		Language:    project.DetectLanguage(in.Dir),
		Git:         project.InspectGit(ctx, in.Dir),
		Specs:       project.CountSpecs(in.Dir),
		Checkpoints: checkpoint.List(ctx, in.Dir, checkpointsToList),
	}

	logging.Debug(ctx, "session summary",
		slog.String("language", summary.Language),
		slog.Bool("git", !summary.Git.Empty()),
		slog.Int("specs_total", summary.Specs.Total),
		slog.Int("checkpoints", len(summary.Checkpoints)),
	)

	result := hook.NewResult()
	result.SystemMessage = summary.Message()
	return result, nil
}

type sessionSummary struct {
	Language    string
	Git         project.GitInfo
	Specs       project.SpecProgress
	Checkpoints []checkpoint.Checkpoint
}

// Message renders the multi-line session banner.
func (s sessionSummary) Message() string {
	branch, commit := notAvailable, notAvailable
	if !s.Git.Empty() {
		branch, commit = s.Git.Branch, s.Git.ShortCommit()
	}

	lines := []string{
		sessionBanner,
		sessionFieldIndent + "Language: " + s.Language,
		fmt.Sprintf("%sBranch: %s (%s)", sessionFieldIndent, branch, commit),
		fmt.Sprintf("%sChanges: %d", sessionFieldIndent, s.Git.Changes),
		fmt.Sprintf("%sSPEC Progress: %d/%d (%d%%)", sessionFieldIndent, s.Specs.Completed, s.Specs.Total, s.Specs.Percentage),
	}

	if n := len(s.Checkpoints); n > 0 {
		lines = append(lines, fmt.Sprintf("%sCheckpoints: %d available", sessionFieldIndent, n))
		for i := n - 1; i >= 0 && i >= n-checkpointsToShow; i-- {
			lines = append(lines, checkpointIndent+s.Checkpoints[i].Label())
		}
		lines = append(lines, restoreHint)
	}

	return strings.Join(lines, "\n")
}

// handleSessionEnd acknowledges the end of a session.
func handleSessionEnd(_ context.Context, _ *hook.Payload) (*hook.Result, error) {
	return hook.NewResult(), nil
}

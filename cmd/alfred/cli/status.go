package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/checkpoint"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/jsonutil"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/paths"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/project"
)

// projectStatus is the report printed by `alfred status`.
type projectStatus struct {
	Dir         string                  `json:"dir"`
	MoaiProject bool                    `json:"moai_project"`
	Language    string                  `json:"language"`
	Git         *project.GitInfo        `json:"git"`
	Specs       project.SpecProgress    `json:"spec_progress"`
	SpecList    []project.SpecSummary   `json:"specs"`
	Checkpoints []checkpoint.Checkpoint `json:"checkpoints"`
}

func newStatusCmd() *cobra.Command {
	var (
		dir        string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show MoAI project status",
		Long: "Show the same project summary the SessionStart hook reports, plus the\n" +
			"status of every SPEC under .moai/specs.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status := collectStatus(cmd.Context(), dir)
			if jsonOutput {
				return jsonutil.WriteIndented(cmd.OutOrStdout(), status)
			}
			writeStatus(cmd.OutOrStdout(), status)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", paths.DefaultDir, "Project directory to inspect")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the status as JSON")

	return cmd
}

func collectStatus(ctx context.Context, dir string) projectStatus {
	status := projectStatus{
		Dir:         dir,
		MoaiProject: paths.IsDir(dir, paths.MoaiDir),
		Language:    project.Language(dir),
		Specs:       project.CountSpecs(dir),
		SpecList:    project.ListSpecs(dir),
		Checkpoints: checkpoint.List(ctx, dir, 0),
	}
	if git := project.InspectGit(ctx, dir); !git.Empty() {
		status.Git = &git
	}
	if status.SpecList == nil {
		status.SpecList = []project.SpecSummary{}
	}
	if status.Checkpoints == nil {
		status.Checkpoints = []checkpoint.Checkpoint{}
	}
	return status
}

func writeStatus(w io.Writer, s projectStatus) {
	if !s.MoaiProject {
		fmt.Fprintf(w, "○ %s is not a MoAI project (no %s directory)\n", s.Dir, paths.MoaiDir)
	}

	fmt.Fprintf(w, "Language:      %s\n", s.Language)
	if s.Git != nil {
		fmt.Fprintf(w, "Branch:        %s (%s)\n", s.Git.Branch, s.Git.ShortCommit())
		fmt.Fprintf(w, "Changes:       %d\n", s.Git.Changes)
	} else {
		fmt.Fprintln(w, "Branch:        N/A (not a git repository)")
	}
	fmt.Fprintf(w, "SPEC Progress: %d/%d (%d%%)\n", s.Specs.Completed, s.Specs.Total, s.Specs.Percentage)

	if len(s.SpecList) > 0 {
		fmt.Fprintln(w)
		for _, spec := range s.SpecList {
			mark := "○"
			if spec.Completed {
				mark = "✓"
			}
			state := spec.Status
			if state == "" {
				state = "unknown"
			}
			line := fmt.Sprintf("  %s %s [%s]", mark, spec.ID, state)
			if spec.Title != "" {
				line += " " + spec.Title
			}
			fmt.Fprintln(w, line)
		}
	}

	if len(s.Checkpoints) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Checkpoints (%d):\n", len(s.Checkpoints))
		for i := len(s.Checkpoints) - 1; i >= 0; i-- {
			cp := s.Checkpoints[i]
			fmt.Fprintf(w, "  - %s", cp.Label())
			if cp.Timestamp != "" {
				fmt.Fprintf(w, "  %s", cp.Timestamp)
			}
			fmt.Fprintln(w)
		}
	}
}

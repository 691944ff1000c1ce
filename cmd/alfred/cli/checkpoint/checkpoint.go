// Package checkpoint lists the checkpoints recorded before risky operations
// in a MoAI project.
//
// Checkpoints are read from .moai/checkpoints.log, one JSON object per line.
// Projects without the log fall back to local branches named before-*.
package checkpoint

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/logging"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/paths"
)

// maxLineSize bounds a single log entry.
const maxLineSize = 1024 * 1024

// Checkpoint is one recorded checkpoint.
type Checkpoint struct {
	Timestamp string `json:"timestamp"`
	Branch    string `json:"branch"`
	Operation string `json:"operation,omitempty"`
}

// Label is the branch name without the checkpoint prefix.
func (c Checkpoint) Label() string {
	return strings.ReplaceAll(c.Branch, paths.CheckpointBranchPrefix, "")
}

// List returns up to maxCount of the most recent checkpoints for the project
// in dir, oldest first. maxCount <= 0 means no limit.
// Failures are logged and yield an empty list.
func List(ctx context.Context, dir string, maxCount int) []Checkpoint {
	ctx = logging.WithComponent(ctx, "checkpoint")

	checkpoints, err := readLog(paths.Resolve(dir, paths.CheckpointsLog))
	if paths.IsNotExist(err) {
		checkpoints, err = fromBranches(dir)
	}
	if err != nil {
		logging.Debug(ctx, "checkpoint listing unavailable", slog.String("error", err.Error()))
		return nil
	}

	return latest(checkpoints, maxCount)
}

func latest(checkpoints []Checkpoint, maxCount int) []Checkpoint {
	if maxCount > 0 && len(checkpoints) > maxCount {
		return checkpoints[len(checkpoints)-maxCount:]
	}
	return checkpoints
}

// readLog parses the checkpoint log. Malformed lines and entries without a
// branch are skipped.
func readLog(logPath string) ([]Checkpoint, error) {
	f, err := os.Open(logPath) //nolint:gosec // fixed file name under .moai
	if err != nil {
		return nil, err //nolint:wrapcheck // callers test for not-exist
	}
	defer f.Close()

	var checkpoints []Checkpoint
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var cp Checkpoint
		if err := json.Unmarshal([]byte(line), &cp); err != nil || cp.Branch == "" {
			continue
		}
		checkpoints = append(checkpoints, cp)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading checkpoint log: %w", err)
	}
	return checkpoints, nil
}

// fromBranches lists before-* branches ordered by the time of their tip commit.
func fromBranches(dir string) ([]Checkpoint, error) {
	repo, err := git.PlainOpenWithOptions(paths.Resolve(dir, ""), &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	branches, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}

	type branchTip struct {
		name string
		when time.Time
	}
	var tips []branchTip
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !strings.HasPrefix(name, paths.CheckpointBranchPrefix) {
			return nil
		}
		commit, err := repo.CommitObject(ref.Hash())
		if err != nil {
			return nil //nolint:nilerr // dangling branch, skip it
		}
		tips = append(tips, branchTip{name: name, when: commit.Committer.When})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating branches: %w", err)
	}

	sort.SliceStable(tips, func(i, j int) bool {
		if tips[i].when.Equal(tips[j].when) {
			return tips[i].name < tips[j].name
		}
		return tips[i].when.Before(tips[j].when)
	})

	checkpoints := make([]Checkpoint, 0, len(tips))
	for _, tip := range tips {
		checkpoints = append(checkpoints, Checkpoint{
			Timestamp: tip.when.UTC().Format(time.RFC3339),
			Branch:    tip.name,
		})
	}
	return checkpoints, nil
}

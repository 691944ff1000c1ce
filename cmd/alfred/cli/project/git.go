package project

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// GitTimeout bounds each git query.
const GitTimeout = 2 * time.Second

// GitInfo describes the repository state of a working directory.
// It is either fully populated or the zero value.
type GitInfo struct {
	Branch  string `json:"branch,omitempty"`
	Commit  string `json:"commit,omitempty"`
	Changes int    `json:"changes"`
}

// Empty reports whether git inspection produced no result.
func (g GitInfo) Empty() bool {
	return g == GitInfo{}
}

// ShortCommit returns the first seven characters of the commit hash.
func (g GitInfo) ShortCommit() string {
	if len(g.Commit) > 7 {
		return g.Commit[:7]
	}
	return g.Commit
}

// InspectGit queries branch, HEAD and working tree changes of the repository
// containing dir. Any failed query (not a repository, git missing, timeout,
// unborn HEAD) yields the zero GitInfo; partial results are never returned.
func InspectGit(ctx context.Context, dir string) GitInfo {
	if _, err := runGit(ctx, dir, "rev-parse", "--git-dir"); err != nil {
		return GitInfo{}
	}

	branch, err := runGit(ctx, dir, "branch", "--show-current")
	if err != nil {
		return GitInfo{}
	}

	commit, err := runGit(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return GitInfo{}
	}

	status, err := runGit(ctx, dir, "status", "--short")
	if err != nil {
		return GitInfo{}
	}

	return GitInfo{
		Branch:  branch,
		Commit:  commit,
		Changes: countLines(status),
	}
}

// runGit runs one git command in dir under GitTimeout and returns its
// trimmed stdout.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, GitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(output)), nil
}

func countLines(s string) int {
	n := 0
	for line := range strings.SplitSeq(s, "\n") {
		if line != "" {
			n++
		}
	}
	return n
}

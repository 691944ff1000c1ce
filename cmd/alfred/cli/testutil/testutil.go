// Package testutil provides shared helpers for building MoAI project and
// git repository fixtures in tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Identity used for every fixture commit.
const (
	TestUserName  = "Test User"
	TestUserEmail = "test@example.com"
)

// InitRepo initializes a git repository in repoDir with the test identity
// and commit signing disabled.
func InitRepo(t *testing.T, repoDir string) {
	t.Helper()

	repo, err := git.PlainInit(repoDir, false)
	if err != nil {
		t.Fatalf("init repo %s: %v", repoDir, err)
	}

	cfg, err := repo.Config()
	if err != nil {
		t.Fatalf("read repo config: %v", err)
	}
	cfg.User.Name = TestUserName
	cfg.User.Email = TestUserEmail
	if cfg.Raw == nil {
		cfg.Raw = config.New()
	}
	cfg.Raw.Section("commit").SetOption("gpgsign", "false")

	if err := repo.SetConfig(cfg); err != nil {
		t.Fatalf("write repo config: %v", err)
	}
}

// WriteFile writes content to path under dir, creating parent directories.
func WriteFile(t *testing.T, dir, path, content string) {
	t.Helper()

	full := filepath.Join(dir, path)
	MkdirAll(t, filepath.Dir(full), "")
	//nolint:gosec // test fixtures use standard permissions
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MkdirAll creates path (and parents) under dir.
func MkdirAll(t *testing.T, dir, path string) {
	t.Helper()

	//nolint:gosec // test fixtures use standard permissions
	if err := os.MkdirAll(filepath.Join(dir, path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Join(dir, path), err)
	}
}

// WriteSpec writes .moai/specs/<id>/spec.md with the given front matter status.
// An empty status writes a SPEC without front matter.
func WriteSpec(t *testing.T, dir, id, status string) {
	t.Helper()

	content := "# " + id + "\n\nBody.\n"
	if status != "" {
		content = "---\nid: " + id + "\nstatus: " + status + "\n---\n" + content
	}
	WriteFile(t, dir, filepath.Join(".moai", "specs", id, "spec.md"), content)
}

func openWorktree(t *testing.T, repoDir string) (*git.Repository, *git.Worktree) {
	t.Helper()

	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		t.Fatalf("open repo %s: %v", repoDir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("open worktree: %v", err)
	}
	return repo, wt
}

// GitAdd stages paths for commit.
func GitAdd(t *testing.T, repoDir string, paths ...string) {
	t.Helper()

	_, wt := openWorktree(t, repoDir)
	for _, p := range paths {
		if _, err := wt.Add(p); err != nil {
			t.Fatalf("stage %s: %v", p, err)
		}
	}
}

// GitCommit commits the staged files now and returns the commit hash.
func GitCommit(t *testing.T, repoDir, message string) string {
	t.Helper()
	return GitCommitAt(t, repoDir, message, time.Now())
}

// GitCommitAt commits with an explicit author and committer time. Empty
// commits are allowed so tests can build history without touching files.
func GitCommitAt(t *testing.T, repoDir, message string, when time.Time) string {
	t.Helper()

	_, wt := openWorktree(t, repoDir)
	sig := &object.Signature{Name: TestUserName, Email: TestUserEmail, When: when}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:            sig,
		Committer:         sig,
		AllowEmptyCommits: true,
	})
	if err != nil {
		t.Fatalf("commit %q: %v", message, err)
	}
	return hash.String()
}

// CreateBranch points a new local branch at hash without checking it out.
func CreateBranch(t *testing.T, repoDir, branchName, hash string) {
	t.Helper()

	repo, _ := openWorktree(t, repoDir)
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branchName), plumbing.NewHash(hash))
	if err := repo.Storer.SetReference(ref); err != nil {
		t.Fatalf("create branch %s: %v", branchName, err)
	}
}

// GitCheckoutNewBranch creates and checks out a new branch with the git CLI,
// which leaves untracked files alone.
func GitCheckoutNewBranch(t *testing.T, repoDir, branchName string) {
	t.Helper()

	//nolint:noctx // test helper
	cmd := exec.Command("git", "checkout", "-b", branchName)
	cmd.Dir = repoDir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git checkout -b %s: %v\n%s", branchName, err, out)
	}
}

// RequireGit skips the test when the git CLI is not installed.
func RequireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found on PATH")
	}
}

package checkpoint

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/testutil"
)

func TestList_FromLog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, ".moai/checkpoints.log", strings.Join([]string{
		`{"timestamp":"2025-01-01T10:00:00Z","branch":"before-delete-20250101-100000","operation":"delete"}`,
		`not json`,
		``,
		`{"timestamp":"2025-01-02T10:00:00Z","operation":"merge"}`,
		`{"timestamp":"2025-01-03T10:00:00Z","branch":"before-merge-20250103-100000","operation":"merge"}`,
	}, "\n"))

	got := List(context.Background(), dir, 10)

	require.Len(t, got, 2)
	assert.Equal(t, Checkpoint{
		Timestamp: "2025-01-01T10:00:00Z",
		Branch:    "before-delete-20250101-100000",
		Operation: "delete",
	}, got[0])
	assert.Equal(t, "before-merge-20250103-100000", got[1].Branch)
}

func TestList_KeepsMostRecent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var lines []string
	for i := range 12 {
		lines = append(lines, fmt.Sprintf(`{"timestamp":"2025-01-%02dT00:00:00Z","branch":"before-op-%02d"}`, i+1, i+1))
	}
	testutil.WriteFile(t, dir, ".moai/checkpoints.log", strings.Join(lines, "\n")+"\n")

	got := List(context.Background(), dir, 10)
	require.Len(t, got, 10)
	assert.Equal(t, "before-op-03", got[0].Branch)
	assert.Equal(t, "before-op-12", got[9].Branch)

	assert.Len(t, List(context.Background(), dir, 0), 12)
}

func TestList_EmptyLogDoesNotFallBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.InitRepo(t, dir)
	hash := testutil.GitCommit(t, dir, "initial")
	testutil.CreateBranch(t, dir, "before-refactor", hash)
	testutil.WriteFile(t, dir, ".moai/checkpoints.log", "")

	assert.Empty(t, List(context.Background(), dir, 10))
}

func TestList_FallsBackToBranches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.InitRepo(t, dir)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	first := testutil.GitCommitAt(t, dir, "first", base)
	second := testutil.GitCommitAt(t, dir, "second", base.Add(time.Hour))
	third := testutil.GitCommitAt(t, dir, "third", base.Add(2*time.Hour))

	testutil.CreateBranch(t, dir, "before-merge", third)
	testutil.CreateBranch(t, dir, "before-delete", first)
	testutil.CreateBranch(t, dir, "feature/x", second)
	testutil.CreateBranch(t, dir, "before-reset", second)

	got := List(context.Background(), dir, 10)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"before-delete", "before-reset", "before-merge"},
		[]string{got[0].Branch, got[1].Branch, got[2].Branch})
	assert.Equal(t, "2025-03-01T12:00:00Z", got[0].Timestamp)

	assert.Len(t, List(context.Background(), dir, 2), 2)
	assert.Equal(t, "before-reset", List(context.Background(), dir, 2)[0].Branch)
}

func TestList_NoLogNoRepository(t *testing.T) {
	t.Parallel()

	assert.Empty(t, List(context.Background(), t.TempDir(), 10))
}

func TestCheckpoint_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "delete-20250101", Checkpoint{Branch: "before-delete-20250101"}.Label())
	assert.Equal(t, "merge", Checkpoint{Branch: "merge"}.Label())
	assert.Equal(t, "a-b", Checkpoint{Branch: "before-a-before-b"}.Label())
}

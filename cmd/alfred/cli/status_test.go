package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/testutil"
)

func statusProject(t *testing.T) string {
	t.Helper()
	dir := isolatedProject(t)
	testutil.WriteFile(t, dir, "pyproject.toml", "[project]\n")
	testutil.WriteFile(t, dir, ".moai/specs/SPEC-AUTH-001/spec.md",
		"---\nid: AUTH-001\ntitle: Login flow\nstatus: completed\n---\n")
	testutil.WriteSpec(t, dir, "SPEC-API-002", "draft")
	testutil.WriteFile(t, dir, ".moai/checkpoints.log",
		`{"timestamp":"2025-01-01T00:00:00Z","branch":"before-delete-1","operation":"delete"}`+"\n")
	return dir
}

func TestStatusCmd_Text(t *testing.T) {
	dir := statusProject(t)

	stdout, _, err := executeRoot(t, "", "status", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Language:      python\n")
	assert.Contains(t, stdout, "Branch:        N/A (not a git repository)\n")
	assert.Contains(t, stdout, "SPEC Progress: 1/2 (50%)\n")
	assert.Contains(t, stdout, "  ○ SPEC-API-002 [draft]\n")
	assert.Contains(t, stdout, "  ✓ AUTH-001 [completed] Login flow\n")
	assert.Contains(t, stdout, "Checkpoints (1):\n  - delete-1  2025-01-01T00:00:00Z\n")
	assert.NotContains(t, stdout, "not a MoAI project")
}

func TestStatusCmd_JSON(t *testing.T) {
	dir := statusProject(t)

	stdout, _, err := executeRoot(t, "", "status", "--dir", dir, "--json")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(stdout, "}\n"))

	var got projectStatus
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))

	assert.Equal(t, dir, got.Dir)
	assert.True(t, got.MoaiProject)
	assert.Equal(t, "python", got.Language)
	assert.Nil(t, got.Git)
	assert.Equal(t, 2, got.Specs.Total)
	assert.Equal(t, 1, got.Specs.Completed)
	assert.Equal(t, 50, got.Specs.Percentage)
	require.Len(t, got.SpecList, 2)
	assert.Equal(t, "SPEC-API-002", got.SpecList[0].ID)
	require.Len(t, got.Checkpoints, 1)
	assert.Equal(t, "delete", got.Checkpoints[0].Operation)
}

func TestStatusCmd_NotAMoaiProject(t *testing.T) {
	dir := isolatedProject(t)

	stdout, _, err := executeRoot(t, "", "status", "--dir", dir, "--json")
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &raw))
	assert.Equal(t, false, raw["moai_project"])
	assert.Equal(t, "Unknown Language", raw["language"])
	assert.Nil(t, raw["git"])
	assert.Equal(t, []any{}, raw["specs"])
	assert.Equal(t, []any{}, raw["checkpoints"])

	text, _, err := executeRoot(t, "", "status", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, text, "is not a MoAI project")
}

func TestStatusCmd_PrefersDeclaredLanguage(t *testing.T) {
	dir := isolatedProject(t)
	testutil.WriteFile(t, dir, "go.mod", "module x\n")
	testutil.WriteFile(t, dir, ".moai/config.json", `{"language":"python"}`)

	stdout, _, err := executeRoot(t, "", "status", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Language:      python\n")
}

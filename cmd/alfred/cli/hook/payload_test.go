package hook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	t.Parallel()

	p, err := ParsePayload([]byte(`{"cwd":"/tmp/proj","session_id":"abc","userPrompt":"run test","phase":"clear","tool":"Bash","arguments":{"command":"ls"}}`))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/proj", p.Dir())
	assert.Equal(t, "abc", p.SessionID)
	assert.Equal(t, SessionStartInput{Dir: "/tmp/proj", Phase: "clear"}, p.SessionStart())
	assert.True(t, p.SessionStart().IsClearPhase())
	prompt, err := p.UserPromptSubmit()
	require.NoError(t, err)
	assert.Equal(t, UserPromptSubmitInput{Dir: "/tmp/proj", Prompt: "run test"}, prompt)

	tool := p.ToolUse()
	assert.Equal(t, "Bash", tool.Tool)
	assert.JSONEq(t, `{"command":"ls"}`, string(tool.Arguments))
}

func TestParsePayload_DefaultsDir(t *testing.T) {
	t.Parallel()

	p, err := ParsePayload([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, ".", p.Dir())
	assert.Equal(t, LifecycleInput{Dir: "."}, p.Lifecycle())
	assert.False(t, p.SessionStart().IsClearPhase())

	var nilPayload *Payload
	assert.Equal(t, ".", nilPayload.Dir())
}

func TestParsePayload_IgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	p, err := ParsePayload([]byte(`{"cwd":"x","extra":[1,2,3]}`))
	require.NoError(t, err)
	assert.Equal(t, "x", p.Dir())
}

func TestParsePayload_MistypedOptionalFields(t *testing.T) {
	t.Parallel()

	p, err := ParsePayload([]byte(`{"cwd":"x","session_id":123,"phase":1,"tool":{"name":"Bash"}}`))
	require.NoError(t, err)
	assert.Equal(t, "x", p.Dir())
	assert.Empty(t, p.SessionID)
	assert.Empty(t, p.Phase)
	assert.Empty(t, p.Tool)
	assert.False(t, p.SessionStart().IsClearPhase())
}

func TestParsePayload_PromptType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr string
	}{
		{`{"userPrompt":"hi"}`, "hi", ""},
		{`{"userPrompt":null}`, "", ""},
		{`{}`, "", ""},
		{`{"userPrompt":7}`, "", "userPrompt must be a string, got number"},
		{`{"userPrompt":["a"]}`, "", "userPrompt must be a string, got array"},
		{`{"userPrompt":{"text":"a"}}`, "", "userPrompt must be a string, got object"},
	}

	for _, tt := range tests {
		p, err := ParsePayload([]byte(tt.input))
		require.NoError(t, err, tt.input)

		in, err := p.UserPromptSubmit()
		if tt.wantErr != "" {
			require.EqualError(t, err, tt.wantErr, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, in.Prompt, tt.input)
	}
}

func TestParsePayload_SyntaxErrors(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "{", "not json", `{"cwd":}`} {
		_, err := ParsePayload([]byte(input))
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("ParsePayload(%q) error = %v, want *SyntaxError", input, err)
		}
	}
}

func TestParsePayload_WrongShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{`[1,2]`, "payload must be a JSON object, got array"},
		{`"str"`, "payload must be a JSON object, got string"},
		{`null`, "payload must be a JSON object, got null"},
		{`42`, "payload must be a JSON object, got number"},
		{` true`, "payload must be a JSON object, got boolean"},
	}

	for _, tt := range tests {
		_, err := ParsePayload([]byte(tt.input))
		require.Error(t, err, tt.input)
		var syntaxErr *SyntaxError
		assert.False(t, errors.As(err, &syntaxErr), "%s should not be a syntax error", tt.input)
		assert.Equal(t, tt.want, err.Error())
	}

	_, err := ParsePayload([]byte(`{"cwd":42}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding payload")
}

func TestEvent_UsesPromptSubmitSchema(t *testing.T) {
	t.Parallel()

	for _, e := range Events {
		assert.Equal(t, e == UserPromptSubmit, e.UsesPromptSubmitSchema(), e.String())
	}
	assert.Len(t, Events, 8)
}

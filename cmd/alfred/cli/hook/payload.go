package hook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/paths"
)

// PhaseClear is the SessionStart phase during which output is suppressed.
// The host runs SessionStart in several phases; only the later one is shown.
const PhaseClear = "clear"

// Payload is the JSON document the host writes to stdin.
// Every field is optional; Dir applies the working directory default.
// Only cwd must have the right type. session_id, phase and tool are
// dropped when they are not strings, and a non-string userPrompt is
// reported by UserPromptSubmit.
type Payload struct {
	Cwd        string
	SessionID  string
	UserPrompt string
	Phase      string
	Tool       string
	Arguments  json.RawMessage

	promptErr error
}

type wirePayload struct {
	Cwd        string          `json:"cwd"`
	SessionID  json.RawMessage `json:"session_id"`
	UserPrompt json.RawMessage `json:"userPrompt"`
	Phase      json.RawMessage `json:"phase"`
	Tool       json.RawMessage `json:"tool"`
	Arguments  json.RawMessage `json:"arguments"`
}

// UnmarshalJSON decodes the host payload leniently.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var w wirePayload
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*p = Payload{
		Cwd:       w.Cwd,
		SessionID: optionalString(w.SessionID),
		Phase:     optionalString(w.Phase),
		Tool:      optionalString(w.Tool),
		Arguments: w.Arguments,
	}
	if len(w.UserPrompt) > 0 && !isJSONNull(w.UserPrompt) {
		if err := json.Unmarshal(w.UserPrompt, &p.UserPrompt); err != nil {
			p.promptErr = fmt.Errorf("userPrompt must be a string, got %s", describeJSON(bytes.TrimSpace(w.UserPrompt)))
		}
	}
	return nil
}

// optionalString returns raw as a string, or "" when it is absent or not a
// JSON string.
func optionalString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// ParsePayload decodes data into a Payload.
// Syntax errors are returned as *json.SyntaxError (wrapped) so callers can
// tell malformed input apart from a well-formed document of the wrong shape.
func ParsePayload(data []byte) (*Payload, error) {
	if !json.Valid(data) {
		var v any
		// Unmarshal reproduces the precise syntax error for the message.
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, &SyntaxError{Err: err}
		}
		return nil, &SyntaxError{Err: errors.New("invalid JSON")}
	}

	if trimmed := bytes.TrimSpace(data); trimmed[0] != '{' {
		return nil, fmt.Errorf("payload must be a JSON object, got %s", describeJSON(trimmed))
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	return &p, nil
}

func describeJSON(data []byte) string {
	switch data[0] {
	case '[':
		return "array"
	case '"':
		return "string"
	case '{':
		return "object"
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	default:
		return "number"
	}
}

// SyntaxError reports that stdin was not a JSON document at all.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return e.Err.Error()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Dir returns the working directory, defaulting to ".".
func (p *Payload) Dir() string {
	if p == nil || p.Cwd == "" {
		return paths.DefaultDir
	}
	return p.Cwd
}

// SessionStartInput is the view of a payload a SessionStart handler consumes.
type SessionStartInput struct {
	Dir   string
	Phase string
}

// IsClearPhase reports whether output must be suppressed for this phase.
func (in SessionStartInput) IsClearPhase() bool {
	return in.Phase == PhaseClear
}

// UserPromptSubmitInput is the view of a payload a UserPromptSubmit handler consumes.
type UserPromptSubmitInput struct {
	Dir    string
	Prompt string
}

// ToolUseInput is the view of a payload a PreToolUse/PostToolUse handler consumes.
type ToolUseInput struct {
	Dir       string
	Tool      string
	Arguments json.RawMessage
}

// LifecycleInput is the view used by events that only need the working directory.
type LifecycleInput struct {
	Dir string
}

// SessionStart returns the SessionStart view of p.
func (p *Payload) SessionStart() SessionStartInput {
	return SessionStartInput{Dir: p.Dir(), Phase: p.Phase}
}

// UserPromptSubmit returns the UserPromptSubmit view of p. It fails when
// the payload carried a userPrompt that is not a string.
func (p *Payload) UserPromptSubmit() (UserPromptSubmitInput, error) {
	if p.promptErr != nil {
		return UserPromptSubmitInput{}, p.promptErr
	}
	return UserPromptSubmitInput{Dir: p.Dir(), Prompt: p.UserPrompt}, nil
}

// ToolUse returns the PreToolUse/PostToolUse view of p.
func (p *Payload) ToolUse() ToolUseInput {
	return ToolUseInput{Dir: p.Dir(), Tool: p.Tool, Arguments: p.Arguments}
}

// Lifecycle returns the directory-only view of p.
func (p *Payload) Lifecycle() LifecycleInput {
	return LifecycleInput{Dir: p.Dir()}
}

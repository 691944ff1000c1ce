package hook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Decision approves or blocks the operation that triggered the hook.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionBlock   Decision = "block"
)

// PermissionDecision answers a tool permission request.
type PermissionDecision string

const (
	PermissionAllow PermissionDecision = "allow"
	PermissionDeny  PermissionDecision = "deny"
	PermissionAsk   PermissionDecision = "ask"
)

// ContextPrefix decorates each context file line in additionalContext.
const ContextPrefix = "📎 Context: "

// Result is the outcome of one handler.
//
// ContextFiles, Suggestions and ExitCode are process-internal: neither
// serialization ever emits them.
type Result struct {
	Continue           bool
	SuppressOutput     bool
	Decision           Decision
	Reason             string
	PermissionDecision PermissionDecision
	SystemMessage      string

	ContextFiles []string
	Suggestions  []string
	ExitCode     int
}

// NewResult returns the all-defaults result: continue, nothing else.
func NewResult() *Result {
	return &Result{Continue: true}
}

// StandardOutput is the host's standard hook response schema.
// Exactly one of Decision or Continue is set.
type StandardOutput struct {
	Decision           Decision           `json:"decision,omitempty"`
	Continue           *bool              `json:"continue,omitempty"`
	Reason             string             `json:"reason,omitempty"`
	SuppressOutput     bool               `json:"suppressOutput,omitempty"`
	PermissionDecision PermissionDecision `json:"permissionDecision,omitempty"`
	SystemMessage      string             `json:"systemMessage,omitempty"`
}

// PromptSubmitOutput is the UserPromptSubmit response schema.
type PromptSubmitOutput struct {
	Continue           bool                 `json:"continue"`
	HookSpecificOutput PromptSubmitSpecific `json:"hookSpecificOutput"`
}

// PromptSubmitSpecific carries the context injected into the prompt.
// AdditionalContext is always present, even when empty.
type PromptSubmitSpecific struct {
	HookEventName     Event  `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext"`
}

// ErrorOutput is the best-effort body written when the router fails.
type ErrorOutput struct {
	Continue           bool          `json:"continue"`
	HookSpecificOutput ErrorSpecific `json:"hookSpecificOutput"`
}

// ErrorSpecific carries the failure description.
type ErrorSpecific struct {
	Error string `json:"error"`
}

// Standard converts r to the standard schema.
func (r *Result) Standard() StandardOutput {
	var out StandardOutput

	if r.Decision != "" {
		out.Decision = r.Decision
	} else {
		cont := r.Continue
		out.Continue = &cont
	}

	out.Reason = r.Reason
	out.SuppressOutput = r.SuppressOutput
	out.PermissionDecision = r.PermissionDecision
	out.SystemMessage = r.SystemMessage

	return out
}

// PromptSubmit converts r to the UserPromptSubmit schema.
func (r *Result) PromptSubmit() PromptSubmitOutput {
	return PromptSubmitOutput{
		Continue: r.Continue,
		HookSpecificOutput: PromptSubmitSpecific{
			HookEventName:     UserPromptSubmit,
			AdditionalContext: r.AdditionalContext(),
		},
	}
}

// AdditionalContext joins the context files, one decorated line each, and
// prepends the system message separated by a blank line when both are set.
func (r *Result) AdditionalContext() string {
	lines := make([]string, 0, len(r.ContextFiles))
	for _, f := range r.ContextFiles {
		lines = append(lines, ContextPrefix+f)
	}
	ctx := strings.Join(lines, "\n")

	switch {
	case r.SystemMessage == "":
		return ctx
	case ctx == "":
		return r.SystemMessage
	default:
		return r.SystemMessage + "\n\n" + ctx
	}
}

// Output selects the response schema for event.
func (r *Result) Output(event Event) any {
	if event.UsesPromptSubmitSchema() {
		return r.PromptSubmit()
	}
	return r.Standard()
}

// NewErrorOutput builds the fallback body for a failed invocation.
func NewErrorOutput(message string) ErrorOutput {
	return ErrorOutput{
		Continue:           true,
		HookSpecificOutput: ErrorSpecific{Error: message},
	}
}

// Marshal encodes v as a single JSON line without HTML escaping.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding hook response: %w", err)
	}
	return buf.Bytes(), nil
}

// Write encodes v as one JSON line to w.
func Write(w io.Writer, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing hook response: %w", err)
	}
	return nil
}

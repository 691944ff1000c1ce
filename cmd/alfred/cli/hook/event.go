// Package hook defines the wire contract with the host runtime: the event
// names it sends, the payload it writes to stdin, and the two response
// shapes it accepts on stdout.
package hook

// Event is a host lifecycle event name, passed as the single CLI argument.
type Event string

// Supported events. Names match the host's casing exactly.
const (
	SessionStart     Event = "SessionStart"
	SessionEnd       Event = "SessionEnd"
	UserPromptSubmit Event = "UserPromptSubmit"
	PreToolUse       Event = "PreToolUse"
	PostToolUse      Event = "PostToolUse"
	Notification     Event = "Notification"
	Stop             Event = "Stop"
	SubagentStop     Event = "SubagentStop"
)

// Events lists every supported event in registration order.
var Events = []Event{
	SessionStart,
	UserPromptSubmit,
	SessionEnd,
	PreToolUse,
	PostToolUse,
	Notification,
	Stop,
	SubagentStop,
}

// UsesPromptSubmitSchema reports whether responses for e must use the
// UserPromptSubmit output shape instead of the standard one.
func (e Event) UsesPromptSubmitSchema() bool {
	return e == UserPromptSubmit
}

func (e Event) String() string {
	return string(e)
}

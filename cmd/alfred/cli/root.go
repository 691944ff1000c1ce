package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/hook"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/logging"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/paths"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/project"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/settings"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/telemetry"
)

const eventsHelp = `
Events:
  SessionStart       Show the project summary (language, git, SPEC progress, checkpoints)
  UserPromptSubmit   Attach project documents relevant to the prompt
  SessionEnd, PreToolUse, PostToolUse, Notification, Stop, SubagentStop
                     Accepted; respond with the default result

The hook payload is read as JSON from stdin and the response is written
as a single JSON line to stdout.
`

const envHelp = `
Environment Variables:
  ALFRED_LOG_LEVEL          Log level (DEBUG, INFO, WARN, ERROR). Logs go to
                            .moai/logs/hooks.log when .moai exists.
  ALFRED_TELEMETRY_OPTOUT   Set to any value to disable telemetry.
`

// Version information (can be set at build time)
var (
	Version = "dev"
	Commit  = "unknown"
)

//nolint:gochecknoinits // wires the settings reader into logging without an import cycle
func init() {
	logging.SetLogLevelGetter(settings.LogLevel)
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alfred <event>",
		Short: "MoAI-ADK Alfred hook router",
		Long:  "Routes host hook events to the Alfred handlers." + eventsHelp + envHelp,
		Args:  requireEvent,
		// Let main.go handle error printing to avoid duplication
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if !telemetry.ShouldTrack(cmd) {
				return
			}

			// Load telemetry preference from settings (ignore errors - nil defaults to disabled)
			var telemetryEnabled *bool
			if s, err := settings.Load(paths.DefaultDir); err == nil {
				telemetryEnabled = s.Telemetry
			}

			telemetryClient := telemetry.NewClient(Version, telemetryEnabled)
			defer telemetryClient.Close()
			telemetryClient.TrackCommand(cmd, telemetry.CommandInfo{
				Language:   project.Language(paths.DefaultDir),
				HasProject: paths.IsDir(paths.DefaultDir, paths.MoaiDir),
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			stdin := cmd.InOrStdin()
			if isTerminal(stdin) {
				fmt.Fprintln(cmd.ErrOrStderr(), "alfred: reading hook payload from stdin (end with Ctrl-D)")
			}
			return runHook(cmd.Context(), hook.Event(args[0]), stdin, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// requireEvent accepts the event name as the first argument. Extra
// arguments are ignored.
func requireEvent(_ *cobra.Command, args []string) error {
	if len(args) < 1 || args[0] == "" {
		return errUsage
	}
	return nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Alfred hooks %s (%s)\n", Version, Commit)
			fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Package telemetry reports anonymous usage of the alfred maintenance
// commands. Hook invocations are never tracked.
package telemetry

import (
	"net"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/posthog/posthog-go"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// OptOutEnvVar disables telemetry when set to any non-empty value.
const OptOutEnvVar = "ALFRED_TELEMETRY_OPTOUT"

const (
	appID     = "moai-alfred-hooks"
	eventName = "alfred_command_executed"

	// networkBudget caps every network phase so telemetry never delays exit.
	networkBudget = 100 * time.Millisecond
)

// Overridden with -ldflags for release builds.
var (
	PostHogAPIKey   = "phc_development_key"
	PostHogEndpoint = "https://eu.i.posthog.com"
)

// CommandInfo is the non-identifying context reported with a command.
type CommandInfo struct {
	Language   string
	HasProject bool
}

// Client records command executions.
type Client interface {
	TrackCommand(cmd *cobra.Command, info CommandInfo)
	Close()
}

// NoOpClient is used when telemetry is disabled.
type NoOpClient struct{}

func (*NoOpClient) TrackCommand(*cobra.Command, CommandInfo) {}
func (*NoOpClient) Close()                                   {}

// PostHogClient sends events to PostHog under a hashed machine ID.
type PostHogClient struct {
	client    posthog.Client
	machineID string
}

// NewClient returns a PostHog client when the project opted in and the
// opt-out variable is unset, and a NoOpClient otherwise.
// A nil telemetryEnabled means never configured, which is disabled.
//
//nolint:ireturn // returns NoOpClient or PostHogClient based on settings
func NewClient(version string, telemetryEnabled *bool) Client {
	if !optedIn(telemetryEnabled) {
		return &NoOpClient{}
	}

	id, err := machineid.ProtectedID(appID)
	if err != nil {
		return &NoOpClient{}
	}

	client, err := posthog.NewWithConfig(PostHogAPIKey, posthog.Config{
		Endpoint:           PostHogEndpoint,
		ShutdownTimeout:    networkBudget,
		BatchUploadTimeout: 2 * networkBudget,
		Transport:          boundedTransport(),
		Logger:             quietLogger{},
		DisableGeoIP:       posthog.Ptr(true),
		DefaultEventProperties: posthog.NewProperties().
			Set("cli_version", version).
			Set("os", runtime.GOOS).
			Set("arch", runtime.GOARCH),
	})
	if err != nil {
		return &NoOpClient{}
	}
	return &PostHogClient{client: client, machineID: id}
}

func optedIn(setting *bool) bool {
	if os.Getenv(OptOutEnvVar) != "" {
		return false
	}
	return setting != nil && *setting
}

func boundedTransport() *http.Transport {
	return &http.Transport{
		DialContext:           (&net.Dialer{Timeout: networkBudget}).DialContext,
		TLSHandshakeTimeout:   networkBudget,
		ResponseHeaderTimeout: networkBudget,
	}
}

// quietLogger keeps PostHog from writing to the terminal.
type quietLogger struct{}

func (quietLogger) Logf(string, ...any)   {}
func (quietLogger) Debugf(string, ...any) {}
func (quietLogger) Warnf(string, ...any)  {}
func (quietLogger) Errorf(string, ...any) {}

// ShouldTrack reports whether cmd is a user-facing command worth reporting.
// Hidden commands and the root command (which dispatches hook events) are skipped.
func ShouldTrack(cmd *cobra.Command) bool {
	return cmd != nil && !cmd.Hidden && cmd.HasParent()
}

// Properties builds the event properties for cmd. Only the names of flags
// the user set are collected, never their values.
func Properties(cmd *cobra.Command, info CommandInfo) posthog.Properties {
	language := info.Language
	if language == "" {
		language = "unknown"
	}
	props := posthog.NewProperties().
		Set("command", cmd.CommandPath()).
		Set("language", language).
		Set("hasMoaiProject", info.HasProject)

	var flags []string
	cmd.Flags().Visit(func(f *pflag.Flag) {
		flags = append(flags, f.Name)
	})
	if len(flags) > 0 {
		props.Set("flags", strings.Join(flags, ","))
	}
	return props
}

// TrackCommand enqueues one event for cmd. Delivery is best effort.
func (p *PostHogClient) TrackCommand(cmd *cobra.Command, info CommandInfo) {
	if !ShouldTrack(cmd) || p.client == nil {
		return
	}
	//nolint:errcheck // best-effort telemetry
	_ = p.client.Enqueue(posthog.Capture{
		DistinctId: p.machineID,
		Event:      eventName,
		Properties: Properties(cmd, info),
	})
}

// Close flushes pending events.
func (p *PostHogClient) Close() {
	if p.client != nil {
		_ = p.client.Close()
	}
}

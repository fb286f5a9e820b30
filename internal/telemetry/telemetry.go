package telemetry

import "os"

// posthogAPIKey is the PostHog project key, injected at release time:
//
//	go build -ldflags "-X github.com/josephgoksu/gameforge/internal/telemetry.posthogAPIKey=phc_..."
//
// Development builds have no key, so every client they create is a no-op.
var posthogAPIKey string

// EnvKillSwitch disables telemetry for a single invocation or an entire
// environment, regardless of the saved consent. Any non-empty value counts.
const EnvKillSwitch = "GAMEFORGE_NO_TELEMETRY"

// Disabled reports whether the environment kill switch is set.
func Disabled() bool {
	return os.Getenv(EnvKillSwitch) != ""
}

// Setup prepares the telemetry client for one CLI invocation. It prompts
// for consent on first run, then honors the saved choice. Setup never
// fails: any error on the way degrades to a NoopClient, because telemetry
// must not be able to break a run.
func Setup(version string) Client {
	if Disabled() || posthogAPIKey == "" {
		return NewNoopClient()
	}

	cfg, err := Load()
	if err != nil {
		return NewNoopClient()
	}

	if cfg.NeedsConsent() {
		if _, err := PromptConsent(cfg); err != nil {
			return NewNoopClient()
		}
	}

	if !cfg.IsEnabled() {
		return NewNoopClient()
	}

	client, err := NewPostHogClient(ClientConfig{
		APIKey:  posthogAPIKey,
		Version: version,
		Config:  cfg,
	})
	if err != nil {
		return NewNoopClient()
	}
	return client
}

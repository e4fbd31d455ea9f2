package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/riftscout/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("RIFTSCOUT_OTEL_ENDPOINT", "")
	t.Setenv("RIFTSCOUT_OTEL_ENABLED", "true")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("RIFTSCOUT_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("RIFTSCOUT_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RejectsMalformedEnabledFlag(t *testing.T) {
	t.Setenv("RIFTSCOUT_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("RIFTSCOUT_OTEL_ENABLED", "sometimes")

	if _, err := otel.Setup(context.Background(), "test-service"); err == nil {
		t.Fatal("expected malformed enabled flag to fail")
	}
}

func TestSetupWith_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so no export happens.
	settings := otel.Settings{Endpoint: "http://192.0.2.1:4318", Enabled: true}

	shutdown, err := otel.SetupWith(context.Background(), "test-service", settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSettingsActive(t *testing.T) {
	tests := []struct {
		name     string
		settings otel.Settings
		want     bool
	}{
		{name: "empty", settings: otel.Settings{Enabled: true}, want: false},
		{name: "disabled", settings: otel.Settings{Endpoint: "http://x", Enabled: false}, want: false},
		{name: "active", settings: otel.Settings{Endpoint: "http://x", Enabled: true}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.Active(); got != tt.want {
				t.Fatalf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetup_NoopShutdownIgnoresCancelledContext(t *testing.T) {
	t.Setenv("RIFTSCOUT_OTEL_ENDPOINT", "")

	shutdown, err := otel.Setup(context.Background(), "noop-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}

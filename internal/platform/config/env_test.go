package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port    int           `env:"RIFTSCOUT_TEST_PORT" envDefault:"123"`
	Timeout time.Duration `env:"RIFTSCOUT_TEST_TIMEOUT" envDefault:"30s"`
	Hosts   []string      `env:"RIFTSCOUT_TEST_HOSTS" envSeparator:","`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("expected default timeout 30s, got %s", cfg.Timeout)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("RIFTSCOUT_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvFromMap(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("RIFTSCOUT_TEST_PORT", "999")

	err := ParseEnvFrom(&cfg, map[string]string{
		"RIFTSCOUT_TEST_PORT":  "8081",
		"RIFTSCOUT_TEST_HOSTS": "a.example, b.example",
	})
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 8081 {
		t.Fatalf("expected map port 8081, got %d", cfg.Port)
	}
	if len(cfg.Hosts) != 2 {
		t.Fatalf("expected 2 hosts, got %v", cfg.Hosts)
	}
}

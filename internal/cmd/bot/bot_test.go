package bot

import (
	"context"
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("bot", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != ":8090" {
		t.Fatalf("expected default addr :8090, got %q", cfg.HTTPAddr)
	}
	if cfg.CommandPrefix != "!" {
		t.Fatalf("expected default prefix, got %q", cfg.CommandPrefix)
	}
	if cfg.Locale != "en" {
		t.Fatalf("expected default locale en, got %q", cfg.Locale)
	}
	if cfg.MaxSessionAge != 0 {
		t.Fatalf("expected no max session age, got %v", cfg.MaxSessionAge)
	}
}

func TestParseConfigFlagOverridesEnv(t *testing.T) {
	t.Setenv("MEETUP_HTTP_ADDR", ":9090")
	t.Setenv("MEETUP_MAX_SESSION_AGE", "6h")

	fs := flag.NewFlagSet("bot", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", ":9091"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != ":9091" {
		t.Fatalf("expected flag override :9091, got %q", cfg.HTTPAddr)
	}
	if cfg.MaxSessionAge != 6*time.Hour {
		t.Fatalf("expected 6h max session age, got %v", cfg.MaxSessionAge)
	}
}

func TestRunRequiresGatewayBaseURL(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := Run(ctx, Config{}); err == nil {
		t.Fatal("expected error without gateway base URL")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %v, want 10s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Database.Path != "crescendo.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if cfg.Discovery.SampleSize != 20 || cfg.Discovery.MinArtistPresence != 0.15 {
		t.Errorf("discovery defaults = %+v", cfg.Discovery)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  addr: ":9090"
spotify:
  client_id: file-id
  client_secret: file-secret
discovery:
  sample_size: 10
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Spotify.ClientID != "file-id" {
		t.Errorf("client id = %q", cfg.Spotify.ClientID)
	}
	if cfg.Discovery.SampleSize != 10 {
		t.Errorf("sample size = %d, want 10", cfg.Discovery.SampleSize)
	}
	// untouched keys keep their defaults
	if cfg.Discovery.MinArtistPresence != 0.15 {
		t.Errorf("presence threshold = %v, want default", cfg.Discovery.MinArtistPresence)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CRESCENDO_SERVER_ADDR", ":7070")
	t.Setenv("CRESCENDO_SPOTIFY_CLIENT_ID", "env-id")
	t.Setenv("CRESCENDO_GOOGLE_CLIENT_ID", "env-google")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want env override :7070", cfg.Server.Addr)
	}
	if cfg.Spotify.ClientID != "env-id" {
		t.Errorf("client id = %q, want env-id", cfg.Spotify.ClientID)
	}
	if cfg.Google.ClientID != "env-google" {
		t.Errorf("google client id = %q, want env-google", cfg.Google.ClientID)
	}
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("a missing config file should fall back to defaults, got: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoad_RejectsInvalidThreshold(t *testing.T) {
	t.Setenv("CRESCENDO_DISCOVERY_MIN_ARTIST_PRESENCE", "1.5")
	if _, err := Load(""); err == nil {
		t.Fatal("expected a validation error for an out-of-range threshold")
	}
}

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("MEDIA_DIR", "")
	t.Setenv("AZ_ADMIN_TOKEN", "")
	t.Setenv("PUBLIC_BASE_URL", "")
	t.Setenv("FEED_LIMIT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "memearena" {
		t.Fatalf("expected default service name, got %s", cfg.ServiceName)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.MediaDir != "media" {
		t.Fatalf("expected default media dir, got %s", cfg.MediaDir)
	}
	if cfg.FeedLimit != 300 {
		t.Fatalf("expected default feed limit 300, got %d", cfg.FeedLimit)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SERVICE_NAME", "memearena-test")
	t.Setenv("HTTP_PORT", "9191")
	t.Setenv("AZ_ADMIN_TOKEN", "  secret-token  ")
	t.Setenv("PUBLIC_BASE_URL", "https://arena.example/")
	t.Setenv("FEED_LIMIT", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "memearena-test" {
		t.Fatalf("unexpected service name: %s", cfg.ServiceName)
	}
	if cfg.HTTPPort != "9191" {
		t.Fatalf("unexpected port: %s", cfg.HTTPPort)
	}
	if cfg.AdminToken != "secret-token" {
		t.Fatalf("expected trimmed admin token, got %q", cfg.AdminToken)
	}
	if cfg.PublicBaseURL != "https://arena.example" {
		t.Fatalf("expected trimmed base URL, got %q", cfg.PublicBaseURL)
	}
	if cfg.FeedLimit != 50 {
		t.Fatalf("unexpected feed limit: %d", cfg.FeedLimit)
	}
}

func TestEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("FEED_LIMIT", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.FeedLimit != 300 {
		t.Fatalf("expected fallback 300, got %d", cfg.FeedLimit)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var configEnv = []string{
	"PORT", "ENV", "CALL_PROVIDER", "BLAND_API_KEY", "BLAND_BASE_URL", "WEBHOOK_URL",
	"ORGANIZATION_NAME", "TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_PHONE_NUMBER",
	"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "DATABASE_URL", "HISTORY_RESPONSES",
	"STORE_BACKEND", "REDIS_URL", "REDIS_TTL", "EXPORT_DIR",
}

// clearEnv unsets every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BLAND_API_KEY", "key")
	t.Setenv("WEBHOOK_URL", "https://example.test/webhook")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("unexpected port: got %v want %v", cfg.Port, "8000")
	}
	if cfg.CallProvider != ProviderBland {
		t.Errorf("unexpected provider: got %v want %v", cfg.CallProvider, ProviderBland)
	}
	if cfg.StoreBackend != BackendMemory {
		t.Errorf("unexpected backend: got %v want %v", cfg.StoreBackend, BackendMemory)
	}
	if cfg.HistoryResponses != 10 {
		t.Errorf("unexpected history responses: got %v want %v", cfg.HistoryResponses, 10)
	}
	if cfg.RedisTTL != 0 {
		t.Errorf("unexpected redis ttl: got %v want %v", cfg.RedisTTL, 0)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("port: \"9000\"\nbland_api_key: key\nwebhook_url: https://example.test/webhook\nexport_dir: /tmp/exports\nredis_ttl: 1h\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9100" {
		t.Errorf("env should win over file: got %v want %v", cfg.Port, "9100")
	}
	if cfg.WebhookURL != "https://example.test/webhook" {
		t.Errorf("unexpected webhook url: got %v", cfg.WebhookURL)
	}
	if cfg.ExportDir != "/tmp/exports" {
		t.Errorf("unexpected export dir: got %v", cfg.ExportDir)
	}
	if cfg.RedisTTL != time.Hour {
		t.Errorf("unexpected redis ttl: got %v want %v", cfg.RedisTTL, time.Hour)
	}
}

func TestLoadRedisTTLFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BLAND_API_KEY", "key")
	t.Setenv("WEBHOOK_URL", "https://example.test/webhook")
	t.Setenv("REDIS_TTL", "90m")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RedisTTL != 90*time.Minute {
		t.Errorf("unexpected redis ttl: got %v want %v", cfg.RedisTTL, 90*time.Minute)
	}
}

func TestLoadBlandRequiredSettings(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		missing string
	}{
		{name: "no api key", env: map[string]string{"WEBHOOK_URL": "https://example.test/webhook"}, missing: "BLAND_API_KEY"},
		{name: "no webhook", env: map[string]string{"BLAND_API_KEY": "key"}, missing: "WEBHOOK_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.missing) {
				t.Errorf("error should name %s: got %v", tt.missing, err)
			}
		})
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown provider", env: map[string]string{"CALL_PROVIDER": "carrier-pigeon"}},
		{name: "bland without credentials", env: map[string]string{"BLAND_API_KEY": "", "WEBHOOK_URL": ""}},
		{name: "twilio without credentials", env: map[string]string{"CALL_PROVIDER": ProviderTwilio}},
		{name: "redis without url", env: map[string]string{"STORE_BACKEND": BackendRedis}},
		{name: "unknown backend", env: map[string]string{"STORE_BACKEND": "etcd"}},
		{name: "bad history", env: map[string]string{"HISTORY_RESPONSES": "ten"}},
		{name: "bad redis ttl", env: map[string]string{"REDIS_TTL": "soon"}},
		{name: "negative redis ttl", env: map[string]string{"REDIS_TTL": "-1m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("BLAND_API_KEY", "key")
			t.Setenv("WEBHOOK_URL", "https://example.test/webhook")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(""); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

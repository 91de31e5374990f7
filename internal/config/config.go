package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderBland  = "bland"
	ProviderTwilio = "twilio"

	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Port             string `yaml:"port"`
	Environment      string `yaml:"env"`
	CallProvider     string `yaml:"call_provider"`
	BlandAPIKey      string `yaml:"bland_api_key"`
	BlandBaseURL     string `yaml:"bland_base_url"`
	WebhookURL       string `yaml:"webhook_url"`
	OrganizationName string `yaml:"organization_name"`

	TwilioAccountSID  string `yaml:"twilio_account_sid"`
	TwilioAuthToken   string `yaml:"twilio_auth_token"`
	TwilioPhoneNumber string `yaml:"twilio_phone_number"`

	GeminiAPIKey  string `yaml:"gemini_api_key"`
	GeminiModel   string `yaml:"gemini_model"`
	GeminiBaseURL string `yaml:"gemini_base_url"`

	// DatabaseURL holds prompt-generator history. Empty keeps history in memory.
	DatabaseURL      string `yaml:"database_url"`
	HistoryResponses int    `yaml:"history_responses"`

	StoreBackend string `yaml:"store_backend"`
	RedisURL     string `yaml:"redis_url"`
	// RedisTTL expires stored conversations. Zero keeps them forever.
	RedisTTL  time.Duration `yaml:"redis_ttl"`
	ExportDir string        `yaml:"export_dir"`
}

// Load builds the configuration from defaults, an optional YAML file at path
// and the environment, in that order of precedence (environment wins).
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENV", cfg.Environment)
	cfg.CallProvider = getEnv("CALL_PROVIDER", cfg.CallProvider)
	cfg.BlandAPIKey = getEnv("BLAND_API_KEY", cfg.BlandAPIKey)
	cfg.BlandBaseURL = getEnv("BLAND_BASE_URL", cfg.BlandBaseURL)
	cfg.WebhookURL = getEnv("WEBHOOK_URL", cfg.WebhookURL)
	cfg.OrganizationName = getEnv("ORGANIZATION_NAME", cfg.OrganizationName)
	cfg.TwilioAccountSID = getEnv("TWILIO_ACCOUNT_SID", cfg.TwilioAccountSID)
	cfg.TwilioAuthToken = getEnv("TWILIO_AUTH_TOKEN", cfg.TwilioAuthToken)
	cfg.TwilioPhoneNumber = getEnv("TWILIO_PHONE_NUMBER", cfg.TwilioPhoneNumber)
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GeminiModel = getEnv("GEMINI_MODEL", cfg.GeminiModel)
	cfg.GeminiBaseURL = getEnv("GEMINI_BASE_URL", cfg.GeminiBaseURL)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.StoreBackend = getEnv("STORE_BACKEND", cfg.StoreBackend)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.ExportDir = getEnv("EXPORT_DIR", cfg.ExportDir)

	if raw, ok := os.LookupEnv("HISTORY_RESPONSES"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("config: HISTORY_RESPONSES: %w", err)
		}
		cfg.HistoryResponses = n
	}

	if raw, ok := os.LookupEnv("REDIS_TTL"); ok && raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config: REDIS_TTL: %w", err)
		}
		cfg.RedisTTL = ttl
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:             "8000",
		Environment:      "development",
		CallProvider:     ProviderBland,
		BlandBaseURL:     "https://api.bland.ai",
		OrganizationName: "Samajh AI",
		GeminiModel:      "gemini-2.0-flash-exp",
		GeminiBaseURL:    "https://generativelanguage.googleapis.com",
		HistoryResponses: 10,
		StoreBackend:     BackendMemory,
		ExportDir:        ".",
	}
}

func (c *Config) validate() error {
	var required map[string]string
	switch c.CallProvider {
	case ProviderBland:
		required = map[string]string{
			"BLAND_API_KEY": c.BlandAPIKey,
			"WEBHOOK_URL":   c.WebhookURL,
		}
	case ProviderTwilio:
		required = map[string]string{
			"TWILIO_ACCOUNT_SID":  c.TwilioAccountSID,
			"TWILIO_AUTH_TOKEN":   c.TwilioAuthToken,
			"TWILIO_PHONE_NUMBER": c.TwilioPhoneNumber,
		}
	default:
		return fmt.Errorf("unknown call provider: %q", c.CallProvider)
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("missing required environment variable: %s", name)
		}
	}

	switch c.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("missing required environment variable: REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown store backend: %q", c.StoreBackend)
	}

	if c.RedisTTL < 0 {
		return fmt.Errorf("redis ttl must not be negative: %s", c.RedisTTL)
	}

	if c.HistoryResponses < 0 {
		return fmt.Errorf("history responses must not be negative: %d", c.HistoryResponses)
	}

	return nil
}

// IsDevelopment reports whether the service runs with development logging.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

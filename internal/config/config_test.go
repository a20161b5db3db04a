package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBaseConfig() Config {
	return Config{
		Matcher: MatcherConfig{
			Strategy:     "lexical",
			Skills:       []string{"python", "aws"},
			CondenseTopN: 20,
		},
		Rewrite: RewriteConfig{Variant: "static"},
		Fetch:   FetchConfig{Timeout: 10 * time.Second},
		AI:      AIConfig{Timeout: 60 * time.Second},
		Server: ServerConfig{
			Port: "8080",
			TLS:  TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:   "valid lexical config",
			mutate: func(c *Config) {},
		},
		{
			name: "semantic strategy with api key",
			mutate: func(c *Config) {
				c.Matcher.Strategy = "semantic"
				c.AI.APIKey = "test-key"
			},
		},
		{
			name: "semantic strategy without api key",
			mutate: func(c *Config) {
				c.Matcher.Strategy = "semantic"
			},
			expectError: true,
			errorMsg:    "semantic strategy requires an AI API key",
		},
		{
			name: "lexical strategy needs no api key",
			mutate: func(c *Config) {
				c.AI.APIKey = ""
			},
		},
		{
			name: "unknown strategy",
			mutate: func(c *Config) {
				c.Matcher.Strategy = "fuzzy"
			},
			expectError: true,
			errorMsg:    "invalid matcher strategy: fuzzy",
		},
		{
			name: "unknown rewrite variant",
			mutate: func(c *Config) {
				c.Rewrite.Variant = "magic"
			},
			expectError: true,
			errorMsg:    "invalid rewrite variant: magic",
		},
		{
			name: "non-positive condense topN",
			mutate: func(c *Config) {
				c.Matcher.CondenseTopN = 0
			},
			expectError: true,
			errorMsg:    "condenseTopN must be positive",
		},
		{
			name: "non-positive fetch timeout",
			mutate: func(c *Config) {
				c.Fetch.Timeout = 0
			},
			expectError: true,
			errorMsg:    "fetch timeout must be positive",
		},
		{
			name: "missing server port",
			mutate: func(c *Config) {
				c.Server.Port = ""
			},
			expectError: true,
			errorMsg:    "server port is required",
		},
		{
			name: "unsupported default format",
			mutate: func(c *Config) {
				c.App.DefaultFormat = "xml"
			},
			expectError: true,
			errorMsg:    "invalid default format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBaseConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
		errorMsg    string
	}{
		{
			name: "disabled mode",
			tls:  TLSConfig{Mode: "disabled"},
		},
		{
			name: "server mode with files",
			tls: TLSConfig{
				Mode:       "server",
				CertFile:   "/path/to/cert.pem",
				KeyFile:    "/path/to/key.pem",
				MinVersion: "1.2",
			},
		},
		{
			name: "server mode with content",
			tls: TLSConfig{
				Mode:        "server",
				CertContent: "cert-content",
				KeyContent:  "key-content",
			},
		},
		{
			name: "mutual mode with content",
			tls: TLSConfig{
				Mode:             "mutual",
				CertContent:      "cert-content",
				KeyContent:       "key-content",
				CAContent:        "ca-content",
				ClientAuthPolicy: "require",
				MinVersion:       "1.3",
			},
		},
		{
			name:        "invalid mode",
			tls:         TLSConfig{Mode: "invalid"},
			expectError: true,
			errorMsg:    "invalid TLS mode: invalid",
		},
		{
			name: "server mode missing certificates",
			tls: TLSConfig{
				Mode: "server",
			},
			expectError: true,
			errorMsg:    "TLS certificate and key are required for server mode",
		},
		{
			name: "duplicate cert sources",
			tls: TLSConfig{
				Mode:        "server",
				CertFile:    "/path/to/cert.pem",
				CertContent: "cert-content",
				KeyFile:     "/path/to/key.pem",
			},
			expectError: true,
			errorMsg:    "cannot specify both certFile and certContent",
		},
		{
			name: "duplicate key sources",
			tls: TLSConfig{
				Mode:       "server",
				CertFile:   "/path/to/cert.pem",
				KeyFile:    "/path/to/key.pem",
				KeyContent: "key-content",
			},
			expectError: true,
			errorMsg:    "cannot specify both keyFile and keyContent",
		},
		{
			name: "mutual mode missing CA",
			tls: TLSConfig{
				Mode:     "mutual",
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
			expectError: true,
			errorMsg:    "CA certificate is required for mutual TLS mode",
		},
		{
			name: "mutual mode duplicate CA sources",
			tls: TLSConfig{
				Mode:      "mutual",
				CertFile:  "/path/to/cert.pem",
				KeyFile:   "/path/to/key.pem",
				CAFile:    "/path/to/ca.pem",
				CAContent: "ca-content",
			},
			expectError: true,
			errorMsg:    "cannot specify both caFile and caContent",
		},
		{
			name: "mutual mode invalid client auth policy",
			tls: TLSConfig{
				Mode:             "mutual",
				CertFile:         "/path/to/cert.pem",
				KeyFile:          "/path/to/key.pem",
				CAFile:           "/path/to/ca.pem",
				ClientAuthPolicy: "invalid",
			},
			expectError: true,
			errorMsg:    "invalid clientAuthPolicy: invalid",
		},
		{
			name: "invalid minimum version",
			tls: TLSConfig{
				Mode:       "server",
				CertFile:   "/path/to/cert.pem",
				KeyFile:    "/path/to/key.pem",
				MinVersion: "1.0",
			},
			expectError: true,
			errorMsg:    "invalid TLS minVersion: 1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Server: ServerConfig{TLS: tt.tls}}

			err := cfg.ValidateTLSConfig()
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyFallbacksDefaultSkills(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Matcher.Skills = nil
	cfg.Matcher.SkillsFile = ""
	cfg.Observability.ServiceName = "resumatch"

	cfg.applyFallbacks()

	assert.Equal(t, DefaultSkills(), cfg.Matcher.Skills)
	assert.NotEmpty(t, cfg.Observability.ServiceInstance)
}

func TestApplyFallbacksKeepsConfiguredSkills(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Matcher.Skills = []string{"go", "kubernetes"}

	cfg.applyFallbacks()

	assert.Equal(t, []string{"go", "kubernetes"}, cfg.Matcher.Skills)
}

func TestGetRewriteConfigFallbacks(t *testing.T) {
	cfg := validBaseConfig()
	cfg.AI = AIConfig{
		Provider:    "gemini",
		Model:       "gemini-2.0-flash",
		Timeout:     45 * time.Second,
		APIKey:      "global-key",
		MaxRetries:  4,
		Temperature: 0.5,
	}

	op := cfg.GetRewriteConfig()

	assert.Equal(t, "gemini", op.Provider)
	assert.Equal(t, "gemini-2.0-flash", op.Model)
	assert.Equal(t, "global-key", op.APIKey)
	require.NotNil(t, op.Timeout)
	assert.Equal(t, 45*time.Second, *op.Timeout)
	require.NotNil(t, op.MaxRetries)
	assert.Equal(t, 4, *op.MaxRetries)
}

func TestGetRewriteConfigOverrides(t *testing.T) {
	opTimeout := 90 * time.Second
	cfg := validBaseConfig()
	cfg.AI = AIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
		Timeout:  45 * time.Second,
		APIKey:   "global-key",
		Rewrite: OperationAIConfig{
			Model:   "gemini-2.5-pro",
			Timeout: &opTimeout,
		},
	}

	op := cfg.GetRewriteConfig()

	assert.Equal(t, "gemini-2.5-pro", op.Model)
	require.NotNil(t, op.Timeout)
	assert.Equal(t, opTimeout, *op.Timeout)
	assert.Equal(t, "global-key", op.APIKey)
}

func TestGetEmbedConfigUsesEmbedModel(t *testing.T) {
	cfg := validBaseConfig()
	cfg.AI = AIConfig{
		Provider:   "gemini",
		Model:      "gemini-2.0-flash",
		EmbedModel: "gemini-embedding-001",
		Timeout:    30 * time.Second,
		APIKey:     "global-key",
	}

	op := cfg.GetEmbedConfig()

	assert.Equal(t, "gemini-embedding-001", op.Model)
	assert.Equal(t, "global-key", op.APIKey)
}

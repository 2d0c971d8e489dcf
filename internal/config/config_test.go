package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "default values",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != "8080" {
					t.Errorf("expected port 8080, got %s", cfg.Port)
				}
				if cfg.LogLevel != "info" {
					t.Errorf("expected log level info, got %s", cfg.LogLevel)
				}
				if cfg.LatencyBase != 300*time.Millisecond {
					t.Errorf("expected LatencyBase 300ms, got %v", cfg.LatencyBase)
				}
				if cfg.LatencyVariance != 200*time.Millisecond {
					t.Errorf("expected LatencyVariance 200ms, got %v", cfg.LatencyVariance)
				}
				if cfg.ReplyMinDelay != 5*time.Second || cfg.ReplyMaxDelay != 15*time.Second {
					t.Errorf("expected reply window 5s-15s, got %v-%v", cfg.ReplyMinDelay, cfg.ReplyMaxDelay)
				}
				if cfg.AuditLogCap != 10000 {
					t.Errorf("expected audit cap 10000, got %d", cfg.AuditLogCap)
				}
				if cfg.WSReadTimeout != 60*time.Second {
					t.Errorf("expected WSReadTimeout 60s, got %v", cfg.WSReadTimeout)
				}
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"PORT":                "9000",
				"LOG_LEVEL":           "debug",
				"LATENCY_BASE_MS":     "50",
				"LATENCY_VARIANCE_MS": "10",
				"REPLY_MIN_SECONDS":   "1",
				"REPLY_MAX_SECONDS":   "2",
				"AUDIT_LOG_CAP":       "500",
				"ALLOWED_ORIGINS":     "http://example.com, http://test.com",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != "9000" {
					t.Errorf("expected port 9000, got %s", cfg.Port)
				}
				if cfg.LatencyBase != 50*time.Millisecond {
					t.Errorf("expected LatencyBase 50ms, got %v", cfg.LatencyBase)
				}
				if cfg.AuditLogCap != 500 {
					t.Errorf("expected audit cap 500, got %d", cfg.AuditLogCap)
				}
				if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://test.com" {
					t.Errorf("expected trimmed origins, got %v", cfg.AllowedOrigins)
				}
			},
		},
		{
			name:    "invalid latency",
			env:     map[string]string{"LATENCY_BASE_MS": "fast"},
			wantErr: true,
		},
		{
			name:    "reply window inverted",
			env:     map[string]string{"REPLY_MIN_SECONDS": "10", "REPLY_MAX_SECONDS": "5"},
			wantErr: true,
		},
		{
			name:    "invalid audit cap",
			env:     map[string]string{"AUDIT_LOG_CAP": "lots"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				os.Setenv(k, v)
			}
			defer func() {
				for k := range tt.env {
					os.Unsetenv(k)
				}
			}()

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

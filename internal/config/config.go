package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	JWTSecret      string

	// Simulated latency applied at the start of every service operation
	LatencyBase     time.Duration
	LatencyVariance time.Duration

	// Simulated customer reply window after an agent message
	ReplyMinDelay time.Duration
	ReplyMaxDelay time.Duration

	// In-memory audit log retention
	AuditLogCap int

	// WebSocket timings
	WSReadTimeout  time.Duration
	WSWriteTimeout time.Duration
	PingPeriod     time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		JWTSecret:      getEnv("JWT_SECRET", "callcenter-demo-secret"),
	}

	latencyBase, err := strconv.Atoi(getEnv("LATENCY_BASE_MS", "300"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATENCY_BASE_MS: %w", err)
	}
	config.LatencyBase = time.Duration(latencyBase) * time.Millisecond

	latencyVariance, err := strconv.Atoi(getEnv("LATENCY_VARIANCE_MS", "200"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATENCY_VARIANCE_MS: %w", err)
	}
	config.LatencyVariance = time.Duration(latencyVariance) * time.Millisecond

	replyMin, err := strconv.Atoi(getEnv("REPLY_MIN_SECONDS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPLY_MIN_SECONDS: %w", err)
	}
	config.ReplyMinDelay = time.Duration(replyMin) * time.Second

	replyMax, err := strconv.Atoi(getEnv("REPLY_MAX_SECONDS", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPLY_MAX_SECONDS: %w", err)
	}
	config.ReplyMaxDelay = time.Duration(replyMax) * time.Second
	if config.ReplyMaxDelay < config.ReplyMinDelay {
		return nil, fmt.Errorf("REPLY_MAX_SECONDS must be >= REPLY_MIN_SECONDS")
	}

	auditCap, err := strconv.Atoi(getEnv("AUDIT_LOG_CAP", "10000"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_LOG_CAP: %w", err)
	}
	config.AuditLogCap = auditCap

	// Parse WebSocket timeouts
	wsReadTimeout, err := strconv.Atoi(getEnv("WS_READ_TIMEOUT", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid WS_READ_TIMEOUT: %w", err)
	}
	config.WSReadTimeout = time.Duration(wsReadTimeout) * time.Second

	wsWriteTimeout, err := strconv.Atoi(getEnv("WS_WRITE_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid WS_WRITE_TIMEOUT: %w", err)
	}
	config.WSWriteTimeout = time.Duration(wsWriteTimeout) * time.Second

	// Calculate WebSocket constants
	config.PongWait = config.WSReadTimeout
	config.PingPeriod = (config.PongWait * 9) / 10 // Must be less than pongWait
	config.WriteWait = config.WSWriteTimeout
	config.MaxMessageSize = 512

	// Trim spaces from allowed origins
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

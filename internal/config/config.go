package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// insecureSessionSecret is the development fallback. Running production with
// it defeats session signing, so Validate flags it.
const insecureSessionSecret = "your-secret-key-change-in-production"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	QR       QRConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type DatabaseConfig struct {
	Path string
}

type SessionConfig struct {
	Secret   string
	TTLHours int
}

type QRConfig struct {
	SecretHex string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "registrations.db"),
		},
		Session: SessionConfig{
			Secret:   getEnv("SESSION_SECRET", insecureSessionSecret),
			TTLHours: getEnvAsInt("SESSION_TTL_HOURS", 24),
		},
		QR: QRConfig{
			SecretHex: getEnv("QR_SECRET", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	return config, nil
}

// Validate collects every startup violation instead of failing on the first
// one, so an operator sees the full list at once. A non-empty result must
// abort startup.
func (c *Config) Validate() []string {
	var violations []string

	if strings.TrimSpace(c.Session.Secret) == "" {
		violations = append(violations, "SESSION_SECRET is required")
	} else if c.IsProduction() && c.Session.Secret == insecureSessionSecret {
		violations = append(violations, "SESSION_SECRET is set to the insecure default; generate a real secret")
	}

	if c.Session.TTLHours < 1 {
		violations = append(violations, "SESSION_TTL_HOURS must be at least 1")
	}

	if strings.TrimSpace(c.QR.SecretHex) == "" {
		violations = append(violations, "QR_SECRET is required")
	} else if _, err := c.QRKey(); err != nil {
		violations = append(violations, fmt.Sprintf("QR_SECRET is invalid: %s", err.Error()))
	}

	if c.Database.Path == "" {
		violations = append(violations, "DATABASE_PATH must not be empty")
	}

	return violations
}

// QRKey decodes the hex QR secret into an AES key
func (c *Config) QRKey() ([]byte, error) {
	key, err := hex.DecodeString(c.QR.SecretHex)
	if err != nil {
		return nil, fmt.Errorf("must be hex encoded: %w", err)
	}

	switch len(key) {
	case 16, 24, 32:
		return key, nil
	default:
		return nil, fmt.Errorf("must decode to 16, 24 or 32 bytes, got %d", len(key))
	}
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by DST_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("DST_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are fine, the environment may already be set
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// StoreBackend returns the configured store backend.
// Defaults to "postgres" when DATABASE_URL is set, "memory" otherwise.
// Valid values: postgres, memory
func StoreBackend() string {
	b := os.Getenv("STORE_BACKEND")
	if b != "" {
		return b
	}
	if DatabaseURL() != "" {
		return "postgres"
	}
	return "memory"
}

// APIKey returns the bearer token required on /v1 routes.
// Empty disables authentication.
func APIKey() string {
	return os.Getenv("API_KEY")
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

// CORSAllowedOrigins returns the comma separated CORS_ALLOWED_ORIGINS list.
// Defaults to local development origins.
func CORSAllowedOrigins() []string {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:3000", "http://localhost:8081"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// FusionCacheSize returns how many combined assessments are cached.
// Defaults to 256 if not set.
func FusionCacheSize() int {
	n, err := strconv.Atoi(os.Getenv("FUSION_CACHE_SIZE"))
	if err != nil || n <= 0 {
		return 256
	}
	return n
}

// ExpirerInterval returns how often expired evidence is purged.
// Defaults to 1h if not set.
func ExpirerInterval() time.Duration {
	d, err := time.ParseDuration(os.Getenv("EXPIRER_INTERVAL"))
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

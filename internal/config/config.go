package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"task-manager/internal/logging"
)

type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	LogLevel string
	LogFile  string

	UIAddr      string
	APIBaseURL  string
	UIWorkers   int
	UIQueueSize int

	ClientTimeout      time.Duration
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

func New() Config {
	return Config{
		HTTPAddr:        ":3000",
		ShutdownTimeout: time.Second * 10,

		LogLevel: "info",

		UIAddr:      ":8080",
		APIBaseURL:  "http://localhost:3000",
		UIWorkers:   2,
		UIQueueSize: 64,

		ClientTimeout:      time.Second * 5,
		BreakerMaxFailures: 3,
		BreakerOpenTimeout: time.Second * 5,
	}
}

// Load returns the defaults overridden by the environment. Variables from
// the given .env files are applied first; a missing file is not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg := New()
	cfg.HTTPAddr = stringEnv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.ShutdownTimeout = durationEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.LogLevel = stringEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = stringEnv("LOG_FILE", cfg.LogFile)
	cfg.UIAddr = stringEnv("UI_ADDR", cfg.UIAddr)
	cfg.APIBaseURL = stringEnv("API_BASE_URL", cfg.APIBaseURL)
	cfg.UIWorkers = intEnv("UI_WORKERS", cfg.UIWorkers)
	cfg.UIQueueSize = intEnv("UI_QUEUE_SIZE", cfg.UIQueueSize)
	cfg.ClientTimeout = durationEnv("CLIENT_TIMEOUT", cfg.ClientTimeout)
	cfg.BreakerMaxFailures = uint32(intEnv("BREAKER_MAX_FAILURES", int(cfg.BreakerMaxFailures)))
	cfg.BreakerOpenTimeout = durationEnv("BREAKER_OPEN_TIMEOUT", cfg.BreakerOpenTimeout)

	return cfg, nil
}

func stringEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		logging.Logger.Warnf("Event ID: CONFIG_INVALID, Description: %s=%q is not a positive integer, using %d", key, v, def)
		return def
	}
	return n
}

func durationEnv(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		logging.Logger.Warnf("Event ID: CONFIG_INVALID, Description: %s=%q is not a positive duration, using %s", key, v, def)
		return def
	}
	return d
}

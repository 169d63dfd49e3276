package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server holds the HTTP server settings, read from the environment.
type Server struct {
	Port         string
	Env          string
	ConfigFile   string
	StoreURL     string
	StoreTimeout time.Duration
	CacheTTL     time.Duration
	CORSOrigins  []string
	LogLevel     string
	LogFormat    string
}

const (
	defaultPort         = "8080"
	defaultStoreTimeout = 10 * time.Second
	defaultCacheTTL     = 15 * time.Minute
)

// LoadServer reads settings from the environment after loading the first
// .env file found in the working directory or its parent. Variables that are
// already set win over .env values.
func LoadServer() *Server {
	for _, path := range envPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	return &Server{
		Port:         getEnvString("API_PORT", defaultPort),
		Env:          getEnvString("API_ENV", "development"),
		ConfigFile:   os.Getenv("CONFIG_FILE"),
		StoreURL:     strings.TrimRight(os.Getenv("STORE_URL"), "/"),
		StoreTimeout: getEnvDuration("STORE_TIMEOUT", defaultStoreTimeout),
		CacheTTL:     getEnvDuration("CACHE_TTL", defaultCacheTTL),
		CORSOrigins:  getEnvList("CORS_ORIGINS"),
		LogLevel:     getEnvString("LOG_LEVEL", "info"),
		LogFormat:    getEnvString("LOG_FORMAT", "text"),
	}
}

func (s *Server) Production() bool {
	return s.Env == "production"
}

func envPaths() []string {
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration accepts values like "30s" or "1m", or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

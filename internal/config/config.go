package config

import (
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Listener
	Host        string
	Port        int
	AutoConnect bool
	Env         string

	// Workspace
	WorkspaceRoot string

	// Redis (optional event bus)
	RedisURL string

	// Console front end
	Console bool
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		Host:          getEnvOrDefault("WS_HOST", "localhost"),
		Port:          getEnvAsIntOrDefault("WS_PORT", 8765),
		AutoConnect:   getEnvAsBoolOrDefault("AUTO_CONNECT", false),
		Env:           getEnvOrDefault("ENV", "development"),
		WorkspaceRoot: getEnvOrDefault("WORKSPACE_ROOT", "./workspace"),
		RedisURL:      getEnvOrDefault("REDIS_URL", ""),
		Console:       getEnvAsBoolOrDefault("CONSOLE", true),
	}
}

// Addr is the host:port the listener binds to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

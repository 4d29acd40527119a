package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Routing  RoutingConfig
	Places   PlacesConfig
	Filter   FilterConfig
	Proposer ProposerConfig
	Sentry   SentryConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	Environment  string
	ServiceName  string
	ReadTimeout  int
	WriteTimeout int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RoutingConfig holds the directions provider chain configuration.
// Providers lists backends in order of preference; the first one whose
// configuration is present wins and stays selected for the process lifetime.
type RoutingConfig struct {
	Providers         []string
	OSRMBaseURL       string
	ORSBaseURL        string
	ORSAPIKey         string
	LegTimeoutSeconds int
	MaxConcurrentLegs int
	CacheTTLSeconds   int
}

// PlacesConfig holds the Geoapify places search configuration
type PlacesConfig struct {
	BaseURL string
	APIKey  string
}

// FilterConfig holds candidate filter tuning
type FilterConfig struct {
	DefaultRadiusMeters float64
	CategoryFile        string
	MaxHistorical       int
	MaxFood             int
	MaxLodging          int
}

// ProposerConfig points at the trip composition endpoint
type ProposerConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// SentryConfig holds error tracking configuration
type SentryConfig struct {
	DSN         string
	Environment string
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ServiceName:  serviceName,
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 30),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Routing: RoutingConfig{
			Providers:         getEnvAsSlice("ROUTING_PROVIDERS", []string{"openrouteservice", "osrm"}),
			OSRMBaseURL:       getEnv("OSRM_BASE_URL", "https://router.project-osrm.org"),
			ORSBaseURL:        getEnv("ORS_BASE_URL", "https://api.openrouteservice.org"),
			ORSAPIKey:         getEnv("ORS_API_KEY", ""),
			LegTimeoutSeconds: getEnvAsInt("ROUTING_LEG_TIMEOUT_SECONDS", 5),
			MaxConcurrentLegs: getEnvAsInt("ROUTING_MAX_CONCURRENT_LEGS", 4),
			CacheTTLSeconds:   getEnvAsInt("ROUTING_CACHE_TTL_SECONDS", 300),
		},
		Places: PlacesConfig{
			BaseURL: getEnv("GEOAPIFY_BASE_URL", "https://api.geoapify.com"),
			APIKey:  getEnv("GEOAPIFY_API_KEY", ""),
		},
		Filter: FilterConfig{
			DefaultRadiusMeters: getEnvAsFloat("FILTER_DEFAULT_RADIUS_METERS", 2000),
			CategoryFile:        getEnv("FILTER_CATEGORY_FILE", ""),
			MaxHistorical:       getEnvAsInt("FILTER_MAX_HISTORICAL", 12),
			MaxFood:             getEnvAsInt("FILTER_MAX_FOOD", 6),
			MaxLodging:          getEnvAsInt("FILTER_MAX_LODGING", 4),
		},
		Proposer: ProposerConfig{
			BaseURL:        getEnv("PROPOSER_BASE_URL", ""),
			TimeoutSeconds: getEnvAsInt("PROPOSER_TIMEOUT_SECONDS", 30),
		},
		Sentry: SentryConfig{
			DSN:         getEnv("SENTRY_DSN", ""),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
	}

	if cfg.Routing.LegTimeoutSeconds <= 0 {
		cfg.Routing.LegTimeoutSeconds = 5
	}
	if cfg.Routing.MaxConcurrentLegs <= 0 {
		cfg.Routing.MaxConcurrentLegs = 4
	}
	if cfg.Filter.DefaultRadiusMeters <= 0 {
		return nil, fmt.Errorf("FILTER_DEFAULT_RADIUS_METERS must be positive")
	}

	return cfg, nil
}

// LegTimeout returns the per-leg routing call timeout
func (c RoutingConfig) LegTimeout() time.Duration {
	return time.Duration(c.LegTimeoutSeconds) * time.Second
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

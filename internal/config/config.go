package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                   string
	AppURL                 string
	FrontendURL            string
	CORSOrigins            []string
	SupabaseURL            string
	SupabaseAnonKey        string
	SupabaseServiceRoleKey string
	SupabaseJWTSecret      string
	MongoDBURI             string
	MongoDBPassword        string
	MongoDBDatabase        string
	Environment            string
	LogLevel               string
	DataBackend            string

	Payments  PaymentConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Geocoder  GeocoderConfig
	LLM       LLMConfig
	RabbitURL string
}

type PaymentConfig struct {
	Mode              string
	PaystackSecretKey string
	PaystackBaseURL   string
	DemoWebhookSecret string
	Currency          string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig drives the token bucket guarding the public chat routes.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

type GeocoderConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	CacheTTL  time.Duration
}

type LLMConfig struct {
	APIURL  string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                   getEnvWithDefault("PORT", "8080"),
		AppURL:                 strings.TrimRight(getEnvWithDefault("APP_URL", "http://localhost:8080"), "/"),
		FrontendURL:            strings.TrimRight(getEnvWithDefault("FRONTEND_URL", "http://localhost:3000"), "/"),
		SupabaseURL:            os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:        os.Getenv("SUPABASE_URL_ANON_KEY"),
		SupabaseServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseJWTSecret:      os.Getenv("SUPABASE_JWT_SECRET"),
		MongoDBURI:             os.Getenv("MONGODB_URI"),
		MongoDBPassword:        os.Getenv("MONGODB_PASSWORD"),
		MongoDBDatabase:        getEnvWithDefault("MONGODB_DATABASE", "carnival"),
		Environment:            getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:               os.Getenv("LOG_LEVEL"),
		RabbitURL:              os.Getenv("RABBITMQ_URL"),
		DataBackend:            strings.ToLower(getEnvWithDefault("DATA_BACKEND", "supabase")),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
		if cfg.IsProduction() {
			cfg.LogLevel = "info"
		}
	}
	cfg.CORSOrigins = splitList(getEnvWithDefault("CORS_ORIGINS", cfg.FrontendURL))

	cfg.Payments = PaymentConfig{
		Mode:              strings.ToLower(getEnvWithDefault("PAYMENT_MODE", "")),
		PaystackSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		PaystackBaseURL:   getEnvWithDefault("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		DemoWebhookSecret: getEnvWithDefault("DEMO_WEBHOOK_SECRET", "demo-webhook-secret"),
		Currency:          getEnvWithDefault("PAYMENT_CURRENCY", "NGN"),
	}
	if cfg.Payments.Mode == "" {
		if cfg.Payments.PaystackSecretKey != "" {
			cfg.Payments.Mode = "live"
		} else {
			cfg.Payments.Mode = "demo"
		}
	}

	cfg.Redis = RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvInt("REDIS_DB", 0),
	}
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		cfg.Redis.Addr = host + ":" + port
	}

	cfg.RateLimit = RateLimitConfig{
		Enabled:        getEnvBool("RATE_LIMIT_ENABLED", true),
		Capacity:       getEnvInt("RATE_LIMIT_CAPACITY", 20),
		RefillTokens:   getEnvInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: getEnvDuration("RATE_LIMIT_REFILL_INTERVAL", 3*time.Second),
		TTL:            getEnvDuration("RATE_LIMIT_TTL", 10*time.Minute),
		Prefix:         getEnvWithDefault("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.RateLimit.Capacity < 1 {
		cfg.RateLimit.Capacity = 1
	}
	if cfg.RateLimit.RefillTokens < 1 {
		cfg.RateLimit.RefillTokens = 1
	}
	if cfg.RateLimit.RefillInterval <= 0 {
		cfg.RateLimit.RefillInterval = time.Second
	}
	if minTTL := 5 * cfg.RateLimit.RefillInterval; cfg.RateLimit.TTL < minTTL {
		cfg.RateLimit.TTL = minTTL
	}

	cfg.Geocoder = GeocoderConfig{
		BaseURL:   strings.TrimRight(getEnvWithDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"), "/"),
		UserAgent: getEnvWithDefault("GEOCODER_USER_AGENT", "CarnivalXperience/1.0"),
		Timeout:   getEnvDuration("GEOCODER_TIMEOUT", 10*time.Second),
		CacheTTL:  getEnvDuration("GEOCODE_CACHE_TTL", 24*time.Hour),
	}

	cfg.LLM = LLMConfig{
		APIURL:  getEnvWithDefault("LLM_API_URL", "https://api.openai.com/v1/chat/completions"),
		APIKey:  os.Getenv("LLM_API_KEY"),
		Model:   getEnvWithDefault("LLM_MODEL", "gpt-4o-mini"),
		Timeout: getEnvDuration("LLM_TIMEOUT", 30*time.Second),
	}

	// Validate required fields
	switch cfg.DataBackend {
	case "supabase":
		if cfg.SupabaseURL == "" {
			return nil, fmt.Errorf("SUPABASE_URL is required")
		}
		if cfg.SupabaseAnonKey == "" {
			return nil, fmt.Errorf("SUPABASE_URL_ANON_KEY is required")
		}
	case "memory":
	default:
		return nil, fmt.Errorf("DATA_BACKEND must be supabase or memory, got %q", cfg.DataBackend)
	}
	if cfg.Payments.Mode != "live" && cfg.Payments.Mode != "demo" {
		return nil, fmt.Errorf("PAYMENT_MODE must be live or demo, got %q", cfg.Payments.Mode)
	}
	if cfg.Payments.Mode == "live" && cfg.Payments.PaystackSecretKey == "" {
		return nil, fmt.Errorf("PAYSTACK_SECRET_KEY is required when PAYMENT_MODE=live")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) InMemory() bool {
	return c.DataBackend == "memory"
}

func (c *Config) PaymentsLive() bool {
	return c.Payments.Mode == "live"
}

// SupabaseServerKey is the key used by the server-side client. The service role
// key bypasses row level security, so ownership is enforced in the services.
func (c *Config) SupabaseServerKey() string {
	if c.SupabaseServiceRoleKey != "" {
		return c.SupabaseServiceRoleKey
	}
	return c.SupabaseAnonKey
}

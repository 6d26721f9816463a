package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPAddress   string
	GRPCAddress   string
	HTTPSCertFile string
	HTTPSKeyFile  string

	StoreDriver   string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	JWTSecret      string
	Issuer         string
	Audience       string
	AccessTokenTTL time.Duration
	PasswordPepper string

	CheckSubject    bool
	SubjectCacheTTL time.Duration

	AllowedOrigins   []string
	AllowCredentials bool
	RateLimitRPS     int
	RateLimitBurst   int

	ShutdownTimeout time.Duration
}

// Load reads config.json from the working directory (optional) and the environment.
// Environment variables win over the file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "debug")
	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("GRPC_ADDRESS", ":9090")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("MONGO_DATABASE", "finance")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("TOKEN_TTL", "8760h")
	v.SetDefault("AUTH_CHECK_SUBJECT", true)
	v.SetDefault("SUBJECT_CACHE_TTL", "5m")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("ALLOW_CREDENTIALS", false)
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("SHUTDOWN_TIMEOUT", "5s")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		AppEnv:           v.GetString("APP_ENV"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		HTTPAddress:      v.GetString("HTTP_ADDRESS"),
		GRPCAddress:      v.GetString("GRPC_ADDRESS"),
		HTTPSCertFile:    v.GetString("HTTPS_CERT_FILE"),
		HTTPSKeyFile:     v.GetString("HTTPS_KEY_FILE"),
		StoreDriver:      strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		MongoURI:         v.GetString("MONGO_URI"),
		MongoDatabase:    v.GetString("MONGO_DATABASE"),
		RedisAddress:     v.GetString("REDIS_ADDRESS"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		Issuer:           v.GetString("JWT_ISSUER"),
		Audience:         v.GetString("JWT_AUDIENCE"),
		AccessTokenTTL:   v.GetDuration("TOKEN_TTL"),
		PasswordPepper:   v.GetString("PASSWORD_PEPPER"),
		CheckSubject:     v.GetBool("AUTH_CHECK_SUBJECT"),
		SubjectCacheTTL:  v.GetDuration("SUBJECT_CACHE_TTL"),
		AllowedOrigins:   splitList(v.GetString("ALLOWED_ORIGINS")),
		AllowCredentials: v.GetBool("ALLOW_CREDENTIALS"),
		RateLimitRPS:     v.GetInt("RATE_LIMIT_RPS"),
		RateLimitBurst:   v.GetInt("RATE_LIMIT_BURST"),
		ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.AccessTokenTTL)
	}
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}
	case StoreDriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is not set")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if (c.HTTPSCertFile == "") != (c.HTTPSKeyFile == "") {
		return fmt.Errorf("HTTPS_CERT_FILE and HTTPS_KEY_FILE must be set together")
	}
	return nil
}

// TLSEnabled reports whether both servers should serve TLS.
func (c *Config) TLSEnabled() bool {
	return c.HTTPSCertFile != "" && c.HTTPSKeyFile != ""
}

func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// splitList accepts "a,b" as well as the JSON-ish `["a","b"]` form.
func splitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"`)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Env       string          `mapstructure:"env"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Supabase  SupabaseConfig  `mapstructure:"supabase"`
	Content   ContentConfig   `mapstructure:"content"`
	Upload    UploadConfig    `mapstructure:"upload"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Notify    NotifyConfig    `mapstructure:"notify"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// WriteDeadline bounds store calls made by admin writes.
	WriteDeadline   time.Duration `mapstructure:"write_deadline"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the connection string, or "" when the database is not configured.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	if c.Host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type SupabaseConfig struct {
	URL        string `mapstructure:"url"`
	AnonKey    string `mapstructure:"anon_key"`
	ServiceKey string `mapstructure:"service_key"`
	Bucket     string `mapstructure:"bucket"`
}

// Configured reports whether the hosted project credentials are present.
func (c SupabaseConfig) Configured() bool {
	return c.URL != "" && c.AnonKey != ""
}

type ContentConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	TableTimeout    time.Duration `mapstructure:"table_timeout"`
	AppointmentsCap int           `mapstructure:"appointments_cap"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
}

type UploadConfig struct {
	MaxBytes     int64  `mapstructure:"max_bytes"`
	CacheControl string `mapstructure:"cache_control"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	Channel      string        `mapstructure:"channel"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type NotifyConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	From         string `mapstructure:"from"`
	To           string `mapstructure:"to"`
}

// secrets are the hosted-service credentials, read under their conventional names.
type secrets struct {
	SupabaseURL         string `envconfig:"SUPABASE_URL"`
	ViteSupabaseURL     string `envconfig:"VITE_SUPABASE_URL"`
	SupabaseAnonKey     string `envconfig:"SUPABASE_ANON_KEY"`
	ViteSupabaseAnonKey string `envconfig:"VITE_SUPABASE_ANON_KEY"`
	SupabaseServiceKey  string `envconfig:"SUPABASE_SERVICE_ROLE_KEY"`
	DatabaseURL         string `envconfig:"DATABASE_URL"`
	RedisURL            string `envconfig:"REDIS_URL"`
	GeminiAPIKey        string `envconfig:"GEMINI_API_KEY"`
	AppEnv              string `envconfig:"APP_ENV"`
	Port                int    `envconfig:"PORT"`
}

var defaultPaths = []string{".", "./config", "/app", "/app/config"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "10m")
	v.SetDefault("server.write_timeout", "10m")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.write_deadline", "30s")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "require")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("supabase.bucket", "barber-assets")

	v.SetDefault("content.timeout", "5s")
	v.SetDefault("content.table_timeout", "3s")
	v.SetDefault("content.appointments_cap", 20)
	v.SetDefault("content.cache_ttl", "10s")

	v.SetDefault("upload.max_bytes", int64(500<<20))
	v.SetDefault("upload.cache_control", "3600")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 5.0)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("redis.channel", "barbershop.events")
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.retry_backoff", "100ms")
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.timeout", "20s")

	v.SetDefault("notify.smtp_port", 587)
}

// LoadConfig reads config.yaml from the given directories (or the default search path),
// applies BARBER_* overrides and then the hosted-service credentials.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = defaultPaths
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("BARBER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var s secrets
	if err := envconfig.Process("", &s); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.applySecrets(s)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applySecrets(s secrets) {
	c.Supabase.URL = firstNonEmpty(s.SupabaseURL, s.ViteSupabaseURL, c.Supabase.URL)
	c.Supabase.AnonKey = firstNonEmpty(s.SupabaseAnonKey, s.ViteSupabaseAnonKey, c.Supabase.AnonKey)
	c.Supabase.ServiceKey = firstNonEmpty(s.SupabaseServiceKey, c.Supabase.ServiceKey)
	c.Database.URL = firstNonEmpty(s.DatabaseURL, c.Database.URL)
	c.Redis.URL = firstNonEmpty(s.RedisURL, c.Redis.URL)
	c.Gemini.APIKey = firstNonEmpty(s.GeminiAPIKey, c.Gemini.APIKey)
	c.Env = firstNonEmpty(s.AppEnv, c.Env)
	if s.Port > 0 {
		c.Server.Port = s.Port
	}
}

// Validate rejects settings that would break the read-path deadlines.
func (c *Config) Validate() error {
	if c.Content.Timeout <= 0 {
		return fmt.Errorf("content.timeout must be positive")
	}
	if c.Content.TableTimeout <= 0 || c.Content.TableTimeout > c.Content.Timeout {
		return fmt.Errorf("content.table_timeout must be positive and not exceed content.timeout")
	}
	if c.Content.AppointmentsCap <= 0 {
		return fmt.Errorf("content.appointments_cap must be positive")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive")
	}
	return nil
}

// Production reports whether the service runs with production settings.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "SHOPDESK"

type Config struct {
	Env          string            `mapstructure:"env"`
	LogLevel     string            `mapstructure:"log_level"`
	TimezoneName string            `mapstructure:"timezone"`
	Backend      BackendConfig     `mapstructure:"backend"`
	Server       ServerConfig      `mapstructure:"server"`
	RateLimit    RateLimitConfig   `mapstructure:"ratelimit"`
	Redis        RedisConfig       `mapstructure:"redis"`
	Console      ConsoleConfig     `mapstructure:"console"`
	CookieSecure bool              `mapstructure:"cookie_secure"`
	OTel         OTelConfig        `mapstructure:"otel"`
	Credentials  CredentialsConfig `mapstructure:"credentials"`

	Timezone *time.Location `mapstructure:"-"`
}

type BackendConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout of zero leaves outbound calls bounded only by the caller's context.
	Timeout time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Addr           string `mapstructure:"addr"`
	FrontendOrigin string `mapstructure:"frontend_origin"`
}

type RateLimitConfig struct {
	Login    int           `mapstructure:"login"`
	Recovery int           `mapstructure:"recovery"`
	Window   time.Duration `mapstructure:"window"`
}

type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ConsoleConfig struct {
	TokenSecret string        `mapstructure:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
}

type OTelConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// CredentialsConfig lets the CLI sign in without prompting.
type CredentialsConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("timezone", "Asia/Manila")
	v.SetDefault("backend.base_url", "https://a-cn-p-backend.vercel.app/")
	v.SetDefault("backend.timeout", time.Duration(0))
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.frontend_origin", "http://localhost:8081")
	v.SetDefault("ratelimit.login", 10)
	v.SetDefault("ratelimit.recovery", 5)
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("console.token_secret", "")
	v.SetDefault("console.token_ttl", 12*time.Hour)
	v.SetDefault("cookie_secure", false)
	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.endpoint", "localhost:4317")
	v.SetDefault("otel.sample_ratio", 1.0)
	v.SetDefault("credentials.email", "")
	v.SetDefault("credentials.password", "")
}

// Load reads configuration from defaults, an optional shopdesk.yaml (or the
// file at path), a local .env file and SHOPDESK_* environment variables, in
// increasing order of precedence.
func Load(path string) (*Config, error) {
	loadDotEnv(".env")

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("shopdesk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.shopdesk/")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.TimezoneName)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.TimezoneName, err)
	}
	cfg.Timezone = loc

	if cfg.RateLimit.Window <= 0 {
		cfg.RateLimit.Window = time.Minute
	}
	if cfg.Console.TokenTTL <= 0 {
		cfg.Console.TokenTTL = 12 * time.Hour
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// SlogLevel maps log_level to a slog level. Unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func loadDotEnv(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		val = strings.Trim(strings.TrimSpace(val), `"'`)
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		_ = os.Setenv(key, val)
	}
}

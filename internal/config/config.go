package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Redis     RedisConfig
	Log       LogConfig
	Reporting ReportingConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	AllowOrigin []string
}

// Addr is the listen address for gin.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver string // postgres or sqlite
	DSN    string
}

type AuthConfig struct {
	AdminUser         string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration
}

// RedisConfig is optional; an empty URL keeps revoked tokens in memory.
type RedisConfig struct {
	URL string
}

type LogConfig struct {
	Level  string
	Format string // text or json
}

type ReportingConfig struct {
	ExpiringWindowDays int
}

const envPrefix = "RESELLER"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.alloworigin", []string{"http://localhost:3000"})
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("auth.adminuser", "admin")
	v.SetDefault("auth.adminpasswordhash", "")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttl", 30*24*time.Hour)
	v.SetDefault("redis.url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("reporting.expiringwindowdays", 30)
}

// NewConfig reads .env, an optional config.toml and RESELLER_* environment
// variables, in increasing order of precedence.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		log.Info("no config file found, using defaults and environment")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Info("config parsed")
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database driver must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is empty, set RESELLER_DATABASE_DSN")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("jwt secret is empty, set RESELLER_AUTH_JWTSECRET")
	}
	if c.Auth.AdminPasswordHash == "" {
		return errors.New("admin password hash is empty, set RESELLER_AUTH_ADMINPASSWORDHASH")
	}
	if c.Reporting.ExpiringWindowDays <= 0 {
		return fmt.Errorf("reporting window must be positive, got %d", c.Reporting.ExpiringWindowDays)
	}
	return nil
}

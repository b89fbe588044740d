package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aria-creative/vitrine/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// Config is the full runtime configuration, resolved from (in order of
// precedence) flags bound by the CLI, VITRINE_* environment variables, an
// optional vitrine.yaml, and a local .env file.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Admin    AdminConfig    `mapstructure:"admin" yaml:"admin"`
	Auth     AuthConfig     `mapstructure:"auth" yaml:"auth"`
	SMTP     SMTPConfig     `mapstructure:"smtp" yaml:"smtp"`
}

type ServerConfig struct {
	Host       string `mapstructure:"host" yaml:"host"`
	Port       int    `mapstructure:"port" yaml:"port"`
	CORSOrigin string `mapstructure:"cors_origin" yaml:"cors_origin"`
	Dev        bool   `mapstructure:"dev" yaml:"dev"`
}

type DatabaseConfig struct {
	Driver  string `mapstructure:"driver" yaml:"driver"`     // "sqlite" or "postgres"
	DSN     string `mapstructure:"dsn" yaml:"dsn"`           // postgres only
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"` // sqlite only
}

type AdminConfig struct {
	Email        string `mapstructure:"email" yaml:"email"`
	Password     string `mapstructure:"password" yaml:"-"`
	PasswordHash string `mapstructure:"password_hash" yaml:"-"`
	Name         string `mapstructure:"name" yaml:"name"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret" yaml:"-"`
	TokenTTL  time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"-"`
	From     string `mapstructure:"from" yaml:"from"`
	// NotifyTo receives the admin alert for each contact submission.
	NotifyTo string `mapstructure:"notify_to" yaml:"notify_to"`
}

// Enabled reports whether enough SMTP settings are present to send mail.
// Notification delivery is best-effort; an unconfigured mailer only logs.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

// Init wires viper defaults, the VITRINE_ env prefix, and an optional .env
// file. Called once from the CLI before any command runs.
func Init(cfgFile string) {
	// .env first so viper's AutomaticEnv can see its values.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("vitrine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.vitrine")
	}

	viper.SetEnvPrefix("VITRINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3001)
	viper.SetDefault("server.cors_origin", "http://localhost:8081")
	viper.SetDefault("server.dev", false)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.data_dir", "")
	viper.SetDefault("admin.email", "admin@aria-creative.com")
	viper.SetDefault("admin.name", "Administrateur")
	viper.SetDefault("auth.token_ttl", 24*time.Hour)
	viper.SetDefault("smtp.port", 587)

	viper.ReadInConfig() // config file is optional
}

// Load unmarshals the resolved configuration into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 24 * time.Hour
	}
	return &cfg, nil
}

// AdminIdentity builds the singleton admin identity from configuration.
// A pre-computed bcrypt hash takes precedence; otherwise a plaintext
// admin password is hashed at startup.
func (c *Config) AdminIdentity() (*model.AdminIdentity, error) {
	if c.Admin.Email == "" {
		return nil, fmt.Errorf("admin email is not configured")
	}

	hash := c.Admin.PasswordHash
	if hash == "" {
		if c.Admin.Password == "" {
			return nil, fmt.Errorf("neither admin.password_hash nor admin.password is configured")
		}
		h, err := bcrypt.GenerateFromPassword([]byte(c.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		hash = string(h)
	}

	return &model.AdminIdentity{
		Email:        c.Admin.Email,
		PasswordHash: hash,
		Name:         c.Admin.Name,
		Role:         model.RoleAdmin,
	}, nil
}

// JWTSecret returns the signing secret, falling back to a fixed development
// secret when dev mode is on. Production refuses to start without one.
func (c *Config) JWTSecret() (string, error) {
	if c.Auth.JWTSecret != "" {
		return c.Auth.JWTSecret, nil
	}
	if c.Server.Dev {
		return "vitrine-dev-secret-change-me", nil
	}
	return "", fmt.Errorf("auth.jwt_secret is required outside dev mode")
}

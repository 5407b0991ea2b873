// Package config loads the TOML configuration and overlays the
// secrets that come from the environment (.env in development).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the root of config.toml.
type Config struct {
	Server    Server    `toml:"server"`
	Database  Database  `toml:"database"`
	Redis     Redis     `toml:"redis"`
	Logs      Logs      `toml:"logs"`
	Metrics   Metrics   `toml:"metrics"`
	Directory Directory `toml:"directory"`
	Mailer    Mailer    `toml:"mailer"`
	Digest    Digest    `toml:"digest"`
}

type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"-"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	Migrations      string `toml:"migrations"`
}

// DSN builds the lib/pq connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type Redis struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // segundos
	Password string `toml:"-"`
}

type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type Directory struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type Mailer struct {
	Enabled   bool   `toml:"enabled"`
	APIKey    string `toml:"-"`
	FromName  string `toml:"from_name"`
	FromEmail string `toml:"from_email"`
	// Caixa do síndico que recebe o resumo de pendências
	ManagerEmail string `toml:"manager_email"`
}

type Digest struct {
	Enabled bool   `toml:"enabled"`
	Spec    string `toml:"spec"`      // expressão cron
	MaxAge  int    `toml:"max_age_h"` // idade mínima da pendência, em horas
}

// Load reads path and applies environment overrides. A .env file next
// to the binary is honored when present.
func Load(path string) (*Config, error) {
	// .env é opcional: em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Mailer.APIKey = os.Getenv("SENDGRID_API_KEY")

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if port := os.Getenv("HTTP_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("config: invalid HTTP_PORT %q: %w", port, err)
		}
		cfg.Server.HTTPPort = p
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Directory.URL == "" {
		return fmt.Errorf("config: directory.url is required")
	}
	if c.Mailer.Enabled && c.Mailer.FromEmail == "" {
		return fmt.Errorf("config: mailer.from_email is required when mailer is enabled")
	}
	if c.Digest.Enabled && c.Digest.Spec == "" {
		return fmt.Errorf("config: digest.spec is required when digest is enabled")
	}
	return nil
}

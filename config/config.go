package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

type Configs struct {
	Env string `toml:"env" env:"ENV"`

	Database  DatabaseConfigs `toml:"database" envPrefix:"DB_"`
	ApiServer ServerConfigs   `toml:"api_server" envPrefix:"API_"`
	Auth      AuthConfigs     `toml:"auth" envPrefix:"AUTH_"`
	Log       LogConfigs      `toml:"log" envPrefix:"LOG_"`
}

type DatabaseConfigs struct {
	// Driver is one of "mysql", "postgres" or "sqlite".
	Driver   string `toml:"driver" env:"DRIVER"`
	Host     string `toml:"host" env:"HOST"`
	Port     string `toml:"port" env:"PORT"`
	Database string `toml:"database" env:"DATABASE"`
	User     string `toml:"user" env:"USER"`
	Password string `toml:"password" env:"PASSWORD"`
	SSLMode  string `toml:"sslmode" env:"SSLMODE"`

	// Path is only used by the sqlite driver.
	Path string `toml:"path" env:"PATH"`

	MaxOpenConns int `toml:"max_open_conns" env:"MAX_OPEN_CONNS"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
			d.Host,
			d.Port,
			d.User,
			d.Database,
			d.Password,
			d.SSLMode,
		)
	case "sqlite":
		return d.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User,
			d.Password,
			d.Host,
			d.Port,
			d.Database,
		)
	}
}

type ServerConfigs struct {
	Host string `toml:"host" env:"HOST"`
	Port string `toml:"port" env:"PORT"`
	Cert string `toml:"cert" env:"CERT"`
	Key  string `toml:"key" env:"KEY"`

	AllowedOrigins []string `toml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`

	// NodeID seeds the snowflake generator, it must differ between replicas.
	NodeID int64 `toml:"node_id" env:"NODE_ID"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret" env:"TOKEN_SECRET"`
	Issuer      string       `toml:"issuer" env:"ISSUER"`
	AccessToken TokenConfigs `toml:"access_token" envPrefix:"ACCESS_TOKEN_"`
}

type TokenConfigs struct {
	Name       string        `toml:"name" env:"NAME"`
	Expiration time.Duration `toml:"expiration" env:"EXPIRATION"`
}

type LogConfigs struct {
	Level string `toml:"level" env:"LEVEL"`
}

func defaultConfigs() Configs {
	return Configs{
		Env: "local",
		Database: DatabaseConfigs{
			Driver:       "mysql",
			Host:         "localhost",
			Port:         "3306",
			Database:     "lorekeeper",
			SSLMode:      "disable",
			Path:         "lorekeeper.db",
			MaxOpenConns: 20,
		},
		ApiServer: ServerConfigs{
			Port:   "8080",
			NodeID: 1,
		},
		Auth: AuthConfigs{
			Issuer: "lorekeeper",
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 24 * time.Hour,
			},
		},
		Log: LogConfigs{
			Level: "info",
		},
	}
}

// Load starts from the defaults, applies the optional TOML file at path, then the environment
// variables. A missing file is not an error.
func Load(path string) (Configs, error) {
	cfg := defaultConfigs()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}

	if cfg.Auth.TokenSecret == "" {
		return cfg, errors.New("auth token secret is required")
	}

	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	SessionStoreCookie = "cookie"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Env     string `env:"APP_ENV" env-default:"local"`
	HTTP    HTTPConfig
	TaskAPI TaskAPIConfig
	Session SessionConfig
	Redis   RedisConfig
	// TimeZone decides what "today" means for due dates and how zone-less
	// timestamps from the task API are read.
	TimeZone string `env:"TZ_NAME" env-default:"Local"`
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:""`
	Port            string        `env:"HTTP_PORT" env-default:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type TaskAPIConfig struct {
	BaseURL string `env:"TASK_API_URL" env-default:"http://localhost:8080/api"`
	// Zero keeps the http.Client default (no timeout).
	Timeout time.Duration `env:"TASK_API_TIMEOUT" env-default:"0s"`
}

type SessionConfig struct {
	Secret string `env:"SESSION_SECRET" env-default:"default-secret-key-change-me"`
	Store  string `env:"SESSION_STORE" env-default:"cookie"`
	Name   string `env:"SESSION_NAME" env-default:"task_web_session"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" env-default:"localhost"`
	Port     string `env:"REDIS_PORT" env-default:"6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"10"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. A missing file is not an
// error; variables already set in the environment win over the file.
func LoadFrom(dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown APP_ENV %q", c.Env)
	}
	switch c.Session.Store {
	case SessionStoreCookie, SessionStoreRedis:
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store)
	}
	if c.TaskAPI.BaseURL == "" {
		return errors.New("TASK_API_URL must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.HTTP.Host, c.HTTP.Port)
}

// RedisAddr is host:port of the redis session store.
func (c *Config) RedisAddr() string {
	return net.JoinHostPort(c.Redis.Host, c.Redis.Port)
}

// IsProduction reports whether cookies must be Secure and gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProd
}

// GinMode maps the environment onto a gin mode.
func (c *Config) GinMode() string {
	if c.Env == EnvLocal {
		return "debug"
	}
	return "release"
}

// Location resolves TimeZone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ_NAME %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

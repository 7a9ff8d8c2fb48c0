package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

var (
	ErrMissingJwtSecret = errors.New("JWT_SECRET must be set")
	ErrInvalidPoolSize  = errors.New("DB_POOL_SIZE must be positive")
	ErrInvalidPort      = errors.New("port must be in range [1, 65535]")
)

type Config struct {
	DB       *DBconfig
	RabbitMq *RabbitMqconfig
	Srv      *Serviceconfig
	App      *Appconfig
	Log      *Loggerconfig

	// Defaulted lists the environment keys that were missing and fell back
	// to their defaults. The logger is not up yet when the config is read,
	// so the caller reports them.
	Defaulted []string
}

type DBconfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	PoolSize int    `yaml:"pool_size"`
}

type RabbitMqconfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	VHost    string `yaml:"vhost"`
}

type Serviceconfig struct {
	AuthServicePort string `yaml:"auth_service"`
}

type Appconfig struct {
	PublicJwtSecret string `yaml:"jwt_secret"`
}

type Loggerconfig struct {
	Level string `yaml:"level"`
}

func New() (*Config, error) {
	var defaulted []string

	getEnv := func(key, def string) string {
		val := os.Getenv(key)
		if val == "" {
			defaulted = append(defaulted, key)
			return def
		}
		return val
	}

	getEnvInt := func(key string, def int) (int, error) {
		valStr := os.Getenv(key)
		if valStr == "" {
			defaulted = append(defaulted, key)
			return def, nil
		}
		val, err := strconv.Atoi(valStr)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return val, nil
	}

	getEnvBool := func(key string, def bool) (bool, error) {
		valStr := os.Getenv(key)
		if valStr == "" {
			defaulted = append(defaulted, key)
			return def, nil
		}
		val, err := strconv.ParseBool(valStr)
		if err != nil {
			return false, fmt.Errorf("%s: %w", key, err)
		}
		return val, nil
	}

	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	poolSize, err := getEnvInt("DB_POOL_SIZE", 10)
	if err != nil {
		return nil, err
	}
	mqEnabled, err := getEnvBool("RABBITMQ_ENABLED", false)
	if err != nil {
		return nil, err
	}
	mqPort, err := getEnvInt("RABBITMQ_PORT", 5672)
	if err != nil {
		return nil, err
	}

	cnf := &Config{
		DB: &DBconfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "driver_auth"),
			Password: getEnv("DB_PASSWORD", "driver_auth"),
			Database: getEnv("DB_NAME", "driver_auth"),
			PoolSize: poolSize,
		},
		RabbitMq: &RabbitMqconfig{
			Enabled:  mqEnabled,
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     mqPort,
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			VHost:    os.Getenv("RABBITMQ_VHOST"),
		},
		Srv: &Serviceconfig{
			AuthServicePort: getEnv("AUTH_SERVICE_PORT", "3000"),
		},
		App: &Appconfig{
			// no default: an unset secret is a startup error
			PublicJwtSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
		},
		Log: &Loggerconfig{
			Level: strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
		},
		Defaulted: defaulted,
	}

	if err := cnf.Validate(); err != nil {
		return nil, err
	}
	return cnf, nil
}

// Validate rejects configurations the service must not start with.
func (c *Config) Validate() error {
	if c.App == nil || c.App.PublicJwtSecret == "" {
		return ErrMissingJwtSecret
	}
	if c.DB.PoolSize <= 0 {
		return ErrInvalidPoolSize
	}
	if err := validatePort(c.DB.Port); err != nil {
		return fmt.Errorf("DB_PORT: %w", err)
	}
	port, err := strconv.Atoi(c.Srv.AuthServicePort)
	if err != nil {
		return fmt.Errorf("AUTH_SERVICE_PORT: %w", err)
	}
	if err := validatePort(port); err != nil {
		return fmt.Errorf("AUTH_SERVICE_PORT: %w", err)
	}
	if c.RabbitMq.Enabled {
		if err := validatePort(c.RabbitMq.Port); err != nil {
			return fmt.Errorf("RABBITMQ_PORT: %w", err)
		}
	}
	return nil
}

// ConnString builds the postgres URL consumed by pgxpool.
func (c *DBconfig) ConnString() string {
	q := url.Values{}
	q.Set("sslmode", "disable")
	q.Set("pool_max_conns", strconv.Itoa(c.PoolSize))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// URL builds the amqp dial URL. An empty vhost leaves the path off so the
// broker default "/" applies.
func (c *RabbitMqconfig) URL() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
	}
	if c.VHost != "" {
		u.Path = "/" + c.VHost
		u.RawPath = "/" + url.PathEscape(c.VHost)
	}
	return u.String()
}

// OverridePort replaces the HTTP listen port, e.g. from a command line flag,
// and re-validates the config.
func (c *Config) OverridePort(port string) error {
	c.Srv.AuthServicePort = port
	kept := c.Defaulted[:0]
	for _, key := range c.Defaulted {
		if key != "AUTH_SERVICE_PORT" {
			kept = append(kept, key)
		}
	}
	c.Defaulted = kept
	return c.Validate()
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return ErrInvalidPort
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers de document store soportados.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
)

// Config es la configuración completa del facade.
type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http" yaml:"http"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Retry     RetryConfig     `mapstructure:"retry" yaml:"retry"`
	Aggregate AggregateConfig `mapstructure:"aggregate" yaml:"aggregate"`
	Services  ServicesConfig  `mapstructure:"services" yaml:"services"`
	Store     StoreConfig     `mapstructure:"store" yaml:"store"`
	Stub      StubConfig      `mapstructure:"stub" yaml:"stub"`
}

type HTTPConfig struct {
	Addr         string        `mapstructure:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	App    string `mapstructure:"app" yaml:"app"`
}

type RetryConfig struct {
	Attempts int `mapstructure:"attempts" yaml:"attempts"`
}

type AggregateConfig struct {
	// Máximo de agregaciones de Cat en paralelo dentro de un listado.
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// ServiceConfig describe una dependencia remota.
// BaseURL vacío => se usa el stub in-process (modo dev).
type ServiceConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string        `mapstructure:"api_key" yaml:"api_key"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

func (s ServiceConfig) Remote() bool {
	return strings.TrimSpace(s.BaseURL) != ""
}

type ServicesConfig struct {
	Auth    ServiceConfig `mapstructure:"auth" yaml:"auth"`
	Billing ServiceConfig `mapstructure:"billing" yaml:"billing"`
	Breeds  ServiceConfig `mapstructure:"breeds" yaml:"breeds"`
	Prices  ServiceConfig `mapstructure:"prices" yaml:"prices"`
}

type StoreConfig struct {
	Driver string      `mapstructure:"driver" yaml:"driver"`
	DSN    string      `mapstructure:"dsn" yaml:"dsn"`
	Redis  RedisConfig `mapstructure:"redis" yaml:"redis"`
}

// RedisConfig se usa cuando store.driver=redis.
type RedisConfig struct {
	URL          string        `mapstructure:"url" yaml:"url"`
	PoolSize     int           `mapstructure:"pool_size" yaml:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns" yaml:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
}

type StubConfig struct {
	// YAML con breeds/precios/ofertas/sesiones para los stubs.
	SeedFile string `mapstructure:"seed_file" yaml:"seed_file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.app", "cat-shelter")

	v.SetDefault("retry.attempts", 2)
	v.SetDefault("aggregate.concurrency", 8)

	for _, svc := range []string{"auth", "billing", "breeds", "prices"} {
		v.SetDefault("services."+svc+".base_url", "")
		v.SetDefault("services."+svc+".api_key", "")
		v.SetDefault("services."+svc+".timeout", 5*time.Second)
	}

	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.redis.url", "")
	v.SetDefault("store.redis.pool_size", 10)
	v.SetDefault("store.redis.min_idle_conns", 2)
	v.SetDefault("store.redis.dial_timeout", 3*time.Second)
	v.SetDefault("store.redis.read_timeout", 2*time.Second)
	v.SetDefault("store.redis.write_timeout", 2*time.Second)

	v.SetDefault("stub.seed_file", "")
}

// Load arma la config: defaults => archivo YAML opcional => env (SHELTER_*).
// Si path está vacío se usa SHELTER_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SHELTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv("SHELTER_CONFIG")
	}
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if strings.TrimSpace(c.Store.DSN) == "" {
			errs = append(errs, fmt.Errorf("store.dsn required for driver %q", c.Store.Driver))
		}
	case DriverRedis:
		if strings.TrimSpace(c.Store.Redis.URL) == "" {
			errs = append(errs, errors.New("store.redis.url required for driver \"redis\""))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store.driver %q", c.Store.Driver))
	}

	if c.Retry.Attempts < 1 {
		errs = append(errs, errors.New("retry.attempts must be >= 1"))
	}
	if c.Aggregate.Concurrency < 1 {
		errs = append(errs, errors.New("aggregate.concurrency must be >= 1"))
	}

	return errors.Join(errs...)
}

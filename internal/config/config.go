package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/fsdevblog/groph-blindbox/internal/guard"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	GuardLocal = "local"
	GuardRedis = "redis"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`

	Storage       string `env:"STORAGE"         envDefault:"postgres"`
	JWTUserSecret string `env:"JWT_USER_SECRET" envDefault:"secret-key"`
	LogLevel      string `env:"LOG_LEVEL"`

	Guard           string        `env:"GUARD"             envDefault:"local"`
	LockScope       guard.Scope   `env:"LOCK_SCOPE"        envDefault:"box"`
	LockWaitTimeout time.Duration `env:"LOCK_WAIT_TIMEOUT" envDefault:"5s"`
	LockLease       time.Duration `env:"LOCK_LEASE"        envDefault:"5s"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"       envDefault:"0"`

	AMQPURL         string `env:"AMQP_URL"`
	AMQPOrdersQueue string `env:"AMQP_ORDERS_QUEUE" envDefault:"blindbox.orders"`
	OutboxWorkers   uint   `env:"OUTBOX_WORKERS"    envDefault:"4"`
	OutboxBatch     uint   `env:"OUTBOX_BATCH"      envDefault:"100"`
}

// LoadConfig собирает конфиг из .env (если есть), переменных окружения и флагов. Переменные окружения
// приоритетнее флагов.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %s", err.Error())
	}
	return parse(os.Args[1:])
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func parse(args []string) (*Config, error) {
	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if flagsErr := loadFlags(&flagsConfig, args); flagsErr != nil {
		return nil, fmt.Errorf("parse flags: %s", flagsErr.Error())
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) validate() error {
	switch c.Storage {
	case StoragePostgres:
		if c.DatabaseDSN == "" {
			return errors.New("database DSN is not set")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}

	switch c.Guard {
	case GuardRedis:
		if c.RedisAddr == "" {
			return errors.New("redis address is not set")
		}
	case GuardLocal:
	default:
		return fmt.Errorf("unknown guard %q", c.Guard)
	}

	if _, err := guard.ParseScope(string(c.LockScope)); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if c.LockWaitTimeout < 0 || c.LockLease <= 0 {
		return errors.New("lock wait timeout must be >= 0 and lock lease > 0")
	}
	return nil
}

func loadFlags(flagConfig *Config, args []string) error {
	fs := flag.NewFlagSet("blindbox", flag.ContinueOnError)
	fs.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	fs.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	fs.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")

	return fs.Parse(args) //nolint:wrapcheck
}

// mergeConfig берет из флагов только адрес, DSN и директорию миграций, остальное задается окружением.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	conf := *envConfig
	conf.RunAddress = defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress)
	conf.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	conf.MigrationsDir = defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir)
	return &conf
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

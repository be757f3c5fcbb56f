package config

import (
	env_utils "extlog/internal/util/env"
	"extlog/internal/util/logger"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

const (
	StorageBackendMemory   = "memory"
	StorageBackendValkey   = "valkey"
	StorageBackendRedis    = "redis"
	StorageBackendPostgres = "postgres"
)

type EnvVariables struct {
	IsTesting       bool
	EnvMode         env_utils.EnvMode `env:"ENV_MODE"          env-default:"development"`
	BackendRootPath string            `env:"BACKEND_ROOT_PATH"`
	ServerPort      string            `env:"SERVER_PORT"       env-default:"4005"`
	// used to sign execution context tokens
	SecretKey string `env:"SECRET_KEY" env-default:"extlog-development-secret"`

	// log store
	StorageBackend string `env:"STORAGE_BACKEND" env-default:"memory"`
	LogsCapacity   int    `env:"LOGS_CAPACITY"   env-default:"1000"`
	DefaultOrigin  string `env:"DEFAULT_ORIGIN"  env-default:"background"`
	RelayRPS       int    `env:"RELAY_RPS"       env-default:"20"`
	// 0 keeps entries until capacity evicts them
	LogsMaxAgeDays int `env:"LOGS_MAX_AGE_DAYS" env-default:"0"`

	// postgres
	DatabaseDsn string `env:"DATABASE_DSN"`
	// valkey
	ValkeyHost     string `env:"VALKEY_HOST"`
	ValkeyPort     string `env:"VALKEY_PORT"     env-default:"6379"`
	ValkeyUsername string `env:"VALKEY_USERNAME"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"   env-default:"false"`
	// redis
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"       env-default:"0"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	// unlike a server deployment the store runs fine on defaults, so a missing
	// .env is not fatal
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			break
		}
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	if env.BackendRootPath == "" {
		env.BackendRootPath = backendRoot
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if !env.EnvMode.IsValid() {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	if env.LogsCapacity <= 0 {
		log.Error("LOGS_CAPACITY must be positive", "capacity", env.LogsCapacity)
		os.Exit(1)
	}

	if env.LogsMaxAgeDays < 0 {
		log.Error("LOGS_MAX_AGE_DAYS must not be negative", "days", env.LogsMaxAgeDays)
		os.Exit(1)
	}

	switch env.StorageBackend {
	case StorageBackendMemory:
	case StorageBackendValkey:
		if env.ValkeyHost == "" {
			log.Error("VALKEY_HOST is empty")
			os.Exit(1)
		}
	case StorageBackendRedis:
		if env.RedisAddr == "" {
			log.Error("REDIS_ADDR is empty")
			os.Exit(1)
		}
	case StorageBackendPostgres:
		if env.DatabaseDsn == "" {
			log.Error("DATABASE_DSN is empty")
			os.Exit(1)
		}
	default:
		log.Error("STORAGE_BACKEND is invalid", "backend", env.StorageBackend)
		os.Exit(1)
	}

	log.Info("Environment variables loaded successfully!", "storageBackend", env.StorageBackend)
}

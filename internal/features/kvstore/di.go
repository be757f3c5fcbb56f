package kvstore

import (
	"fmt"
	"sync"

	"extlog/internal/cache"
	"extlog/internal/config"
	"extlog/internal/storage"
	"extlog/internal/util/logger"

	redis "github.com/redis/go-redis/v9"
)

var (
	store     Store
	storeOnce sync.Once
)

// GetStore returns the backend selected by STORAGE_BACKEND, or nil when it
// could not be opened. Callers treat nil as storage unavailable.
func GetStore() Store {
	storeOnce.Do(func() {
		opened, err := OpenStore(config.GetEnv())
		if err != nil {
			logger.GetLogger().Error("storage backend unavailable", "error", err)
			return
		}

		store = opened
	})

	return store
}

// OpenStore builds the backend named by env.StorageBackend. On error the
// returned Store is nil.
func OpenStore(env config.EnvVariables) (Store, error) {
	switch env.StorageBackend {
	case config.StorageBackendValkey:
		client, err := cache.NewValkeyClient(env)
		if err != nil {
			return nil, err
		}
		return NewValkeyStore(client, DefaultKeyPrefix), nil
	case config.StorageBackendRedis:
		return NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     env.RedisAddr,
			Password: env.RedisPassword,
			DB:       env.RedisDB,
		}), DefaultKeyPrefix), nil
	case config.StorageBackendPostgres:
		db, err := storage.OpenDb(env.DatabaseDsn)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(db), nil
	case config.StorageBackendMemory, "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", env.StorageBackend)
	}
}

package database

import (
	"sync"

	"github.com/Antieqkers/antieq-wisma-bill/pkg/cache"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/config"
)

var (
	balanceCacheInstance *cache.BalanceCache
	balanceCacheOnce     sync.Once
)

// GetBalanceCache returns the singleton Redis balance cache.
func GetBalanceCache() *cache.BalanceCache {
	balanceCacheOnce.Do(func() {
		cfg := config.GetConfig()
		balanceCacheInstance = cache.NewBalanceCache(&cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	})
	return balanceCacheInstance
}

// CloseBalanceCache closes the Redis connection.
func CloseBalanceCache() error {
	if balanceCacheInstance != nil {
		return balanceCacheInstance.Close()
	}
	return nil
}

// Package cache holds the Redis-backed balance summary cache. It is a read
// path convenience only: payment submission always recomputes balances from
// the payment history.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// BalanceSummary is the cached per-tenant snapshot.
type BalanceSummary struct {
	TenantID        uint       `json:"tenant_id"`
	CurrentBalance  int64      `json:"current_balance"`
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
	NextDueDate     *time.Time `json:"next_due_date,omitempty"`
	CachedAt        int64      `json:"cached_at"`
}

// Config for the Redis connection.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// BalanceCache wraps the Redis client.
type BalanceCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewBalanceCache creates a cache instance.
func NewBalanceCache(config *Config) *BalanceCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "awbill:cache"
	}

	return &BalanceCache{
		client: client,
		prefix: prefix,
		ttl:    24 * time.Hour,
	}
}

func (c *BalanceCache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *BalanceCache) Ping() error {
	ctx := context.Background()
	return c.client.Ping(ctx).Err()
}

func (c *BalanceCache) key(tenantID uint) string {
	return fmt.Sprintf("%s:balance:%d", c.prefix, tenantID)
}

// SetBalance stores a tenant's balance summary.
func (c *BalanceCache) SetBalance(ctx context.Context, summary *BalanceSummary) error {
	summary.CachedAt = time.Now().Unix()
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(summary.TenantID), data, c.ttl).Err()
}

// GetBalance loads a tenant's cached summary. Returns (nil, nil) on a miss.
func (c *BalanceCache) GetBalance(ctx context.Context, tenantID uint) (*BalanceSummary, error) {
	data, err := c.client.Get(ctx, c.key(tenantID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var summary BalanceSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// InvalidateBalance drops a tenant's cached summary, e.g. after a payment.
func (c *BalanceCache) InvalidateBalance(ctx context.Context, tenantID uint) error {
	return c.client.Del(ctx, c.key(tenantID)).Err()
}

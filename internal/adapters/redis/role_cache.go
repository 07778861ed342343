// Package redis provides Redis-based adapters for the careers system.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/jobdeck/careers-api/internal/domain/auth"
)

const defaultRoleTTL = 5 * time.Minute

// RoleCache is a Redis-based cache for user role lookups. Role records
// change rarely; a short TTL bounds the staleness window after a role is
// granted or revoked.
type RoleCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRoleCache creates a new Redis-based role cache with the default TTL.
func NewRoleCache(client redis.UniversalClient) *RoleCache {
	return &RoleCache{
		client: client,
		prefix: "role:",
		ttl:    defaultRoleTTL,
	}
}

// NewRoleCacheWithTTL creates a Redis role cache with a custom TTL.
func NewRoleCacheWithTTL(client redis.UniversalClient, ttl time.Duration) *RoleCache {
	if ttl <= 0 {
		ttl = defaultRoleTTL
	}
	return &RoleCache{
		client: client,
		prefix: "role:",
		ttl:    ttl,
	}
}

// Get returns the cached role for a user. A miss is (RoleNone, false, nil).
func (c *RoleCache) Get(ctx context.Context, userID string) (domainauth.Role, bool, error) {
	if userID == "" {
		return domainauth.RoleNone, false, nil
	}

	data, err := c.client.Get(ctx, c.prefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.RoleNone, false, nil
		}
		return domainauth.RoleNone, false, fmt.Errorf("redis get: %w", err)
	}
	return domainauth.ParseRole(data), true, nil
}

// Set records a user's role. RoleNone is cached too, so repeated lookups
// for users without a role record don't hammer the database.
func (c *RoleCache) Set(ctx context.Context, userID string, role domainauth.Role) error {
	if userID == "" {
		return errors.New("user ID cannot be empty")
	}
	return c.client.Set(ctx, c.prefix+userID, string(role), c.ttl).Err()
}

// Invalidate drops the cached role for a user.
func (c *RoleCache) Invalidate(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return c.client.Del(ctx, c.prefix+userID).Err()
}

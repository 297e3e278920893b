package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/savelxev/biteplan-backend/internal/domain"
	"github.com/savelxev/biteplan-backend/internal/repository"
)

const targetsTTL = 24 * time.Hour

type targetsCache struct {
	client *redis.Client
}

func NewTargetsCache(client *redis.Client) repository.TargetsCache {
	return &targetsCache{client: client}
}

func targetsKey(userID string) string {
	return fmt.Sprintf("targets:%s", userID)
}

// Get returns (nil, nil) on a cache miss so callers can fall through to the
// profile store.
func (c *targetsCache) Get(ctx context.Context, userID string) (*domain.NutritionTargets, error) {
	data, err := c.client.Get(ctx, targetsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read targets cache: %w", err)
	}

	var targets domain.NutritionTargets
	if err := json.Unmarshal(data, &targets); err != nil {
		return nil, fmt.Errorf("corrupt targets cache entry: %w", err)
	}
	return &targets, nil
}

func (c *targetsCache) Set(ctx context.Context, userID string, targets domain.NutritionTargets) error {
	data, err := json.Marshal(targets)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, targetsKey(userID), data, targetsTTL).Err(); err != nil {
		return fmt.Errorf("failed to write targets cache: %w", err)
	}
	return nil
}

func (c *targetsCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, targetsKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate targets cache: %w", err)
	}
	return nil
}

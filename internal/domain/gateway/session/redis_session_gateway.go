package session

import (
	"context"
	"fmt"
	"time"

	"go-weather/internal/domain/model"
	"go-weather/pkg/redis"
)

const keyPrefix = "search-session::"

type redisSessionGateway struct {
	client        *redis.Client
	healthChecker *redis.HealthChecker
	ttl           time.Duration
}

// NewRedisSessionGateway keeps generations in Redis so every instance behind a load
// balancer sees the same latest search. Keys expire after ttl of inactivity.
func NewRedisSessionGateway(client *redis.Client, ttl time.Duration) SearchSessionGateway {
	return &redisSessionGateway{
		client:        client,
		healthChecker: redis.NewHealthChecker(client),
		ttl:           ttl,
	}
}

func (g *redisSessionGateway) Next(ctx context.Context, sessionID string) (int64, error) {
	generation, err := g.client.IncrWithExpire(ctx, keyPrefix+sessionID, g.ttl)
	if err != nil {
		return 0, fmt.Errorf("failed to start search generation for session %s: %w", sessionID, err)
	}
	return generation, nil
}

func (g *redisSessionGateway) Current(ctx context.Context, sessionID string) (int64, error) {
	generation, err := g.client.GetInt(ctx, keyPrefix+sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to read search generation for session %s: %w", sessionID, err)
	}
	return generation, nil
}

func (g *redisSessionGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	check := g.healthChecker.HealthCheck(ctx)

	details := check.Details
	details["store"] = "redis"

	status := model.StatusDown
	if check.Status == redis.StatusUp {
		status = model.StatusUp
	}
	return model.ComponentHealthStatus{Status: status, Details: details}
}

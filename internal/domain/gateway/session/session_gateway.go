package session

import (
	"context"

	"go-weather/internal/domain/model"
)

// SearchSessionGateway hands out search generations per session. A search keeps the
// generation returned by Next and is stale once Current moves past it.
type SearchSessionGateway interface {
	Next(ctx context.Context, sessionID string) (int64, error)
	Current(ctx context.Context, sessionID string) (int64, error)
	Health(ctx context.Context) model.ComponentHealthStatus
}

package dashboard

import (
	"context"
	"errors"

	"go-weather/internal/domain/entity"
)

// ErrSuperseded is returned when a newer search of the same session started
// before this one finished. Its result must not be shown.
var ErrSuperseded = errors.New("search superseded by a newer request")

type UseCase interface {
	Search(ctx context.Context, sessionID string, city string) (*entity.Dashboard, error)
	Candidates(city string) []string
}

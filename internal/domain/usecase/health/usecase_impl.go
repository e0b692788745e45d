package health

import (
	"context"

	"go-weather/internal/domain/gateway/queue"
	"go-weather/internal/domain/gateway/session"
	"go-weather/internal/domain/model"
)

type healthUseCase struct {
	sessionGateway session.SearchSessionGateway
	queueGateway   queue.HealthGateway
}

func NewHealthUseCase(sessionGateway session.SearchSessionGateway, queueGateway queue.HealthGateway) UseCase {
	return &healthUseCase{
		sessionGateway: sessionGateway,
		queueGateway:   queueGateway,
	}
}

// CheckHealth is DOWN when any component is DOWN. An UNKNOWN queue (no worker
// registered because the queue is disabled) does not degrade the service.
func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	sessionHealth := useCase.sessionGateway.Health(ctx)
	queueHealth := useCase.queueGateway.Health()

	overallStatus := model.StatusUp
	if sessionHealth.Status == model.StatusDown || queueHealth.Status == model.StatusDown {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status:  overallStatus,
		Session: sessionHealth,
		Queue:   queueHealth,
	}
}

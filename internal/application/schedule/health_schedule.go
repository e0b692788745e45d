package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"go-weather/internal/domain/model"
	"go-weather/internal/domain/usecase/health"
	"go-weather/pkg/log"
	"go-weather/pkg/msg"
)

const healthProbeTimeout = 10 * time.Second

// HealthScheduler probes the service health in the background so a failing
// dependency shows up in the logs before a client notices it
type HealthScheduler struct {
	cron    *cron.Cron
	useCase health.UseCase
}

func NewHealthScheduler(useCase health.UseCase) *HealthScheduler {
	return &HealthScheduler{cron: cron.New(), useCase: useCase}
}

// InitHealthScheduleTasks initializes the health probe
func (scheduler *HealthScheduler) InitHealthScheduleTasks(cronExpression string) error {
	if _, err := scheduler.cron.AddFunc(cronExpression, scheduler.ProbeHealth); err != nil {
		return fmt.Errorf("failed to schedule health probe: %w", err)
	}

	scheduler.cron.Start()
	return nil
}

func (scheduler *HealthScheduler) ProbeHealth() {
	ctx, cancel := context.WithTimeout(context.Background(), healthProbeTimeout)
	defer cancel()

	response := scheduler.useCase.CheckHealth(ctx)
	if response.Status == model.StatusDown {
		log.Warn(msg.GetMessage("health.cron.down", downComponents(response)),
			zap.Any("session", response.Session),
			zap.Any("queue", response.Queue))
		return
	}

	log.Debug("Health probe finished", zap.String("status", string(response.Status)))
}

// Stop gracefully stops the scheduler
func (scheduler *HealthScheduler) Stop() {
	ctx := scheduler.cron.Stop()
	<-ctx.Done()
}

func downComponents(response model.HealthResponse) string {
	var down []string
	if response.Session.Status == model.StatusDown {
		down = append(down, "session")
	}
	if response.Queue.Status == model.StatusDown {
		down = append(down, "queue")
	}
	return fmt.Sprint(down)
}

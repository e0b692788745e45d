package queue

import (
	"go-weather/internal/domain/model"
	"go-weather/pkg/sqs"
)

type HealthGateway interface {
	Health() model.ComponentHealthStatus
	RegisterWorker(name string, worker WorkerHealthChecker)
	UnregisterWorker(name string)
}

// WorkerHealthChecker is satisfied by *sqs.Worker
type WorkerHealthChecker interface {
	HealthCheck() sqs.WorkerHealth
}

package sqs

// HealthStatus represents the health status of a worker
type HealthStatus string

const (
	StatusUp   HealthStatus = "UP"
	StatusDown HealthStatus = "DOWN"
)

// WorkerHealth is the health report of a single worker
type WorkerHealth struct {
	Status  HealthStatus
	Details map[string]string
}

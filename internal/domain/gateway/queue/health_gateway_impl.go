package queue

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"go-weather/internal/domain/model"
	"go-weather/pkg/sqs"
)

// EventsHealthGateway reports the resolution events pipeline.
// An empty broker means the pipeline is disabled.
type EventsHealthGateway struct {
	broker  string
	workers map[string]WorkerHealthChecker
	mutex   sync.RWMutex
}

func NewEventsHealthGateway(broker string) *EventsHealthGateway {
	return &EventsHealthGateway{
		broker:  broker,
		workers: make(map[string]WorkerHealthChecker),
	}
}

func (gateway *EventsHealthGateway) RegisterWorker(name string, worker WorkerHealthChecker) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	gateway.workers[name] = worker
}

func (gateway *EventsHealthGateway) UnregisterWorker(name string) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	delete(gateway.workers, name)
}

func (gateway *EventsHealthGateway) Health() model.ComponentHealthStatus {
	gateway.mutex.RLock()
	defer gateway.mutex.RUnlock()

	if gateway.broker == "" {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": "Resolution events disabled"},
		}
	}

	details := map[string]string{"broker": gateway.broker}
	if len(gateway.workers) == 0 {
		// publish-only brokers have nothing to probe
		details["message"] = "No consumers registered"
		return model.ComponentHealthStatus{Status: model.StatusUnknown, Details: details}
	}

	overallStatus := model.StatusUp
	var down []string

	for name, worker := range gateway.workers {
		workerHealth := worker.HealthCheck()
		details[name+".status"] = string(workerHealth.Status)
		for key, value := range workerHealth.Details {
			details[name+"."+key] = value
		}

		if workerHealth.Status != sqs.StatusUp {
			overallStatus = model.StatusDown
			down = append(down, name)
		}
	}

	details["consumers"] = strconv.Itoa(len(gateway.workers))
	if len(down) > 0 {
		sort.Strings(down)
		details["consumers_down"] = strings.Join(down, ",")
	}

	return model.ComponentHealthStatus{
		Status:  overallStatus,
		Details: details,
	}
}

package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-weather/internal/domain/entity"
	"go-weather/internal/domain/gateway/api"
	"go-weather/internal/domain/gateway/queue"
	"go-weather/internal/domain/gateway/session"
	"go-weather/internal/domain/usecase/resolver"
	"go-weather/pkg/log"
	"go-weather/pkg/msg"
)

// CityResolver is satisfied by *resolver.Resolver
type CityResolver interface {
	Resolve(ctx context.Context, rawInput string) (entity.WeatherPayload, error)
}

const defaultPublishTimeout = 3 * time.Second

type Config struct {
	ForecastDays int
	// EventsQueue is the resolution events queue. Empty disables publishing.
	EventsQueue string
	// PublishTimeout bounds each event send. Zero means defaultPublishTimeout.
	PublishTimeout time.Duration
}

type dashboardUseCase struct {
	resolver       CityResolver
	weatherGateway api.WeatherGateway
	sessions       session.SearchSessionGateway
	queueSender    queue.Sender
	config         Config
	now            func() time.Time
}

// NewDashboardUseCase wires the search flow. sessions and queueSender may be nil,
// in which case searches are not guarded against newer ones and no events are sent.
func NewDashboardUseCase(cityResolver CityResolver, weatherGateway api.WeatherGateway, sessions session.SearchSessionGateway, queueSender queue.Sender, config Config) UseCase {
	return &dashboardUseCase{
		resolver:       cityResolver,
		weatherGateway: weatherGateway,
		sessions:       sessions,
		queueSender:    queueSender,
		config:         config,
		now:            time.Now,
	}
}

func (uc *dashboardUseCase) Candidates(city string) []string {
	return resolver.Candidates(city)
}

// Search resolves the city, then enriches it with forecast and air quality.
// With a session id, the result is dropped with ErrSuperseded once a newer search
// of the same session has started.
func (uc *dashboardUseCase) Search(ctx context.Context, sessionID string, city string) (*entity.Dashboard, error) {
	generation, guarded := uc.startGeneration(ctx, sessionID)

	payload, err := uc.resolver.Resolve(ctx, city)
	if err != nil {
		uc.publishFailure(ctx, sessionID, city, err)
		return nil, err
	}

	if guarded && uc.isSuperseded(ctx, sessionID, generation) {
		uc.publishSuperseded(ctx, sessionID, payload)
		return nil, ErrSuperseded
	}

	forecast, airQuality := uc.enrichInParallel(ctx, payload)

	if guarded && uc.isSuperseded(ctx, sessionID, generation) {
		uc.publishSuperseded(ctx, sessionID, payload)
		return nil, ErrSuperseded
	}

	uc.publish(ctx, entity.ResolutionEvent{
		SessionID:    sessionID,
		Label:        payload.Label,
		Outcome:      entity.OutcomeFound,
		MatchedQuery: payload.MatchedQuery,
		Attempts:     payload.Attempts,
	})

	return &entity.Dashboard{
		Weather:    payload,
		Forecast:   forecast,
		AirQuality: airQuality,
	}, nil
}

// startGeneration registers a new search for the session. A store failure leaves the
// search unguarded rather than failing it.
func (uc *dashboardUseCase) startGeneration(ctx context.Context, sessionID string) (int64, bool) {
	if sessionID == "" || uc.sessions == nil {
		return 0, false
	}

	generation, err := uc.sessions.Next(ctx, sessionID)
	if err != nil {
		log.Warn("Search session store unavailable, search is not guarded", zap.String("session_id", sessionID), zap.Error(err))
		return 0, false
	}
	return generation, true
}

func (uc *dashboardUseCase) isSuperseded(ctx context.Context, sessionID string, generation int64) bool {
	current, err := uc.sessions.Current(ctx, sessionID)
	if err != nil {
		log.Warn("Unable to read search generation", zap.String("session_id", sessionID), zap.Error(err))
		return false
	}
	if current != generation {
		log.Info("Search superseded by a newer request",
			zap.String("session_id", sessionID), zap.Int64("generation", generation), zap.Int64("current", current))
		return true
	}
	return false
}

// enrichInParallel fetches forecast and air quality in parallel. Both are optional.
func (uc *dashboardUseCase) enrichInParallel(ctx context.Context, payload entity.WeatherPayload) ([]entity.DailyForecast, *entity.AirQuality) {
	var wg sync.WaitGroup
	var forecast []entity.DailyForecast
	var airQuality *entity.AirQuality
	var forecastErr, airQualityErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		forecast, forecastErr = uc.weatherGateway.GetForecast(ctx, payload.Coordinates, uc.config.ForecastDays)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		airQuality, airQualityErr = uc.weatherGateway.GetAirQuality(ctx, payload.Coordinates)
	}()

	wg.Wait()

	if forecastErr != nil {
		log.Warn(msg.GetMessage("weather.enrich.forecast-failed", payload.Label, forecastErr))
		forecast = nil
	}
	if airQualityErr != nil {
		log.Warn(msg.GetMessage("weather.enrich.air-quality-failed", payload.Label, airQualityErr))
		airQuality = nil
	}

	return forecast, airQuality
}

func (uc *dashboardUseCase) publishFailure(ctx context.Context, sessionID string, city string, err error) {
	event := entity.ResolutionEvent{SessionID: sessionID, Label: city}

	var resErr *resolver.ResolutionError
	if errors.As(err, &resErr) {
		event.Attempts = resErr.Attempts
		event.MatchedQuery = resErr.Query
		event.StatusCode = resErr.StatusCode
		switch resErr.Kind {
		case resolver.EmptyInput:
			event.Outcome = entity.OutcomeEmptyInput
		case resolver.NotFound:
			event.Outcome = entity.OutcomeNotFound
		default:
			event.Outcome = entity.OutcomeProviderError
		}
	} else {
		event.Outcome = entity.OutcomeProviderError
	}

	uc.publish(ctx, event)
}

func (uc *dashboardUseCase) publishSuperseded(ctx context.Context, sessionID string, payload entity.WeatherPayload) {
	uc.publish(ctx, entity.ResolutionEvent{
		SessionID:    sessionID,
		Label:        payload.Label,
		Outcome:      entity.OutcomeSuperseded,
		MatchedQuery: payload.MatchedQuery,
		Attempts:     payload.Attempts,
	})
}

// publish sends the event on a context detached from the caller, so a client
// disconnect does not drop it, but bounded by PublishTimeout so a stalled broker
// cannot hold the search. Failures are only logged.
func (uc *dashboardUseCase) publish(ctx context.Context, event entity.ResolutionEvent) {
	if uc.queueSender == nil || uc.config.EventsQueue == "" {
		return
	}

	event.ID = uuid.New().String()
	event.OccurredAt = uc.now().UTC()

	timeout := uc.config.PublishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := uc.queueSender.SendMessage(publishCtx, uc.config.EventsQueue, event); err != nil {
		log.Error("Failed to publish resolution event",
			zap.String("event_id", event.ID), zap.String("outcome", string(event.Outcome)), zap.Error(err))
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "go-weather/docs"
	"go-weather/internal/application/controller"
	"go-weather/internal/application/middleware"
	"go-weather/internal/application/processor"
	"go-weather/internal/application/schedule"
	apigateway "go-weather/internal/domain/gateway/api"
	"go-weather/internal/domain/gateway/queue"
	"go-weather/internal/domain/gateway/session"
	"go-weather/internal/domain/usecase/dashboard"
	"go-weather/internal/domain/usecase/health"
	"go-weather/internal/domain/usecase/resolver"
	"go-weather/internal/infra/aws"
	"go-weather/internal/infra/kafka"
	pkghttp "go-weather/pkg/http"
	"go-weather/pkg/log"
	"go-weather/pkg/msg"
	"go-weather/pkg/redis"
	"go-weather/pkg/resource"
	"go-weather/pkg/sqs"
)

func main() {
	log.Info(msg.GetMessage("app.start"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init infra
	e := echo.New()
	e.HideBanner = true
	middleware.SetupRequestID(e)
	middleware.SetupRequestLogger(e)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	api := e.Group(resource.GetString("app.server.context-path"))

	// Init Gateways
	weatherGateway := newWeatherGateway()
	sessionGateway := newSessionGateway(ctx)
	eventsBroker := ""
	if resource.GetBool("app.queue.enabled") {
		eventsBroker = resource.GetString("app.queue.broker")
	}
	queueHealthGateway := queue.NewEventsHealthGateway(eventsBroker)
	queueSender, closeQueue := newResolutionEventsQueue(ctx, eventsBroker, queueHealthGateway)

	// Init UseCase
	dashboardUseCase := dashboard.NewDashboardUseCase(
		resolver.NewResolver(weatherGateway),
		weatherGateway,
		sessionGateway,
		queueSender,
		dashboard.Config{
			ForecastDays:   resource.GetInt("app.weather.forecast-days"),
			EventsQueue:    resource.GetString("app.queue.resolution-events"),
			PublishTimeout: resource.GetDuration("app.queue.publish-timeout"),
		},
	)
	healthUseCase := health.NewHealthUseCase(sessionGateway, queueHealthGateway)

	// Init Controller
	weatherController := controller.NewWeatherController(api, dashboardUseCase, resource.GetString("app.weather.icon-url"))
	healthController := controller.NewHealthController(api, healthUseCase)

	// Init Routes
	weatherController.InitWeatherRoutes()
	healthController.InitHealthRoutes()

	// Init Schedule
	healthScheduler := schedule.NewHealthScheduler(healthUseCase)
	if err := healthScheduler.InitHealthScheduleTasks(resource.GetString("app.health.cron")); err != nil {
		log.Fatalf("Failed to start health scheduler: %v", err)
	}
	defer healthScheduler.Stop()

	// Start Routes
	go func() {
		if err := e.Start(":" + resource.GetString("app.server.port")); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped unexpectedly: %v", err)
		}
	}()
	log.Info(msg.GetMessage("app.started"))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}
	closeQueue()
	log.Info(msg.GetMessage("app.stopped"))
}

func newWeatherGateway() apigateway.WeatherGateway {
	return apigateway.NewWeatherGateway(
		apigateway.OpenWeatherConfig{
			BaseURL: resource.GetString("app.weather.base-url"),
			APIKey:  resource.GetString("app.weather.api-key"),
			Units:   resource.GetString("app.weather.units"),
			Lang:    resource.GetString("app.weather.lang"),
		},
		pkghttp.ClientOptions{
			ReadTimeout: resource.GetDuration("app.weather.timeout"),
			Logger:      &pkghttp.ZapHTTPLogger{Name: "openweather"},
			// only transport failures and gateway errors are retried, never 401 or 404
			Backoff: &pkghttp.BackoffConfig{
				MaxRetries:   resource.GetInt("app.weather.max-retries"),
				InitialDelay: resource.GetDuration("app.weather.retry-delay"),
				MaxDelay:     2 * time.Second,
				RetryOn:      []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
			},
		},
	)
}

func newSessionGateway(ctx context.Context) session.SearchSessionGateway {
	ttl := resource.GetDuration("app.session.ttl")

	if resource.GetString("app.session.store") == "redis" {
		config := redis.NewRedisConfig().
			WithHost(resource.GetString("app.redis.host")).
			WithPort(resource.GetInt("app.redis.port")).
			WithPassword(resource.GetString("app.redis.password")).
			WithDatabase(resource.GetInt("app.redis.database"))
		return session.NewRedisSessionGateway(redis.NewClient(config), ttl)
	}

	memoryGateway := session.NewMemorySessionGateway()
	sessionScheduler, err := schedule.NewSessionScheduler(memoryGateway, ttl)
	if err != nil {
		log.Fatalf("Failed to create session scheduler: %v", err)
	}
	if err := sessionScheduler.InitSessionScheduleTasks(ctx, resource.GetString("app.session.sweep-cron")); err != nil {
		log.Fatalf("Failed to start session scheduler: %v", err)
	}
	return memoryGateway
}

// newResolutionEventsQueue starts the events worker and returns the sender with the
// func that releases it on shutdown. The sender is nil when no broker is configured.
// Kafka is publish only.
func newResolutionEventsQueue(ctx context.Context, broker string, healthGateway queue.HealthGateway) (queue.Sender, func()) {
	switch broker {
	case "":
		return nil, func() {}
	case "kafka":
		producer, err := kafka.NewSyncProducer(kafka.Config{
			Brokers: strings.Split(resource.GetString("app.kafka.brokers"), ","),
			Timeout: resource.GetDuration("app.kafka.timeout"),
		})
		if err != nil {
			log.Fatalf("Failed to create kafka producer: %v", err)
		}
		sender := kafka.NewProducerSender(producer)
		return sender, func() {
			if err := sender.Close(); err != nil {
				log.Errorf("Failed to close kafka producer: %v", err)
			}
		}
	}

	cloud := aws.CloudConfigFromProperties()
	cfg, err := aws.LoadConfig(ctx, cloud)
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	sqsClient := aws.NewSqsClient(cfg, cloud)

	queueName := resource.GetString("app.queue.resolution-events")
	worker, err := sqs.NewWorker(ctx, sqsClient, queueName, processor.NewResolutionProcessor(), &sqs.WorkerConfig{
		PoolSize: resource.GetInt("app.queue.pool-size"),
		LogLevel: sqs.ErrorLevel,
	})
	if err != nil {
		log.Fatalf("Failed to create resolution events worker: %v", err)
	}

	healthGateway.RegisterWorker(queueName, worker)
	done := worker.Launch(ctx)

	// ctx is already canceled at shutdown, so the pollers are winding down
	return aws.NewSQSSenderAdapter(sqsClient), func() { <-done }
}

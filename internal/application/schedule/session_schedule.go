package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"go-weather/pkg/log"
	"go-weather/pkg/msg"
)

// SessionSweeper is implemented by session stores that need explicit eviction
type SessionSweeper interface {
	Sweep(idle time.Duration) int
}

// SessionScheduler periodically drops idle search sessions from the in-memory store
type SessionScheduler struct {
	scheduler gocron.Scheduler
	sweeper   SessionSweeper
	idle      time.Duration
}

func NewSessionScheduler(sweeper SessionSweeper, idle time.Duration) (*SessionScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create session scheduler: %w", err)
	}
	return &SessionScheduler{scheduler: scheduler, sweeper: sweeper, idle: idle}, nil
}

// InitSessionScheduleTasks schedules the sweep with a standard five field cron expression
// and stops the scheduler when ctx is done
func (s *SessionScheduler) InitSessionScheduleTasks(ctx context.Context, cronExpression string) error {
	_, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpression, false),
		gocron.NewTask(s.SweepIdleSessions),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	s.scheduler.Start()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *SessionScheduler) SweepIdleSessions() {
	log.Debug(msg.GetMessage("session.cron.start"))

	removed := s.sweeper.Sweep(s.idle)

	log.Info(msg.GetMessage("session.cron.end", removed))
}

// Stop shuts the scheduler down
func (s *SessionScheduler) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		log.Warnf("Session scheduler shutdown failed: %v", err)
	}
}

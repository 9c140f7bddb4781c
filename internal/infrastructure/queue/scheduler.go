package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"restaurant-catalog/internal/config"
	"restaurant-catalog/internal/shared"
	"restaurant-catalog/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	cfg       config.WorkerConfig
}

func NewScheduler(redis asynq.RedisConnOpt, cfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redis,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		cfg:       cfg,
	}
}

// RegisterJobs registers every periodic task
func (s *Scheduler) RegisterJobs() error {
	return s.registerOrphanAuditJob()
}

// ================================================
// Orphan image audit (daily at 3 AM by default)
// ================================================
func (s *Scheduler) registerOrphanAuditJob() error {
	if s.cfg.OrphanAuditCron == "" {
		logger.Info("Orphan image audit disabled", map[string]interface{}{})
		return nil
	}

	task, err := NewOrphanAuditTask()
	if err != nil {
		return err
	}

	_, err = s.scheduler.Register(
		s.cfg.OrphanAuditCron,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register OrphanImageAudit job", err)
		return fmt.Errorf("register orphan audit: %w", err)
	}

	logger.Info("✓ Registered OrphanImageAudit", map[string]interface{}{"cron": s.cfg.OrphanAuditCron})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}

// NewOrphanAuditTask builds the TypeAuditOrphanImages task
func NewOrphanAuditTask() (*asynq.Task, error) {
	payload, err := json.Marshal(shared.OrphanAuditPayload{ScheduledAt: time.Now().UTC()})
	if err != nil {
		return nil, fmt.Errorf("marshal orphan audit payload: %w", err)
	}
	return asynq.NewTask(shared.TypeAuditOrphanImages, payload), nil
}

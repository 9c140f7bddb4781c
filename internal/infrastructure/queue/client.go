package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"restaurant-catalog/internal/shared"
)

// Enqueuer is what the API needs to hand work to cmd/worker
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RedisOpt builds asynq connection options from the app's Redis settings
func RedisOpt(addr, password string, db int) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
}

// EnqueueOrphanAudit queues an immediate orphan image audit and returns the task id
func EnqueueOrphanAudit(ctx context.Context, client Enqueuer) (string, error) {
	task, err := NewOrphanAuditTask()
	if err != nil {
		return "", err
	}

	info, err := client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Unique(shared.OrphanAuditUniqueTTL),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue orphan audit: %w", err)
	}
	return info.ID, nil
}

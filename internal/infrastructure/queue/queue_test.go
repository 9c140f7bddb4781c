package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"restaurant-catalog/internal/config"
	"restaurant-catalog/internal/shared"
)

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(task.Type(), len(opts))
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func TestNewOrphanAuditTask(t *testing.T) {
	task, err := NewOrphanAuditTask()
	require.NoError(t, err)

	assert.Equal(t, shared.TypeAuditOrphanImages, task.Type())

	var payload shared.OrphanAuditPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.False(t, payload.ScheduledAt.IsZero())
}

func TestEnqueueOrphanAudit(t *testing.T) {
	q := new(mockEnqueuer)
	q.On("EnqueueContext", shared.TypeAuditOrphanImages, 3).Return(&asynq.TaskInfo{ID: "abc"}, nil).Once()

	id, err := EnqueueOrphanAudit(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	q.AssertExpectations(t)
}

func TestEnqueueOrphanAudit_Duplicate(t *testing.T) {
	q := new(mockEnqueuer)
	q.On("EnqueueContext", shared.TypeAuditOrphanImages, 3).Return(nil, asynq.ErrDuplicateTask)

	_, err := EnqueueOrphanAudit(context.Background(), q)

	assert.True(t, errors.Is(err, asynq.ErrDuplicateTask))
}

func TestRegisterJobs_DisabledCron(t *testing.T) {
	s := NewScheduler(RedisOpt("localhost:6379", "", 0), config.WorkerConfig{})

	assert.NoError(t, s.RegisterJobs())
}

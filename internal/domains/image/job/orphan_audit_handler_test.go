package job

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-catalog/internal/shared"
	"restaurant-catalog/internal/testutil"
)

type references []string

func (r references) ListImageNames(context.Context) ([]string, error) { return r, nil }

type brokenReferences struct{}

func (brokenReferences) ListImageNames(context.Context) ([]string, error) {
	return nil, errors.New("db down")
}

func TestAudit_ReportsUnreferencedObjects(t *testing.T) {
	store := testutil.NewStorage()
	store.Put("dishes/1/a.jpg", []byte("a"))
	store.Put("dishes/1/b.jpg", []byte("b"))
	store.Put("restaurants/2/c.jpg", []byte("c"))
	store.Put("restaurants/3/gone.jpg", []byte("d"))
	store.Put("other/x.jpg", []byte("e"))

	h := NewOrphanAuditHandler(store,
		Scope{Prefix: "dishes", References: references{"dishes/1/a.jpg"}},
		Scope{Prefix: "restaurants", References: references{"restaurants/2/c.jpg"}},
	)

	report, err := h.Audit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, report.Checked)
	assert.Equal(t, []string{"dishes/1/b.jpg", "restaurants/3/gone.jpg"}, report.Orphans)
	assert.True(t, store.Exists("dishes/1/b.jpg"), "audit must not delete")
}

func TestProcessTask(t *testing.T) {
	store := testutil.NewStorage()
	h := NewOrphanAuditHandler(store, Scope{Prefix: "dishes", References: references{}})

	assert.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask("image:audit_orphans", nil)))
	assert.Error(t, h.ProcessTask(context.Background(), asynq.NewTask("image:audit_orphans", []byte("{"))))

	broken := NewOrphanAuditHandler(store, Scope{Prefix: "dishes", References: brokenReferences{}})
	assert.Error(t, broken.ProcessTask(context.Background(), asynq.NewTask("image:audit_orphans", nil)))
}

func TestProcessTask_LogsScheduleAndOrphans(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	store := testutil.NewStorage()
	store.Put("dishes/1/stale.jpg", []byte("x"))
	h := NewOrphanAuditHandler(store, Scope{Prefix: "dishes", References: references{}})

	scheduled := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(shared.OrphanAuditPayload{ScheduledAt: scheduled})
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeAuditOrphanImages, payload)))

	out := buf.String()
	assert.Contains(t, out, `"image":"dishes/1/stale.jpg"`)
	assert.Contains(t, out, `"scheduled_at":"2026-01-02T03:00:00Z"`)
	assert.Contains(t, out, `"orphans":1`)
}

package job

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"restaurant-catalog/internal/shared"
)

// ObjectLister lists object keys in storage
type ObjectLister interface {
	List(ctx context.Context, prefix string) ([]string, error)
}

// ReferenceSource returns every image name persisted for one owner kind
type ReferenceSource interface {
	ListImageNames(ctx context.Context) ([]string, error)
}

// Scope pairs a storage prefix with the rows that reference objects below it
type Scope struct {
	Prefix     string
	References ReferenceSource
}

// Report is the outcome of one audit run
type Report struct {
	Checked int
	Orphans []string
}

// OrphanAuditHandler finds stored objects no dish or restaurant references.
// It only reports them; nothing is deleted.
type OrphanAuditHandler struct {
	storage ObjectLister
	scopes  []Scope
}

func NewOrphanAuditHandler(storage ObjectLister, scopes ...Scope) *OrphanAuditHandler {
	return &OrphanAuditHandler{
		storage: storage,
		scopes:  scopes,
	}
}

// ProcessTask runs the audit for a scheduled TypeAuditOrphanImages task
func (h *OrphanAuditHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OrphanAuditPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal OrphanAudit payload")
			return fmt.Errorf("unmarshal payload: %w", err)
		}
	}

	report, err := h.Audit(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Orphan image audit failed")
		return fmt.Errorf("audit orphan images: %w", err)
	}

	for _, name := range report.Orphans {
		log.Warn().Str("image", name).Msg("Stored image is not referenced")
	}

	log.Info().
		Time("scheduled_at", payload.ScheduledAt).
		Int("checked", report.Checked).
		Int("orphans", len(report.Orphans)).
		Msg("Orphan image audit finished")

	return nil
}

// Audit compares every object below each scope prefix with the names stored in the database
func (h *OrphanAuditHandler) Audit(ctx context.Context) (*Report, error) {
	report := &Report{Orphans: []string{}}

	for _, scope := range h.scopes {
		names, err := scope.References.ListImageNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %s references: %w", scope.Prefix, err)
		}
		referenced := make(map[string]struct{}, len(names))
		for _, n := range names {
			referenced[n] = struct{}{}
		}

		objects, err := h.storage.List(ctx, scope.Prefix+"/")
		if err != nil {
			return nil, fmt.Errorf("list %s objects: %w", scope.Prefix, err)
		}

		report.Checked += len(objects)
		for _, obj := range objects {
			if _, ok := referenced[obj]; !ok {
				report.Orphans = append(report.Orphans, obj)
			}
		}
	}

	sort.Strings(report.Orphans)
	return report, nil
}

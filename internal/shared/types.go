package shared

import "time"

// Task types handled by cmd/worker
const (
	TypeAuditOrphanImages = "image:audit_orphans"
)

// Queues
const (
	QueueMaintenance = "maintenance"
)

// OrphanAuditUniqueTTL keeps manual triggers from piling up
const OrphanAuditUniqueTTL = 10 * time.Minute

// OrphanAuditPayload is the payload of TypeAuditOrphanImages
type OrphanAuditPayload struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}

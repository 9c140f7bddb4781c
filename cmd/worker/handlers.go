package main

import (
	"github.com/hibiken/asynq"

	imageJob "restaurant-catalog/internal/domains/image/job"
	"restaurant-catalog/internal/shared"
	"restaurant-catalog/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Maintenance
	orphanAudit *imageJob.OrphanAuditHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		orphanAudit: c.OrphanAuditHandler,
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeAuditOrphanImages, h.orphanAudit.ProcessTask)
}

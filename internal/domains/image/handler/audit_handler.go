package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"restaurant-catalog/internal/infrastructure/queue"
	"restaurant-catalog/internal/shared/apperror"
	"restaurant-catalog/internal/shared/response"
)

type AuditResponse struct {
	TaskID string `json:"task_id"`
}

// AuditHandler lets an operator trigger the orphan image audit outside its schedule
type AuditHandler struct {
	queue queue.Enqueuer
}

func NewAuditHandler(q queue.Enqueuer) *AuditHandler {
	return &AuditHandler{queue: q}
}

// Trigger handles POST /api/v1/images/audit
func (h *AuditHandler) Trigger(c *gin.Context) {
	id, err := queue.EnqueueOrphanAudit(c.Request.Context(), h.queue)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		response.HandleError(c, apperror.IllegalState("Orphan image audit is already queued"))
		return
	}
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, AuditResponse{TaskID: id})
}

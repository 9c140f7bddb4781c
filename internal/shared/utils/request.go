package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"restaurant-catalog/internal/infrastructure/storage"
	"restaurant-catalog/internal/shared/apperror"
	"restaurant-catalog/internal/shared/middleware"
	"restaurant-catalog/internal/shared/response"
)

// ParamUUID parses the path parameter name; on failure it writes a 400 and returns false
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("Invalid %s: %s", name, raw))
		return uuid.Nil, false
	}
	return id, true
}

// RequiredQuery returns a non-blank query parameter or writes a 400
func RequiredQuery(c *gin.Context, name string) (string, bool) {
	value := c.Query(name)
	if strings.TrimSpace(value) == "" {
		response.BadRequest(c, MissingParameter(name))
		return "", false
	}
	return value, true
}

func MissingParameter(name string) string {
	return fmt.Sprintf("Required parameter '%s' is missing", name)
}

// BindJSON decodes the body into dest or writes a 400
func BindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", map[string]string{"body": err.Error()})
		return false
	}
	return true
}

// FormFile opens the multipart part field. The caller must call the returned close func.
// Parts larger than the limit set by middleware.UploadLimit are rejected.
func FormFile(c *gin.Context, field string) (*storage.FileUpload, func(), bool) {
	limit := c.GetInt64(middleware.ContextUploadLimit)

	header, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.HandleError(c, fileTooLarge(limit))
			return nil, nil, false
		}
		response.BadRequest(c, MissingParameter(field))
		return nil, nil, false
	}
	if limit > 0 && header.Size > limit {
		response.HandleError(c, fileTooLarge(limit))
		return nil, nil, false
	}

	f, err := header.Open()
	if err != nil {
		response.HandleError(c, err)
		return nil, nil, false
	}

	return &storage.FileUpload{
		Name:    header.Filename,
		Size:    header.Size,
		Content: f,
	}, func() { _ = f.Close() }, true
}

func fileTooLarge(limit int64) error {
	return apperror.ImageUpload(fmt.Sprintf("Image upload failed: file exceeds %d MB", limit>>20), nil)
}

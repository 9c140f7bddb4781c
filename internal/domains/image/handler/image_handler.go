package handler

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"restaurant-catalog/internal/domains/image"
	"restaurant-catalog/internal/domains/image/service"
	"restaurant-catalog/internal/infrastructure/storage"
	"restaurant-catalog/internal/shared/response"
	"restaurant-catalog/internal/shared/utils"
)

const imageMaxAge = "max-age=604800"

// Presenter maps an owner to the body returned after a change to its images
type Presenter func(ctx context.Context, owner image.Owner) (interface{}, error)

// ImageHandler serves the image endpoints below /:id/images of one owner kind
type ImageHandler struct {
	service service.ServiceInterface
	present Presenter
}

func NewImageHandler(service service.ServiceInterface, present Presenter) *ImageHandler {
	return &ImageHandler{
		service: service,
		present: present,
	}
}

// List handles GET .../:id/images
func (h *ImageHandler) List(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	images, err := h.service.List(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	if images == nil {
		images = []string{}
	}

	response.Success(c, http.StatusOK, images)
}

// RemoveOne handles DELETE .../:id/images?image=name
func (h *ImageHandler) RemoveOne(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}
	name, ok := utils.RequiredQuery(c, "image")
	if !ok {
		return
	}

	owner, err := h.service.RemoveOne(c.Request.Context(), id, name)
	h.respond(c, owner, err)
}

// RemoveAll handles DELETE .../:id/images/all
func (h *ImageHandler) RemoveAll(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	owner, err := h.service.RemoveAll(c.Request.Context(), id)
	h.respond(c, owner, err)
}

// Register handles PUT .../:id/images
func (h *ImageHandler) Register(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req image.RegisterRequest
	if !utils.BindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	owner, err := h.service.Register(c.Request.Context(), id, req.Images)
	h.respond(c, owner, err)
}

// Serve handles GET .../:id/images/*imageName
func (h *ImageHandler) Serve(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}
	name := strings.TrimPrefix(c.Param("imageName"), "/")
	if name == "" {
		response.BadRequest(c, utils.MissingParameter("imageName"))
		return
	}

	obj, err := h.service.Open(c.Request.Context(), id, name)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	sum := md5.Sum(obj.Data)
	etag := `"` + hex.EncodeToString(sum[:]) + `"`

	c.Header("ETag", etag)
	c.Header("Cache-Control", imageMaxAge)
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "*")

	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(http.StatusOK, storage.ContentTypeFor(name, obj.Data), obj.Data)
}

func (h *ImageHandler) respond(c *gin.Context, owner image.Owner, err error) {
	if err != nil {
		response.HandleError(c, err)
		return
	}

	body, err := h.present(c.Request.Context(), owner)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, body)
}

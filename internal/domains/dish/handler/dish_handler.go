package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-catalog/internal/domains/dish/model"
	"restaurant-catalog/internal/domains/dish/service"
	"restaurant-catalog/internal/domains/image"
	"restaurant-catalog/internal/shared/response"
	"restaurant-catalog/internal/shared/utils"
)

// DishHandler handles the /dishes routes and the dish routes nested under a restaurant
type DishHandler struct {
	service service.ServiceInterface
}

func NewDishHandler(service service.ServiceInterface) *DishHandler {
	return &DishHandler{service: service}
}

// GetByID handles GET /dishes/:id
func (h *DishHandler) GetByID(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, d.ToResponse())
}

// ListByRestaurant handles GET /restaurants/:id/dishes
func (h *DishHandler) ListByRestaurant(c *gin.Context) {
	restaurantID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	dishes, err := h.service.GetAllByRestaurantID(c.Request.Context(), restaurantID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToResponses(dishes))
}

// Create handles POST /restaurants/:id/dishes
func (h *DishHandler) Create(c *gin.Context) {
	restaurantID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req model.DishRequest
	if !utils.BindJSON(c, &req) {
		return
	}
	if err := req.ValidateCreate(); err != nil {
		response.HandleError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.ToEntity(restaurantID), restaurantID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created.ToResponse())
}

// Update handles PUT /dishes
func (h *DishHandler) Update(c *gin.Context) {
	var req model.DishRequest
	if !utils.BindJSON(c, &req) {
		return
	}
	if err := req.ValidateUpdate(); err != nil {
		response.HandleError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), req.ToUpdateEntity())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated.ToResponse())
}

// Delete handles DELETE /dishes/:id
func (h *DishHandler) Delete(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.NoContent(c)
}

// Exists handles GET /restaurants/:id/dishes/:dishId/exists
func (h *DishHandler) Exists(c *gin.Context) {
	restaurantID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}
	dishID, ok := utils.ParamUUID(c, "dishId")
	if !ok {
		return
	}

	exists, err := h.service.ExistsDish(c.Request.Context(), restaurantID, dishID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exists)
}

// GetName handles GET /dishes/:id/name
func (h *DishHandler) GetName(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	name, err := h.service.GetNameByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.DishNameResponse{DishName: name})
}

// UploadImage handles POST /dishes/:id/images (multipart field "file")
func (h *DishHandler) UploadImage(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	file, closeFile, ok := utils.FormFile(c, "file")
	if !ok {
		return
	}
	defer closeFile()

	d, err := h.service.UploadImage(c.Request.Context(), id, file)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, d.ToResponse())
}

// UploadURL handles POST /dishes/:id/images/upload-url?file_name=x
func (h *DishHandler) UploadURL(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}
	fileName, ok := utils.RequiredQuery(c, "file_name")
	if !ok {
		return
	}

	res, err := h.service.UploadURL(c.Request.Context(), id, fileName)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// PresentImageOwner renders a dish after one of its images changed
func PresentImageOwner(_ context.Context, owner image.Owner) (interface{}, error) {
	d, ok := owner.(*model.Dish)
	if !ok {
		return nil, model.ErrDishNotFound
	}
	return d.ToResponse(), nil
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	dishModel "restaurant-catalog/internal/domains/dish/model"
	dishService "restaurant-catalog/internal/domains/dish/service"
	"restaurant-catalog/internal/domains/image"
	"restaurant-catalog/internal/domains/restaurant/model"
	"restaurant-catalog/internal/domains/restaurant/service"
	"restaurant-catalog/internal/shared/response"
	"restaurant-catalog/internal/shared/utils"
)

// RestaurantHandler handles the /restaurants routes.
// Responses embed the restaurant's dishes, read through the dish service.
type RestaurantHandler struct {
	service service.ServiceInterface
	dishes  dishService.ServiceInterface
}

func NewRestaurantHandler(service service.ServiceInterface, dishes dishService.ServiceInterface) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		dishes:  dishes,
	}
}

func (h *RestaurantHandler) toResponse(ctx context.Context, r *model.Restaurant) (model.RestaurantResponse, error) {
	dishes, err := h.dishes.GetAllByRestaurantID(ctx, r.ID)
	if err != nil {
		return model.RestaurantResponse{}, err
	}
	return r.ToResponse(dishModel.ToResponses(dishes)), nil
}

func (h *RestaurantHandler) toResponses(ctx context.Context, restaurants []*model.Restaurant) ([]model.RestaurantResponse, error) {
	out := make([]model.RestaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		res, err := h.toResponse(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func (h *RestaurantHandler) single(c *gin.Context, status int, r *model.Restaurant) {
	res, err := h.toResponse(c.Request.Context(), r)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, status, res)
}

func (h *RestaurantHandler) many(c *gin.Context, restaurants []*model.Restaurant) {
	res, err := h.toResponses(c.Request.Context(), restaurants)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// GetByID handles GET /restaurants/:id
func (h *RestaurantHandler) GetByID(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	h.single(c, http.StatusOK, r)
}

// GetAll handles GET /restaurants
func (h *RestaurantHandler) GetAll(c *gin.Context) {
	restaurants, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	h.many(c, restaurants)
}

// GetAllByCuisine handles GET /restaurants/cuisine?cuisine=X
func (h *RestaurantHandler) GetAllByCuisine(c *gin.Context) {
	cuisine, ok := utils.RequiredQuery(c, "cuisine")
	if !ok {
		return
	}

	restaurants, err := h.service.GetAllByCuisine(c.Request.Context(), cuisine)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	h.many(c, restaurants)
}

// Cuisines handles GET /restaurants/cuisines
func (h *RestaurantHandler) Cuisines(c *gin.Context) {
	response.Success(c, http.StatusOK, model.CuisineListResponse{Cuisines: h.service.Cuisines()})
}

// Create handles POST /restaurants
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req model.RestaurantRequest
	if !utils.BindJSON(c, &req) {
		return
	}
	if err := req.ValidateCreate(); err != nil {
		response.HandleError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created.ToResponse(nil))
}

// Update handles PUT /restaurants
func (h *RestaurantHandler) Update(c *gin.Context) {
	var req model.RestaurantRequest
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

	h.single(c, http.StatusOK, updated)
}

// Delete handles DELETE /restaurants/:id
func (h *RestaurantHandler) Delete(c *gin.Context) {
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

// Exists handles GET /restaurants/:id/exists
func (h *RestaurantHandler) Exists(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	exists, err := h.service.ExistsByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exists)
}

// GetName handles GET /restaurants/:id/name
func (h *RestaurantHandler) GetName(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	name, err := h.service.GetNameByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.RestaurantNameResponse{RestaurantName: name})
}

// UploadImage handles POST /restaurants/:id/images (multipart field "file")
func (h *RestaurantHandler) UploadImage(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	file, closeFile, ok := utils.FormFile(c, "file")
	if !ok {
		return
	}
	defer closeFile()

	r, err := h.service.UploadImage(c.Request.Context(), id, file)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	h.single(c, http.StatusOK, r)
}

// PresentImageOwner renders a restaurant, with its dishes, after one of its images changed
func (h *RestaurantHandler) PresentImageOwner(ctx context.Context, owner image.Owner) (interface{}, error) {
	r, ok := owner.(*model.Restaurant)
	if !ok {
		return nil, model.ErrRestaurantNotFound
	}
	return h.toResponse(ctx, r)
}

package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	dishModel "restaurant-catalog/internal/domains/dish/model"
	"restaurant-catalog/internal/shared/validator"
)

// RestaurantRequest - POST /api/v1/restaurants, PUT /api/v1/restaurants
type RestaurantRequest struct {
	ID      *uuid.UUID `json:"id"`
	Name    string     `json:"name"`
	Cuisine string     `json:"cuisine"`
	Address string     `json:"address"`
}

func (r RestaurantRequest) fields() []validator.Field {
	return []validator.Field{
		validator.F("name", r.Name,
			validator.NotBlank("Restaurant name must be not blank"),
			validator.MaxRunes(MaxNameLength, "Restaurant name must be smaller 255 characters"),
		),
		validator.F("cuisine", r.Cuisine,
			validator.NotBlank("Cuisine must be not blank"),
			validator.MaxRunes(MaxCuisineLength, "Cuisine must be smaller 255 characters"),
		),
		validator.F("address", r.Address,
			validator.NotBlank("Address must be not blank"),
			validator.MaxRunes(MaxAddressLength, "Address must be smaller 255 characters"),
		),
	}
}

// ValidateCreate ignores any client supplied id
func (r RestaurantRequest) ValidateCreate() error {
	return validator.Check(r.fields()...)
}

func (r RestaurantRequest) ValidateUpdate() error {
	fields := append([]validator.Field{
		validator.F("id", r.ID, validation.NotNil.Error("Id must be not null")),
	}, r.fields()...)
	return validator.Check(fields...)
}

// ToEntity builds a new restaurant, the id is left to the database
func (r RestaurantRequest) ToEntity() *Restaurant {
	return &Restaurant{
		Name:    r.Name,
		Cuisine: r.Cuisine,
		Address: r.Address,
	}
}

// ToUpdateEntity carries the id; only name, cuisine and address are applied
func (r RestaurantRequest) ToUpdateEntity() *Restaurant {
	e := r.ToEntity()
	if r.ID != nil {
		e.ID = *r.ID
	}
	return e
}

// RestaurantResponse - restaurant with its dishes
type RestaurantResponse struct {
	ID      uuid.UUID                `json:"id"`
	Name    string                   `json:"name"`
	Cuisine string                   `json:"cuisine"`
	Address string                   `json:"address"`
	Images  []string                 `json:"images"`
	Dishes  []dishModel.DishResponse `json:"dishes"`
}

func (r *Restaurant) ToResponse(dishes []dishModel.DishResponse) RestaurantResponse {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	if dishes == nil {
		dishes = []dishModel.DishResponse{}
	}
	return RestaurantResponse{
		ID:      r.ID,
		Name:    r.Name,
		Cuisine: r.Cuisine,
		Address: r.Address,
		Images:  images,
		Dishes:  dishes,
	}
}

type RestaurantNameResponse struct {
	RestaurantName string `json:"restaurant_name"`
}

// CuisineListResponse - GET /api/v1/restaurants/cuisines
type CuisineListResponse struct {
	Cuisines []Cuisine `json:"cuisines"`
}

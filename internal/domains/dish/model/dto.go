package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"restaurant-catalog/internal/shared/validator"
)

var maxPrice = decimal.New(1, PriceIntegerDigits)

// DishRequest - POST /api/v1/restaurants/:id/dishes, PUT /api/v1/dishes
type DishRequest struct {
	ID          *uuid.UUID       `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

func (r DishRequest) fields() []validator.Field {
	return []validator.Field{
		validator.F("name", r.Name,
			validator.NotBlank("Dish name must be not blank"),
			validator.MaxRunes(MaxNameLength, "Dish name must be smaller 255 characters"),
		),
		validator.F("description", r.Description,
			validator.MaxRunes(MaxDescriptionLength, "Description must be smaller 255 characters"),
		),
		validator.F("price", r.Price,
			validation.NotNil.Error("Price must be not null"),
			validation.By(positivePrice),
			validation.By(priceFormat),
		),
	}
}

func positivePrice(value interface{}) error {
	p, ok := value.(*decimal.Decimal)
	if !ok || p == nil {
		return nil
	}
	if !p.IsPositive() {
		return errors.New("Price must be greater than 0")
	}
	return nil
}

// at most 10 integer and 2 fraction digits
func priceFormat(value interface{}) error {
	p, ok := value.(*decimal.Decimal)
	if !ok || p == nil {
		return nil
	}
	if !p.Equal(p.Truncate(PriceFractionDigits)) || p.Abs().GreaterThanOrEqual(maxPrice) {
		return errors.New("Price format is invalid")
	}
	return nil
}

func (r DishRequest) ValidateCreate() error {
	return validator.Check(r.fields()...)
}

func (r DishRequest) ValidateUpdate() error {
	fields := append([]validator.Field{
		validator.F("id", r.ID, validation.NotNil.Error("Id must be not null")),
	}, r.fields()...)
	return validator.Check(fields...)
}

// ToEntity builds a dish for restaurantID; the id is generated by the database
func (r DishRequest) ToEntity(restaurantID uuid.UUID) *Dish {
	d := &Dish{
		Name:         r.Name,
		Description:  r.Description,
		RestaurantID: restaurantID,
	}
	if r.Price != nil {
		d.Price = *r.Price
	}
	return d
}

// ToUpdateEntity carries only the fields an update may change
func (r DishRequest) ToUpdateEntity() *Dish {
	d := r.ToEntity(uuid.Nil)
	if r.ID != nil {
		d.ID = *r.ID
	}
	return d
}

type DishResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Images       []string        `json:"images"`
	RestaurantID uuid.UUID       `json:"restaurant_id"`
}

func (d *Dish) ToResponse() DishResponse {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return DishResponse{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		Images:       images,
		RestaurantID: d.RestaurantID,
	}
}

func ToResponses(dishes []*Dish) []DishResponse {
	out := make([]DishResponse, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, d.ToResponse())
	}
	return out
}

type DishNameResponse struct {
	DishName string `json:"dish_name"`
}

// UploadURLResponse - POST /api/v1/dishes/:id/images/upload-url
type UploadURLResponse struct {
	FileName  string `json:"file_name"`
	UploadURL string `json:"upload_url"`
}

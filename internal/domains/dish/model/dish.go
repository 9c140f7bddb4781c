package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxNameLength        = 255
	MaxDescriptionLength = 255

	// NUMERIC(12,2)
	PriceIntegerDigits  = 10
	PriceFractionDigits = 2
)

// Dish belongs to exactly one restaurant; RestaurantID never changes after creation
type Dish struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Images       []string        `json:"images"`
	RestaurantID uuid.UUID       `json:"restaurant_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (d *Dish) GetID() uuid.UUID {
	return d.ID
}

func (d *Dish) GetImages() []string {
	return d.Images
}

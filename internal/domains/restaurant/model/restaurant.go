package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxNameLength    = 255
	MaxCuisineLength = 255
	MaxAddressLength = 255
)

// Restaurant is a row of the restaurant table plus its ordered image names
type Restaurant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Cuisine   string    `json:"cuisine"`
	Address   string    `json:"address"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Restaurant) GetID() uuid.UUID {
	return r.ID
}

func (r *Restaurant) GetImages() []string {
	return r.Images
}

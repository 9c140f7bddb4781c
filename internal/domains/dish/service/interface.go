package service

import (
	"context"

	"github.com/google/uuid"

	"restaurant-catalog/internal/domains/dish/model"
	"restaurant-catalog/internal/infrastructure/storage"
)

type ServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Dish, error)
	GetAllByRestaurantID(ctx context.Context, restaurantID uuid.UUID) ([]*model.Dish, error)

	// Create attaches the dish to an existing restaurant
	Create(ctx context.Context, d *model.Dish, restaurantID uuid.UUID) (*model.Dish, error)

	// Update changes name, description and price only
	Update(ctx context.Context, d *model.Dish) (*model.Dish, error)

	// Delete removes every stored image file, then the image links and the row
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsDish is true iff the dish exists and belongs to restaurantID
	ExistsDish(ctx context.Context, restaurantID, dishID uuid.UUID) (bool, error)
	GetNameByID(ctx context.Context, id uuid.UUID) (string, error)

	UploadImage(ctx context.Context, id uuid.UUID, file *storage.FileUpload) (*model.Dish, error)

	// UploadURL reserves a dish-namespaced object name and presigns a PUT for it
	UploadURL(ctx context.Context, id uuid.UUID, originalName string) (*model.UploadURLResponse, error)
}

package service

import (
	"context"

	"github.com/google/uuid"

	"restaurant-catalog/internal/domains/restaurant/model"
	"restaurant-catalog/internal/infrastructure/storage"
)

type ServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)
	GetAll(ctx context.Context) ([]*model.Restaurant, error)
	GetAllByCuisine(ctx context.Context, cuisine string) ([]*model.Restaurant, error)

	// Create and Update reject cuisines outside the allow-list before touching the database
	Create(ctx context.Context, r *model.Restaurant) (*model.Restaurant, error)
	Update(ctx context.Context, r *model.Restaurant) (*model.Restaurant, error)

	// Delete removes the restaurant, its image links and its dishes.
	// Stored image files are left in place.
	Delete(ctx context.Context, id uuid.UUID) error

	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	GetNameByID(ctx context.Context, id uuid.UUID) (string, error)

	UploadImage(ctx context.Context, id uuid.UUID, file *storage.FileUpload) (*model.Restaurant, error)

	Cuisines() []model.Cuisine
}

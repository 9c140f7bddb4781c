package repository

import (
	"context"

	"github.com/google/uuid"

	"restaurant-catalog/internal/domains/restaurant/model"
)

// RepositoryInterface defines data access for restaurants and their image links
type RepositoryInterface interface {
	// Create inserts a restaurant and returns it with the generated id
	Create(ctx context.Context, r *model.Restaurant) (*model.Restaurant, error)

	// GetByID returns model.ErrRestaurantNotFound if no row matches
	GetByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)

	GetAll(ctx context.Context) ([]*model.Restaurant, error)

	// GetAllByCuisine matches cuisine ignoring case
	GetAllByCuisine(ctx context.Context, cuisine string) ([]*model.Restaurant, error)

	// Update overwrites name, cuisine and address
	Update(ctx context.Context, r *model.Restaurant) (*model.Restaurant, error)

	// Delete removes image links and then the row in one transaction.
	// Dish rows go with the row through the foreign key.
	Delete(ctx context.Context, id uuid.UUID) error

	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	GetNameByID(ctx context.Context, id uuid.UUID) (string, error)

	// ReplaceImages stores images as the complete ordered list of the restaurant
	ReplaceImages(ctx context.Context, id uuid.UUID, images []string) error

	// ListImageNames returns every image referenced by any restaurant
	ListImageNames(ctx context.Context) ([]string, error)
}

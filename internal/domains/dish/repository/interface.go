package repository

import (
	"context"

	"github.com/google/uuid"

	"restaurant-catalog/internal/domains/dish/model"
)

// RepositoryInterface defines data access for dishes and their image links
type RepositoryInterface interface {
	Create(ctx context.Context, d *model.Dish) (*model.Dish, error)

	// GetByID returns model.ErrDishNotFound if no row matches
	GetByID(ctx context.Context, id uuid.UUID) (*model.Dish, error)

	GetAllByRestaurantID(ctx context.Context, restaurantID uuid.UUID) ([]*model.Dish, error)

	// Update overwrites name, description and price. The owning restaurant is kept.
	Update(ctx context.Context, d *model.Dish) (*model.Dish, error)

	// Delete removes image links and then the row in one transaction
	Delete(ctx context.Context, id uuid.UUID) error

	// FindOwnerID returns the restaurant id of the dish; found is false if the dish does not exist
	FindOwnerID(ctx context.Context, id uuid.UUID) (owner uuid.UUID, found bool, err error)

	GetNameByID(ctx context.Context, id uuid.UUID) (string, error)

	ReplaceImages(ctx context.Context, id uuid.UUID, images []string) error

	// ListImageNames returns every image referenced by any dish
	ListImageNames(ctx context.Context) ([]string, error)
}

package service

import (
	"context"

	"github.com/google/uuid"

	"restaurant-catalog/internal/domains/dish/model"
	"restaurant-catalog/internal/domains/dish/repository"
	"restaurant-catalog/internal/domains/image"
	"restaurant-catalog/internal/infrastructure/storage"
)

type imageOwners struct {
	repo   repository.RepositoryInterface
	caches Caches
}

// NewImageOwnerStore exposes dishes to the image service
func NewImageOwnerStore(repo repository.RepositoryInterface, caches Caches) image.OwnerStore {
	return &imageOwners{repo: repo, caches: caches}
}

func (o *imageOwners) Find(ctx context.Context, id uuid.UUID) (image.Owner, error) {
	d, err := getByID(ctx, o.repo, o.caches.ByID, id)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (o *imageOwners) SaveImages(ctx context.Context, id uuid.UUID, images []string) (image.Owner, error) {
	if err := o.repo.ReplaceImages(ctx, id, images); err != nil {
		return nil, err
	}

	d, err := o.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (o *imageOwners) Evict(ctx context.Context, owner image.Owner) {
	if d, ok := owner.(*model.Dish); ok {
		evictDish(ctx, o.caches, d)
		return
	}
	o.caches.ByID.Invalidate(ctx, owner.GetID().String())
	o.caches.ByRestaurant.InvalidateAll(ctx)
}

func (o *imageOwners) NotOwned() error {
	return model.ErrImageNotOwned
}

func (o *imageOwners) Namespace(id uuid.UUID) string {
	return storage.OwnerNamespace(storage.PrefixDishes, id)
}

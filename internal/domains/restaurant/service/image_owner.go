package service

import (
	"context"

	"github.com/google/uuid"

	"restaurant-catalog/internal/domains/image"
	"restaurant-catalog/internal/domains/restaurant/model"
	"restaurant-catalog/internal/domains/restaurant/repository"
	"restaurant-catalog/internal/infrastructure/storage"
)

// imageOwners exposes restaurants to the image service
type imageOwners struct {
	repo   repository.RepositoryInterface
	caches Caches
}

func NewImageOwnerStore(repo repository.RepositoryInterface, caches Caches) image.OwnerStore {
	return &imageOwners{repo: repo, caches: caches}
}

func (o *imageOwners) Find(ctx context.Context, id uuid.UUID) (image.Owner, error) {
	r, err := getByID(ctx, o.repo, o.caches.ByID, id)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (o *imageOwners) SaveImages(ctx context.Context, id uuid.UUID, images []string) (image.Owner, error) {
	if err := o.repo.ReplaceImages(ctx, id, images); err != nil {
		return nil, err
	}

	r, err := o.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (o *imageOwners) Evict(ctx context.Context, owner image.Owner) {
	evictRestaurant(ctx, o.caches, owner.GetID())
}

func (o *imageOwners) NotOwned() error {
	return model.ErrImageNotOwned
}

func (o *imageOwners) Namespace(id uuid.UUID) string {
	return storage.OwnerNamespace(storage.PrefixRestaurants, id)
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"restaurant-catalog/internal/domains/restaurant/model"
	"restaurant-catalog/internal/domains/restaurant/repository"
	"restaurant-catalog/internal/infrastructure/storage"
	"restaurant-catalog/pkg/cache"
)

const allKey = "all"

// Caches are the regions restaurant reads go through.
// Dishes is the restaurant_dishes region of the dish service, dropped on restaurant delete.
type Caches struct {
	ByID      *cache.Region
	All       *cache.Region
	ByCuisine *cache.Region
	Dishes    *cache.Region

	// DishByID is cleared on delete since the dishes go with the restaurant
	DishByID *cache.Region
}

// Uploader is the part of storage.Storage the service needs
type Uploader interface {
	Upload(ctx context.Context, prefix string, ownerID uuid.UUID, file *storage.FileUpload) (string, error)
}

type restaurantService struct {
	repo     repository.RepositoryInterface
	caches   Caches
	uploader Uploader
}

func NewRestaurantService(repo repository.RepositoryInterface, caches Caches, uploader Uploader) ServiceInterface {
	return &restaurantService{
		repo:     repo,
		caches:   caches,
		uploader: uploader,
	}
}

// ========================================
// READS
// ========================================

func getByID(ctx context.Context, repo repository.RepositoryInterface, region *cache.Region, id uuid.UUID) (*model.Restaurant, error) {
	return cache.GetOrLoad(ctx, region, id.String(), func(ctx context.Context) (*model.Restaurant, error) {
		return repo.GetByID(ctx, id)
	})
}

func (s *restaurantService) GetByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	return getByID(ctx, s.repo, s.caches.ByID, id)
}

func (s *restaurantService) GetAll(ctx context.Context) ([]*model.Restaurant, error) {
	return cache.GetOrLoad(ctx, s.caches.All, allKey, s.repo.GetAll)
}

// GetAllByCuisine does not check the allow-list; stored rows may predate it
func (s *restaurantService) GetAllByCuisine(ctx context.Context, cuisine string) ([]*model.Restaurant, error) {
	return cache.GetOrLoad(ctx, s.caches.ByCuisine, strings.ToLower(cuisine), func(ctx context.Context) ([]*model.Restaurant, error) {
		return s.repo.GetAllByCuisine(ctx, cuisine)
	})
}

func (s *restaurantService) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.ExistsByID(ctx, id)
}

func (s *restaurantService) GetNameByID(ctx context.Context, id uuid.UUID) (string, error) {
	return s.repo.GetNameByID(ctx, id)
}

func (s *restaurantService) Cuisines() []model.Cuisine {
	return model.Cuisines()
}

// ========================================
// WRITES
// ========================================

func (s *restaurantService) Create(ctx context.Context, r *model.Restaurant) (*model.Restaurant, error) {
	if !model.IsValidCuisine(r.Cuisine) {
		return nil, model.InvalidCuisine(r.Cuisine)
	}

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return nil, err
	}

	s.caches.All.InvalidateAll(ctx)
	s.caches.ByCuisine.InvalidateAll(ctx)

	log.Info().Str("restaurant_id", created.ID.String()).Str("cuisine", created.Cuisine).Msg("restaurant created")
	return created, nil
}

func (s *restaurantService) Update(ctx context.Context, r *model.Restaurant) (*model.Restaurant, error) {
	if !model.IsValidCuisine(r.Cuisine) {
		return nil, model.InvalidCuisine(r.Cuisine)
	}

	existing, err := s.repo.GetByID(ctx, r.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = r.Name
	existing.Cuisine = r.Cuisine
	existing.Address = r.Address

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.caches.ByID.Invalidate(ctx, updated.ID.String())
	s.caches.All.InvalidateAll(ctx)
	s.caches.ByCuisine.InvalidateAll(ctx)

	return updated, nil
}

func (s *restaurantService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.caches.ByID.InvalidateAll(ctx)
	s.caches.All.InvalidateAll(ctx)
	s.caches.ByCuisine.InvalidateAll(ctx)
	s.caches.Dishes.Invalidate(ctx, id.String())
	s.caches.DishByID.InvalidateAll(ctx)

	log.Info().Str("restaurant_id", id.String()).Msg("restaurant deleted")
	return nil
}

func (s *restaurantService) UploadImage(ctx context.Context, id uuid.UUID, file *storage.FileUpload) (*model.Restaurant, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := s.uploader.Upload(ctx, storage.PrefixRestaurants, id, file)
	if err != nil {
		return nil, err
	}

	images := append(append([]string{}, existing.Images...), name)
	if err := s.repo.ReplaceImages(ctx, id, images); err != nil {
		return nil, err
	}
	existing.Images = images

	s.evict(ctx, id)

	log.Info().Str("restaurant_id", id.String()).Str("image", name).Msg("restaurant image uploaded")
	return existing, nil
}

// evict drops every cached view that contains the restaurant
func (s *restaurantService) evict(ctx context.Context, id uuid.UUID) {
	evictRestaurant(ctx, s.caches, id)
}

func evictRestaurant(ctx context.Context, caches Caches, id uuid.UUID) {
	caches.ByID.Invalidate(ctx, id.String())
	caches.All.InvalidateAll(ctx)
	caches.ByCuisine.InvalidateAll(ctx)
}

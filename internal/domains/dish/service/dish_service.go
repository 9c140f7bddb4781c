package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"restaurant-catalog/internal/domains/dish/model"
	"restaurant-catalog/internal/domains/dish/repository"
	restaurantModel "restaurant-catalog/internal/domains/restaurant/model"
	"restaurant-catalog/internal/infrastructure/storage"
	"restaurant-catalog/pkg/cache"
)

// RestaurantReader is the only thing dishes need from the restaurant domain
type RestaurantReader interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// Caches: ByID is the dishes region, ByRestaurant is restaurant_dishes keyed by restaurant id
type Caches struct {
	ByID         *cache.Region
	ByRestaurant *cache.Region
}

// ObjectStore is the part of storage.Storage the dish service needs
type ObjectStore interface {
	Upload(ctx context.Context, prefix string, ownerID uuid.UUID, file *storage.FileUpload) (string, error)
	Delete(ctx context.Context, name string) error
	PresignUpload(ctx context.Context, name string) (string, error)
}

type dishService struct {
	repo        repository.RepositoryInterface
	restaurants RestaurantReader
	caches      Caches
	storage     ObjectStore
}

func NewDishService(
	repo repository.RepositoryInterface,
	restaurants RestaurantReader,
	caches Caches,
	store ObjectStore,
) ServiceInterface {
	return &dishService{
		repo:        repo,
		restaurants: restaurants,
		caches:      caches,
		storage:     store,
	}
}

// ========================================
// READS
// ========================================

func getByID(ctx context.Context, repo repository.RepositoryInterface, region *cache.Region, id uuid.UUID) (*model.Dish, error) {
	return cache.GetOrLoad(ctx, region, id.String(), func(ctx context.Context) (*model.Dish, error) {
		return repo.GetByID(ctx, id)
	})
}

func (s *dishService) GetByID(ctx context.Context, id uuid.UUID) (*model.Dish, error) {
	return getByID(ctx, s.repo, s.caches.ByID, id)
}

func (s *dishService) GetAllByRestaurantID(ctx context.Context, restaurantID uuid.UUID) ([]*model.Dish, error) {
	return cache.GetOrLoad(ctx, s.caches.ByRestaurant, restaurantID.String(), func(ctx context.Context) ([]*model.Dish, error) {
		return s.repo.GetAllByRestaurantID(ctx, restaurantID)
	})
}

func (s *dishService) ExistsDish(ctx context.Context, restaurantID, dishID uuid.UUID) (bool, error) {
	owner, found, err := s.repo.FindOwnerID(ctx, dishID)
	if err != nil {
		return false, err
	}
	return found && owner == restaurantID, nil
}

func (s *dishService) GetNameByID(ctx context.Context, id uuid.UUID) (string, error) {
	return s.repo.GetNameByID(ctx, id)
}

// ========================================
// WRITES
// ========================================

func (s *dishService) Create(ctx context.Context, d *model.Dish, restaurantID uuid.UUID) (*model.Dish, error) {
	exists, err := s.restaurants.ExistsByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, restaurantModel.ErrRestaurantNotFound
	}

	d.RestaurantID = restaurantID
	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, err
	}

	s.caches.ByRestaurant.Invalidate(ctx, restaurantID.String())

	log.Info().Str("dish_id", created.ID.String()).Str("restaurant_id", restaurantID.String()).Msg("dish created")
	return created, nil
}

func (s *dishService) Update(ctx context.Context, d *model.Dish) (*model.Dish, error) {
	existing, err := s.repo.GetByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = d.Name
	existing.Description = d.Description
	existing.Price = d.Price

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	updated.Images = existing.Images

	evictDish(ctx, s.caches, updated)
	return updated, nil
}

func (s *dishService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, name := range existing.Images {
		if err := s.storage.Delete(ctx, name); err != nil {
			log.Error().Err(err).Str("dish_id", id.String()).Str("image", name).Msg("dish image delete failed")
			return err
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	evictDish(ctx, s.caches, existing)

	log.Info().Str("dish_id", id.String()).Int("images", len(existing.Images)).Msg("dish deleted")
	return nil
}

func (s *dishService) UploadImage(ctx context.Context, id uuid.UUID, file *storage.FileUpload) (*model.Dish, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := s.storage.Upload(ctx, storage.PrefixDishes, id, file)
	if err != nil {
		return nil, err
	}

	images := append(append([]string{}, existing.Images...), name)
	if err := s.repo.ReplaceImages(ctx, id, images); err != nil {
		return nil, err
	}
	existing.Images = images

	evictDish(ctx, s.caches, existing)

	log.Info().Str("dish_id", id.String()).Str("image", name).Msg("dish image uploaded")
	return existing, nil
}

func (s *dishService) UploadURL(ctx context.Context, id uuid.UUID, originalName string) (*model.UploadURLResponse, error) {
	if strings.TrimSpace(originalName) == "" {
		return nil, model.ErrFileNameNeeded
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	name := storage.GenerateFileName(storage.PrefixDishes, id, originalName)
	url, err := s.storage.PresignUpload(ctx, name)
	if err != nil {
		return nil, err
	}

	return &model.UploadURLResponse{FileName: name, UploadURL: url}, nil
}

func evictDish(ctx context.Context, caches Caches, d *model.Dish) {
	caches.ByID.Invalidate(ctx, d.ID.String())
	caches.ByRestaurant.Invalidate(ctx, d.RestaurantID.String())
}

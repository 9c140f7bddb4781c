package service

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"restaurant-catalog/internal/domains/image"
	"restaurant-catalog/internal/infrastructure/storage"
)

// Deleter is the part of storage.Storage image removal needs
type Deleter interface {
	Delete(ctx context.Context, name string) error
}

// Reader is the part of storage.Storage image serving needs
type Reader interface {
	Get(ctx context.Context, name string) (*storage.Object, error)
}

// ObjectStore is what the image service needs from storage
type ObjectStore interface {
	Deleter
	Reader
}

type imageService struct {
	kind    string
	owners  image.OwnerStore
	storage ObjectStore
}

// NewImageService builds the service for one owner kind; kind only labels log lines
func NewImageService(kind string, owners image.OwnerStore, store ObjectStore) ServiceInterface {
	return &imageService{
		kind:    kind,
		owners:  owners,
		storage: store,
	}
}

func (s *imageService) RemoveOne(ctx context.Context, ownerID uuid.UUID, name string) (image.Owner, error) {
	owner, err := s.owners.Find(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	current := owner.GetImages()
	remaining := make([]string, 0, len(current))
	for _, img := range current {
		if img != name {
			remaining = append(remaining, img)
		}
	}
	if len(remaining) == len(current) {
		return owner, nil
	}

	s.owners.Evict(ctx, owner)

	if err := s.storage.Delete(ctx, name); err != nil {
		log.Error().Err(err).Str("owner", s.kind).Str("owner_id", ownerID.String()).Str("image", name).Msg("image delete failed")
		return nil, err
	}

	updated, err := s.owners.SaveImages(ctx, ownerID, remaining)
	if err != nil {
		return nil, err
	}
	s.owners.Evict(ctx, updated)

	log.Info().Str("owner", s.kind).Str("owner_id", ownerID.String()).Str("image", name).Msg("image removed")
	return updated, nil
}

func (s *imageService) RemoveAll(ctx context.Context, ownerID uuid.UUID) (image.Owner, error) {
	owner, err := s.owners.Find(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	s.owners.Evict(ctx, owner)

	images := owner.GetImages()
	for i, name := range images {
		if err := s.storage.Delete(ctx, name); err != nil {
			log.Error().Err(err).
				Str("owner", s.kind).
				Str("owner_id", ownerID.String()).
				Str("image", name).
				Int("deleted_before_failure", i).
				Msg("image delete failed, list left unchanged")
			return nil, err
		}
	}

	updated, err := s.owners.SaveImages(ctx, ownerID, []string{})
	if err != nil {
		return nil, err
	}
	s.owners.Evict(ctx, updated)

	log.Info().Str("owner", s.kind).Str("owner_id", ownerID.String()).Int("count", len(images)).Msg("all images removed")
	return updated, nil
}

func (s *imageService) List(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	owner, err := s.owners.Find(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return owner.GetImages(), nil
}

func (s *imageService) Register(ctx context.Context, ownerID uuid.UUID, names []string) (image.Owner, error) {
	owner, err := s.owners.Find(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	namespace := s.owners.Namespace(ownerID)
	images := append([]string{}, owner.GetImages()...)
	added := 0
	for _, name := range names {
		if !strings.HasPrefix(name, namespace) || len(name) == len(namespace) {
			return nil, s.owners.NotOwned()
		}
		if slices.Contains(images, name) {
			continue
		}
		images = append(images, name)
		added++
	}
	if added == 0 {
		return owner, nil
	}

	updated, err := s.owners.SaveImages(ctx, ownerID, images)
	if err != nil {
		return nil, err
	}
	s.owners.Evict(ctx, updated)

	log.Info().Str("owner", s.kind).Str("owner_id", ownerID.String()).Int("count", added).Msg("images registered")
	return updated, nil
}

func (s *imageService) Open(ctx context.Context, ownerID uuid.UUID, name string) (*storage.Object, error) {
	owner, err := s.owners.Find(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !image.Contains(owner, name) {
		return nil, s.owners.NotOwned()
	}

	return s.storage.Get(ctx, name)
}

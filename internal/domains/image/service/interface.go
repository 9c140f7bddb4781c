package service

import (
	"context"

	"github.com/google/uuid"

	"restaurant-catalog/internal/domains/image"
	"restaurant-catalog/internal/infrastructure/storage"
)

// ServiceInterface manages the stored images of one owner kind
type ServiceInterface interface {
	// RemoveOne deletes name from storage and from the owner's list.
	// A name the owner does not hold is a no-op.
	RemoveOne(ctx context.Context, ownerID uuid.UUID, name string) (image.Owner, error)

	// RemoveAll deletes every image in order; the first storage failure aborts
	// without persisting, files deleted before it stay deleted.
	RemoveAll(ctx context.Context, ownerID uuid.UUID) (image.Owner, error)

	List(ctx context.Context, ownerID uuid.UUID) ([]string, error)

	// Register appends names uploaded through a presigned URL
	Register(ctx context.Context, ownerID uuid.UUID, names []string) (image.Owner, error)

	// Open reads an image the owner holds
	Open(ctx context.Context, ownerID uuid.UUID, name string) (*storage.Object, error)
}

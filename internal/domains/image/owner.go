package image

import (
	"context"

	"github.com/google/uuid"
)

// Owner is an entity holding an ordered list of stored image names
type Owner interface {
	GetID() uuid.UUID
	GetImages() []string
}

// OwnerStore loads and saves the image list of one kind of owner (dish or restaurant)
// and evicts whatever cache entries show that list.
type OwnerStore interface {
	// Find returns the kind's NotFound error if id does not exist
	Find(ctx context.Context, id uuid.UUID) (Owner, error)

	// SaveImages persists images as the complete list and returns the reloaded owner
	SaveImages(ctx context.Context, id uuid.UUID, images []string) (Owner, error)

	Evict(ctx context.Context, owner Owner)

	// Namespace is the object key prefix of id's images, e.g. "dishes/{id}/"
	Namespace(id uuid.UUID) string

	// NotOwned is returned when a name is asked for through the wrong owner
	NotOwned() error
}

// Contains reports whether name is one of owner's images
func Contains(owner Owner, name string) bool {
	for _, img := range owner.GetImages() {
		if img == name {
			return true
		}
	}
	return false
}

package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"restaurant-catalog/internal/shared/apperror"
)

// Object name prefixes, one namespace per owner type
const (
	PrefixDishes      = "dishes"
	PrefixRestaurants = "restaurants"
)

const (
	defaultExtension  = ".jpg"
	msgImageNeedsName = "Image must have name."
	msgUploadFailed   = "Image upload failed: "
)

// Storage is the object store behind dish and restaurant images.
// Implemented by MinIOStorage and S3Storage.
type Storage interface {
	// Upload stores file under a generated "{prefix}/{ownerID}/..." name and returns that name.
	Upload(ctx context.Context, prefix string, ownerID uuid.UUID, file *FileUpload) (string, error)
	// Delete removes one object; client errors are returned unchanged.
	Delete(ctx context.Context, name string) error
	// PresignUpload returns a time limited URL the client can PUT the object to.
	PresignUpload(ctx context.Context, name string) (string, error)
	Get(ctx context.Context, name string) (*Object, error)
	// List returns every object key below prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// FileUpload is an incoming file, usually a multipart part
type FileUpload struct {
	Name    string
	Size    int64
	Content io.Reader
}

// Object is a downloaded object
type Object struct {
	Name        string
	Data        []byte
	ContentType string
}

// OwnerNamespace is the "{prefix}/{ownerID}/" key prefix every object of one owner lives under
func OwnerNamespace(prefix string, ownerID uuid.UUID) string {
	return prefix + "/" + ownerID.String() + "/"
}

// GenerateFileName builds "{prefix}/{ownerID}/{unixMillis}-{random8}{ext}".
// ext is taken from originalName and falls back to ".jpg".
func GenerateFileName(prefix string, ownerID uuid.UUID, originalName string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s%d-%s%s", OwnerNamespace(prefix, ownerID), time.Now().UnixMilli(), random, fileExtension(originalName))
}

func fileExtension(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if i := strings.LastIndex(base, "."); i > 0 && i < len(base)-1 {
		return strings.ToLower(base[i:])
	}
	return defaultExtension
}

// preparedUpload is a validated file ready to be written
type preparedUpload struct {
	name        string
	data        []byte
	contentType string
}

// prepareUpload validates the file, reads it and sniffs its content type
func prepareUpload(prefix string, ownerID uuid.UUID, file *FileUpload) (*preparedUpload, error) {
	if file == nil || file.Content == nil || strings.TrimSpace(file.Name) == "" {
		return nil, apperror.ImageUpload(msgImageNeedsName, nil)
	}

	data, err := io.ReadAll(file.Content)
	if err != nil {
		return nil, apperror.ImageUpload(msgUploadFailed+err.Error(), err)
	}
	if len(data) == 0 {
		return nil, apperror.ImageUpload(msgImageNeedsName, nil)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, apperror.ImageUpload(msgUploadFailed+"unsupported content type "+mt.String(), nil)
	}

	return &preparedUpload{
		name:        GenerateFileName(prefix, ownerID, file.Name),
		data:        data,
		contentType: mt.String(),
	}, nil
}

// uploadFailed wraps a client error as an upload failure
func uploadFailed(err error) error {
	return apperror.ImageUpload(msgUploadFailed+err.Error(), err)
}

// ContentTypeFor picks the content type from the extension of name,
// falling back to sniffing data.
func ContentTypeFor(name string, data []byte) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}

	if len(data) > 0 {
		return mimetype.Detect(data).String()
	}
	return "application/octet-stream"
}

// Package storage provides object storage implementations for product images.
package storage

import (
	"context"
	"time"
)

// ImageStorage issues URLs for uploading and serving product images.
// Uploads go straight from the admin browser to the object store via a
// presigned URL, the API never proxies image bytes.
type ImageStorage interface {
	// GenerateUploadURL returns a presigned PUT URL for the given storage
	// key, plus the moment the URL expires.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// PublicURL returns the stable URL the storefront serves the image from.
	PublicURL(storageKey string) string

	// Delete removes a stored image. Deleting a missing key is not an error.
	Delete(ctx context.Context, storageKey string) error
}

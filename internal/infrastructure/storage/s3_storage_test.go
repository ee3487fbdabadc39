package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/infrastructure/config"
)

func validStorageConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Provider:        "s3",
		Bucket:          "shop-images",
		Region:          "eu-west-1",
		AccessKeyID:     "AKIATEST",
		SecretAccessKey: "secret",
	}
}

func TestNewS3ImageStorage(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		s, err := NewS3ImageStorage(validStorageConfig())
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := NewS3ImageStorage(nil)
		assert.Error(t, err)
	})

	t.Run("missing bucket", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.Bucket = ""
		_, err := NewS3ImageStorage(cfg)
		assert.ErrorContains(t, err, "bucket")
	})

	t.Run("missing credentials", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.AccessKeyID = ""
		_, err := NewS3ImageStorage(cfg)
		assert.ErrorContains(t, err, "access key")
	})
}

func TestS3ImageStorage_PublicURL(t *testing.T) {
	t.Run("default AWS URL", func(t *testing.T) {
		s, err := NewS3ImageStorage(validStorageConfig())
		require.NoError(t, err)
		assert.Equal(t, "https://shop-images.s3.eu-west-1.amazonaws.com/products/mug.jpg", s.PublicURL("products/mug.jpg"))
	})

	t.Run("custom base URL", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.BaseURL = "https://cdn.shop.example.com/"
		s, err := NewS3ImageStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.shop.example.com/products/mug.jpg", s.PublicURL("products/mug.jpg"))
	})
}

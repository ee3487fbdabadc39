package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Ensure StubImageStorage implements ImageStorage
var _ ImageStorage = (*StubImageStorage)(nil)

// StubImageStorage is an in-memory ImageStorage for development and tests.
// Upload URLs point at a fake host and Delete records which keys were
// removed so tests can assert on it.
type StubImageStorage struct {
	// BaseURL is the prefix for generated URLs, defaults to
	// "https://storage.example.com" if not set
	BaseURL string

	mu      sync.Mutex
	deleted []string
}

// NewStubImageStorage creates a new StubImageStorage
func NewStubImageStorage() *StubImageStorage {
	return &StubImageStorage{
		BaseURL: "https://storage.example.com",
	}
}

// GenerateUploadURL returns a fake presigned upload URL
func (s *StubImageStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	url := fmt.Sprintf("%s/upload/%s?expires=%d", s.BaseURL, storageKey, expiresIn/time.Second)
	return url, time.Now().Add(expiresIn), nil
}

// PublicURL returns the fake public URL for a stored image
func (s *StubImageStorage) PublicURL(storageKey string) string {
	return s.BaseURL + "/" + strings.TrimPrefix(storageKey, "/")
}

// Delete records the deleted key
func (s *StubImageStorage) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, storageKey)
	return nil
}

// Deleted returns the keys deleted so far
func (s *StubImageStorage) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

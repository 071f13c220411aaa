package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"questlab.io/studiosite/pkg/apperror"
	"questlab.io/studiosite/pkg/storage"
)

// ImageTTL is deliberately short: callers go through the image proxy, which
// signs per request, so the browser never holds a long-lived URL.
const ImageTTL = 60 * time.Second

type AssetService interface {
	Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	Delete(ctx context.Context, keys []string) error
	SignedURLs(ctx context.Context, keys []string, ttl time.Duration) (map[string]string, error)
	// Fetch retrieves the object behind a signed URL for proxying. The caller
	// must close the body.
	Fetch(ctx context.Context, key string) (io.ReadCloser, string, error)
}

type assetService struct {
	store  storage.ObjectStorage
	client *http.Client
}

func NewAssetService(store storage.ObjectStorage) AssetService {
	return &assetService{
		store:  store,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *assetService) Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	if !storage.IsAllowedFolder(folder) {
		return "", fmt.Errorf("%w: folder %q is not allowed", apperror.ErrInvalidInput, folder)
	}

	key, err := s.store.Upload(ctx, r, folder, fileName)
	if err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}
	return key, nil
}

// Delete is idempotent: deleting keys that no longer exist succeeds.
func (s *assetService) Delete(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if len(keys) == 1 {
		if err := s.store.Delete(ctx, keys[0]); err != nil {
			return fmt.Errorf("failed to delete asset: %w", err)
		}
		return nil
	}
	if err := s.store.DeleteMany(ctx, keys); err != nil {
		return fmt.Errorf("failed to delete assets: %w", err)
	}
	return nil
}

func (s *assetService) SignedURLs(ctx context.Context, keys []string, ttl time.Duration) (map[string]string, error) {
	if ttl <= 0 {
		ttl = ImageTTL
	}

	urls := make(map[string]string, len(keys))
	for _, key := range keys {
		url, err := s.store.SignedURL(key, ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to sign url for %s: %w", key, err)
		}
		urls[key] = url
	}
	return urls, nil
}

func (s *assetService) Fetch(ctx context.Context, key string) (io.ReadCloser, string, error) {
	url, err := s.store.SignedURL(key, ImageTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign url for %s: %w", key, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build fetch request: %w", err)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: upstream fetch failed for %s", apperror.ErrNotFound, key)
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, "", fmt.Errorf("%w: upstream returned %d for %s", apperror.ErrNotFound, res.StatusCode, key)
	}

	return res.Body, res.Header.Get("Content-Type"), nil
}

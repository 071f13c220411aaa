package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// Folders that callers are allowed to store under. Everything else is
// rejected before any storage call is made.
var allowedFolders = map[string]bool{
	"courses": true,
	"games":   true,
	"jobs":    true,
	"team":    true,
	"general": true,
	"resumes": true,
}

// Folders whose objects may be served to anonymous callers. Resumes are
// private: they are only ever reachable through admin-gated signed URLs.
var publicFolders = map[string]bool{
	"courses": true,
	"games":   true,
	"jobs":    true,
	"team":    true,
	"general": true,
}

// IsAllowedFolder reports whether folder is on the storage allow-list.
func IsAllowedFolder(folder string) bool {
	return allowedFolders[folder]
}

// IsPublicFolder reports whether objects under folder may be served without
// authentication.
func IsPublicFolder(folder string) bool {
	return publicFolders[folder]
}

// ObjectStorage defines the contract for the object storage provider.
// Keys are stable identifiers of the form "<folder>/<name>"; URLs are only
// ever produced on demand via SignedURL.
type ObjectStorage interface {
	// Upload stores the object under an allow-listed folder and returns its key.
	Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// SignedURL returns a time-limited GET URL for the key.
	SignedURL(key string, ttl time.Duration) (string, error)
	// Delete removes the object. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// DeleteMany removes several objects, best-effort.
	DeleteMany(ctx context.Context, keys []string) error
	// ListKeys returns all keys under the given prefix.
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}

type ossStorage struct {
	bucket *oss.Bucket
}

// NewOSSStorage builds an OSS-backed ObjectStorage from OSS_ENDPOINT,
// OSS_ACCESS_KEY_ID, OSS_ACCESS_KEY_SECRET and OSS_BUCKET.
func NewOSSStorage() (ObjectStorage, error) {
	endpoint := os.Getenv("OSS_ENDPOINT")
	keyID := os.Getenv("OSS_ACCESS_KEY_ID")
	keySecret := os.Getenv("OSS_ACCESS_KEY_SECRET")
	bucketName := os.Getenv("OSS_BUCKET")

	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, fmt.Errorf("object storage is not configured (OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET/OSS_BUCKET)")
	}

	client, err := oss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize oss client: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to open oss bucket %s: %w", bucketName, err)
	}

	return &ossStorage{bucket: bucket}, nil
}

func (s *ossStorage) Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	if !IsAllowedFolder(folder) {
		return "", fmt.Errorf("folder %q is not allowed", folder)
	}

	key := fmt.Sprintf("%s/%d-%s", folder, time.Now().UnixNano(), sanitizeFileName(fileName))
	if err := s.bucket.PutObject(key, r); err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return key, nil
}

func (s *ossStorage) SignedURL(key string, ttl time.Duration) (string, error) {
	seconds := int64(ttl / time.Second)
	if seconds <= 0 {
		seconds = 60
	}

	url, err := s.bucket.SignURL(key, oss.HTTPGet, seconds)
	if err != nil {
		return "", fmt.Errorf("failed to sign url for %s: %w", key, err)
	}
	return url, nil
}

func (s *ossStorage) Delete(ctx context.Context, key string) error {
	// DeleteObject succeeds for absent keys, which gives us idempotence.
	if err := s.bucket.DeleteObject(key); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

func (s *ossStorage) DeleteMany(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	if _, err := s.bucket.DeleteObjects(keys, oss.DeleteObjectsQuiet(true)); err != nil {
		return fmt.Errorf("failed to delete %d objects: %w", len(keys), err)
	}
	return nil
}

func (s *ossStorage) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	marker := ""

	for {
		res, err := s.bucket.ListObjects(oss.Prefix(prefix), oss.Marker(marker))
		if err != nil {
			return nil, fmt.Errorf("failed to list objects under %s: %w", prefix, err)
		}
		for _, obj := range res.Objects {
			keys = append(keys, obj.Key)
		}
		if !res.IsTruncated {
			break
		}
		marker = res.NextMarker
	}

	return keys, nil
}

// sanitizeFileName keeps the base name and strips characters that would
// break the key layout.
func sanitizeFileName(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "-")
	base = strings.ReplaceAll(base, "/", "-")
	if base == "" || base == "." {
		base = "file"
	}
	return base
}

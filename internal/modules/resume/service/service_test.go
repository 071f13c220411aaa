package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"questlab.io/studiosite/internal/entity"
	contact "questlab.io/studiosite/internal/modules/contact/service"
	"questlab.io/studiosite/internal/modules/resume/dto"
	"questlab.io/studiosite/internal/modules/resume/repository"
	"questlab.io/studiosite/pkg/apperror"
)

// fakeStorage records objects in memory so tests can observe the cascade
// between rows and stored objects.
type fakeStorage struct {
	objects    map[string]bool
	failUpload bool
	counter    int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]bool{}}
}

func (f *fakeStorage) Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	if f.failUpload {
		return "", errors.New("storage unavailable")
	}
	f.counter++
	key := fmt.Sprintf("%s/%d-%s", folder, f.counter, fileName)
	f.objects[key] = true
	return key, nil
}

func (f *fakeStorage) SignedURL(key string, ttl time.Duration) (string, error) {
	if !f.objects[key] {
		return "", errors.New("no such object")
	}
	return fmt.Sprintf("https://storage.example/%s?expires=%d", key, int(ttl.Seconds())), nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) DeleteMany(ctx context.Context, keys []string) error {
	for _, key := range keys {
		delete(f.objects, key)
	}
	return nil
}

func (f *fakeStorage) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func setupService(t *testing.T) (ResumeService, *fakeStorage, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.ResumeSubmission{}))

	store := newFakeStorage()
	svc := NewResumeService(repository.NewResumeRepository(db), store, nil, "")
	return svc, store, db
}

func submitRequest() dto.SubmitResumeRequest {
	return dto.SubmitResumeRequest{
		Name:           "Sita Koirala",
		Email:          "sita@example.com",
		RoleLookingFor: "Game Designer",
	}
}

func TestSubmitStoresObjectAndRow(t *testing.T) {
	svc, store, db := setupService(t)

	id, err := svc.Submit(context.Background(), submitRequest(), strings.NewReader("pdf bytes"), "cv.pdf")
	require.NoError(t, err)

	var sub entity.ResumeSubmission
	require.NoError(t, db.First(&sub, "id = ?", id).Error)
	assert.Equal(t, entity.ResumeStatusPending, sub.Status)
	assert.True(t, store.objects[sub.ResumeKey], "row must reference a stored object")
}

func TestSubmitUploadFailureFailsRequest(t *testing.T) {
	svc, store, db := setupService(t)
	store.failUpload = true

	_, err := svc.Submit(context.Background(), submitRequest(), strings.NewReader("pdf bytes"), "cv.pdf")
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&entity.ResumeSubmission{}).Count(&count).Error)
	assert.Zero(t, count, "no row may exist without its object")
}

func TestSubmitHoneypotStoresNothing(t *testing.T) {
	svc, store, db := setupService(t)

	req := submitRequest()
	req.Website = "https://spam.example"

	id, err := svc.Submit(context.Background(), req, strings.NewReader("pdf bytes"), "cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, contact.BlockedID, id)

	var count int64
	require.NoError(t, db.Model(&entity.ResumeSubmission{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, store.objects)
}

func TestDownloadURLSignsStoredKey(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	id, err := svc.Submit(ctx, submitRequest(), strings.NewReader("pdf bytes"), "cv.pdf")
	require.NoError(t, err)

	url, err := svc.DownloadURL(ctx, uuid.MustParse(id))
	require.NoError(t, err)
	assert.Contains(t, url, "resumes/")
	assert.Contains(t, url, "expires=3600")
}

func TestDeleteCascadesToObject(t *testing.T) {
	svc, store, _ := setupService(t)
	ctx := context.Background()

	id, err := svc.Submit(ctx, submitRequest(), strings.NewReader("pdf bytes"), "cv.pdf")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, uuid.MustParse(id)))
	assert.Empty(t, store.objects)

	err = svc.Delete(ctx, uuid.MustParse(id))
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestUpdateStatus(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	id, err := svc.Submit(ctx, submitRequest(), strings.NewReader("pdf bytes"), "cv.pdf")
	require.NoError(t, err)

	sub, err := svc.UpdateStatus(ctx, uuid.MustParse(id), entity.ResumeStatusReviewed)
	require.NoError(t, err)
	assert.Equal(t, entity.ResumeStatusReviewed, sub.Status)

	listed, err := svc.List(ctx, dto.ResumeFilter{Status: entity.ResumeStatusReviewed})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"questlab.io/studiosite/internal/entity"
	"questlab.io/studiosite/internal/modules/resume/repository"
)

type memStorage struct {
	objects map[string]bool
}

func (m *memStorage) Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	key := folder + "/" + fileName
	m.objects[key] = true
	return key, nil
}

func (m *memStorage) SignedURL(key string, ttl time.Duration) (string, error) {
	return "", errors.New("not signed in tests")
}

func (m *memStorage) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memStorage) DeleteMany(ctx context.Context, keys []string) error {
	for _, key := range keys {
		delete(m.objects, key)
	}
	return nil
}

func (m *memStorage) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func TestReaperRemovesOnlyOrphans(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.ResumeSubmission{}))

	store := &memStorage{objects: map[string]bool{
		"resumes/1-live.pdf":   true,
		"resumes/2-orphan.pdf": true,
		"courses/thumb.png":    true,
	}}

	sub := entity.ResumeSubmission{
		Name:           "Sita Koirala",
		Email:          "sita@example.com",
		RoleLookingFor: "Game Designer",
		ResumeKey:      "resumes/1-live.pdf",
	}
	require.NoError(t, db.Create(&sub).Error)

	reaper := NewResumeReaper(repository.NewResumeRepository(db), store)
	require.NoError(t, reaper.Run(context.Background()))

	assert.True(t, store.objects["resumes/1-live.pdf"], "referenced object must survive")
	assert.False(t, store.objects["resumes/2-orphan.pdf"], "orphan must be removed")
	assert.True(t, store.objects["courses/thumb.png"], "other folders are out of scope")
}

func TestReaperSparesRecentUploads(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.ResumeSubmission{}))

	// A submission in flight: object uploaded, row not committed yet.
	fresh := fmt.Sprintf("resumes/%d-incoming.pdf", time.Now().UnixNano())
	stale := fmt.Sprintf("resumes/%d-stale.pdf", time.Now().Add(-2*time.Hour).UnixNano())
	store := &memStorage{objects: map[string]bool{
		fresh:                   true,
		stale:                   true,
		"resumes/untracked.pdf": true,
	}}

	reaper := NewResumeReaper(repository.NewResumeRepository(db), store)
	require.NoError(t, reaper.Run(context.Background()))

	assert.True(t, store.objects[fresh], "objects inside the grace window must survive")
	assert.False(t, store.objects[stale], "old orphans are still removed")
	assert.True(t, store.objects["resumes/untracked.pdf"], "keys without a timestamp are left alone")
}

func TestReaperNoOrphans(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.ResumeSubmission{}))

	store := &memStorage{objects: map[string]bool{}}
	reaper := NewResumeReaper(repository.NewResumeRepository(db), store)
	require.NoError(t, reaper.Run(context.Background()))
	assert.Empty(t, store.objects)
}

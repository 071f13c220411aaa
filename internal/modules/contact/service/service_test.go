package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"questlab.io/studiosite/internal/entity"
	"questlab.io/studiosite/internal/modules/contact/repository"
	"questlab.io/studiosite/pkg/apperror"
)

func setupService(t *testing.T) (ContactService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.ContactMessage{}))

	return NewContactService(repository.NewContactRepository(db), nil, ""), db
}

func TestSubmitStoresMessage(t *testing.T) {
	svc, db := setupService(t)

	id, err := svc.Submit(context.Background(), ContactForm{
		Name:    "Ram Shrestha",
		Email:   "Ram.Shrestha@Example.COM",
		Message: "I would like to know more about your courses.",
	}, "203.0.113.7", "Mozilla/5.0")
	require.NoError(t, err)
	assert.NotEqual(t, BlockedID, id)

	var msg entity.ContactMessage
	require.NoError(t, db.First(&msg, "id = ?", id).Error)
	assert.Equal(t, "ram.shrestha@example.com", msg.Email)
	require.NotNil(t, msg.IP)
	assert.Equal(t, "203.0.113.7", *msg.IP)
}

func TestSubmitHoneypotStoresNothing(t *testing.T) {
	svc, db := setupService(t)

	id, err := svc.Submit(context.Background(), ContactForm{
		Name:    "Bot",
		Email:   "bot@spam.example",
		Message: "Buy cheap things online today!!",
		Website: "https://spam.example",
	}, "", "")
	require.NoError(t, err)
	assert.Equal(t, BlockedID, id)

	var count int64
	require.NoError(t, db.Model(&entity.ContactMessage{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitStripsMarkup(t *testing.T) {
	svc, db := setupService(t)

	id, err := svc.Submit(context.Background(), ContactForm{
		Name:    "Ram <script>alert(1)</script>",
		Email:   "ram@example.com",
		Message: "Hello <b>there</b>, this message has markup.",
	}, "", "")
	require.NoError(t, err)

	var msg entity.ContactMessage
	require.NoError(t, db.First(&msg, "id = ?", id).Error)
	assert.NotContains(t, msg.Name, "<script>")
	assert.NotContains(t, msg.Message, "<b>")
}

func TestDeleteMissingMessage(t *testing.T) {
	svc, _ := setupService(t)

	err := svc.Delete(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

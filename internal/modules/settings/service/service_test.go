package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"questlab.io/studiosite/internal/cache"
	"questlab.io/studiosite/internal/entity"
	"questlab.io/studiosite/internal/modules/settings/dto"
	"questlab.io/studiosite/internal/modules/settings/repository"
	"questlab.io/studiosite/pkg/apperror"
)

func setupService(t *testing.T, seed bool) (SettingsService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.SiteSettings{}))

	if seed {
		require.NoError(t, db.Create(&entity.SiteSettings{
			Email:         "hello@questlab.studio",
			ContactNumber: "+977-1-5555555",
			Location:      "Kathmandu, Nepal",
		}).Error)
	}

	return NewSettingsService(repository.NewSettingsRepository(db), cache.NewInvalidator(nil)), db
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc, _ := setupService(t, true)

	email := "contact@questlab.studio"
	updated, err := svc.Update(context.Background(), dto.UpdateSettingsRequest{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, email, updated.Email)
	assert.Equal(t, "Kathmandu, Nepal", updated.Location)
}

func TestUpdateClearsOptionalField(t *testing.T) {
	svc, db := setupService(t, true)
	ctx := context.Background()

	url := "https://linkedin.com/company/questlab"
	_, err := svc.Update(ctx, dto.UpdateSettingsRequest{LinkedinURL: &url})
	require.NoError(t, err)

	empty := ""
	updated, err := svc.Update(ctx, dto.UpdateSettingsRequest{LinkedinURL: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.LinkedinURL)

	var stored entity.SiteSettings
	require.NoError(t, db.First(&stored).Error)
	assert.Nil(t, stored.LinkedinURL)
}

func TestGetWithoutRowReportsIntegrity(t *testing.T) {
	svc, _ := setupService(t, false)

	_, err := svc.Get(context.Background())
	assert.True(t, errors.Is(err, apperror.ErrSettingsIntegrity))
}

func TestUpdateRejectsDuplicateRows(t *testing.T) {
	svc, db := setupService(t, true)

	require.NoError(t, db.Create(&entity.SiteSettings{
		Email:         "second@questlab.studio",
		ContactNumber: "+977-1-4444444",
		Location:      "Pokhara, Nepal",
	}).Error)

	email := "contact@questlab.studio"
	_, err := svc.Update(context.Background(), dto.UpdateSettingsRequest{Email: &email})
	assert.True(t, errors.Is(err, apperror.ErrSettingsIntegrity))
}

func TestGetPublicSubset(t *testing.T) {
	svc, _ := setupService(t, true)

	public, err := svc.GetPublic(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello@questlab.studio", public.Email)
	assert.Equal(t, "Kathmandu, Nepal", public.Location)
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"questlab.io/studiosite/internal/entity"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*entity.SiteSettings, error)
	Save(ctx context.Context, settings *entity.SiteSettings) error
	Count(ctx context.Context) (int64, error)
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*entity.SiteSettings, error) {
	var settings entity.SiteSettings
	if err := r.db.WithContext(ctx).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *entity.SiteSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

func (r *settingsRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.SiteSettings{}).Count(&count).Error
	return count, err
}

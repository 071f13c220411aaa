package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"questlab.io/studiosite/internal/cache"
	"questlab.io/studiosite/internal/entity"
	"questlab.io/studiosite/internal/modules/settings/dto"
	"questlab.io/studiosite/internal/modules/settings/repository"
	"questlab.io/studiosite/pkg/apperror"
)

type SettingsService interface {
	Get(ctx context.Context) (*entity.SiteSettings, error)
	GetPublic(ctx context.Context) (*dto.PublicSettings, error)
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (*entity.SiteSettings, error)
}

type settingsService struct {
	repo        repository.SettingsRepository
	invalidator *cache.Invalidator
}

func NewSettingsService(repo repository.SettingsRepository, invalidator *cache.Invalidator) SettingsService {
	return &settingsService{repo: repo, invalidator: invalidator}
}

func (s *settingsService) Get(ctx context.Context) (*entity.SiteSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: settings row is missing", apperror.ErrSettingsIntegrity)
		}
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) GetPublic(ctx context.Context) (*dto.PublicSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PublicSettings{
		Email:          settings.Email,
		ContactNumber:  settings.ContactNumber,
		Location:       settings.Location,
		LocationMapURL: settings.LocationMapURL,
		WhatsappNumber: settings.WhatsappNumber,
		LinkedinURL:    settings.LinkedinURL,
		InstagramURL:   settings.InstagramURL,
		FacebookURL:    settings.FacebookURL,
		YoutubeURL:     settings.YoutubeURL,
	}, nil
}

// Update patches the singleton row. The row count is verified around the
// write so a broken seed or a stray second row is caught instead of silently
// served.
func (s *settingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (*entity.SiteSettings, error) {
	if err := s.checkSingleton(ctx); err != nil {
		return nil, err
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		settings.Email = *req.Email
	}
	if req.ContactNumber != nil {
		settings.ContactNumber = *req.ContactNumber
	}
	if req.Location != nil {
		settings.Location = *req.Location
	}
	if req.LocationMapURL != nil {
		settings.LocationMapURL = emptyToNil(req.LocationMapURL)
	}
	if req.WhatsappNumber != nil {
		settings.WhatsappNumber = emptyToNil(req.WhatsappNumber)
	}
	if req.LinkedinURL != nil {
		settings.LinkedinURL = emptyToNil(req.LinkedinURL)
	}
	if req.InstagramURL != nil {
		settings.InstagramURL = emptyToNil(req.InstagramURL)
	}
	if req.FacebookURL != nil {
		settings.FacebookURL = emptyToNil(req.FacebookURL)
	}
	if req.YoutubeURL != nil {
		settings.YoutubeURL = emptyToNil(req.YoutubeURL)
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	if err := s.checkSingleton(ctx); err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx, "settings")
	return settings, nil
}

func (s *settingsService) checkSingleton(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count != 1 {
		return fmt.Errorf("%w: expected exactly one settings row, found %d", apperror.ErrSettingsIntegrity, count)
	}
	return nil
}

func emptyToNil(v *string) *string {
	if *v == "" {
		return nil
	}
	return v
}

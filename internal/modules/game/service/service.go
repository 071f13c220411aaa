package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"questlab.io/studiosite/internal/cache"
	"questlab.io/studiosite/internal/entity"
	"questlab.io/studiosite/internal/modules/game/dto"
	"questlab.io/studiosite/internal/modules/game/repository"
	search "questlab.io/studiosite/internal/modules/search/service"
	"questlab.io/studiosite/pkg/apperror"
	"questlab.io/studiosite/pkg/slugify"
)

type GameService interface {
	Create(ctx context.Context, req dto.CreateGameRequest) (*entity.Game, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateGameRequest) (*entity.Game, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Game, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Game, error)
	ListPublic(ctx context.Context, filter dto.GameFilter) ([]*entity.Game, error)
	ListAdmin(ctx context.Context) ([]*entity.Game, error)
}

type gameService struct {
	repo   repository.GameRepository
	cache  *cache.Invalidator
	search search.SearchService
}

func NewGameService(repo repository.GameRepository, inv *cache.Invalidator, searchSvc search.SearchService) GameService {
	return &gameService{repo: repo, cache: inv, search: searchSvc}
}

func (s *gameService) Create(ctx context.Context, req dto.CreateGameRequest) (*entity.Game, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = slugify.Make(req.Name)
	}

	taken, err := s.repo.SlugExists(ctx, slug, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("slug probe failed: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: game slug %q is taken", apperror.ErrConflict, slug)
	}

	heroStats, err := marshalStats(req.HeroStats)
	if err != nil {
		return nil, err
	}

	game := &entity.Game{
		Name:                strings.TrimSpace(req.Name),
		Slug:                slug,
		Tagline:             strings.TrimSpace(req.Tagline),
		Description:         strings.TrimSpace(req.Description),
		LongDescription:     req.LongDescription,
		Genre:               req.Genre,
		Category:            req.Category,
		ThumbnailURL:        req.ThumbnailURL,
		Screenshots:         req.Screenshots,
		PlayStoreURL:        req.PlayStoreURL,
		AppStoreURL:         req.AppStoreURL,
		WebURL:              req.WebURL,
		TrailerURL:          req.TrailerURL,
		ReleaseDate:         req.ReleaseDate,
		Status:              req.Status,
		IsPublished:         req.IsPublished,
		Featured:            req.Featured,
		HeroStats:           heroStats,
		AccentColor:         req.AccentColor,
		HeroBackgroundImage: req.HeroBackgroundImage,
	}

	if err := s.repo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s.afterWrite(ctx, game)
	return game, nil
}

func (s *gameService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateGameRequest) (*entity.Game, error) {
	game, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	oldSlug := game.Slug

	if req.Slug != nil && *req.Slug != game.Slug {
		slug := strings.TrimSpace(*req.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug cannot be empty", apperror.ErrInvalidInput)
		}
		taken, err := s.repo.SlugExists(ctx, slug, game.ID)
		if err != nil {
			return nil, fmt.Errorf("slug probe failed: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%w: game slug %q is taken", apperror.ErrConflict, slug)
		}
		game.Slug = slug
	}

	if req.Name != nil {
		game.Name = strings.TrimSpace(*req.Name)
	}
	if req.Tagline != nil {
		game.Tagline = strings.TrimSpace(*req.Tagline)
	}
	if req.Description != nil {
		game.Description = strings.TrimSpace(*req.Description)
	}
	if req.LongDescription != nil {
		game.LongDescription = *req.LongDescription
	}
	if req.Genre != nil {
		game.Genre = *req.Genre
	}
	if req.Category != nil {
		game.Category = *req.Category
	}
	if req.ThumbnailURL != nil {
		game.ThumbnailURL = *req.ThumbnailURL
	}
	if req.Screenshots != nil {
		game.Screenshots = req.Screenshots
	}
	if req.PlayStoreURL != nil {
		game.PlayStoreURL = req.PlayStoreURL
	}
	if req.AppStoreURL != nil {
		game.AppStoreURL = req.AppStoreURL
	}
	if req.WebURL != nil {
		game.WebURL = req.WebURL
	}
	if req.TrailerURL != nil {
		game.TrailerURL = req.TrailerURL
	}
	if req.ReleaseDate != nil {
		game.ReleaseDate = req.ReleaseDate
	}
	if req.Status != nil {
		game.Status = *req.Status
	}
	if req.IsPublished != nil {
		game.IsPublished = *req.IsPublished
	}
	if req.Featured != nil {
		game.Featured = *req.Featured
	}
	if req.HeroStats != nil {
		heroStats, err := marshalStats(req.HeroStats)
		if err != nil {
			return nil, err
		}
		game.HeroStats = heroStats
	}
	if req.AccentColor != nil {
		game.AccentColor = *req.AccentColor
	}
	if req.HeroBackgroundImage != nil {
		game.HeroBackgroundImage = req.HeroBackgroundImage
	}

	if err := s.repo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if oldSlug != game.Slug {
		s.cache.Invalidate(ctx, "games:"+oldSlug)
	}
	s.afterWrite(ctx, game)
	return game, nil
}

func (s *gameService) Delete(ctx context.Context, id uuid.UUID) error {
	game, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	s.cache.Invalidate(ctx, "games", "games:"+game.Slug, "featured")
	if err := s.search.Delete(game.ID.String()); err != nil {
		log.Printf("[Search]: %v", err)
	}
	return nil
}

func (s *gameService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	game, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return game, nil
}

func (s *gameService) GetBySlug(ctx context.Context, slug string) (*entity.Game, error) {
	game, err := s.repo.FindBySlug(ctx, slug, true)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return game, nil
}

func (s *gameService) ListPublic(ctx context.Context, filter dto.GameFilter) ([]*entity.Game, error) {
	return s.repo.FindAll(ctx, repository.GameFilter{
		PublishedOnly: true,
		Featured:      filter.Featured,
		Status:        filter.Status,
	})
}

func (s *gameService) ListAdmin(ctx context.Context) ([]*entity.Game, error) {
	return s.repo.FindAll(ctx, repository.GameFilter{})
}

func (s *gameService) afterWrite(ctx context.Context, game *entity.Game) {
	s.cache.Invalidate(ctx, "games", "games:"+game.Slug, "featured")

	var err error
	if game.IsPublished {
		err = s.search.IndexGame(game)
	} else {
		err = s.search.Delete(game.ID.String())
	}
	if err != nil {
		log.Printf("[Search]: %v", err)
	}
}

func marshalStats(stats map[string]string) (datatypes.JSON, error) {
	if stats == nil {
		return nil, nil
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrInvalidInput, err)
	}
	return datatypes.JSON(raw), nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return err
}

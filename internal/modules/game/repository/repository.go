package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"questlab.io/studiosite/internal/entity"
)

type GameFilter struct {
	PublishedOnly bool
	Featured      *bool
	Status        string
}

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error)
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*entity.Game, error)
	FindAll(ctx context.Context, filter GameFilter) ([]*entity.Game, error)
	Update(ctx context.Context, game *entity.Game) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *entity.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gameRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	var game entity.Game
	if err := r.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*entity.Game, error) {
	query := r.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var game entity.Game
	if err := query.First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindAll(ctx context.Context, filter GameFilter) ([]*entity.Game, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")

	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var games []*entity.Game
	if err := query.Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) Update(ctx context.Context, game *entity.Game) error {
	return r.db.WithContext(ctx).Save(game).Error
}

func (r *gameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Game{}, "id = ?", id).Error
}

func (r *gameRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&entity.Game{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"questlab.io/studiosite/internal/entity"
)

type CourseFilter struct {
	PublishedOnly bool
	Featured      *bool
	SkillLevel    string
}

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error)
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*entity.Course, error)
	FindAll(ctx context.Context, filter CourseFilter) ([]*entity.Course, error)
	Update(ctx context.Context, course *entity.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *entity.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	var course entity.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*entity.Course, error) {
	query := r.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var course entity.Course
	if err := query.First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAll(ctx context.Context, filter CourseFilter) ([]*entity.Course, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")

	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.SkillLevel != "" {
		query = query.Where("skill_level = ?", filter.SkillLevel)
	}

	var courses []*entity.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Update(ctx context.Context, course *entity.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Course{}, "id = ?", id).Error
}

func (r *courseRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&entity.Course{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"questlab.io/studiosite/internal/entity"
)

type JobFilter struct {
	PublishedOnly  bool
	Department     string
	EmploymentType string
}

type JobRepository interface {
	Create(ctx context.Context, job *entity.JobPosting) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.JobPosting, error)
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*entity.JobPosting, error)
	FindAll(ctx context.Context, filter JobFilter) ([]*entity.JobPosting, error)
	Update(ctx context.Context, job *entity.JobPosting) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *entity.JobPosting) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JobPosting, error) {
	var job entity.JobPosting
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*entity.JobPosting, error) {
	query := r.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var job entity.JobPosting
	if err := query.First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindAll(ctx context.Context, filter JobFilter) ([]*entity.JobPosting, error) {
	// Careers pages sort by posting date, not row creation.
	query := r.db.WithContext(ctx).Order("posted_date DESC")

	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.EmploymentType != "" {
		query = query.Where("employment_type = ?", filter.EmploymentType)
	}

	var jobs []*entity.JobPosting
	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) Update(ctx context.Context, job *entity.JobPosting) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.JobPosting{}, "id = ?", id).Error
}

func (r *jobRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&entity.JobPosting{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

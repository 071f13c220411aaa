package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"questlab.io/studiosite/internal/entity"
	"questlab.io/studiosite/internal/modules/resume/dto"
)

type ResumeRepository interface {
	Create(ctx context.Context, sub *entity.ResumeSubmission) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ResumeSubmission, error)
	FindAll(ctx context.Context, filter dto.ResumeFilter) ([]*entity.ResumeSubmission, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ReferencedKeys returns every resume_key currently held by a row. The
	// storage reaper treats anything else under resumes/ as orphaned.
	ReferencedKeys(ctx context.Context) ([]string, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) Create(ctx context.Context, sub *entity.ResumeSubmission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *resumeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ResumeSubmission, error) {
	var sub entity.ResumeSubmission
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *resumeRepository) FindAll(ctx context.Context, filter dto.ResumeFilter) ([]*entity.ResumeSubmission, error) {
	query := r.db.WithContext(ctx).Model(&entity.ResumeSubmission{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var subs []*entity.ResumeSubmission
	if err := query.Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *resumeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.ResumeSubmission{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *resumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ResumeSubmission{}, "id = ?", id).Error
}

func (r *resumeRepository) ReferencedKeys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := r.db.WithContext(ctx).
		Model(&entity.ResumeSubmission{}).
		Pluck("resume_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

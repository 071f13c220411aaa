package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"questlab.io/studiosite/internal/entity"
)

type InquiryFilter struct {
	Status      string
	InquiryType string
}

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *entity.Inquiry) error
	// FindByID loads the inquiry with its referenced course, if any.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Inquiry, error)
	FindAll(ctx context.Context, filter InquiryFilter) ([]*entity.Inquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *entity.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Inquiry, error) {
	var inquiry entity.Inquiry
	if err := r.db.WithContext(ctx).Preload("Course").First(&inquiry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) FindAll(ctx context.Context, filter InquiryFilter) ([]*entity.Inquiry, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.InquiryType != "" {
		query = query.Where("inquiry_type = ?", filter.InquiryType)
	}

	var inquiries []*entity.Inquiry
	if err := query.Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).Model(&entity.Inquiry{}).
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

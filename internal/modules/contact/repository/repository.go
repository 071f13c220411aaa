package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"questlab.io/studiosite/internal/entity"
)

type ContactRepository interface {
	Create(ctx context.Context, msg *entity.ContactMessage) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ContactMessage, error)
	FindAll(ctx context.Context) ([]*entity.ContactMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *entity.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ContactMessage, error) {
	var msg entity.ContactMessage
	if err := r.db.WithContext(ctx).First(&msg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *contactRepository) FindAll(ctx context.Context) ([]*entity.ContactMessage, error) {
	var msgs []*entity.ContactMessage
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ContactMessage{}, "id = ?", id).Error
}

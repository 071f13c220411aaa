package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminUser is the allow-list of identities permitted into the admin surface.
// Rows are managed by seed/migration; the application only reads them and
// updates LastLogin.
type AdminUser struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (u *AdminUser) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ResumeStatusPending   = "pending"
	ResumeStatusReviewed  = "reviewed"
	ResumeStatusContacted = "contacted"
	ResumeStatusRejected  = "rejected"
)

// ResumeSubmission references an uploaded object through ResumeKey; deleting
// a submission must also delete the stored object.
type ResumeSubmission struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:255;not null;index" json:"email"`
	RoleLookingFor string    `gorm:"size:100;not null" json:"role_looking_for"`
	CoverLetter    *string   `gorm:"type:text" json:"cover_letter"`
	ResumeKey      string    `gorm:"size:500;not null" json:"resume_key"`
	Status         string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *ResumeSubmission) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	if r.Status == "" {
		r.Status = ResumeStatusPending
	}
	return
}

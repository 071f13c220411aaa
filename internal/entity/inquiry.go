package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InquiryTypeGeneral     = "general"
	InquiryTypeCourse      = "course"
	InquiryTypeCareer      = "career"
	InquiryTypePartnership = "partnership"

	InquiryStatusNew        = "new"
	InquiryStatusInProgress = "in_progress"
	InquiryStatusResolved   = "resolved"
)

type Inquiry struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Email       string     `gorm:"size:255;not null;index" json:"email"`
	Phone       *string    `gorm:"size:30" json:"phone"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	InquiryType string     `gorm:"size:20;not null;default:'general'" json:"inquiry_type"`
	CourseID    *uuid.UUID `gorm:"type:uuid" json:"course_id"`
	Course      *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Status      string     `gorm:"size:20;not null;default:'new';index" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID, err = uuid.NewV7()
	}
	if i.Status == "" {
		i.Status = InquiryStatusNew
	}
	return
}

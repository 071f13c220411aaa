package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiteSettings is a singleton row: exactly one record must exist at all
// times. Only read and update are exposed at the service layer; the row is
// seeded once at deployment.
type SiteSettings struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string    `gorm:"size:255;not null" json:"email"`
	ContactNumber  string    `gorm:"size:30;not null" json:"contact_number"`
	Location       string    `gorm:"size:300;not null" json:"location"`
	LocationMapURL *string   `gorm:"size:500" json:"location_map_url"`
	WhatsappNumber *string   `gorm:"size:30" json:"whatsapp_number"`
	LinkedinURL    *string   `gorm:"size:500" json:"linkedin_url"`
	InstagramURL   *string   `gorm:"size:500" json:"instagram_url"`
	FacebookURL    *string   `gorm:"size:500" json:"facebook_url"`
	YoutubeURL     *string   `gorm:"size:500" json:"youtube_url"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *SiteSettings) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	GameStatusInDevelopment = "in_development"
	GameStatusComingSoon    = "coming_soon"
	GameStatusReleased      = "released"
)

type Game struct {
	ID                  uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name                string                      `gorm:"size:200;not null" json:"name"`
	Slug                string                      `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Tagline             string                      `gorm:"size:300" json:"tagline"`
	Description         string                      `gorm:"type:text" json:"description"`
	LongDescription     string                      `gorm:"type:text" json:"long_description"`
	Genre               string                      `gorm:"size:100" json:"genre"`
	Category            string                      `gorm:"size:100" json:"category"`
	ThumbnailURL        string                      `gorm:"size:500" json:"thumbnail_url"`
	Screenshots         datatypes.JSONSlice[string] `json:"screenshots"`
	PlayStoreURL        *string                     `gorm:"size:500" json:"play_store_url"`
	AppStoreURL         *string                     `gorm:"size:500" json:"app_store_url"`
	WebURL              *string                     `gorm:"size:500" json:"web_url"`
	TrailerURL          *string                     `gorm:"size:500" json:"trailer_url"`
	ReleaseDate         *time.Time                  `json:"release_date"`
	Status              string                      `gorm:"size:20;default:'in_development'" json:"status"`
	IsPublished         bool                        `gorm:"default:false;index" json:"is_published"`
	Featured            bool                        `gorm:"default:false" json:"featured"`
	HeroStats           datatypes.JSON              `json:"hero_stats"`
	AccentColor         string                      `gorm:"size:20" json:"accent_color"`
	HeroBackgroundImage *string                     `gorm:"size:500" json:"hero_background_image"`
	CreatedAt           time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID, err = uuid.NewV7()
	}
	return
}

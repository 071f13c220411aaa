package dto

import "time"

type CreateGameRequest struct {
	Name                string            `json:"name" binding:"required,min=2,max=200"`
	Slug                string            `json:"slug" binding:"omitempty,max=200"`
	Tagline             string            `json:"tagline" binding:"omitempty,max=300"`
	Description         string            `json:"description" binding:"required,max=2000"`
	LongDescription     string            `json:"long_description" binding:"omitempty,max=20000"`
	Genre               string            `json:"genre" binding:"omitempty,max=100"`
	Category            string            `json:"category" binding:"omitempty,max=100"`
	ThumbnailURL        string            `json:"thumbnail_url" binding:"omitempty,url,max=500"`
	Screenshots         []string          `json:"screenshots" binding:"omitempty,dive,max=500"`
	PlayStoreURL        *string           `json:"play_store_url" binding:"omitempty,url,max=500"`
	AppStoreURL         *string           `json:"app_store_url" binding:"omitempty,url,max=500"`
	WebURL              *string           `json:"web_url" binding:"omitempty,url,max=500"`
	TrailerURL          *string           `json:"trailer_url" binding:"omitempty,url,max=500"`
	ReleaseDate         *time.Time        `json:"release_date"`
	Status              string            `json:"status" binding:"required,oneof=in_development coming_soon released"`
	IsPublished         bool              `json:"is_published"`
	Featured            bool              `json:"featured"`
	HeroStats           map[string]string `json:"hero_stats"`
	AccentColor         string            `json:"accent_color" binding:"omitempty,max=20"`
	HeroBackgroundImage *string           `json:"hero_background_image" binding:"omitempty,url,max=500"`
}

type UpdateGameRequest struct {
	Name                *string           `json:"name" binding:"omitempty,min=2,max=200"`
	Slug                *string           `json:"slug" binding:"omitempty,max=200"`
	Tagline             *string           `json:"tagline" binding:"omitempty,max=300"`
	Description         *string           `json:"description" binding:"omitempty,max=2000"`
	LongDescription     *string           `json:"long_description" binding:"omitempty,max=20000"`
	Genre               *string           `json:"genre" binding:"omitempty,max=100"`
	Category            *string           `json:"category" binding:"omitempty,max=100"`
	ThumbnailURL        *string           `json:"thumbnail_url" binding:"omitempty,url,max=500"`
	Screenshots         []string          `json:"screenshots" binding:"omitempty,dive,max=500"`
	PlayStoreURL        *string           `json:"play_store_url" binding:"omitempty,url,max=500"`
	AppStoreURL         *string           `json:"app_store_url" binding:"omitempty,url,max=500"`
	WebURL              *string           `json:"web_url" binding:"omitempty,url,max=500"`
	TrailerURL          *string           `json:"trailer_url" binding:"omitempty,url,max=500"`
	ReleaseDate         *time.Time        `json:"release_date"`
	Status              *string           `json:"status" binding:"omitempty,oneof=in_development coming_soon released"`
	IsPublished         *bool             `json:"is_published"`
	Featured            *bool             `json:"featured"`
	HeroStats           map[string]string `json:"hero_stats"`
	AccentColor         *string           `json:"accent_color" binding:"omitempty,max=20"`
	HeroBackgroundImage *string           `json:"hero_background_image" binding:"omitempty,url,max=500"`
}

type GameFilter struct {
	Featured *bool  `form:"featured"`
	Status   string `form:"status" binding:"omitempty,oneof=in_development coming_soon released"`
}

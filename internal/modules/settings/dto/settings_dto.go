package dto

// UpdateSettingsRequest patches the settings row. Absent fields are left
// untouched; a present-but-empty optional URL clears the value.
type UpdateSettingsRequest struct {
	Email          *string `json:"email" binding:"omitempty,email,max=255"`
	ContactNumber  *string `json:"contact_number" binding:"omitempty,min=5,max=30"`
	Location       *string `json:"location" binding:"omitempty,min=2,max=300"`
	LocationMapURL *string `json:"location_map_url" binding:"omitempty,max=500"`
	WhatsappNumber *string `json:"whatsapp_number" binding:"omitempty,max=30"`
	LinkedinURL    *string `json:"linkedin_url" binding:"omitempty,max=500"`
	InstagramURL   *string `json:"instagram_url" binding:"omitempty,max=500"`
	FacebookURL    *string `json:"facebook_url" binding:"omitempty,max=500"`
	YoutubeURL     *string `json:"youtube_url" binding:"omitempty,max=500"`
}

// PublicSettings is the subset exposed on the public site (footer and
// contact page).
type PublicSettings struct {
	Email          string  `json:"email"`
	ContactNumber  string  `json:"contact_number"`
	Location       string  `json:"location"`
	LocationMapURL *string `json:"location_map_url"`
	WhatsappNumber *string `json:"whatsapp_number"`
	LinkedinURL    *string `json:"linkedin_url"`
	InstagramURL   *string `json:"instagram_url"`
	FacebookURL    *string `json:"facebook_url"`
	YoutubeURL     *string `json:"youtube_url"`
}

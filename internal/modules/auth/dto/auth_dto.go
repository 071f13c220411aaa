package dto

import "time"

type LoginInput struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"last_login"`
	ExpiresIn int64      `json:"expires_in"`
}

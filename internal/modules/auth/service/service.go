package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"questlab.io/studiosite/internal/entity"
	"questlab.io/studiosite/internal/modules/auth/dto"
	"questlab.io/studiosite/internal/modules/auth/repository"
	"questlab.io/studiosite/pkg/apperror"
)

type AuthService interface {
	// Login validates credentials against the allow-list and returns a signed
	// session token. Invalid email and invalid password are indistinguishable
	// to the caller.
	Login(ctx context.Context, input dto.LoginInput) (string, *dto.SessionResponse, error)
	Me(ctx context.Context, adminID string) (*entity.AdminUser, error)
	TokenTTL() time.Duration
}

type authService struct {
	repo     repository.AdminRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.AdminRepository) AuthService {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	ttl := 12 * time.Hour
	if ttlStr := os.Getenv("SESSION_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: ttl,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (string, *dto.SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
		}
		return "", nil, err
	}

	if !admin.IsActive {
		return "", nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   admin.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := s.repo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		// Not worth failing the login over.
		log.Printf("[Auth]: failed to update last_login for %s: %v", admin.Email, err)
	}

	return token, &dto.SessionResponse{
		Email:     admin.Email,
		LastLogin: admin.LastLogin,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

func (s *authService) Me(ctx context.Context, adminID string) (*entity.AdminUser, error) {
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}
	return admin, nil
}

func (s *authService) TokenTTL() time.Duration {
	return s.tokenTTL
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"questlab.io/studiosite/internal/entity"
	"questlab.io/studiosite/internal/modules/contact/repository"
	"questlab.io/studiosite/pkg/apperror"
	"questlab.io/studiosite/pkg/mailer"
)

// BlockedID is the sentinel returned for honeypot-caught submissions. The
// response is success-shaped so bots cannot tell they were filtered.
const BlockedID = "blocked"

// ContactForm is the public contact submission payload. Website is the
// honeypot: hidden from humans, filled in by bots.
type ContactForm struct {
	Name    string  `json:"name" binding:"required,min=2,max=100"`
	Email   string  `json:"email" binding:"required,email,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Subject *string `json:"subject" binding:"omitempty,max=200"`
	Message string  `json:"message" binding:"required,min=10,max=2000"`
	Website string  `json:"website"`
}

type ContactService interface {
	Submit(ctx context.Context, form ContactForm, ip, userAgent string) (string, error)
	List(ctx context.Context) ([]*entity.ContactMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contactService struct {
	repo      repository.ContactRepository
	mail      mailer.Mailer
	notifyTo  string
	sanitizer *bluemonday.Policy
}

func NewContactService(repo repository.ContactRepository, mail mailer.Mailer, notifyTo string) ContactService {
	return &contactService{
		repo:      repo,
		mail:      mail,
		notifyTo:  notifyTo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *contactService) Submit(ctx context.Context, form ContactForm, ip, userAgent string) (string, error) {
	if form.Website != "" {
		return BlockedID, nil
	}

	msg := &entity.ContactMessage{
		Name:    strings.TrimSpace(s.sanitizer.Sanitize(form.Name)),
		Email:   strings.ToLower(strings.TrimSpace(form.Email)),
		Message: strings.TrimSpace(s.sanitizer.Sanitize(form.Message)),
	}
	if form.Phone != nil {
		phone := strings.TrimSpace(*form.Phone)
		msg.Phone = &phone
	}
	if form.Subject != nil {
		subject := strings.TrimSpace(s.sanitizer.Sanitize(*form.Subject))
		msg.Subject = &subject
	}
	if ip != "" {
		msg.IP = &ip
	}
	if userAgent != "" {
		msg.UserAgent = &userAgent
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to store contact message: %w", err)
	}

	subject := "New contact message from " + msg.Name
	body := fmt.Sprintf(`
		<p><strong>%s</strong> (%s) wrote:</p>
		<div class="info-box">%s</div>
	`, msg.Name, msg.Email, msg.Message)
	mailer.Dispatch(s.mail, s.notifyTo, subject, body)

	return msg.ID.String(), nil
}

func (s *contactService) List(ctx context.Context) ([]*entity.ContactMessage, error) {
	return s.repo.FindAll(ctx)
}

func (s *contactService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

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
	contact "questlab.io/studiosite/internal/modules/contact/service"
	courseRepo "questlab.io/studiosite/internal/modules/course/repository"
	"questlab.io/studiosite/internal/modules/inquiry/dto"
	"questlab.io/studiosite/internal/modules/inquiry/repository"
	"questlab.io/studiosite/pkg/apperror"
	"questlab.io/studiosite/pkg/mailer"
)

type InquiryService interface {
	Submit(ctx context.Context, req dto.SubmitInquiryRequest) (string, error)
	List(ctx context.Context, filter dto.InquiryFilter) ([]*entity.Inquiry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Inquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Inquiry, error)
}

type inquiryService struct {
	repo      repository.InquiryRepository
	courses   courseRepo.CourseRepository
	mail      mailer.Mailer
	notifyTo  string
	sanitizer *bluemonday.Policy
}

func NewInquiryService(repo repository.InquiryRepository, courses courseRepo.CourseRepository, mail mailer.Mailer, notifyTo string) InquiryService {
	return &inquiryService{
		repo:      repo,
		courses:   courses,
		mail:      mail,
		notifyTo:  notifyTo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *inquiryService) Submit(ctx context.Context, req dto.SubmitInquiryRequest) (string, error) {
	if req.Website != "" {
		return contact.BlockedID, nil
	}

	inquiry := &entity.Inquiry{
		Name:        strings.TrimSpace(s.sanitizer.Sanitize(req.Name)),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Message:     strings.TrimSpace(s.sanitizer.Sanitize(req.Message)),
		InquiryType: req.InquiryType,
		Status:      entity.InquiryStatusNew,
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		inquiry.Phone = &phone
	}

	// A course reference must point at something real.
	if req.CourseID != nil && *req.CourseID != "" {
		courseID, err := uuid.Parse(*req.CourseID)
		if err != nil {
			return "", fmt.Errorf("%w: invalid course id", apperror.ErrInvalidInput)
		}
		if _, err := s.courses.FindByID(ctx, courseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", fmt.Errorf("%w: course does not exist", apperror.ErrInvalidInput)
			}
			return "", err
		}
		inquiry.CourseID = &courseID
	}

	if err := s.repo.Create(ctx, inquiry); err != nil {
		return "", fmt.Errorf("failed to store inquiry: %w", err)
	}

	subject := fmt.Sprintf("New %s inquiry from %s", inquiry.InquiryType, inquiry.Name)
	body := fmt.Sprintf(`
		<p><strong>%s</strong> (%s) sent a %s inquiry:</p>
		<div class="info-box">%s</div>
	`, inquiry.Name, inquiry.Email, inquiry.InquiryType, inquiry.Message)
	mailer.Dispatch(s.mail, s.notifyTo, subject, body)

	return inquiry.ID.String(), nil
}

func (s *inquiryService) List(ctx context.Context, filter dto.InquiryFilter) ([]*entity.Inquiry, error) {
	return s.repo.FindAll(ctx, repository.InquiryFilter{
		Status:      filter.Status,
		InquiryType: filter.InquiryType,
	})
}

func (s *inquiryService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Inquiry, error) {
	inquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return inquiry, nil
}

// UpdateStatus sets any valid status; no transition graph is enforced so
// admins can move an inquiry back if it was resolved by mistake.
func (s *inquiryService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Inquiry, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update inquiry status: %w", err)
	}
	return s.GetByID(ctx, id)
}

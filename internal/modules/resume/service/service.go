package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"questlab.io/studiosite/internal/entity"
	contact "questlab.io/studiosite/internal/modules/contact/service"
	"questlab.io/studiosite/internal/modules/resume/dto"
	"questlab.io/studiosite/internal/modules/resume/repository"
	"questlab.io/studiosite/pkg/apperror"
	"questlab.io/studiosite/pkg/mailer"
	"questlab.io/studiosite/pkg/storage"
)

// DownloadTTL is how long an admin download link stays valid.
const DownloadTTL = time.Hour

type ResumeService interface {
	Submit(ctx context.Context, req dto.SubmitResumeRequest, file io.Reader, fileName string) (string, error)
	List(ctx context.Context, filter dto.ResumeFilter) ([]*entity.ResumeSubmission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ResumeSubmission, error)
	DownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.ResumeSubmission, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type resumeService struct {
	repo      repository.ResumeRepository
	store     storage.ObjectStorage
	mail      mailer.Mailer
	notifyTo  string
	sanitizer *bluemonday.Policy
}

func NewResumeService(repo repository.ResumeRepository, store storage.ObjectStorage, mail mailer.Mailer, notifyTo string) ResumeService {
	return &resumeService{
		repo:      repo,
		store:     store,
		mail:      mail,
		notifyTo:  notifyTo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Submit uploads the file before writing the row, so a stored row always
// references an object that exists. An upload failure fails the request.
func (s *resumeService) Submit(ctx context.Context, req dto.SubmitResumeRequest, file io.Reader, fileName string) (string, error) {
	if req.Website != "" {
		return contact.BlockedID, nil
	}

	if s.store == nil {
		return "", fmt.Errorf("%w: object storage is not configured", apperror.ErrInternal)
	}

	key, err := s.store.Upload(ctx, file, "resumes", fileName)
	if err != nil {
		return "", fmt.Errorf("failed to upload resume: %w", err)
	}

	sub := &entity.ResumeSubmission{
		Name:           strings.TrimSpace(s.sanitizer.Sanitize(req.Name)),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		RoleLookingFor: strings.TrimSpace(s.sanitizer.Sanitize(req.RoleLookingFor)),
		ResumeKey:      key,
	}
	if req.CoverLetter != nil {
		letter := strings.TrimSpace(s.sanitizer.Sanitize(*req.CoverLetter))
		sub.CoverLetter = &letter
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		// The object is now orphaned; the reaper will collect it.
		return "", fmt.Errorf("failed to store resume submission: %w", err)
	}

	subject := "New application: " + sub.RoleLookingFor
	body := fmt.Sprintf(`
		<p><strong>%s</strong> (%s) applied for <strong>%s</strong>.</p>
		<div class="info-box">Resume key: %s</div>
	`, sub.Name, sub.Email, sub.RoleLookingFor, sub.ResumeKey)
	mailer.Dispatch(s.mail, s.notifyTo, subject, body)

	return sub.ID.String(), nil
}

func (s *resumeService) List(ctx context.Context, filter dto.ResumeFilter) ([]*entity.ResumeSubmission, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *resumeService) GetByID(ctx context.Context, id uuid.UUID) (*entity.ResumeSubmission, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return sub, nil
}

func (s *resumeService) DownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", mapNotFound(err)
	}

	url, err := s.store.SignedURL(sub.ResumeKey, DownloadTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign resume url: %w", err)
	}
	return url, nil
}

func (s *resumeService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.ResumeSubmission, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, mapNotFound(err)
	}
	return s.repo.FindByID(ctx, id)
}

// Delete removes the row and then the stored object. A storage failure after
// the row is gone is logged; the reaper covers the leftover.
func (s *resumeService) Delete(ctx context.Context, id uuid.UUID) error {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete resume submission: %w", err)
	}

	if err := s.store.Delete(ctx, sub.ResumeKey); err != nil {
		log.Printf("[resume] failed to delete object %s: %v", sub.ResumeKey, err)
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return err
}

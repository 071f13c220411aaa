package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"questlab.io/studiosite/internal/cache"
	"questlab.io/studiosite/internal/entity"
	"questlab.io/studiosite/internal/modules/job/dto"
	"questlab.io/studiosite/internal/modules/job/repository"
	search "questlab.io/studiosite/internal/modules/search/service"
	"questlab.io/studiosite/pkg/apperror"
	"questlab.io/studiosite/pkg/slugify"
)

type JobService interface {
	Create(ctx context.Context, req dto.CreateJobPostingRequest) (*entity.JobPosting, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateJobPostingRequest) (*entity.JobPosting, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.JobPosting, error)
	GetBySlug(ctx context.Context, slug string) (*entity.JobPosting, error)
	ListPublic(ctx context.Context, filter dto.JobFilter) ([]*entity.JobPosting, error)
	ListAdmin(ctx context.Context) ([]*entity.JobPosting, error)
}

type jobService struct {
	repo   repository.JobRepository
	cache  *cache.Invalidator
	search search.SearchService
}

func NewJobService(repo repository.JobRepository, inv *cache.Invalidator, searchSvc search.SearchService) JobService {
	return &jobService{repo: repo, cache: inv, search: searchSvc}
}

func (s *jobService) Create(ctx context.Context, req dto.CreateJobPostingRequest) (*entity.JobPosting, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = slugify.Make(req.Title)
	}

	taken, err := s.repo.SlugExists(ctx, slug, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("slug probe failed: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: job slug %q is taken", apperror.ErrConflict, slug)
	}

	var company, contact, similar datatypes.JSON
	if req.Company != nil {
		if company, err = marshalJSON(req.Company); err != nil {
			return nil, err
		}
	}
	if req.Contact != nil {
		if contact, err = marshalJSON(req.Contact); err != nil {
			return nil, err
		}
	}
	if req.SimilarJobs != nil {
		if similar, err = marshalJSON(req.SimilarJobs); err != nil {
			return nil, err
		}
	}

	job := &entity.JobPosting{
		Title:               strings.TrimSpace(req.Title),
		Slug:                slug,
		Department:          req.Department,
		Location:            req.Location,
		EmploymentType:      req.EmploymentType,
		Description:         req.Description,
		Requirements:        req.Requirements,
		Responsibilities:    req.Responsibilities,
		Benefits:            req.Benefits,
		NiceToHave:          req.NiceToHave,
		Company:             company,
		Contact:             contact,
		SimilarJobs:         similar,
		Salary:              req.Salary,
		ApplicationDeadline: req.ApplicationDeadline,
		VisaRequirements:    req.VisaRequirements,
		IsPublished:         req.IsPublished,
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job posting: %w", err)
	}

	s.afterWrite(ctx, job)
	return job, nil
}

func (s *jobService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateJobPostingRequest) (*entity.JobPosting, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	oldSlug := job.Slug

	if req.Slug != nil && *req.Slug != job.Slug {
		slug := strings.TrimSpace(*req.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug cannot be empty", apperror.ErrInvalidInput)
		}
		taken, err := s.repo.SlugExists(ctx, slug, job.ID)
		if err != nil {
			return nil, fmt.Errorf("slug probe failed: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%w: job slug %q is taken", apperror.ErrConflict, slug)
		}
		job.Slug = slug
	}

	if req.Title != nil {
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.Department != nil {
		job.Department = *req.Department
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.EmploymentType != nil {
		job.EmploymentType = *req.EmploymentType
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = req.Requirements
	}
	if req.Responsibilities != nil {
		job.Responsibilities = req.Responsibilities
	}
	if req.Benefits != nil {
		job.Benefits = req.Benefits
	}
	if req.NiceToHave != nil {
		job.NiceToHave = req.NiceToHave
	}
	if req.Company != nil {
		company, err := marshalJSON(req.Company)
		if err != nil {
			return nil, err
		}
		job.Company = company
	}
	if req.Contact != nil {
		contact, err := marshalJSON(req.Contact)
		if err != nil {
			return nil, err
		}
		job.Contact = contact
	}
	if req.SimilarJobs != nil {
		similar, err := marshalJSON(req.SimilarJobs)
		if err != nil {
			return nil, err
		}
		job.SimilarJobs = similar
	}
	if req.Salary != nil {
		job.Salary = req.Salary
	}
	if req.ApplicationDeadline != nil {
		job.ApplicationDeadline = req.ApplicationDeadline
	}
	if req.VisaRequirements != nil {
		job.VisaRequirements = req.VisaRequirements
	}
	if req.IsPublished != nil {
		job.IsPublished = *req.IsPublished
	}

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job posting: %w", err)
	}

	if oldSlug != job.Slug {
		s.cache.Invalidate(ctx, "jobs:"+oldSlug)
	}
	s.afterWrite(ctx, job)
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, id uuid.UUID) error {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete job posting: %w", err)
	}

	s.cache.Invalidate(ctx, "jobs", "jobs:"+job.Slug)
	if err := s.search.Delete(job.ID.String()); err != nil {
		log.Printf("[Search]: %v", err)
	}
	return nil
}

func (s *jobService) GetByID(ctx context.Context, id uuid.UUID) (*entity.JobPosting, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return job, nil
}

func (s *jobService) GetBySlug(ctx context.Context, slug string) (*entity.JobPosting, error) {
	job, err := s.repo.FindBySlug(ctx, slug, true)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return job, nil
}

func (s *jobService) ListPublic(ctx context.Context, filter dto.JobFilter) ([]*entity.JobPosting, error) {
	return s.repo.FindAll(ctx, repository.JobFilter{
		PublishedOnly:  true,
		Department:     filter.Department,
		EmploymentType: filter.EmploymentType,
	})
}

func (s *jobService) ListAdmin(ctx context.Context) ([]*entity.JobPosting, error) {
	return s.repo.FindAll(ctx, repository.JobFilter{})
}

func (s *jobService) afterWrite(ctx context.Context, job *entity.JobPosting) {
	s.cache.Invalidate(ctx, "jobs", "jobs:"+job.Slug)

	var err error
	if job.IsPublished {
		err = s.search.IndexJobPosting(job)
	} else {
		err = s.search.Delete(job.ID.String())
	}
	if err != nil {
		log.Printf("[Search]: %v", err)
	}
}

func marshalJSON(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrInvalidInput, err)
	}
	return datatypes.JSON(raw), nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return err
}

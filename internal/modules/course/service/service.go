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
	"questlab.io/studiosite/internal/modules/course/dto"
	"questlab.io/studiosite/internal/modules/course/repository"
	search "questlab.io/studiosite/internal/modules/search/service"
	"questlab.io/studiosite/pkg/apperror"
	"questlab.io/studiosite/pkg/slugify"
)

type CourseService interface {
	Create(ctx context.Context, req dto.CreateCourseRequest) (*entity.Course, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCourseRequest) (*entity.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Course, error)
	// GetBySlug only sees published rows; unpublished courses 404 here.
	GetBySlug(ctx context.Context, slug string) (*entity.Course, error)
	ListPublic(ctx context.Context, filter dto.CourseFilter) ([]*entity.Course, error)
	ListAdmin(ctx context.Context) ([]*entity.Course, error)
}

type courseService struct {
	repo   repository.CourseRepository
	cache  *cache.Invalidator
	search search.SearchService
}

func NewCourseService(repo repository.CourseRepository, inv *cache.Invalidator, searchSvc search.SearchService) CourseService {
	return &courseService{repo: repo, cache: inv, search: searchSvc}
}

func (s *courseService) Create(ctx context.Context, req dto.CreateCourseRequest) (*entity.Course, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = slugify.Make(req.Title)
	}

	taken, err := s.repo.SlugExists(ctx, slug, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("slug probe failed: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: course slug %q is taken", apperror.ErrConflict, slug)
	}

	syllabus, err := marshalJSON(req.Syllabus)
	if err != nil {
		return nil, err
	}
	testimonials, err := marshalJSON(req.Testimonials)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "NPR"
	}

	course := &entity.Course{
		Title:             strings.TrimSpace(req.Title),
		Slug:              slug,
		Description:       strings.TrimSpace(req.Description),
		LongDescription:   req.LongDescription,
		Instructor:        strings.TrimSpace(req.Instructor),
		Duration:          req.Duration,
		SkillLevel:        req.SkillLevel,
		ThumbnailURL:      req.ThumbnailURL,
		Syllabus:          syllabus,
		LearningOutcomes:  req.LearningOutcomes,
		Prerequisites:     req.Prerequisites,
		IsPublished:       req.IsPublished,
		Featured:          req.Featured,
		SessionsRunning:   req.SessionsRunning,
		SessionsCompleted: req.SessionsCompleted,
		NextBatchDate:     req.NextBatchDate,
		Location:          req.Location,
		MaxStudents:       req.MaxStudents,
		CurrentStudents:   req.CurrentStudents,
		Testimonials:      testimonials,
		Price:             req.Price,
		Currency:          currency,
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.afterWrite(ctx, course)
	return course, nil
}

func (s *courseService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCourseRequest) (*entity.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	oldSlug := course.Slug

	if req.Slug != nil && *req.Slug != course.Slug {
		slug := strings.TrimSpace(*req.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug cannot be empty", apperror.ErrInvalidInput)
		}
		taken, err := s.repo.SlugExists(ctx, slug, course.ID)
		if err != nil {
			return nil, fmt.Errorf("slug probe failed: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%w: course slug %q is taken", apperror.ErrConflict, slug)
		}
		course.Slug = slug
	}

	if req.Title != nil {
		course.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		course.Description = strings.TrimSpace(*req.Description)
	}
	if req.LongDescription != nil {
		course.LongDescription = *req.LongDescription
	}
	if req.Instructor != nil {
		course.Instructor = strings.TrimSpace(*req.Instructor)
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.SkillLevel != nil {
		course.SkillLevel = *req.SkillLevel
	}
	if req.ThumbnailURL != nil {
		course.ThumbnailURL = *req.ThumbnailURL
	}
	if req.Syllabus != nil {
		syllabus, err := marshalJSON(req.Syllabus)
		if err != nil {
			return nil, err
		}
		course.Syllabus = syllabus
	}
	if req.LearningOutcomes != nil {
		course.LearningOutcomes = req.LearningOutcomes
	}
	if req.Prerequisites != nil {
		course.Prerequisites = req.Prerequisites
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}
	if req.Featured != nil {
		course.Featured = *req.Featured
	}
	if req.SessionsRunning != nil {
		course.SessionsRunning = *req.SessionsRunning
	}
	if req.SessionsCompleted != nil {
		course.SessionsCompleted = *req.SessionsCompleted
	}
	if req.NextBatchDate != nil {
		course.NextBatchDate = req.NextBatchDate
	}
	if req.Location != nil {
		course.Location = *req.Location
	}
	if req.MaxStudents != nil {
		course.MaxStudents = *req.MaxStudents
	}
	if req.CurrentStudents != nil {
		course.CurrentStudents = req.CurrentStudents
	}
	if req.Testimonials != nil {
		testimonials, err := marshalJSON(req.Testimonials)
		if err != nil {
			return nil, err
		}
		course.Testimonials = testimonials
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Currency != nil {
		course.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	if oldSlug != course.Slug {
		s.cache.Invalidate(ctx, "courses:"+oldSlug)
	}
	s.afterWrite(ctx, course)
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id uuid.UUID) error {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.cache.Invalidate(ctx, "courses", "courses:"+course.Slug, "featured")
	if err := s.search.Delete(course.ID.String()); err != nil {
		log.Printf("[Search]: %v", err)
	}
	return nil
}

func (s *courseService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return course, nil
}

func (s *courseService) GetBySlug(ctx context.Context, slug string) (*entity.Course, error) {
	course, err := s.repo.FindBySlug(ctx, slug, true)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return course, nil
}

func (s *courseService) ListPublic(ctx context.Context, filter dto.CourseFilter) ([]*entity.Course, error) {
	return s.repo.FindAll(ctx, repository.CourseFilter{
		PublishedOnly: true,
		Featured:      filter.Featured,
		SkillLevel:    filter.SkillLevel,
	})
}

func (s *courseService) ListAdmin(ctx context.Context) ([]*entity.Course, error) {
	return s.repo.FindAll(ctx, repository.CourseFilter{})
}

// afterWrite runs the post-commit effects: public page cache invalidation
// and search index maintenance. Both are best-effort.
func (s *courseService) afterWrite(ctx context.Context, course *entity.Course) {
	s.cache.Invalidate(ctx, "courses", "courses:"+course.Slug, "featured")

	var err error
	if course.IsPublished {
		err = s.search.IndexCourse(course)
	} else {
		err = s.search.Delete(course.ID.String())
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

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"questlab.io/studiosite/internal/cache"
	"questlab.io/studiosite/internal/entity"
	"questlab.io/studiosite/internal/modules/job/dto"
	"questlab.io/studiosite/internal/modules/job/repository"
	searchService "questlab.io/studiosite/internal/modules/search/service"
	"questlab.io/studiosite/pkg/apperror"
)

func setupService(t *testing.T) (JobService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.JobPosting{}))

	svc := NewJobService(
		repository.NewJobRepository(db),
		cache.NewInvalidator(nil),
		searchService.NewSearchService(nil),
	)
	return svc, db
}

func createRequest(title string) dto.CreateJobPostingRequest {
	return dto.CreateJobPostingRequest{
		Title:          title,
		EmploymentType: entity.EmploymentFullTime,
		Description:    "Build games with us",
		IsPublished:    true,
	}
}

func TestCreateDefaultsPostedDate(t *testing.T) {
	svc, _ := setupService(t)

	job, err := svc.Create(context.Background(), createRequest("Game Designer"))
	require.NoError(t, err)
	assert.False(t, job.PostedDate.IsZero())
	assert.Equal(t, "game-designer", job.Slug)
}

func TestCreateWithoutCompanyStoresNoJSON(t *testing.T) {
	svc, db := setupService(t)

	job, err := svc.Create(context.Background(), createRequest("Game Designer"))
	require.NoError(t, err)

	var stored entity.JobPosting
	require.NoError(t, db.First(&stored, "id = ?", job.ID).Error)
	// An absent company block must not be persisted as JSON "null".
	assert.Empty(t, []byte(stored.Company))
}

func TestCreateWithCompanyRoundTrip(t *testing.T) {
	svc, _ := setupService(t)

	req := createRequest("Game Designer")
	req.Company = &dto.CompanyInfo{Name: "Questlab Studio", Website: "https://questlab.studio"}

	job, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, string(job.Company), "Questlab Studio")
}

func TestListPublicOrdersByPostedDate(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	older, err := svc.Create(ctx, createRequest("Game Designer"))
	require.NoError(t, err)
	newer, err := svc.Create(ctx, createRequest("Unity Developer"))
	require.NoError(t, err)

	// Backdate the first posting; listings sort by posting date, not
	// insertion order.
	require.NoError(t, db.Model(older).Update("posted_date", time.Now().Add(-48*time.Hour)).Error)

	jobs, err := svc.ListPublic(ctx, dto.JobFilter{})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, newer.ID, jobs[0].ID)
	assert.Equal(t, older.ID, jobs[1].ID)
}

func TestListPublicDepartmentFilter(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	design := createRequest("Game Designer")
	design.Department = "Design"
	_, err := svc.Create(ctx, design)
	require.NoError(t, err)

	eng := createRequest("Unity Developer")
	eng.Department = "Engineering"
	_, err = svc.Create(ctx, eng)
	require.NoError(t, err)

	jobs, err := svc.ListPublic(ctx, dto.JobFilter{Department: "Engineering"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Unity Developer", jobs[0].Title)
}

func TestUpdateRejectsEmptySlug(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	job, err := svc.Create(ctx, createRequest("Game Designer"))
	require.NoError(t, err)

	blank := ""
	_, err = svc.Update(ctx, job.ID, dto.UpdateJobPostingRequest{Slug: &blank})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	kept, err := svc.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "game-designer", kept.Slug)
}

func TestGetBySlugHidesUnpublished(t *testing.T) {
	svc, _ := setupService(t)

	req := createRequest("Game Designer")
	req.IsPublished = false
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.GetBySlug(context.Background(), "game-designer")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"questlab.io/studiosite/internal/cache"
	"questlab.io/studiosite/internal/entity"
	"questlab.io/studiosite/internal/modules/course/dto"
	"questlab.io/studiosite/internal/modules/course/repository"
	searchService "questlab.io/studiosite/internal/modules/search/service"
	"questlab.io/studiosite/pkg/apperror"
)

func setupService(t *testing.T) CourseService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Course{}))

	return NewCourseService(
		repository.NewCourseRepository(db),
		cache.NewInvalidator(nil),
		searchService.NewSearchService(nil),
	)
}

func createRequest(title string) dto.CreateCourseRequest {
	return dto.CreateCourseRequest{
		Title:       title,
		Description: "Hands-on course",
		SkillLevel:  "beginner",
		MaxStudents: 20,
		IsPublished: true,
	}
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	svc := setupService(t)

	course, err := svc.Create(context.Background(), createRequest("Unity Bootcamp"))
	require.NoError(t, err)
	assert.Equal(t, "unity-bootcamp", course.Slug)

	found, err := svc.GetBySlug(context.Background(), "unity-bootcamp")
	require.NoError(t, err)
	assert.Equal(t, course.ID, found.ID)
}

func TestCreateRejectsTakenSlug(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Create(context.Background(), createRequest("Unity Bootcamp"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createRequest("Unity Bootcamp"))
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestCreateDefaultsCurrency(t *testing.T) {
	svc := setupService(t)

	course, err := svc.Create(context.Background(), createRequest("Godot Basics"))
	require.NoError(t, err)
	assert.Equal(t, "NPR", course.Currency)
}

func TestGetBySlugHidesUnpublished(t *testing.T) {
	svc := setupService(t)

	req := createRequest("Draft Course")
	req.IsPublished = false
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.GetBySlug(context.Background(), "draft-course")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestListPublicExcludesUnpublished(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("Published Course"))
	require.NoError(t, err)

	draft := createRequest("Draft Course")
	draft.IsPublished = false
	_, err = svc.Create(ctx, draft)
	require.NoError(t, err)

	public, err := svc.ListPublic(ctx, dto.CourseFilter{})
	require.NoError(t, err)
	assert.Len(t, public, 1)

	all, err := svc.ListAdmin(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListPublicFeaturedFilter(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	featured := createRequest("Featured Course")
	featured.Featured = true
	_, err := svc.Create(ctx, featured)
	require.NoError(t, err)

	_, err = svc.Create(ctx, createRequest("Plain Course"))
	require.NoError(t, err)

	isFeatured := true
	got, err := svc.ListPublic(ctx, dto.CourseFilter{Featured: &isFeatured})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Featured Course", got[0].Title)
}

func TestUpdatePartialFields(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	course, err := svc.Create(ctx, createRequest("Unity Bootcamp"))
	require.NoError(t, err)

	newTitle := "Unity Bootcamp 2026"
	updated, err := svc.Update(ctx, course.ID, dto.UpdateCourseRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	// Untouched fields survive a partial update.
	assert.Equal(t, "unity-bootcamp", updated.Slug)
	assert.Equal(t, 20, updated.MaxStudents)
}

func TestUpdateSlugConflict(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("Unity Bootcamp"))
	require.NoError(t, err)
	other, err := svc.Create(ctx, createRequest("Godot Basics"))
	require.NoError(t, err)

	taken := "unity-bootcamp"
	_, err = svc.Update(ctx, other.ID, dto.UpdateCourseRequest{Slug: &taken})
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestUpdateRejectsEmptySlug(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	course, err := svc.Create(ctx, createRequest("Unity Bootcamp"))
	require.NoError(t, err)

	for _, slug := range []string{"", "   "} {
		_, err = svc.Update(ctx, course.ID, dto.UpdateCourseRequest{Slug: &slug})
		assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	}

	kept, err := svc.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "unity-bootcamp", kept.Slug)
}

func TestDeleteThenGet(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	course, err := svc.Create(ctx, createRequest("Unity Bootcamp"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, course.ID))

	_, err = svc.GetByID(ctx, course.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.True(t, errors.Is(svc.Delete(ctx, course.ID), apperror.ErrNotFound))
}

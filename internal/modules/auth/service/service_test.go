package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"questlab.io/studiosite/internal/entity"
	"questlab.io/studiosite/internal/modules/auth/dto"
	"questlab.io/studiosite/internal/modules/auth/repository"
	"questlab.io/studiosite/pkg/apperror"
)

func setupService(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.AdminUser{}))

	return NewAuthService(repository.NewAdminRepository(db)), db
}

func seedAdmin(t *testing.T, db *gorm.DB, email, password string, active bool) entity.AdminUser {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	admin := entity.AdminUser{Email: email, PasswordHash: string(hashed), IsActive: active}
	require.NoError(t, db.Create(&admin).Error)
	if !active {
		require.NoError(t, db.Model(&admin).Update("is_active", false).Error)
	}
	return admin
}

func TestLoginSucceeds(t *testing.T) {
	svc, db := setupService(t)
	seedAdmin(t, db, "admin@questlab.studio", "s3cret-pass", true)

	token, session, err := svc.Login(context.Background(), dto.LoginInput{
		Email:    "Admin@Questlab.Studio",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin@questlab.studio", session.Email)

	// last_login is stamped on each successful login.
	var stored entity.AdminUser
	require.NoError(t, db.First(&stored, "email = ?", "admin@questlab.studio").Error)
	assert.NotNil(t, stored.LastLogin)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, db := setupService(t)
	seedAdmin(t, db, "admin@questlab.studio", "s3cret-pass", true)
	seedAdmin(t, db, "former@questlab.studio", "s3cret-pass", false)

	cases := []dto.LoginInput{
		{Email: "nobody@questlab.studio", Password: "s3cret-pass"},
		{Email: "admin@questlab.studio", Password: "wrong-pass"},
		{Email: "former@questlab.studio", Password: "s3cret-pass"},
	}

	var messages []string
	for _, input := range cases {
		_, _, err := svc.Login(context.Background(), input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
		messages = append(messages, err.Error())
	}

	assert.Equal(t, messages[0], messages[1])
	assert.Equal(t, messages[1], messages[2])
}

func TestMeUnknownAdmin(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Me(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}

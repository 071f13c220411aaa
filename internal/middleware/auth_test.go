package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"questlab.io/studiosite/internal/entity"
	adminRepo "questlab.io/studiosite/internal/modules/auth/repository"
)

func setupRouter(t *testing.T, apiKey, secret string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.AdminUser{}))

	t.Setenv("ADMIN_API_KEY", apiKey)
	t.Setenv("SESSION_SECRET", secret)

	m := NewAuthMiddleware(adminRepo.NewAdminRepository(db))

	router := gin.New()
	router.GET("/api/admin/ping", m.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router, db
}

func request(router *gin.Engine, headers map[string]string, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signToken(t *testing.T, secret, subject string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestNoCredentials(t *testing.T) {
	router, _ := setupRouter(t, "server-key", "secret")
	w := request(router, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidAPIKey(t *testing.T) {
	router, _ := setupRouter(t, "server-key", "secret")
	w := request(router, map[string]string{APIKeyHeader: "server-key"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWrongAPIKey(t *testing.T) {
	router, _ := setupRouter(t, "server-key", "secret")
	w := request(router, map[string]string{APIKeyHeader: "wrong-key"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUnconfiguredServerKeyFailsClosed(t *testing.T) {
	router, _ := setupRouter(t, "", "secret")
	w := request(router, map[string]string{APIKeyHeader: "anything"}, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestValidSession(t *testing.T) {
	router, db := setupRouter(t, "server-key", "secret")

	admin := entity.AdminUser{Email: "admin@questlab.studio", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(&admin).Error)

	token := signToken(t, "secret", admin.ID.String(), time.Now().Add(time.Hour))
	w := request(router, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExpiredSession(t *testing.T) {
	router, db := setupRouter(t, "server-key", "secret")

	admin := entity.AdminUser{Email: "admin@questlab.studio", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(&admin).Error)

	token := signToken(t, "secret", admin.ID.String(), time.Now().Add(-time.Hour))
	w := request(router, nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeactivatedAdminLockedOut(t *testing.T) {
	router, db := setupRouter(t, "server-key", "secret")

	admin := entity.AdminUser{Email: "admin@questlab.studio", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(&admin).Error)

	token := signToken(t, "secret", admin.ID.String(), time.Now().Add(time.Hour))
	require.Equal(t, http.StatusOK, request(router, nil, token).Code)

	// Deactivation takes effect on the next request, not at token expiry.
	require.NoError(t, db.Model(&admin).Update("is_active", false).Error)
	assert.Equal(t, http.StatusUnauthorized, request(router, nil, token).Code)
}

func TestSessionSignedWithWrongSecret(t *testing.T) {
	router, db := setupRouter(t, "server-key", "secret")

	admin := entity.AdminUser{Email: "admin@questlab.studio", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(&admin).Error)

	token := signToken(t, "other-secret", admin.ID.String(), time.Now().Add(time.Hour))
	assert.Equal(t, http.StatusUnauthorized, request(router, nil, token).Code)
}

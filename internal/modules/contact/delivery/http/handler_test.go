package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"questlab.io/studiosite/internal/entity"
	"questlab.io/studiosite/internal/modules/contact/repository"
	contact "questlab.io/studiosite/internal/modules/contact/service"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.ContactMessage{}))

	svc := contact.NewContactService(repository.NewContactRepository(db), nil, "")
	h := NewContactHandler(svc)

	router := gin.New()
	router.POST("/api/contact", h.Submit)
	return router, db
}

func submit(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitReturns201(t *testing.T) {
	router, _ := setupRouter(t)

	w := submit(router, `{
		"name": "Ram Shrestha",
		"email": "ram@example.com",
		"message": "I would like to know more about your courses."
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.ID)
}

func TestSubmitMessageTooShort(t *testing.T) {
	router, _ := setupRouter(t)

	w := submit(router, `{
		"name": "Ram Shrestha",
		"email": "ram@example.com",
		"message": "123456789"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Message must be at least 10 characters")
}

func TestSubmitMessageExactMinimum(t *testing.T) {
	router, _ := setupRouter(t)

	w := submit(router, `{
		"name": "Ram Shrestha",
		"email": "ram@example.com",
		"message": "1234567890"
	}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSubmitMessageTooLong(t *testing.T) {
	router, _ := setupRouter(t)

	message := strings.Repeat("a", 2001)
	w := submit(router, `{
		"name": "Ram Shrestha",
		"email": "ram@example.com",
		"message": "`+message+`"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Message must be at most 2000 characters")
}

func TestSubmitInvalidEmail(t *testing.T) {
	router, _ := setupRouter(t)

	w := submit(router, `{
		"name": "Ram Shrestha",
		"email": "not-an-email",
		"message": "I would like to know more about your courses."
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Honeypot hits must look exactly like a success so bots cannot adapt.
func TestSubmitHoneypotLooksLikeSuccess(t *testing.T) {
	router, db := setupRouter(t)

	w := submit(router, `{
		"name": "Bot",
		"email": "bot@spam.example",
		"message": "Buy cheap things online today!!",
		"website": "https://spam.example"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, contact.BlockedID, body.Data.ID)

	var count int64
	require.NoError(t, db.Model(&entity.ContactMessage{}).Count(&count).Error)
	assert.Zero(t, count)
}

package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	adminRepo "questlab.io/studiosite/internal/modules/auth/repository"
)

// SessionCookie is the http-only cookie carrying the admin session token.
const SessionCookie = "admin_session"

// APIKeyHeader is the shared-secret header for machine callers.
const APIKeyHeader = "x-api-key"

type AuthMiddleware struct {
	admins adminRepo.AdminRepository
	secret string
	apiKey string
}

func NewAuthMiddleware(admins adminRepo.AdminRepository) *AuthMiddleware {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	return &AuthMiddleware{
		admins: admins,
		secret: secret,
		apiKey: os.Getenv("ADMIN_API_KEY"),
	}
}

// RequireAdmin gates the admin surface. Machine callers present x-api-key;
// interactive callers present a session cookie. Both resolve to
// "authenticated admin" or a rejection, and the session path re-checks the
// allow-list row on every request so a deactivated admin is locked out
// immediately.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader(APIKeyHeader); key != "" {
			m.checkAPIKey(c, key)
			return
		}
		m.checkSession(c)
	}
}

func (m *AuthMiddleware) checkAPIKey(c *gin.Context, key string) {
	// Fail closed: an unset server secret rejects everything.
	if m.apiKey == "" {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": true, "message": "admin api key is not configured"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": true, "message": "forbidden"})
		return
	}

	c.Next()
}

func (m *AuthMiddleware) checkSession(c *gin.Context) {
	tokenString, err := c.Cookie(SessionCookie)
	if err != nil || tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": true, "message": "authorization required"})
		return
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": true, "message": "invalid or expired session"})
		return
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": true, "message": "invalid session claims"})
		return
	}

	// A valid token is not enough: the admin must still be on the active
	// allow-list. The message never reveals whether the row exists.
	admin, err := m.admins.FindByID(c.Request.Context(), claims.Subject)
	if err != nil || !admin.IsActive {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": true, "message": "unauthorized"})
		return
	}

	c.Set("admin_id", admin.ID.String())
	c.Set("admin_email", admin.Email)
	c.Next()
}

package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"questlab.io/studiosite/pkg/apperror"
)

// GetAdminID retrieves the authenticated admin ID from the context
func GetAdminID(c *gin.Context) (uuid.UUID, error) {
	idStr, exists := c.Get("admin_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	adminID, err := uuid.Parse(idStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return adminID, nil
}

// OK writes the standard success envelope.
func OK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// Error writes the standard error envelope, mapping the error to a status code.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.JSON(code, gin.H{"error": true, "message": "internal server error"})
		return
	}

	c.JSON(code, gin.H{"error": true, "message": err.Error()})
}

// ErrorMessage writes the error envelope with an explicit status and message.
func ErrorMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": true, "message": message})
}

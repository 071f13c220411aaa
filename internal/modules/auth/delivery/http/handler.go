package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"questlab.io/studiosite/internal/middleware"
	"questlab.io/studiosite/internal/modules/auth/dto"
	auth "questlab.io/studiosite/internal/modules/auth/service"
	"questlab.io/studiosite/pkg/response"
	"questlab.io/studiosite/pkg/validator"
)

type AuthHandler struct {
	service auth.AuthService
}

func NewAuthHandler(service auth.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	token, session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	maxAge := int(h.service.TokenTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)

	response.OK(c, http.StatusOK, session)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	response.OK(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	adminID, err := response.GetAdminID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	admin, err := h.service.Me(c.Request.Context(), adminID.String())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, admin)
}

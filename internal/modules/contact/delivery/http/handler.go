package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	contact "questlab.io/studiosite/internal/modules/contact/service"
	"questlab.io/studiosite/pkg/response"
	"questlab.io/studiosite/pkg/validator"
)

type ContactHandler struct {
	service contact.ContactService
}

func NewContactHandler(service contact.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var form contact.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		// Visitors see this message verbatim, so surface one problem at a time.
		response.ErrorMessage(c, http.StatusBadRequest, validator.FirstValidationError(err))
		return
	}

	id, err := h.service.Submit(c.Request.Context(), form, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, gin.H{"id": id})
}

func (h *ContactHandler) List(c *gin.Context) {
	msgs, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, msgs)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"message": "contact message deleted"})
}

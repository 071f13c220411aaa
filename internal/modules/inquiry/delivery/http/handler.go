package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"questlab.io/studiosite/internal/modules/inquiry/dto"
	inquiry "questlab.io/studiosite/internal/modules/inquiry/service"
	"questlab.io/studiosite/pkg/response"
	"questlab.io/studiosite/pkg/validator"
)

type InquiryHandler struct {
	service inquiry.InquiryService
}

func NewInquiryHandler(service inquiry.InquiryService) *InquiryHandler {
	return &InquiryHandler{service: service}
}

func (h *InquiryHandler) Submit(c *gin.Context) {
	var req dto.SubmitInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FirstValidationError(err))
		return
	}

	id, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, gin.H{"id": id, "status": "new"})
}

func (h *InquiryHandler) List(c *gin.Context) {
	var filter dto.InquiryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	inquiries, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, inquiries)
}

func (h *InquiryHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	inquiry, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, inquiry)
}

func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	var req dto.UpdateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	inquiry, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, inquiry)
}

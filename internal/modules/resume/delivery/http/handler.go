package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"questlab.io/studiosite/internal/modules/resume/dto"
	resume "questlab.io/studiosite/internal/modules/resume/service"
	"questlab.io/studiosite/pkg/response"
	"questlab.io/studiosite/pkg/validator"
)

// Resumes larger than this are rejected before any storage call.
const maxResumeSize = 10 << 20

type ResumeHandler struct {
	service resume.ResumeService
}

func NewResumeHandler(service resume.ResumeService) *ResumeHandler {
	return &ResumeHandler{service: service}
}

func (h *ResumeHandler) Submit(c *gin.Context) {
	var req dto.SubmitResumeRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FirstValidationError(err))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "resume file is required")
		return
	}
	if fileHeader.Size > maxResumeSize {
		response.ErrorMessage(c, http.StatusBadRequest, "resume file must be 10MB or smaller")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "unable to read resume file")
		return
	}
	defer file.Close()

	id, err := h.service.Submit(c.Request.Context(), req, file, fileHeader.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, gin.H{"id": id, "status": "pending"})
}

func (h *ResumeHandler) List(c *gin.Context) {
	var filter dto.ResumeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	subs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, subs)
}

func (h *ResumeHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	sub, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, sub)
}

func (h *ResumeHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	url, err := h.service.DownloadURL(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"url": url})
}

func (h *ResumeHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	var req dto.UpdateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	sub, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, sub)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"message": "resume submission deleted"})
}

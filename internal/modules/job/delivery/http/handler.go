package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"questlab.io/studiosite/internal/modules/job/dto"
	job "questlab.io/studiosite/internal/modules/job/service"
	"questlab.io/studiosite/pkg/response"
	"questlab.io/studiosite/pkg/validator"
)

type JobHandler struct {
	service job.JobService
}

func NewJobHandler(service job.JobService) *JobHandler {
	return &JobHandler{service: service}
}

func (h *JobHandler) ListPublished(c *gin.Context) {
	var filter dto.JobFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	jobs, err := h.service.ListPublic(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, jobs)
}

func (h *JobHandler) GetBySlug(c *gin.Context) {
	job, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, job)
}

func (h *JobHandler) ListAdmin(c *gin.Context) {
	jobs, err := h.service.ListAdmin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, jobs)
}

func (h *JobHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	job, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, job)
}

func (h *JobHandler) Create(c *gin.Context) {
	var req dto.CreateJobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	job, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	var req dto.UpdateJobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	job, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"message": "job posting deleted"})
}

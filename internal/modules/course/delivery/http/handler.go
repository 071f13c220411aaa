package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"questlab.io/studiosite/internal/modules/course/dto"
	course "questlab.io/studiosite/internal/modules/course/service"
	"questlab.io/studiosite/pkg/response"
	"questlab.io/studiosite/pkg/validator"
)

type CourseHandler struct {
	service course.CourseService
}

func NewCourseHandler(service course.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// ListPublished serves the public course listing (published rows only).
func (h *CourseHandler) ListPublished(c *gin.Context) {
	var filter dto.CourseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	courses, err := h.service.ListPublic(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, courses)
}

func (h *CourseHandler) GetBySlug(c *gin.Context) {
	course, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, course)
}

func (h *CourseHandler) ListAdmin(c *gin.Context) {
	courses, err := h.service.ListAdmin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, courses)
}

func (h *CourseHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	course, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, course)
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	course, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	course, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"message": "course deleted"})
}

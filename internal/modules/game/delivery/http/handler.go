package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"questlab.io/studiosite/internal/modules/game/dto"
	game "questlab.io/studiosite/internal/modules/game/service"
	"questlab.io/studiosite/pkg/response"
	"questlab.io/studiosite/pkg/validator"
)

type GameHandler struct {
	service game.GameService
}

func NewGameHandler(service game.GameService) *GameHandler {
	return &GameHandler{service: service}
}

func (h *GameHandler) ListPublished(c *gin.Context) {
	var filter dto.GameFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	games, err := h.service.ListPublic(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, games)
}

func (h *GameHandler) GetBySlug(c *gin.Context) {
	game, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, game)
}

func (h *GameHandler) ListAdmin(c *gin.Context) {
	games, err := h.service.ListAdmin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, games)
}

func (h *GameHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	game, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, game)
}

func (h *GameHandler) Create(c *gin.Context) {
	var req dto.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	game, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, game)
}

func (h *GameHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	var req dto.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	game, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, game)
}

func (h *GameHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "invalid uuid format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"message": "game deleted"})
}

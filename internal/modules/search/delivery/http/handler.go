package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	search "questlab.io/studiosite/internal/modules/search/service"
	"questlab.io/studiosite/pkg/response"
)

type SearchHandler struct {
	service search.SearchService
}

func NewSearchHandler(service search.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		response.ErrorMessage(c, http.StatusBadRequest, "query parameter q is required")
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	docs, err := h.service.Search(c.Request.Context(), query, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, docs)
}

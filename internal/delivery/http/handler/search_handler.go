package handler

import (
	"net/http"

	"github.com/gdugdh24/matchdotcom-backend/internal/usecase/search"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchUseCase *search.SearchUseCase
}

func NewSearchHandler(searchUseCase *search.SearchUseCase) *SearchHandler {
	return &SearchHandler{
		searchUseCase: searchUseCase,
	}
}

// Search handles POST /search
// @Summary Search profiles by age range and distance
// @Tags search
// @Accept json
// @Produce json
// @Param request body search.SearchRequest true "Criteria, origin and radius in km"
// @Success 200 {array} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Router /search [post]
func (h *SearchHandler) Search(c *gin.Context) {
	var req search.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	matches, err := h.searchUseCase.FindProfilesByCriteria(c.Request.Context(), req.Criteria, req.Origin, req.EffectiveRadius())
	if err != nil {
		respondError(c, err, "failed to search profiles")
		return
	}

	c.JSON(http.StatusOK, matches)
}

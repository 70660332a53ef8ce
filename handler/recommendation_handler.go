package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anashalam/music-app-backend/dto"
	"github.com/anashalam/music-app-backend/service"
)

type RecommendationHandler struct {
	base
	recs service.RecommendationService
}

func NewRecommendationHandler(recs service.RecommendationService, development bool) *RecommendationHandler {
	return &RecommendationHandler{base: base{development: development}, recs: recs}
}

func (h *RecommendationHandler) ForUser(c *gin.Context) {
	c.JSON(http.StatusOK, h.recs.Recommendations(c.Request.Context(), c.Param("userId")))
}

func (h *RecommendationHandler) Track(c *gin.Context) {
	var req dto.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SongID == "" {
		h.badRequest(c, "song_id is required")
		return
	}
	if req.UserID == "" {
		req.UserID = userID(c)
	}

	h.recs.Track(c.Request.Context(), req.UserID, req.SongID, req.Action)
	c.JSON(http.StatusAccepted, gin.H{"message": "event recorded"})
}

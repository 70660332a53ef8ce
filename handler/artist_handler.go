package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anashalam/music-app-backend/dto"
	"github.com/anashalam/music-app-backend/service"
)

type ArtistHandler struct {
	base
	artists service.ArtistService
}

func NewArtistHandler(artists service.ArtistService, development bool) *ArtistHandler {
	return &ArtistHandler{base: base{development: development}, artists: artists}
}

func (h *ArtistHandler) Register(c *gin.Context) {
	var req dto.ArtistRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	artist, err := h.artists.Register(c.Request.Context(), userID(c), req)
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         artist.ID,
		"stage_name": artist.StageName,
		"message":    "artist registered; log in again to refresh your role",
	})
}

func (h *ArtistHandler) PublicProfile(c *gin.Context) {
	profile, err := h.artists.PublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

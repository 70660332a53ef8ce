package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anashalam/music-app-backend/dto"
	"github.com/anashalam/music-app-backend/service"
)

type PlaylistHandler struct {
	base
	playlists service.PlaylistService
}

func NewPlaylistHandler(playlists service.PlaylistService, development bool) *PlaylistHandler {
	return &PlaylistHandler{base: base{development: development}, playlists: playlists}
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.badRequest(c, "invalid request body")
		return
	}

	p, err := h.playlists.Create(c.Request.Context(), userID(c), req.Name)
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": p.ID, "name": p.Name})
}

func (h *PlaylistHandler) Details(c *gin.Context) {
	p, err := h.playlists.Details(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	if err := h.playlists.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "playlist deleted"})
}

func (h *PlaylistHandler) AddSong(c *gin.Context) {
	var req dto.AddSongRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SongID == "" {
		h.badRequest(c, "song_id is required")
		return
	}

	if err := h.playlists.AddSong(c.Request.Context(), userID(c), c.Param("id"), req.SongID); err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "song added to playlist"})
}

func (h *PlaylistHandler) RemoveSong(c *gin.Context) {
	if err := h.playlists.RemoveSong(c.Request.Context(), userID(c), c.Param("id"), c.Param("songId")); err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "song removed from playlist"})
}

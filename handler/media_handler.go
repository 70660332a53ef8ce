package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anashalam/music-app-backend/service"
)

type MediaHandler struct {
	base
	media    service.MediaService
	tracking service.RecommendationService
}

func NewMediaHandler(media service.MediaService, tracking service.RecommendationService, development bool) *MediaHandler {
	return &MediaHandler{base: base{development: development}, media: media, tracking: tracking}
}

func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.badRequest(c, "file is required")
		return
	}

	// "thumble" is the field name older clients still send.
	thumb, err := c.FormFile("thumbnail")
	if err != nil {
		thumb, _ = c.FormFile("thumble")
	}

	song, err := h.media.Upload(c.Request.Context(), userID(c), service.UploadInput{
		Title:     c.PostForm("title"),
		Genre:     c.PostForm("genre"),
		File:      file,
		Thumbnail: thumb,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusCreated, song)
}

func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.media.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "song deleted"})
}

// Play bumps the view counter and, when the caller is identified, records the
// listen for recommendations.
func (h *MediaHandler) Play(c *gin.Context) {
	songID := c.Param("id")
	if err := h.media.Play(c.Request.Context(), songID); err != nil {
		h.error(c, err)
		return
	}
	if uid := userID(c); uid != "" {
		h.tracking.Track(c.Request.Context(), uid, songID, "PLAY")
	}
	c.JSON(http.StatusOK, gin.H{"message": "play recorded"})
}

func (h *MediaHandler) Details(c *gin.Context) {
	details, err := h.media.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *MediaHandler) Search(c *gin.Context) {
	songs, err := h.media.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, songs)
}

func (h *MediaHandler) ListAll(c *gin.Context) {
	songs, err := h.media.ListAll(c.Request.Context())
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, songs)
}

func (h *MediaHandler) Trending(c *gin.Context) {
	songs, err := h.media.Trending(c.Request.Context())
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, songs)
}

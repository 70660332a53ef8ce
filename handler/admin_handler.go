package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anashalam/music-app-backend/dto"
	"github.com/anashalam/music-app-backend/service"
)

type AdminHandler struct {
	base
	admin service.AdminService
}

func NewAdminHandler(admin service.AdminService, development bool) *AdminHandler {
	return &AdminHandler{base: base{development: development}, admin: admin}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.admin.Dashboard(c.Request.Context())
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) VerifyArtist(c *gin.Context) {
	if err := h.admin.VerifyArtist(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "artist verified"})
}

func (h *AdminHandler) CreateAd(c *gin.Context) {
	image, err := c.FormFile("image")
	if err != nil {
		h.badRequest(c, "image file is required")
		return
	}

	ad, err := h.admin.CreateAd(c.Request.Context(), userID(c), service.AdInput{
		Title:     c.PostForm("title"),
		TargetURL: c.PostForm("target_url"),
		AdType:    c.PostForm("ad_type"),
		Image:     image,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": ad.ID, "title": ad.Title, "ad_image": ad.AdImageURL})
}

func (h *AdminHandler) AssignAd(c *gin.Context) {
	var req dto.AssignAdRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SongID == "" || req.AdID == "" {
		h.badRequest(c, "song_id and ad_id are required")
		return
	}

	if err := h.admin.AssignAd(c.Request.Context(), userID(c), req.SongID, req.AdID); err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ad assigned"})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anashalam/music-app-backend/service"
)

type SocialHandler struct {
	base
	social service.SocialService
}

func NewSocialHandler(social service.SocialService, development bool) *SocialHandler {
	return &SocialHandler{base: base{development: development}, social: social}
}

func (h *SocialHandler) Follow(c *gin.Context) {
	if err := h.social.FollowArtist(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "now following artist"})
}

func (h *SocialHandler) Unfollow(c *gin.Context) {
	if err := h.social.UnfollowArtist(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unfollowed artist"})
}

func (h *SocialHandler) Following(c *gin.Context) {
	following, err := h.social.Following(c.Request.Context(), userID(c))
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, following)
}

func (h *SocialHandler) Like(c *gin.Context) {
	if err := h.social.LikeSong(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "song liked"})
}

func (h *SocialHandler) Unlike(c *gin.Context) {
	if err := h.social.UnlikeSong(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "song unliked"})
}

func (h *SocialHandler) LikedSongs(c *gin.Context) {
	songs, err := h.social.LikedSongs(c.Request.Context(), userID(c))
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, songs)
}

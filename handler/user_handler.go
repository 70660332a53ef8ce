package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anashalam/music-app-backend/dto"
	"github.com/anashalam/music-app-backend/service"
)

type UserHandler struct {
	base
	users service.UserService
}

func NewUserHandler(users service.UserService, development bool) *UserHandler {
	return &UserHandler{base: base{development: development}, users: users}
}

func (h *UserHandler) Me(c *gin.Context) {
	profile, err := h.users.Profile(c.Request.Context(), userID(c))
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateBio(c *gin.Context) {
	var req dto.UpdateBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	if err := h.users.UpdateBio(c.Request.Context(), userID(c), req.Bio); err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bio updated"})
}

func (h *UserHandler) UploadProfilePic(c *gin.Context) {
	file, err := c.FormFile("profile_pic")
	if err != nil {
		h.badRequest(c, "profile_pic file is required")
		return
	}

	url, err := h.users.UpdateProfilePic(c.Request.Context(), userID(c), file)
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile_pic": url})
}

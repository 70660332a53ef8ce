package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anashalam/music-app-backend/dto"
	"github.com/anashalam/music-app-backend/service"
)

type AuthHandler struct {
	base
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService, development bool) *AuthHandler {
	return &AuthHandler{base: base{development: development}, auth: auth}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anashalam/music-app-backend/domain"
	"github.com/anashalam/music-app-backend/logger"
	"github.com/anashalam/music-app-backend/middleware"
)

// base is embedded by every handler. It maps domain errors to HTTP status
// codes in one place; unexpected errors become opaque 500s unless the server
// runs in development mode.
type base struct {
	development bool
}

func (b base) error(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not own this resource"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrArtistRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": "only registered artists can upload songs"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyArtist):
		c.JSON(http.StatusConflict, gin.H{"error": "user is already registered as an artist"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	default:
		logger.Error(logger.EventDBError, "unhandled error",
			logger.Fields("path", c.Request.URL.Path, "error", err.Error()))
		msg := "internal server error"
		if b.development {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func (b base) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func userID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

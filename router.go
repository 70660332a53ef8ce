package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anashalam/music-app-backend/auth"
	"github.com/anashalam/music-app-backend/handler"
	"github.com/anashalam/music-app-backend/middleware"
)

type handlers struct {
	auth      *handler.AuthHandler
	users     *handler.UserHandler
	artists   *handler.ArtistHandler
	media     *handler.MediaHandler
	playlists *handler.PlaylistHandler
	social    *handler.SocialHandler
	admin     *handler.AdminHandler
	recs      *handler.RecommendationHandler
}

func newRouter(h handlers, tokens *auth.TokenService, uploadDir string, development bool) *gin.Engine {
	if !development {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.NewRateLimiter(50, 100).Middleware())

	r.Static("/uploads", uploadDir)

	started := time.Now()
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "music app backend is running")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"uptime_seconds": int64(time.Since(started).Seconds()),
		})
	})

	authed := middleware.RequireAuth(tokens)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/register", h.auth.Register)
		v1.POST("/auth/login", h.auth.Login)

		v1.GET("/users/me", authed, h.users.Me)
		v1.PATCH("/users/me/bio", authed, h.users.UpdateBio)
		v1.POST("/users/me/profile-pic", authed, h.users.UploadProfilePic)
		v1.GET("/users/me/following", authed, h.social.Following)
		v1.GET("/users/me/likes", authed, h.social.LikedSongs)

		v1.POST("/artists/register", authed, h.artists.Register)
		v1.GET("/artists/:id", h.artists.PublicProfile)
		v1.POST("/artists/:id/follow", authed, h.social.Follow)
		v1.DELETE("/artists/:id/follow", authed, h.social.Unfollow)

		v1.POST("/songs/upload", authed, h.media.Upload)
		v1.GET("/songs", h.media.ListAll)
		v1.GET("/songs/search", h.media.Search)
		v1.GET("/songs/trending", h.media.Trending)
		v1.GET("/songs/:id", h.media.Details)
		v1.DELETE("/songs/:id", authed, h.media.Delete)
		v1.POST("/songs/:id/play", middleware.OptionalAuth(tokens), h.media.Play)
		v1.POST("/songs/:id/like", authed, h.social.Like)
		v1.DELETE("/songs/:id/like", authed, h.social.Unlike)

		v1.POST("/playlists", authed, h.playlists.Create)
		v1.GET("/playlists/:id", authed, h.playlists.Details)
		v1.DELETE("/playlists/:id", authed, h.playlists.Delete)
		v1.POST("/playlists/:id/songs", authed, h.playlists.AddSong)
		v1.DELETE("/playlists/:id/songs/:songId", authed, h.playlists.RemoveSong)

		v1.POST("/ai/track", authed, h.recs.Track)

		adminRoutes := v1.Group("/admin", authed, middleware.AdminOnly())
		{
			adminRoutes.GET("/dashboard", h.admin.Dashboard)
			adminRoutes.PATCH("/artists/:id/verify", h.admin.VerifyArtist)
			adminRoutes.POST("/ads", h.admin.CreateAd)
			adminRoutes.POST("/ads/assign", h.admin.AssignAd)
		}
	}

	r.GET("/api/recommendations/:userId", authed, h.recs.ForUser)

	return r
}

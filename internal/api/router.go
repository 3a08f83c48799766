package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"minsu-content-backend/config"
	"minsu-content-backend/internal/mw"
	"minsu-content-backend/internal/storage"
	"minsu-content-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, media *storage.Store, logger *zap.Logger) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, media, &cfg.Auth, logger)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	// Uploaded media is served straight off the storage root.
	r.Static("/media", media.Root())

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Presentation pages: merged content with fallback defaults.
		api.GET("/pages/home", caching, handler.GetHomePage)
		api.GET("/pages/room", caching, handler.GetRoomPage)
		api.GET("/pages/contact", caching, handler.GetContactPage)

		// Raw entity reads.
		api.GET("/room", caching, handler.GetRoomInfo)
		api.GET("/images", caching, handler.GetImages)
		api.GET("/videos", caching, handler.GetVideos)
		api.GET("/contact", caching, handler.GetContactInfo)

		admin := api.Group("/admin")
		admin.POST("/login", handler.Login)

		authed := admin.Group("")
		authed.Use(mw.Auth(cfg.Auth.JWTSecret))
		{
			authed.POST("/logout", handler.Logout)
			authed.GET("/me", handler.Me)

			authed.PUT("/room", handler.UpdateRoom)
			authed.PUT("/contact", handler.UpdateContact)

			authed.POST("/images", handler.UploadImage)
			authed.DELETE("/images/:id", handler.DeleteImage)
			authed.PUT("/images/:id/cover", handler.SetImageCover)

			authed.POST("/videos", handler.UploadVideo)
			authed.DELETE("/videos/:id", handler.DeleteVideo)
			authed.PUT("/videos/:id/primary", handler.SetVideoPrimary)

			authed.GET("/draft", handler.GetEditorDraft)
			authed.POST("/save", handler.SaveDraft)
		}
	}

	return r
}

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minsu-content-backend/internal/content"
	"minsu-content-backend/internal/defaults"
	"minsu-content-backend/internal/model"
)

// The page endpoints return loader-merged payloads: every field is either
// the database row or the compiled-in default, never an error. The raw
// entity endpoints mirror the gateway contract instead and return null or an
// empty list when the read fails.

// GetHomePage handles GET /api/pages/home.
func (h *Handler) GetHomePage(c *gin.Context) {
	snap := h.loader.LoadHome(c.Request.Context(), roomIDParam(c))
	c.JSON(http.StatusOK, gin.H{
		"room":          snap.Room,
		"videos":        snap.Videos,
		"primary_video": content.PrimaryVideo(snap.Videos),
		"contact":       snap.Contact,
		"sources":       snap.Sources,
		"state":         snap.State,
	})
}

// GetRoomPage handles GET /api/pages/room.
func (h *Handler) GetRoomPage(c *gin.Context) {
	snap := h.loader.LoadRoom(c.Request.Context(), roomIDParam(c))
	c.JSON(http.StatusOK, gin.H{
		"room":    snap.Room,
		"images":  snap.Images,
		"cover":   content.CoverImage(snap.Images),
		"videos":  snap.Videos,
		"sources": snap.Sources,
		"state":   snap.State,
	})
}

// GetContactPage handles GET /api/pages/contact.
func (h *Handler) GetContactPage(c *gin.Context) {
	snap := h.loader.LoadContact(c.Request.Context(), roomIDParam(c))
	c.JSON(http.StatusOK, gin.H{
		"contact": snap.Contact,
		"sources": snap.Sources,
		"state":   snap.State,
	})
}

// GetRoomInfo handles GET /api/room. Returns null when the row is missing or
// the read fails; read errors are logged, never surfaced.
func (h *Handler) GetRoomInfo(c *gin.Context) {
	room, err := h.store.RoomInfo(c.Request.Context())
	if err != nil {
		h.logger.Warn("room_info read failed", zap.Error(err))
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, room)
}

// GetImages handles GET /api/images.
func (h *Handler) GetImages(c *gin.Context) {
	images, err := h.store.Images(c.Request.Context(), roomIDParam(c))
	if err != nil {
		h.logger.Warn("images read failed", zap.Error(err))
	}
	if images == nil {
		images = []model.Image{} // never encode null for a list
	}
	c.JSON(http.StatusOK, images)
}

// GetVideos handles GET /api/videos.
func (h *Handler) GetVideos(c *gin.Context) {
	videos, err := h.store.Videos(c.Request.Context(), roomIDParam(c))
	if err != nil {
		h.logger.Warn("videos read failed", zap.Error(err))
	}
	if videos == nil {
		videos = []model.Video{}
	}
	c.JSON(http.StatusOK, videos)
}

// GetContactInfo handles GET /api/contact.
func (h *Handler) GetContactInfo(c *gin.Context) {
	contact, err := h.store.ContactInfo(c.Request.Context())
	if err != nil {
		h.logger.Warn("contact_info read failed", zap.Error(err))
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// roomIDParam reads the optional room_id query parameter. The site has a
// single listing, so the default id covers every normal request.
func roomIDParam(c *gin.Context) int64 {
	raw := c.Query("room_id")
	if raw == "" {
		return defaults.RoomID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return defaults.RoomID
	}
	return id
}

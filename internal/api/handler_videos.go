package api

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"minsu-content-backend/internal/model"
	"minsu-content-backend/internal/storage"
)

// UploadVideo handles POST /api/admin/videos. Same store-then-insert order
// as images; an optional "thumbnail" form value carries a poster URL.
func (h *Handler) UploadVideo(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}

	roomID := roomIDParam(c)
	stored, err := h.media.Save(data, storage.KindVideo, roomID, fileHeader.Filename)
	if err != nil {
		h.logger.Error("video store failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store video"})
		return
	}

	v := model.Video{
		RoomID:    roomID,
		FileURL:   stored.URL,
		FileName:  fileHeader.Filename,
		FileSize:  int(math.Round(float64(stored.Size) / 1024 / 1024)),
		Thumbnail: c.PostForm("thumbnail"),
		IsPrimary: false,
		SortOrder: time.Now().UnixMilli(),
	}
	if err := h.store.InsertVideo(c.Request.Context(), &v); err != nil {
		h.logger.Error("video row insert failed, stored file is orphaned",
			zap.String("path", stored.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save video record"})
		return
	}

	c.JSON(http.StatusCreated, v)
}

// DeleteVideo handles DELETE /api/admin/videos/:id.
func (h *Handler) DeleteVideo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video id"})
		return
	}

	v, err := h.store.VideoByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	h.media.Remove(v.FileURL)

	if err := h.store.DeleteVideo(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// SetVideoPrimary handles PUT /api/admin/videos/:id/primary.
func (h *Handler) SetVideoPrimary(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video id"})
		return
	}

	if err := h.store.SetVideoPrimary(c.Request.Context(), id, roomIDParam(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"minsu-content-backend/internal/model"
	"minsu-content-backend/internal/storage"
)

// UploadImage handles POST /api/admin/images. The binary is stored first and
// the row inserted after; when the insert fails the stored file stays behind
// as an orphan (logged, no compensating delete).
func (h *Handler) UploadImage(c *gin.Context) {
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
	stored, err := h.media.Save(data, storage.KindImage, roomID, fileHeader.Filename)
	if err != nil {
		h.logger.Error("image store failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	img := model.Image{
		RoomID:    roomID,
		FileURL:   stored.URL,
		FileName:  fileHeader.Filename,
		SortOrder: time.Now().UnixMilli(),
		IsCover:   false,
	}
	if err := h.store.InsertImage(c.Request.Context(), &img); err != nil {
		h.logger.Error("image row insert failed, stored file is orphaned",
			zap.String("path", stored.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image record"})
		return
	}

	c.JSON(http.StatusCreated, img)
}

// DeleteImage handles DELETE /api/admin/images/:id. The backing binary is
// removed best-effort; only a failed row deletion is an error.
func (h *Handler) DeleteImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	img, err := h.store.ImageByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	h.media.Remove(img.FileURL)

	if err := h.store.DeleteImage(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// SetImageCover handles PUT /api/admin/images/:id/cover. Clearing the old
// flag and setting the new one happen in one transaction.
func (h *Handler) SetImageCover(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	if err := h.store.SetImageCover(c.Request.Context(), id, roomIDParam(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

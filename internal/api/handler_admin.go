package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minsu-content-backend/internal/content"
	"minsu-content-backend/internal/editor"
	"minsu-content-backend/internal/model"
)

type updateRoomRequest struct {
	RoomName    *string `json:"room_name"`
	Slogan      *string `json:"slogan"`
	Description *string `json:"description"`
}

// UpdateRoom handles PUT /api/admin/room. Only the fields present in the
// body are written.
func (h *Handler) UpdateRoom(c *gin.Context) {
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := make(map[string]any)
	if req.RoomName != nil {
		fields["room_name"] = *req.RoomName
	}
	if req.Slogan != nil {
		fields["slogan"] = *req.Slogan
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	room, err := h.store.RoomInfo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if room == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room record does not exist"})
		return
	}

	updated, err := h.store.UpdateRoomInfo(c.Request.Context(), room.ID, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

type updateContactRequest struct {
	Phone       *string            `json:"phone"`
	WechatQRURL *string            `json:"wechat_qr_url"`
	Email       *string            `json:"email"`
	Address     *string            `json:"address"`
	MapLat      *float64           `json:"map_lat"`
	MapLng      *float64           `json:"map_lng"`
	SocialMedia *model.SocialLinks `json:"social_media"`
}

// UpdateContact handles PUT /api/admin/contact.
func (h *Handler) UpdateContact(c *gin.Context) {
	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := make(map[string]any)
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.WechatQRURL != nil {
		fields["wechat_qr_url"] = *req.WechatQRURL
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.MapLat != nil {
		fields["map_lat"] = *req.MapLat
	}
	if req.MapLng != nil {
		fields["map_lng"] = *req.MapLng
	}
	if req.SocialMedia != nil {
		fields["social_media"] = *req.SocialMedia
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	contact, err := h.store.ContactInfo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if contact == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact record does not exist"})
		return
	}

	updated, err := h.store.UpdateContactInfo(c.Request.Context(), contact.ID, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetEditorDraft handles GET /api/admin/draft: the loader-seeded working
// copy the management panel starts an editing session from.
func (h *Handler) GetEditorDraft(c *gin.Context) {
	snap := h.loader.LoadAll(c.Request.Context(), roomIDParam(c))
	c.JSON(http.StatusOK, editor.NewDraft(snap))
}

// SaveDraft handles POST /api/admin/save. The edited draft is diffed against
// the current database state and only the changed fields are written, in a
// single transaction. This is the write path: failures surface to the caller.
func (h *Handler) SaveDraft(c *gin.Context) {
	var edited editor.Draft
	if err := c.ShouldBindJSON(&edited); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	base, err := h.storeDraft(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cs, err := editor.Diff(base, &edited)
	if err != nil {
		if errors.Is(err, editor.ErrUnuploadedMedia) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := h.store.ApplyChangeSet(c.Request.Context(), cs); err != nil {
		h.logger.Error("draft save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("draft saved", zap.Int("changes", cs.Size()))
	c.JSON(http.StatusOK, gin.H{"status": "saved", "changes": cs.Size()})
}

// storeDraft builds the diff base from the database alone. The fallback
// defaults must not leak in here, or saving would try to persist them.
func (h *Handler) storeDraft(c *gin.Context) (*editor.Draft, error) {
	ctx := c.Request.Context()
	roomID := roomIDParam(c)

	snap := &content.Snapshot{}
	room, err := h.store.RoomInfo(ctx)
	if err != nil {
		return nil, err
	}
	if room != nil {
		snap.Room = *room
	}
	contact, err := h.store.ContactInfo(ctx)
	if err != nil {
		return nil, err
	}
	if contact != nil {
		snap.Contact = *contact
	}
	if snap.Images, err = h.store.Images(ctx, roomID); err != nil {
		return nil, err
	}
	if snap.Videos, err = h.store.Videos(ctx, roomID); err != nil {
		return nil, err
	}
	return editor.NewDraft(snap), nil
}

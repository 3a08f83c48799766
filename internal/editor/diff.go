package editor

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"minsu-content-backend/internal/defaults"
	"minsu-content-backend/internal/model"
	"minsu-content-backend/internal/store"
)

// ErrUnuploadedMedia is returned when an edited draft still references a
// local preview URL. New media must go through the upload endpoint before
// the draft can be saved.
var ErrUnuploadedMedia = errors.New("draft references media that was never uploaded")

// Diff computes the minimal change set that turns the loaded snapshot (base)
// into the edited draft. Unchanged fields produce no writes; save therefore
// costs as many statements as there are actual edits.
func Diff(base, edited *Draft) (*store.ChangeSet, error) {
	cs := &store.ChangeSet{
		RoomID:    base.Room.ID,
		ContactID: base.Contact.ID,
	}

	cs.RoomFields = diffRoom(base.Room, edited.Room)
	cs.ContactFields = diffContact(base.Contact, edited.Contact)

	if err := diffImages(base.Images, edited.Images, cs); err != nil {
		return nil, err
	}
	if err := diffVideos(base.Videos, edited.Videos, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func diffRoom(base, edited DraftRoom) map[string]any {
	fields := make(map[string]any)
	if edited.RoomName != base.RoomName {
		fields["room_name"] = edited.RoomName
	}
	if edited.Slogan != base.Slogan {
		fields["slogan"] = edited.Slogan
	}
	if edited.Description != base.Description {
		fields["description"] = edited.Description
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func diffContact(base, edited DraftContact) map[string]any {
	fields := make(map[string]any)
	if edited.Phone != base.Phone {
		fields["phone"] = edited.Phone
	}
	if edited.WechatQRURL != base.WechatQRURL {
		fields["wechat_qr_url"] = edited.WechatQRURL
	}
	if edited.Email != base.Email {
		fields["email"] = edited.Email
	}
	if edited.Address != base.Address {
		fields["address"] = edited.Address
	}
	if edited.MapLat != base.MapLat {
		fields["map_lat"] = edited.MapLat
	}
	if edited.MapLng != base.MapLng {
		fields["map_lng"] = edited.MapLng
	}
	if !reflect.DeepEqual(edited.SocialMedia, base.SocialMedia) {
		fields["social_media"] = edited.SocialMedia
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func diffImages(base, edited []DraftImage, cs *store.ChangeSet) error {
	baseByID := make(map[string]DraftImage, len(base))
	for _, img := range base {
		baseByID[img.ID] = img
	}

	seen := make(map[string]bool, len(edited))
	for _, img := range edited {
		seen[img.ID] = true

		if isNewID(img.ID) {
			if err := checkUploaded(img.FileURL); err != nil {
				return fmt.Errorf("image %q: %w", img.FileName, err)
			}
			roomID := cs.RoomID
			if roomID == 0 {
				roomID = defaults.RoomID
			}
			cs.ImageCreates = append(cs.ImageCreates, model.Image{
				RoomID:    roomID,
				FileURL:   img.FileURL,
				FileName:  img.FileName,
				SortOrder: img.SortOrder,
				IsCover:   img.IsCover,
			})
			continue
		}

		old, known := baseByID[img.ID]
		if !known {
			// Not in the database: a row that vanished under the editor, or
			// fallback content that leaked into the draft. Nothing to write.
			continue
		}
		id, _ := strconv.ParseInt(img.ID, 10, 64)
		fields := make(map[string]any)
		if img.FileName != old.FileName {
			fields["file_name"] = img.FileName
		}
		if img.SortOrder != old.SortOrder {
			fields["sort_order"] = img.SortOrder
		}
		if img.IsCover != old.IsCover {
			fields["is_cover"] = img.IsCover
		}
		if len(fields) > 0 {
			cs.ImageUpdates = append(cs.ImageUpdates, store.FieldUpdate{ID: id, Fields: fields})
		}
	}

	for _, img := range base {
		if !seen[img.ID] && !isNewID(img.ID) {
			id, _ := strconv.ParseInt(img.ID, 10, 64)
			cs.ImageDeletes = append(cs.ImageDeletes, id)
		}
	}
	return nil
}

func diffVideos(base, edited []DraftVideo, cs *store.ChangeSet) error {
	baseByID := make(map[string]DraftVideo, len(base))
	for _, v := range base {
		baseByID[v.ID] = v
	}

	seen := make(map[string]bool, len(edited))
	for _, v := range edited {
		seen[v.ID] = true

		if isNewID(v.ID) {
			if err := checkUploaded(v.FileURL); err != nil {
				return fmt.Errorf("video %q: %w", v.FileName, err)
			}
			roomID := cs.RoomID
			if roomID == 0 {
				roomID = defaults.RoomID
			}
			cs.VideoCreates = append(cs.VideoCreates, model.Video{
				RoomID:    roomID,
				FileURL:   v.FileURL,
				FileName:  v.FileName,
				FileSize:  v.FileSize,
				Thumbnail: v.Thumbnail,
				IsPrimary: v.IsPrimary,
				SortOrder: v.SortOrder,
			})
			continue
		}

		old, known := baseByID[v.ID]
		if !known {
			continue
		}
		id, _ := strconv.ParseInt(v.ID, 10, 64)
		fields := make(map[string]any)
		if v.FileName != old.FileName {
			fields["file_name"] = v.FileName
		}
		if v.Thumbnail != old.Thumbnail {
			fields["thumbnail"] = v.Thumbnail
		}
		if v.SortOrder != old.SortOrder {
			fields["sort_order"] = v.SortOrder
		}
		if v.IsPrimary != old.IsPrimary {
			fields["is_primary"] = v.IsPrimary
		}
		if len(fields) > 0 {
			cs.VideoUpdates = append(cs.VideoUpdates, store.FieldUpdate{ID: id, Fields: fields})
		}
	}

	for _, v := range base {
		if !seen[v.ID] && !isNewID(v.ID) {
			id, _ := strconv.ParseInt(v.ID, 10, 64)
			cs.VideoDeletes = append(cs.VideoDeletes, id)
		}
	}
	return nil
}

// checkUploaded rejects temporary preview URLs.
func checkUploaded(fileURL string) error {
	if fileURL == "" || strings.HasPrefix(fileURL, "blob:") {
		return ErrUnuploadedMedia
	}
	return nil
}

// Package editor models the admin panel's in-memory working copy of the
// site content and the diff that turns an edited copy into database writes.
package editor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"minsu-content-backend/internal/content"
	"minsu-content-backend/internal/model"
)

// Draft ids are strings so freshly added, not-yet-persisted entries can
// coexist with database rows. New entries carry a "new_" prefixed id.
const newIDPrefix = "new_"

// DraftRoom is the editable copy of the room text.
type DraftRoom struct {
	ID          int64  `json:"id"`
	RoomName    string `json:"room_name"`
	Slogan      string `json:"slogan"`
	Description string `json:"description"`
}

// DraftImage is the editable copy of one gallery image.
type DraftImage struct {
	ID        string `json:"id"`
	FileURL   string `json:"file_url"`
	FileName  string `json:"file_name"`
	SortOrder int64  `json:"sort_order"`
	IsCover   bool   `json:"is_cover"`
}

// DraftVideo is the editable copy of one video.
type DraftVideo struct {
	ID        string `json:"id"`
	FileURL   string `json:"file_url"`
	FileName  string `json:"file_name"`
	FileSize  int    `json:"file_size"`
	Thumbnail string `json:"thumbnail"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int64  `json:"sort_order"`
}

// DraftContact is the editable copy of the contact details.
type DraftContact struct {
	ID          int64             `json:"id"`
	Phone       string            `json:"phone"`
	WechatQRURL string            `json:"wechat_qr_url"`
	Email       string            `json:"email"`
	Address     string            `json:"address"`
	MapLat      float64           `json:"map_lat"`
	MapLng      float64           `json:"map_lng"`
	SocialMedia model.SocialLinks `json:"social_media"`
}

// Draft holds the editable copies of all four entities. Edits mutate the
// draft only; nothing is persisted until the draft is diffed and saved.
type Draft struct {
	Room    DraftRoom    `json:"room"`
	Images  []DraftImage `json:"images"`
	Videos  []DraftVideo `json:"videos"`
	Contact DraftContact `json:"contact"`
}

// NewFile describes a file the operator selected but has not uploaded yet.
// PreviewURL is a temporary local URL, not a stored one.
type NewFile struct {
	Name       string
	PreviewURL string
}

// NewDraft seeds a draft from a loaded snapshot.
func NewDraft(snap *content.Snapshot) *Draft {
	d := &Draft{
		Room: DraftRoom{
			ID:          snap.Room.ID,
			RoomName:    snap.Room.RoomName,
			Slogan:      snap.Room.Slogan,
			Description: snap.Room.Description,
		},
		Contact: DraftContact{
			ID:          snap.Contact.ID,
			Phone:       snap.Contact.Phone,
			WechatQRURL: snap.Contact.WechatQRURL,
			Email:       snap.Contact.Email,
			Address:     snap.Contact.Address,
			MapLat:      snap.Contact.MapLat,
			MapLng:      snap.Contact.MapLng,
			SocialMedia: snap.Contact.SocialMedia,
		},
	}
	for _, img := range snap.Images {
		d.Images = append(d.Images, DraftImage{
			ID:        strconv.FormatInt(img.ID, 10),
			FileURL:   img.FileURL,
			FileName:  img.FileName,
			SortOrder: img.SortOrder,
			IsCover:   img.IsCover,
		})
	}
	for _, v := range snap.Videos {
		d.Videos = append(d.Videos, DraftVideo{
			ID:        strconv.FormatInt(v.ID, 10),
			FileURL:   v.FileURL,
			FileName:  v.FileName,
			FileSize:  v.FileSize,
			Thumbnail: v.Thumbnail,
			IsPrimary: v.IsPrimary,
			SortOrder: v.SortOrder,
		})
	}
	return d
}

// AddImages appends the selected files with locally unique ids and preview
// URLs. Nothing is uploaded here.
func (d *Draft) AddImages(files []NewFile, now time.Time) {
	ts := now.UnixMilli()
	for idx, f := range files {
		d.Images = append(d.Images, DraftImage{
			ID:        fmt.Sprintf("%s%d_%d", newIDPrefix, ts, idx),
			FileURL:   f.PreviewURL,
			FileName:  f.Name,
			SortOrder: ts + int64(idx),
		})
	}
}

// DeleteImage removes an image from the draft by id.
func (d *Draft) DeleteImage(id string) {
	kept := d.Images[:0]
	for _, img := range d.Images {
		if img.ID != id {
			kept = append(kept, img)
		}
	}
	d.Images = kept
}

// SetCover marks exactly the targeted image as cover and clears every other
// one, in a single pass over the whole list. When the id is absent the draft
// ends up with no cover at all.
func (d *Draft) SetCover(id string) {
	for i := range d.Images {
		d.Images[i].IsCover = d.Images[i].ID == id
	}
}

// DeleteVideo removes a video from the draft by id.
func (d *Draft) DeleteVideo(id string) {
	kept := d.Videos[:0]
	for _, v := range d.Videos {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	d.Videos = kept
}

// SetPrimary marks exactly the targeted video as primary, same single-pass
// rule as SetCover.
func (d *Draft) SetPrimary(id string) {
	for i := range d.Videos {
		d.Videos[i].IsPrimary = d.Videos[i].ID == id
	}
}

// isNewID reports whether a draft id refers to a row that does not exist in
// the database yet.
func isNewID(id string) bool {
	if strings.HasPrefix(id, newIDPrefix) {
		return true
	}
	_, err := strconv.ParseInt(id, 10, 64)
	return err != nil
}

package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"minsu-content-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	RoomInfo(ctx context.Context) (*model.RoomInfo, error)
	ContactInfo(ctx context.Context) (*model.ContactInfo, error)
	Images(ctx context.Context, roomID int64) ([]model.Image, error)
	Videos(ctx context.Context, roomID int64) ([]model.Video, error)

	UpdateRoomInfo(ctx context.Context, id int64, fields map[string]any) (*model.RoomInfo, error)
	UpdateContactInfo(ctx context.Context, id int64, fields map[string]any) (*model.ContactInfo, error)

	InsertImage(ctx context.Context, img *model.Image) error
	ImageByID(ctx context.Context, id int64) (*model.Image, error)
	DeleteImage(ctx context.Context, id int64) error
	SetImageCover(ctx context.Context, id, roomID int64) error

	InsertVideo(ctx context.Context, v *model.Video) error
	VideoByID(ctx context.Context, id int64) (*model.Video, error)
	DeleteVideo(ctx context.Context, id int64) error
	SetVideoPrimary(ctx context.Context, id, roomID int64) error

	AdminByEmail(ctx context.Context, email string) (*model.AdminUser, error)

	ApplyChangeSet(ctx context.Context, cs *ChangeSet) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// RoomInfo returns the singleton room record, or nil when the table has no
// rows yet. An error means the read itself failed.
func (s *gormStore) RoomInfo(ctx context.Context) (*model.RoomInfo, error) {
	var room model.RoomInfo
	err := s.db.WithContext(ctx).Order("id asc").First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ContactInfo returns the singleton contact record, or nil when absent.
func (s *gormStore) ContactInfo(ctx context.Context) (*model.ContactInfo, error) {
	var contact model.ContactInfo
	err := s.db.WithContext(ctx).Order("id asc").First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Images returns the room's images sorted ascending by sort_order. A roomID
// of zero lists all rooms.
func (s *gormStore) Images(ctx context.Context, roomID int64) ([]model.Image, error) {
	var images []model.Image
	q := s.db.WithContext(ctx).Order("sort_order asc")
	if roomID != 0 {
		q = q.Where("room_id = ?", roomID)
	}
	if err := q.Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// Videos returns the room's videos sorted ascending by sort_order.
func (s *gormStore) Videos(ctx context.Context, roomID int64) ([]model.Video, error) {
	var videos []model.Video
	q := s.db.WithContext(ctx).Order("sort_order asc")
	if roomID != 0 {
		q = q.Where("room_id = ?", roomID)
	}
	if err := q.Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// UpdateRoomInfo applies a partial update and returns the updated record.
func (s *gormStore) UpdateRoomInfo(ctx context.Context, id int64, fields map[string]any) (*model.RoomInfo, error) {
	res := s.db.WithContext(ctx).Model(&model.RoomInfo{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("room_info %d: %w", id, gorm.ErrRecordNotFound)
	}
	var room model.RoomInfo
	if err := s.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// UpdateContactInfo applies a partial update and returns the updated record.
func (s *gormStore) UpdateContactInfo(ctx context.Context, id int64, fields map[string]any) (*model.ContactInfo, error) {
	res := s.db.WithContext(ctx).Model(&model.ContactInfo{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("contact_info %d: %w", id, gorm.ErrRecordNotFound)
	}
	var contact model.ContactInfo
	if err := s.db.WithContext(ctx).First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *gormStore) InsertImage(ctx context.Context, img *model.Image) error {
	return s.db.WithContext(ctx).Create(img).Error
}

func (s *gormStore) ImageByID(ctx context.Context, id int64) (*model.Image, error) {
	var img model.Image
	if err := s.db.WithContext(ctx).First(&img, id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *gormStore) DeleteImage(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&model.Image{}, id).Error
}

// SetImageCover clears the cover flag on all sibling images and sets it on
// the target, inside one transaction so a failure cannot leave zero or two
// covers behind.
func (s *gormStore) SetImageCover(ctx context.Context, id, roomID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Image{}).
			Where("room_id = ?", roomID).
			Update("is_cover", false).Error; err != nil {
			return fmt.Errorf("failed to clear cover flags for room %d: %w", roomID, err)
		}
		res := tx.Model(&model.Image{}).
			Where("id = ? AND room_id = ?", id, roomID).
			Update("is_cover", true)
		if res.Error != nil {
			return fmt.Errorf("failed to set cover on image %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("image %d in room %d: %w", id, roomID, gorm.ErrRecordNotFound)
		}
		return nil
	})
}

func (s *gormStore) InsertVideo(ctx context.Context, v *model.Video) error {
	return s.db.WithContext(ctx).Create(v).Error
}

func (s *gormStore) VideoByID(ctx context.Context, id int64) (*model.Video, error) {
	var v model.Video
	if err := s.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *gormStore) DeleteVideo(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&model.Video{}, id).Error
}

// SetVideoPrimary is the video counterpart of SetImageCover.
func (s *gormStore) SetVideoPrimary(ctx context.Context, id, roomID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Video{}).
			Where("room_id = ?", roomID).
			Update("is_primary", false).Error; err != nil {
			return fmt.Errorf("failed to clear primary flags for room %d: %w", roomID, err)
		}
		res := tx.Model(&model.Video{}).
			Where("id = ? AND room_id = ?", id, roomID).
			Update("is_primary", true)
		if res.Error != nil {
			return fmt.Errorf("failed to set primary on video %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("video %d in room %d: %w", id, roomID, gorm.ErrRecordNotFound)
		}
		return nil
	})
}

// AdminByEmail looks up an operator account. Returns gorm.ErrRecordNotFound
// wrapped when no such account exists.
func (s *gormStore) AdminByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var user model.AdminUser
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ApplyChangeSet executes every write in the change set inside a single
// transaction. Deletes run first so re-created rows cannot collide, then
// creates, then partial updates.
func (s *gormStore) ApplyChangeSet(ctx context.Context, cs *ChangeSet) error {
	if cs.Empty() {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(cs.ImageDeletes) > 0 {
			if err := tx.Delete(&model.Image{}, cs.ImageDeletes).Error; err != nil {
				return fmt.Errorf("failed to delete images: %w", err)
			}
		}
		if len(cs.VideoDeletes) > 0 {
			if err := tx.Delete(&model.Video{}, cs.VideoDeletes).Error; err != nil {
				return fmt.Errorf("failed to delete videos: %w", err)
			}
		}

		for i := range cs.ImageCreates {
			if err := tx.Create(&cs.ImageCreates[i]).Error; err != nil {
				return fmt.Errorf("failed to create image %q: %w", cs.ImageCreates[i].FileName, err)
			}
		}
		for i := range cs.VideoCreates {
			if err := tx.Create(&cs.VideoCreates[i]).Error; err != nil {
				return fmt.Errorf("failed to create video %q: %w", cs.VideoCreates[i].FileName, err)
			}
		}

		for _, u := range cs.ImageUpdates {
			if err := tx.Model(&model.Image{}).Where("id = ?", u.ID).Updates(u.Fields).Error; err != nil {
				return fmt.Errorf("failed to update image %d: %w", u.ID, err)
			}
		}
		for _, u := range cs.VideoUpdates {
			if err := tx.Model(&model.Video{}).Where("id = ?", u.ID).Updates(u.Fields).Error; err != nil {
				return fmt.Errorf("failed to update video %d: %w", u.ID, err)
			}
		}

		if len(cs.RoomFields) > 0 {
			if err := tx.Model(&model.RoomInfo{}).Where("id = ?", cs.RoomID).Updates(cs.RoomFields).Error; err != nil {
				return fmt.Errorf("failed to update room_info %d: %w", cs.RoomID, err)
			}
		}
		if len(cs.ContactFields) > 0 {
			if err := tx.Model(&model.ContactInfo{}).Where("id = ?", cs.ContactID).Updates(cs.ContactFields).Error; err != nil {
				return fmt.Errorf("failed to update contact_info %d: %w", cs.ContactID, err)
			}
		}
		return nil
	})
}

package model

import "time"

// Video is a promotional clip for the room. At most one video per room
// carries the primary flag; the primary video plays on the home page.
type Video struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	RoomID    int64     `gorm:"index;not null" json:"room_id"`
	FileURL   string    `gorm:"size:512;not null" json:"file_url"`
	FileName  string    `gorm:"size:256" json:"file_name"`
	FileSize  int       `gorm:"not null" json:"file_size"` // megabytes
	Thumbnail string    `gorm:"size:512" json:"thumbnail"`
	IsPrimary bool      `gorm:"not null" json:"is_primary"`
	SortOrder int64     `gorm:"not null" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

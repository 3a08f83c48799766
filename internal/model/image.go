package model

import "time"

// Image is a photo of the room. At most one image per room carries the
// cover flag; sort_order controls display order and need not be contiguous.
type Image struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	RoomID    int64     `gorm:"index;not null" json:"room_id"`
	FileURL   string    `gorm:"size:512;not null" json:"file_url"`
	FileName  string    `gorm:"size:256" json:"file_name"`
	SortOrder int64     `gorm:"not null" json:"sort_order"`
	IsCover   bool      `gorm:"not null" json:"is_cover"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

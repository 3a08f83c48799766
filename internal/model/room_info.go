package model

import "time"

// RoomInfo holds the descriptive text for the listing. The table is expected
// to contain exactly one row.
type RoomInfo struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	RoomName    string    `gorm:"size:128;not null" json:"room_name"`
	Slogan      string    `gorm:"size:256" json:"slogan"`
	Description string    `gorm:"type:text" json:"description"` // rich text, rendered verbatim
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName keeps the singular table name.
func (RoomInfo) TableName() string { return "room_info" }

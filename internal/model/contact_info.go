package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SocialLink is a single social media entry on the contact page.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
}

// SocialLinks is stored as serialized JSON text in the database. Older rows
// may also arrive double-encoded (a JSON string containing the array), so
// decoding accepts both forms.
type SocialLinks []SocialLink

// UnmarshalJSON accepts either a structured array or a JSON-encoded array
// string. Parsing is a pass-through for the structured form.
func (s *SocialLinks) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		if raw == "" {
			*s = nil
			return nil
		}
		return json.Unmarshal([]byte(raw), (*[]SocialLink)(s))
	}
	return json.Unmarshal(b, (*[]SocialLink)(s))
}

// Value implements driver.Valuer so gorm persists the list as JSON text.
func (s SocialLinks) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]SocialLink(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *SocialLinks) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		if len(v) == 0 {
			*s = nil
			return nil
		}
		return s.UnmarshalJSON(v)
	case string:
		if v == "" {
			*s = nil
			return nil
		}
		return s.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into SocialLinks", src)
	}
}

// ContactInfo holds the contact details shown on the contact page. The table
// is expected to contain exactly one row.
type ContactInfo struct {
	ID          int64       `gorm:"primaryKey" json:"id"`
	Phone       string      `gorm:"size:64" json:"phone"`
	WechatQRURL string      `gorm:"size:512" json:"wechat_qr_url"`
	Email       string      `gorm:"size:256" json:"email"`
	Address     string      `gorm:"size:512" json:"address"`
	MapLat      float64     `json:"map_lat"`
	MapLng      float64     `json:"map_lng"`
	SocialMedia SocialLinks `gorm:"type:text" json:"social_media"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TableName keeps the singular table name.
func (ContactInfo) TableName() string { return "contact_info" }

package store

import "minsu-content-backend/internal/model"

// FieldUpdate is a partial update for one row.
type FieldUpdate struct {
	ID     int64
	Fields map[string]any
}

// ChangeSet is the minimal batch of writes produced by diffing an edited
// snapshot against the loaded one. It is applied in a single transaction.
type ChangeSet struct {
	RoomID     int64
	RoomFields map[string]any

	ContactID     int64
	ContactFields map[string]any

	ImageCreates []model.Image
	ImageUpdates []FieldUpdate
	ImageDeletes []int64

	VideoCreates []model.Video
	VideoUpdates []FieldUpdate
	VideoDeletes []int64
}

// Empty reports whether applying the change set would issue no writes.
func (c *ChangeSet) Empty() bool {
	return len(c.RoomFields) == 0 &&
		len(c.ContactFields) == 0 &&
		len(c.ImageCreates) == 0 && len(c.ImageUpdates) == 0 && len(c.ImageDeletes) == 0 &&
		len(c.VideoCreates) == 0 && len(c.VideoUpdates) == 0 && len(c.VideoDeletes) == 0
}

// Size returns the number of individual write operations in the set.
func (c *ChangeSet) Size() int {
	n := len(c.ImageCreates) + len(c.ImageUpdates) + len(c.ImageDeletes) +
		len(c.VideoCreates) + len(c.VideoUpdates) + len(c.VideoDeletes)
	if len(c.RoomFields) > 0 {
		n++
	}
	if len(c.ContactFields) > 0 {
		n++
	}
	return n
}

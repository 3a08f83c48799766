package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minsu-content-backend/internal/content"
	"minsu-content-backend/internal/defaults"
	"minsu-content-backend/internal/model"
)

func snapshotFixture() *content.Snapshot {
	return &content.Snapshot{
		Room: model.RoomInfo{ID: 1, RoomName: "辰奚小院", Slogan: "slogan", Description: "desc"},
		Images: []model.Image{
			{ID: 1, FileURL: "/media/images/1/a.jpg", FileName: "a.jpg", SortOrder: 1, IsCover: true},
			{ID: 2, FileURL: "/media/images/1/b.jpg", FileName: "b.jpg", SortOrder: 2},
		},
		Videos: []model.Video{
			{ID: 1, FileURL: "/media/videos/1/v.mp4", FileName: "v.mp4", FileSize: 12, IsPrimary: true, SortOrder: 1},
		},
		Contact: model.ContactInfo{ID: 1, Phone: "138-8888-8888", Email: "hello@example.com"},
	}
}

func TestNewDraft(t *testing.T) {
	d := NewDraft(snapshotFixture())

	assert.Equal(t, "辰奚小院", d.Room.RoomName)
	require.Len(t, d.Images, 2)
	assert.Equal(t, "1", d.Images[0].ID, "database ids become strings")
	assert.True(t, d.Images[0].IsCover)
	require.Len(t, d.Videos, 1)
	assert.Equal(t, 12, d.Videos[0].FileSize)
	assert.Equal(t, "138-8888-8888", d.Contact.Phone)
}

func TestDraft_AddImages(t *testing.T) {
	d := NewDraft(snapshotFixture())
	now := time.Now()

	d.AddImages([]NewFile{
		{Name: "new1.jpg", PreviewURL: "blob:http://localhost/abc"},
		{Name: "new2.jpg", PreviewURL: "blob:http://localhost/def"},
	}, now)

	require.Len(t, d.Images, 4)
	assert.NotEqual(t, d.Images[2].ID, d.Images[3].ID, "ids are locally unique")
	assert.True(t, isNewID(d.Images[2].ID))
	assert.False(t, d.Images[2].IsCover)
	assert.Greater(t, d.Images[3].SortOrder, d.Images[2].SortOrder)
}

func TestDraft_SetCover(t *testing.T) {
	d := NewDraft(snapshotFixture())

	d.SetCover("2")
	assert.False(t, d.Images[0].IsCover)
	assert.True(t, d.Images[1].IsCover)

	// An absent id clears every cover flag.
	d.SetCover("does_not_exist")
	for _, img := range d.Images {
		assert.False(t, img.IsCover)
	}
}

func TestDraft_DeleteImage(t *testing.T) {
	d := NewDraft(snapshotFixture())

	d.DeleteImage("1")
	require.Len(t, d.Images, 1)
	assert.Equal(t, "2", d.Images[0].ID)

	d.DeleteImage("no_such_id")
	assert.Len(t, d.Images, 1)
}

func TestDraft_SetPrimaryAndDeleteVideo(t *testing.T) {
	d := NewDraft(snapshotFixture())
	d.Videos = append(d.Videos, DraftVideo{ID: "2", FileURL: "/media/videos/1/w.mp4"})

	d.SetPrimary("2")
	assert.False(t, d.Videos[0].IsPrimary)
	assert.True(t, d.Videos[1].IsPrimary)

	d.DeleteVideo("1")
	require.Len(t, d.Videos, 1)
	assert.Equal(t, "2", d.Videos[0].ID)
}

func TestIsNewID(t *testing.T) {
	assert.True(t, isNewID("new_1700000000000_0"))
	assert.True(t, isNewID("not-a-number"))
	assert.False(t, isNewID("42"))
}

func TestDefaultsAreDraftable(t *testing.T) {
	snap := &content.Snapshot{
		Room:    defaults.RoomInfo(),
		Images:  defaults.Images(),
		Videos:  defaults.Videos(),
		Contact: defaults.ContactInfo(),
	}
	d := NewDraft(snap)
	assert.Len(t, d.Images, len(defaults.Images()))
	assert.NotEmpty(t, d.Room.RoomName)
}

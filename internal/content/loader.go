// Package content assembles page snapshots from the database with graceful
// fallback to the compiled-in defaults.
package content

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"minsu-content-backend/internal/defaults"
	"minsu-content-backend/internal/model"
	"minsu-content-backend/internal/store"
)

// Source records where a snapshot field came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// State describes a finished load: Loaded when at least one field came from
// the database, FallbackOnly when every read failed or found no rows.
type State string

const (
	StateLoaded       State = "loaded"
	StateFallbackOnly State = "fallback_only"
)

// Field names the independently fetched parts of a snapshot.
const (
	FieldRoom    = "room"
	FieldImages  = "images"
	FieldVideos  = "videos"
	FieldContact = "contact"
)

// Snapshot is the merged content for one page. Fields that were not
// requested, failed to load, or had no rows carry the fallback defaults.
type Snapshot struct {
	Room    model.RoomInfo    `json:"room"`
	Images  []model.Image     `json:"images"`
	Videos  []model.Video     `json:"videos"`
	Contact model.ContactInfo `json:"contact"`

	Sources map[string]Source `json:"sources"`
	State   State             `json:"state"`
}

// Loader fans out the reads a page needs, waits for all of them, and merges
// non-empty results over the defaults field by field.
type Loader struct {
	store  store.Store
	logger *zap.Logger
}

// NewLoader creates a content loader.
func NewLoader(s store.Store, logger *zap.Logger) *Loader {
	return &Loader{store: s, logger: logger}
}

// LoadHome loads the home page content: room text, videos, contact details.
func (l *Loader) LoadHome(ctx context.Context, roomID int64) *Snapshot {
	return l.load(ctx, roomID, FieldRoom, FieldVideos, FieldContact)
}

// LoadRoom loads the room detail content: room text, gallery, videos.
func (l *Loader) LoadRoom(ctx context.Context, roomID int64) *Snapshot {
	return l.load(ctx, roomID, FieldRoom, FieldImages, FieldVideos)
}

// LoadContact loads the contact page content.
func (l *Loader) LoadContact(ctx context.Context, roomID int64) *Snapshot {
	return l.load(ctx, roomID, FieldContact)
}

// LoadAll loads everything; the admin editor seeds its draft from this.
func (l *Loader) LoadAll(ctx context.Context, roomID int64) *Snapshot {
	return l.load(ctx, roomID, FieldRoom, FieldImages, FieldVideos, FieldContact)
}

// load issues the requested reads concurrently and applies the merge rule
// once after every read has resolved. Each read converts its own failure to
// an absent result, so one failing read never blocks or discards the others.
func (l *Loader) load(ctx context.Context, roomID int64, fields ...string) *Snapshot {
	snap := &Snapshot{
		Room:    defaults.RoomInfo(),
		Images:  defaults.Images(),
		Videos:  defaults.Videos(),
		Contact: defaults.ContactInfo(),
		Sources: make(map[string]Source, len(fields)),
		State:   StateFallbackOnly,
	}

	var (
		room    *model.RoomInfo
		images  []model.Image
		videos  []model.Video
		contact *model.ContactInfo
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range fields {
		switch f {
		case FieldRoom:
			g.Go(func() error {
				room = l.fetchRoom(gctx)
				return nil
			})
		case FieldImages:
			g.Go(func() error {
				images = l.fetchImages(gctx, roomID)
				return nil
			})
		case FieldVideos:
			g.Go(func() error {
				videos = l.fetchVideos(gctx, roomID)
				return nil
			})
		case FieldContact:
			g.Go(func() error {
				contact = l.fetchContact(gctx)
				return nil
			})
		}
	}
	g.Wait() //nolint:errcheck // readers never return errors

	for _, f := range fields {
		switch f {
		case FieldRoom:
			if room != nil {
				snap.Room = *room
				snap.Sources[FieldRoom] = SourceRemote
			} else {
				snap.Sources[FieldRoom] = SourceFallback
			}
		case FieldImages:
			if len(images) > 0 {
				snap.Images = images
				snap.Sources[FieldImages] = SourceRemote
			} else {
				snap.Sources[FieldImages] = SourceFallback
			}
		case FieldVideos:
			if len(videos) > 0 {
				snap.Videos = videos
				snap.Sources[FieldVideos] = SourceRemote
			} else {
				snap.Sources[FieldVideos] = SourceFallback
			}
		case FieldContact:
			if contact != nil {
				snap.Contact = *contact
				snap.Sources[FieldContact] = SourceRemote
			} else {
				snap.Sources[FieldContact] = SourceFallback
			}
		}
	}

	for _, src := range snap.Sources {
		if src == SourceRemote {
			snap.State = StateLoaded
			break
		}
	}
	return snap
}

// The fetch helpers distinguish "backend unreachable" (read error, warn)
// from "no rows yet" (empty result, debug); both fall back to defaults.

func (l *Loader) fetchRoom(ctx context.Context) *model.RoomInfo {
	room, err := l.store.RoomInfo(ctx)
	if err != nil {
		l.logger.Warn("room_info read failed, serving fallback",
			zap.String("cause", "backend unreachable"), zap.Error(err))
		return nil
	}
	if room == nil {
		l.logger.Debug("room_info has no rows yet, serving fallback")
	}
	return room
}

func (l *Loader) fetchImages(ctx context.Context, roomID int64) []model.Image {
	images, err := l.store.Images(ctx, roomID)
	if err != nil {
		l.logger.Warn("images read failed, serving fallback",
			zap.String("cause", "backend unreachable"), zap.Error(err))
		return nil
	}
	if len(images) == 0 {
		l.logger.Debug("images has no rows yet, serving fallback", zap.Int64("room_id", roomID))
	}
	return images
}

func (l *Loader) fetchVideos(ctx context.Context, roomID int64) []model.Video {
	videos, err := l.store.Videos(ctx, roomID)
	if err != nil {
		l.logger.Warn("videos read failed, serving fallback",
			zap.String("cause", "backend unreachable"), zap.Error(err))
		return nil
	}
	if len(videos) == 0 {
		l.logger.Debug("videos has no rows yet, serving fallback", zap.Int64("room_id", roomID))
	}
	return videos
}

func (l *Loader) fetchContact(ctx context.Context) *model.ContactInfo {
	contact, err := l.store.ContactInfo(ctx)
	if err != nil {
		l.logger.Warn("contact_info read failed, serving fallback",
			zap.String("cause", "backend unreachable"), zap.Error(err))
		return nil
	}
	if contact == nil {
		l.logger.Debug("contact_info has no rows yet, serving fallback")
	}
	return contact
}

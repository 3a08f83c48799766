// Package storage keeps uploaded media binaries on local disk and derives
// the publicly resolvable URL for each stored file.
package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"minsu-content-backend/config"
)

// Kind selects the media subtree a file is stored under.
type Kind string

const (
	KindImage Kind = "images"
	KindVideo Kind = "videos"
)

// StoredFile describes a successfully stored binary.
type StoredFile struct {
	Path string // public path, e.g. media/images/1/1700000000000000000.jpg
	URL  string // Path resolved against the public base URL
	Size int64  // bytes
}

// Store writes media files below a root directory. The layout is
// {root}/{kind}/{roomID}/{timestamp}.{ext}; the leading "media/" segment
// only exists in the public path, where the HTTP layer mounts the root.
type Store struct {
	root    string
	baseURL string
	logger  *zap.Logger
}

// New creates a media store rooted at cfg.RootDir.
func New(cfg *config.StorageConfig, logger *zap.Logger) *Store {
	return &Store{
		root:    cfg.RootDir,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:  logger,
	}
}

// Save stores data under a path keyed by the owning room and a
// timestamp-derived unique suffix and returns the public URL.
func (s *Store) Save(data []byte, kind Kind, roomID int64, origName string) (*StoredFile, error) {
	ext := strings.ToLower(path.Ext(origName))
	if ext == "" {
		// The browser did not give us an extension; sniff the content.
		ext = mimetype.Detect(data).Extension()
	}

	dir := filepath.Join(s.root, string(kind), fmt.Sprintf("%d", roomID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to store media file %s: %w", name, err)
	}

	publicPath := path.Join("media", string(kind), fmt.Sprintf("%d", roomID), name)
	return &StoredFile{
		Path: publicPath,
		URL:  s.baseURL + "/" + publicPath,
		Size: int64(len(data)),
	}, nil
}

// Remove best-effort deletes the binary behind a public URL. URLs that do
// not point into the media path are skipped silently; deletion failures are
// logged but never propagated, since the database row is the source of truth.
func (s *Store) Remove(fileURL string) {
	_, rel, found := strings.Cut(fileURL, "/media/")
	if !found || rel == "" {
		s.logger.Debug("skipping removal of foreign media URL", zap.String("url", fileURL))
		return
	}
	rel = filepath.Clean("/" + rel) // neutralize any ".." segments
	full := filepath.Join(s.root, rel)
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove media file",
			zap.String("path", full),
			zap.Error(err))
	}
}

// Root returns the directory uploaded files are stored under.
func (s *Store) Root() string {
	return s.root
}

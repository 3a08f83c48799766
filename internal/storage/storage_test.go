package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"minsu-content-backend/config"
)

// Minimal valid PNG header, enough for content sniffing.
var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func newTestStore(t *testing.T) *Store {
	return New(&config.StorageConfig{
		RootDir:       t.TempDir(),
		PublicBaseURL: "http://localhost:8080",
	}, zap.NewNop())
}

func TestStore_Save(t *testing.T) {
	s := newTestStore(t)

	f, err := s.Save([]byte("jpeg bytes"), KindImage, 1, "room.JPG")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(f.Path, "media/images/1/"), f.Path)
	assert.True(t, strings.HasSuffix(f.Path, ".jpg"), "extension is lowercased: %s", f.Path)
	assert.Equal(t, "http://localhost:8080/"+f.Path, f.URL)
	assert.Equal(t, int64(len("jpeg bytes")), f.Size)

	// The binary actually landed under the root.
	rel := strings.TrimPrefix(f.Path, "media/")
	data, err := os.ReadFile(filepath.Join(s.Root(), rel))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestStore_Save_SniffsExtension(t *testing.T) {
	s := newTestStore(t)

	f, err := s.Save(pngMagic, KindImage, 2, "blob")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(f.Path, ".png"), "sniffed from content: %s", f.Path)
}

func TestStore_Save_VideoKind(t *testing.T) {
	s := newTestStore(t)

	f, err := s.Save([]byte("video bytes"), KindVideo, 1, "tour.mp4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(f.Path, "media/videos/1/"), f.Path)
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t)

	f, err := s.Save([]byte("to be removed"), KindImage, 1, "x.jpg")
	require.NoError(t, err)
	rel := strings.TrimPrefix(f.Path, "media/")
	full := filepath.Join(s.Root(), rel)
	require.FileExists(t, full)

	s.Remove(f.URL)
	assert.NoFileExists(t, full)

	// Removing again is a no-op, as is a URL outside the media path.
	s.Remove(f.URL)
	s.Remove("https://cdn.example.com/assets/logo.png")
}

func TestStore_Remove_RejectsTraversal(t *testing.T) {
	root := t.TempDir()
	s := New(&config.StorageConfig{RootDir: root, PublicBaseURL: ""}, zap.NewNop())

	outside := filepath.Join(filepath.Dir(root), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))
	defer os.Remove(outside)

	s.Remove("http://localhost:8080/media/../" + filepath.Base(outside))
	assert.FileExists(t, outside)
}

package internal_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"minsu-content-backend/config"
	"minsu-content-backend/internal/api"
	"minsu-content-backend/internal/db"
	"minsu-content-backend/internal/editor"
	"minsu-content-backend/internal/model"
	"minsu-content-backend/internal/storage"
	"minsu-content-backend/internal/store"
)

// TestSiteLifecycle walks the whole flow an operator goes through: the
// public pages serve seeded content, the operator signs in, uploads a photo,
// reworks the draft and saves it, and the public pages reflect the edits.
func TestSiteLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gdb.DB()
		sqlDB.Close()
	})
	require.NoError(t, db.Migrate(gdb))

	cfg := &config.Config{
		Server: config.ServerConfig{
			RateLimitPerSec: 1000,
			RateLimitBurst:  1000,
			CacheTTLSeconds: 60,
		},
		Storage: config.StorageConfig{
			RootDir:       t.TempDir(),
			PublicBaseURL: "http://localhost:8080",
		},
		Auth: config.AuthConfig{
			JWTSecret:     "integration-secret",
			TokenTTL:      time.Hour,
			AdminEmail:    "admin@minsu.com",
			AdminPassword: "admin123",
			BcryptCost:    4,
		},
	}
	logger := zap.NewNop()
	require.NoError(t, db.Seed(gdb, &cfg.Auth, logger))

	s := store.NewGormStore(gdb)
	router := api.NewRouter(cfg, s, storage.New(&cfg.Storage, logger), logger)

	do := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// 1. Public room page: the seeded singleton comes back as remote, the
	// media lists fall back because nothing was uploaded yet.
	w := do(httptest.NewRequest(http.MethodGet, "/api/pages/room", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var roomPage struct {
		Sources map[string]string `json:"sources"`
		State   string            `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roomPage))
	assert.Equal(t, "loaded", roomPage.State)
	assert.Equal(t, "remote", roomPage.Sources["room"])
	assert.Equal(t, "fallback", roomPage.Sources["images"])

	// 2. Privileged endpoints reject an unauthenticated caller.
	w = do(httptest.NewRequest(http.MethodGet, "/api/admin/draft", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// 3. Sign in with the seeded account.
	loginBody := `{"email":"admin@minsu.com","password":"admin123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	w = do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	authed := func(req *http.Request) *http.Request {
		req.Header.Set("Authorization", "Bearer "+login.Token)
		return req
	}

	// 4. Upload two photos.
	var uploaded []model.Image
	for i := 0; i < 2; i++ {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", fmt.Sprintf("yard%d.jpg", i))
		require.NoError(t, err)
		_, err = fw.Write([]byte("jpeg bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req = httptest.NewRequest(http.MethodPost, "/api/admin/images", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w = do(authed(req))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var img model.Image
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &img))
		uploaded = append(uploaded, img)
	}

	// 5. Make the second photo the cover through the flag endpoint.
	req = httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/api/admin/images/%d/cover", uploaded[1].ID), nil)
	require.Equal(t, http.StatusOK, do(authed(req)).Code)

	// 6. Load the editor draft; it now reflects the uploads.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/draft", nil)
	w = do(authed(req))
	require.Equal(t, http.StatusOK, w.Code)
	var draft editor.Draft
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))
	require.Len(t, draft.Images, 2)
	assert.True(t, draft.Images[1].IsCover)

	// 7. Edit the draft: new slogan, move the cover back to the first photo,
	// drop the second one.
	draft.Room.Slogan = "小院新标语"
	draft.SetCover(draft.Images[0].ID)
	draft.DeleteImage(draft.Images[1].ID)

	body, err := json.Marshal(draft)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/admin/save", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = do(authed(req))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var saved struct {
		Status  string `json:"status"`
		Changes int    `json:"changes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "saved", saved.Status)
	assert.Equal(t, 3, saved.Changes, "slogan update, cover flip, one delete")

	// 8. Saving the unchanged draft again writes nothing.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/draft", nil)
	w = do(authed(req))
	require.Equal(t, http.StatusOK, w.Code)
	req = httptest.NewRequest(http.MethodPost, "/api/admin/save", bytes.NewReader(w.Body.Bytes()))
	req.Header.Set("Content-Type", "application/json")
	w = do(authed(req))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, 0, saved.Changes)

	// 9. The room page reflects the edits. The Authorization header skips
	// the response cache so the read is fresh.
	req = httptest.NewRequest(http.MethodGet, "/api/pages/room", nil)
	w = do(authed(req))
	require.Equal(t, http.StatusOK, w.Code)
	var after struct {
		Room    model.RoomInfo    `json:"room"`
		Images  []model.Image     `json:"images"`
		Cover   *model.Image      `json:"cover"`
		Sources map[string]string `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &after))
	assert.Equal(t, "小院新标语", after.Room.Slogan)
	assert.Equal(t, "remote", after.Sources["images"])
	require.Len(t, after.Images, 1)
	assert.Equal(t, uploaded[0].ID, after.Images[0].ID)
	require.NotNil(t, after.Cover)
	assert.Equal(t, uploaded[0].ID, after.Cover.ID)
}

package routers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/haierkeys/keepsake-service/internal/app"
	"github.com/haierkeys/keepsake-service/internal/dao"
	"github.com/haierkeys/keepsake-service/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := app.ParseConfig([]byte("{}"))
	require.NoError(t, err)
	cfg.Database.RecordStore = dao.StoreJSONFile
	cfg.Database.DataPath = t.TempDir()
	cfg.Storage.Type = storage.LOCAL
	cfg.Storage.SavePath = t.TempDir()
	cfg.App.UploadMaxSize = "1KB"

	st, err := storage.NewClient(&cfg.Storage, nil)
	require.NoError(t, err)
	store, err := dao.NewStore(cfg.Database, nil)
	require.NoError(t, err)

	return app.NewAppWith(cfg, nil, st, store)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return NewRouter(newTestApp(t), nil)
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, url, body string) *http.Request {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func uploadRequest(t *testing.T, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/photos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestLetterRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/letters", nil))
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "欢迎使用", list[0]["title"])
	assert.Equal(t, "永远的朋友", list[0]["signature"])

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/letters/default", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, list[0]["id"], decode[map[string]any](t, w)["id"])

	w = do(r, jsonRequest(http.MethodPost, "/api/letters", `{"title":"给你","content":"见字如面"}`))
	require.Equal(t, http.StatusOK, w.Code)
	created := decode[map[string]any](t, w)
	assert.Equal(t, "永远的朋友", created["signature"])
	id := created["id"].(string)

	w = do(r, jsonRequest(http.MethodPost, "/api/letters", `{"title":`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, jsonRequest(http.MethodPut, "/api/letters/"+id, `{"title":"","content":"x"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]any](t, w), "error")

	w = do(r, jsonRequest(http.MethodPut, "/api/letters/"+id, `{"title":"改","content":"新内容","signature":"我"}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "我", decode[map[string]any](t, w)["signature"])

	w = do(r, jsonRequest(http.MethodPut, "/api/letters/999", `{"title":"a","content":"b"}`))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, httptest.NewRequest(http.MethodDelete, "/api/letters/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Letter deleted successfully"}`, w.Body.String())

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/letters/"+id, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPhotoRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, uploadRequest(t, map[string]string{"title": "海", "description": "夏天", "date": "2024-07-01"}, "sea.png", pngBytes))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	photo := decode[map[string]any](t, w)
	imageURL := photo["imageUrl"].(string)
	assert.True(t, strings.HasPrefix(imageURL, "/uploads/"))
	assert.Equal(t, "海", photo["title"])

	w = do(r, httptest.NewRequest(http.MethodGet, imageURL, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pngBytes, w.Body.Bytes())

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/photos", nil))
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, photo["id"], list[0]["id"])

	w = do(r, httptest.NewRequest(http.MethodDelete, "/api/photos/"+photo["id"].(string), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Photo deleted successfully"}`, w.Body.String())

	w = do(r, httptest.NewRequest(http.MethodGet, imageURL, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, httptest.NewRequest(http.MethodDelete, "/api/photos/"+photo["id"].(string), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPhotoUploadRejected(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name       string
		req        *http.Request
		wantStatus int
	}{
		{"no file", uploadRequest(t, map[string]string{"title": "x"}, "", nil), http.StatusBadRequest},
		{"not multipart", jsonRequest(http.MethodPost, "/api/photos", `{}`), http.StatusBadRequest},
		{"too large", uploadRequest(t, nil, "big.png", make([]byte, 2048)), http.StatusRequestEntityTooLarge},
		{"bad date", uploadRequest(t, map[string]string{"date": "someday"}, "a.png", pngBytes), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.req)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Contains(t, decode[map[string]any](t, w), "error")
		})
	}

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/photos", nil))
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestNotFoundAndCors(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/nothing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode[map[string]any](t, w), "error")

	req := httptest.NewRequest(http.MethodOptions, "/api/letters", nil)
	req.Header.Set("Origin", "http://localhost:8000")
	w = do(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:8000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPrivateRouter(t *testing.T) {
	a := newTestApp(t)
	r := NewPrivateRouter(a)

	w := do(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, httptest.NewRequest(http.MethodGet, "/debug/vars", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "memstats")
	vars := decode[map[string]any](t, w)
	require.Contains(t, vars, "keepsake")
	assert.Equal(t, dao.StoreJSONFile, vars["keepsake"].(map[string]any)["record_store"])

	w = do(r, httptest.NewRequest(http.MethodGet, DefaultPrefix+"/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

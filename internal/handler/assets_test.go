// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olegiv/blogfront/internal/backend"
)

// fakeFiles serves a single scripted file for any request.
type fakeFiles struct {
	mu     sync.Mutex
	calls  []string
	body   string
	header http.Header
	err    error
}

func (f *fakeFiles) FetchFile(_ context.Context, collection, id, filename string) (*http.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, collection+"/"+id+"/"+filename)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	header := http.Header{}
	for k, v := range f.header {
		header[k] = v
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func TestThemeStatus(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.assets.ThemeStatus(w, httptest.NewRequest(http.MethodGet, "/theme-status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"publicAssets":false}`, w.Body.String(), "empty custom dir falls back to defaults")
}

func TestStatic(t *testing.T) {
	env := newTestEnv(t)
	env.writePublic(t, "styles.css", "body{color:red}")

	w := httptest.NewRecorder()
	env.assets.Static(w, httptest.NewRequest(http.MethodGet, "/styles.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/css", w.Header().Get("Content-Type"))
	assert.Equal(t, "body{color:red}", w.Body.String())

	w = httptest.NewRecorder()
	env.assets.Static(w, httptest.NewRequest(http.MethodGet, "/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeUpload_Passthrough(t *testing.T) {
	env := newTestEnv(t)
	env.media["/uploads/photo.jpg"] = "photo_abc.jpg"
	env.files.body = "jpegdata"
	env.files.header = http.Header{
		"Content-Type":   {"image/jpeg"},
		"Cache-Control":  {"max-age=60"},
		"Content-Length": {"8"},
	}

	w := httptest.NewRecorder()
	ok := env.assets.ServeUpload(w, httptest.NewRequest(http.MethodGet, "/uploads/photo.jpg", nil))

	assert.True(t, ok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "max-age=60", w.Header().Get("Cache-Control"))
	assert.Equal(t, "8", w.Header().Get("Content-Length"))
	assert.Equal(t, "jpegdata", w.Body.String())
	assert.Equal(t, []string{"media/m-photo_abc.jpg/photo_abc.jpg"}, env.files.calls)
}

func TestServeUpload_Defaults(t *testing.T) {
	env := newTestEnv(t)
	env.media["/uploads/doc.bin"] = "doc.bin"
	env.files.body = "raw"

	w := httptest.NewRecorder()
	ok := env.assets.ServeUpload(w, httptest.NewRequest(http.MethodGet, "/uploads/./doc.bin", nil))

	assert.True(t, ok)
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, DefaultUploadCacheControl, w.Header().Get("Cache-Control"))
}

func TestServeUpload_Head(t *testing.T) {
	env := newTestEnv(t)
	env.media["/uploads/photo.jpg"] = "photo.jpg"
	env.files.body = "jpegdata"

	w := httptest.NewRecorder()
	ok := env.assets.ServeUpload(w, httptest.NewRequest(http.MethodHead, "/uploads/photo.jpg", nil))

	assert.True(t, ok)
	assert.Empty(t, w.Body.String())
}

func TestServeUpload_Unmatched(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	ok := env.assets.ServeUpload(w, httptest.NewRequest(http.MethodGet, "/uploads/none.jpg", nil))

	assert.False(t, ok)
	assert.Empty(t, env.files.calls)
	assert.Equal(t, 0, w.Body.Len())
}

func TestServeUpload_FetchFails(t *testing.T) {
	env := newTestEnv(t)
	env.media["/uploads/photo.jpg"] = "photo.jpg"
	env.files.err = &backend.UpstreamError{Status: http.StatusNotFound}

	w := httptest.NewRecorder()
	ok := env.assets.ServeUpload(w, httptest.NewRequest(http.MethodGet, "/uploads/photo.jpg", nil))

	assert.False(t, ok)
	assert.Equal(t, 0, w.Body.Len())
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/olegiv/blogfront/internal/backend"
	"github.com/olegiv/blogfront/internal/model"
	"github.com/olegiv/blogfront/internal/theme"
)

// DefaultUploadCacheControl applies when the backend sends no Cache-Control.
const DefaultUploadCacheControl = "public, max-age=300"

// MediaFinder looks up media records by public path.
type MediaFinder interface {
	MediaByPath(ctx context.Context, path string) *model.Media
}

// FileFetcher opens files stored on the backend.
type FileFetcher interface {
	FetchFile(ctx context.Context, collection, id, filename string) (*http.Response, error)
}

// Assets serves the public directory, the theme status probe and uploads.
type Assets struct {
	assets *theme.Assets
	media  MediaFinder
	files  FileFetcher
	logger *slog.Logger
}

// NewAssets creates a new Assets handler.
func NewAssets(assets *theme.Assets, media MediaFinder, files FileFetcher, logger *slog.Logger) *Assets {
	return &Assets{
		assets: assets,
		media:  media,
		files:  files,
		logger: logger,
	}
}

// Exists reports whether the path names a file in the public directory.
func (h *Assets) Exists(urlPath string) bool {
	return h.assets.Exists(urlPath)
}

// ThemeStatus handles GET /theme-status.
func (h *Assets) ThemeStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]bool{
		"publicAssets": h.assets.CustomActive(),
	})
}

// Static serves a file from the public directory with a content type from
// the extension table. Unknown paths get a plain 404.
func (h *Assets) Static(w http.ResponseWriter, r *http.Request) {
	full, ok := h.assets.Resolve(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", theme.ContentType(full))
	http.ServeFile(w, r, full)
}

// ServeUpload streams the backend file for a media record whose path
// matches the request. It returns false, having written nothing, when no
// record matches or the backend cannot provide the file.
func (h *Assets) ServeUpload(w http.ResponseWriter, r *http.Request) bool {
	ctx := r.Context()
	mediaPath := path.Clean(r.URL.Path)

	m := h.media.MediaByPath(ctx, mediaPath)
	if m == nil || m.File == "" {
		return false
	}

	resp, err := h.files.FetchFile(ctx, model.CollectionMedia, m.ID, m.File)
	if err != nil {
		if !backend.IsNotFound(err) {
			h.logger.WarnContext(ctx, "fetching upload failed", "path", mediaPath, "media_id", m.ID, "error", err)
		}
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	cacheControl := resp.Header.Get("Cache-Control")
	if cacheControl == "" {
		cacheControl = DefaultUploadCacheControl
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", cacheControl)
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		w.Header().Set("Content-Length", cl)
	}
	w.WriteHeader(resp.StatusCode)
	if r.Method != http.MethodHead {
		if _, err := io.Copy(w, resp.Body); err != nil {
			h.logger.DebugContext(ctx, "streaming upload interrupted", "path", mediaPath, "error", err)
		}
	}
	return true
}

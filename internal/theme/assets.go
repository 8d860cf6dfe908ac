// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package theme

import (
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/olegiv/blogfront/internal/util"
)

// DefaultVariant is the stylesheet variant used when none is configured.
const DefaultVariant = "ember"

// mimeTypes maps file extensions served from the public directory.
var mimeTypes = map[string]string{
	".css":   "text/css",
	".js":    "application/javascript",
	".mjs":   "application/javascript",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".webp":  "image/webp",
	".svg":   "image/svg+xml",
	".woff2": "font/woff2",
	".txt":   "text/plain",
	".ico":   "image/x-icon",
	".xml":   "application/xml",
	".json":  "application/json",
}

// ContentType returns the content type for a file name by extension.
func ContentType(name string) string {
	if ct, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Assets is the public asset directory chosen at startup. It never changes
// afterwards.
type Assets struct {
	customDir string
	activeDir string
	variant   string
}

// NewAssets picks the first of customDir and defaultDir that holds at least
// one non-hidden entry. When neither does, customDir is used.
func NewAssets(customDir, defaultDir, variant string, logger *slog.Logger) *Assets {
	a := &Assets{
		customDir: customDir,
		activeDir: customDir,
		variant:   variant,
	}
	for _, dir := range []string{customDir, defaultDir} {
		if hasVisibleEntry(dir) {
			a.activeDir = dir
			break
		}
	}
	logger.Info("public assets selected", "dir", a.activeDir, "custom", a.CustomActive())
	return a
}

func hasVisibleEntry(dir string) bool {
	if dir == "" {
		return false
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), ".") {
			return true
		}
	}
	return false
}

// Dir returns the active public directory.
func (a *Assets) Dir() string {
	return a.activeDir
}

// CustomActive reports whether the custom public directory is in use.
func (a *Assets) CustomActive() bool {
	return a.activeDir == a.customDir
}

// Stylesheet returns the stylesheet URL. Custom public assets ship their own
// /styles.css; otherwise the variant (override first) selects a theme folder.
func (a *Assets) Stylesheet(override string) string {
	if a.CustomActive() {
		return "/styles.css"
	}
	raw := util.FirstNonEmpty(override, a.variant, DefaultVariant)
	variant := strings.ToLower(strings.TrimSpace(raw))
	return "/themes/" + url.PathEscape(variant) + "/styles.css"
}

// Resolve maps a URL path to a regular file inside the active directory.
// ok is false for directories, missing files and paths escaping the root.
func (a *Assets) Resolve(urlPath string) (string, bool) {
	full, err := util.ResolveURLPath(a.activeDir, urlPath)
	if err != nil {
		return "", false
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}

// Exists reports whether urlPath names a servable file.
func (a *Assets) Exists(urlPath string) bool {
	_, ok := a.Resolve(urlPath)
	return ok
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/blogfront/internal/feed"
	"github.com/olegiv/blogfront/internal/model"
)

func feedPosts() []model.Post {
	return []model.Post{
		{ID: "p1", Slug: "first", Title: "First", Body: "<p>one</p>", PublishedAt: "2024-03-01 10:00:00.000Z"},
		{ID: "p2", Slug: "second", Title: "Second", Date: "2024-02-01"},
	}
}

func TestAtomFeed(t *testing.T) {
	env := newTestEnv(t)
	env.posts = feedPosts()
	env.frontend.site.URL = "https://blog.example.com"

	w := env.get(t, "/feed.xml")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, feed.AtomContentType, w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "<title>Example Blog</title>")
	assert.Contains(t, body, "https://blog.example.com/posts/first/")
	assert.Contains(t, body, "<title>Second</title>")
}

func TestJSONFeed(t *testing.T) {
	env := newTestEnv(t)
	env.posts = feedPosts()

	w := env.get(t, "/feed.json")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, feed.JSONContentType, w.Header().Get("Content-Type"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Example Blog", doc["title"])
	items, ok := doc["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestFeed_ListsMostRecent(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/feed.json")

	var found bool
	for _, c := range env.backend.ListCalls() {
		if c.Collection == model.CollectionPosts {
			found = true
			assert.Equal(t, 20, c.Query.PerPage)
			assert.Equal(t, 1, c.Query.Page)
		}
	}
	assert.True(t, found)
}

func TestSitemap(t *testing.T) {
	env := newTestEnv(t)
	env.posts = feedPosts()
	env.pages = []model.Page{{URL: "about/", Date: "2024-01-05"}, {URL: ""}}

	w := env.get(t, "/sitemap.xml")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "<loc>http://example.com/</loc>", "base url taken from the request host")
	assert.Contains(t, body, "<loc>http://example.com/archive/</loc>")
	assert.Contains(t, body, "<loc>http://example.com/about/</loc>")
	assert.Contains(t, body, "<loc>http://example.com/posts/first/</loc>")
	assert.Contains(t, body, "<lastmod>2024-01-05</lastmod>")
}

func TestSitemap_ConfiguredURL(t *testing.T) {
	env := newTestEnv(t)
	env.frontend.site.URL = "https://blog.example.com"

	w := env.get(t, "/sitemap.xml")

	assert.Contains(t, w.Body.String(), "<loc>https://blog.example.com/</loc>")
}

func TestSitemap_MissingBaseURL(t *testing.T) {
	env := newTestEnv(t)
	r := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	r.Host = ""
	w := httptest.NewRecorder()

	env.frontend.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRobots(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/robots.txt")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Disallow: /api/\n")
	assert.Contains(t, w.Body.String(), "Sitemap: http://example.com/sitemap.xml\n")
}

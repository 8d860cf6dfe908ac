// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package feed

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/blogfront/internal/model"
)

func samplePosts() []model.Post {
	return []model.Post{
		{
			ID:          "p1",
			Title:       "Tom & Jerry",
			Slug:        "tom-and-jerry",
			Excerpt:     "<p>A <b>classic</b> chase</p>",
			PublishedAt: "2025-03-01 09:30:00.000Z",
		},
		{
			ID:   "p2",
			Slug: "untitled",
			Body: "<p>" + strings.Repeat("x", 200) + "</p>",
			Date: "2025-02-01",
		},
	}
}

func TestItems_WithBaseURL(t *testing.T) {
	items := Items(Meta{Title: "Blog", BaseURL: "https://blog.example.com"}, samplePosts())
	require.Len(t, items, 2)

	assert.Equal(t, "https://blog.example.com/posts/tom-and-jerry/", items[0].URL)
	assert.Equal(t, items[0].URL, items[0].ID)
	assert.Equal(t, "Tom & Jerry", items[0].Title)
	assert.Equal(t, "A classic chase", items[0].Summary)
	assert.Equal(t, "2025-03-01 09:30:00.000Z", items[0].Date)

	assert.Equal(t, "untitled", items[1].Title, "untitled posts fall back to the slug")
	assert.Equal(t, "2025-02-01", items[1].Date)
	assert.Equal(t, strings.Repeat("x", 160)+"...", items[1].Summary)
}

func TestItems_WithoutBaseURL(t *testing.T) {
	meta := Meta{Title: "Blog"}
	items := Items(meta, samplePosts())
	require.Len(t, items, 2)

	for _, item := range items {
		assert.Empty(t, item.URL)
		assert.True(t, strings.HasPrefix(item.ID, "urn:uuid:"), "id %q", item.ID)
	}
	assert.NotEqual(t, items[0].ID, items[1].ID)

	again := Items(meta, samplePosts())
	assert.Equal(t, items[0].ID, again[0].ID, "ids are stable across builds")
}

func TestAtom(t *testing.T) {
	meta := Meta{Title: "Blog", BaseURL: "https://blog.example.com"}
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	out, err := Atom(meta, Items(meta, samplePosts()), now)
	require.NoError(t, err)
	doc := string(out)

	assert.True(t, strings.HasPrefix(doc, xml.Header))
	assert.Contains(t, doc, `<feed xmlns="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, doc, `<link href="https://blog.example.com/"></link>`)
	assert.Contains(t, doc, `<link href="https://blog.example.com/feed.xml" rel="self"></link>`)
	assert.Contains(t, doc, "<updated>2025-04-01T12:00:00Z</updated>")
	assert.Contains(t, doc, "<id>https://blog.example.com/</id>")
	assert.Contains(t, doc, "<title>Tom &amp; Jerry</title>")
	assert.Contains(t, doc, "<updated>2025-03-01T09:30:00Z</updated>")
	assert.Contains(t, doc, "<updated>2025-02-01T00:00:00Z</updated>")

	var parsed AtomFeed
	require.NoError(t, xml.Unmarshal(out, &parsed))
	require.Len(t, parsed.Entries, 2)
	assert.Equal(t, "Tom & Jerry", parsed.Entries[0].Title)
	assert.Equal(t, "A classic chase", parsed.Entries[0].Summary)
}

func TestAtom_WithoutBaseURL(t *testing.T) {
	meta := Meta{Title: "Blog"}
	out, err := Atom(meta, Items(meta, samplePosts()), time.Now())
	require.NoError(t, err)
	doc := string(out)

	assert.NotContains(t, doc, "<link")
	assert.Contains(t, doc, "<id>urn:uuid:")
}

func TestJSON(t *testing.T) {
	meta := Meta{Title: "Blog", BaseURL: "https://blog.example.com"}
	out, err := JSON(meta, Items(meta, samplePosts()))
	require.NoError(t, err)

	assert.Contains(t, string(out), `"title": "Tom & Jerry"`)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(out, &parsed))
	assert.Equal(t, JSONFeedVersion, parsed["version"])
	assert.Equal(t, "Blog", parsed["title"])
	assert.Equal(t, "https://blog.example.com/", parsed["home_page_url"])
	assert.Equal(t, "https://blog.example.com/feed.json", parsed["feed_url"])

	items, ok := parsed["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "https://blog.example.com/posts/tom-and-jerry/", first["id"])
	assert.Equal(t, "https://blog.example.com/posts/tom-and-jerry/", first["url"])
	assert.Equal(t, "Tom & Jerry", first["title"])
	assert.Equal(t, "2025-03-01 09:30:00.000Z", first["date_published"])
	assert.Equal(t, "A classic chase", first["summary"])
}

func TestJSON_EmptyFeed(t *testing.T) {
	out, err := JSON(Meta{Title: "Blog"}, nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"items": []`)
	assert.Contains(t, string(out), `"home_page_url": ""`)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package feed builds the Atom and JSON feeds of recent posts.
package feed

import (
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/blogfront/internal/model"
	"github.com/olegiv/blogfront/internal/uikit"
)

// Content types served for each feed.
const (
	AtomContentType = "application/atom+xml; charset=utf-8"
	JSONContentType = "application/feed+json; charset=utf-8"
)

// summarySanitizer reduces summaries to plain text for feed readers.
var summarySanitizer = bluemonday.StrictPolicy()

// Meta describes the feed itself.
type Meta struct {
	Title   string
	BaseURL string // Canonical site URL without trailing slash, may be empty
}

// HomeURL returns the site root, or "" without a base URL.
func (m Meta) HomeURL() string {
	if m.BaseURL == "" {
		return ""
	}
	return m.BaseURL + "/"
}

// FeedURL returns the absolute URL of a feed file, or "" without a base URL.
func (m Meta) FeedURL(name string) string {
	if m.BaseURL == "" {
		return ""
	}
	return m.BaseURL + "/" + name
}

// ID returns a stable identifier for the feed.
func (m Meta) ID() string {
	if m.BaseURL != "" {
		return m.BaseURL + "/"
	}
	return nameID(m.Title)
}

// Item is one post as it appears in a feed.
type Item struct {
	ID      string
	URL     string
	Title   string
	Date    string
	Summary string
}

// Items converts posts into feed items. Without a base URL items carry no
// link and get a name-based id instead.
func Items(meta Meta, posts []model.Post) []Item {
	items := make([]Item, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		slug := strings.TrimSpace(p.Slug)

		var link string
		if meta.BaseURL != "" && slug != "" {
			link = meta.BaseURL + uikit.PostURL(slug)
		}
		id := link
		if id == "" {
			id = nameID(meta.Title + "/" + slug + "/" + p.ID)
		}

		items = append(items, Item{
			ID:      id,
			URL:     link,
			Title:   p.DisplayTitle(),
			Date:    p.Timestamp(),
			Summary: plainText(p.Summary()),
		})
	}
	return items
}

// plainText strips markup and resolves entities so encoders escape once.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(summarySanitizer.Sanitize(s)))
}

func nameID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).URN()
}

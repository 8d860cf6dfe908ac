// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the backend records the front end reads.
package model

import (
	"strings"

	"github.com/olegiv/blogfront/internal/util"
)

// Collection names on the backend.
const (
	CollectionPosts    = "posts"
	CollectionPages    = "pages"
	CollectionMedia    = "media"
	CollectionSettings = "settings"
)

// Ordering fields for posts, in order of preference.
const (
	FieldPublishedAt = "published_at"
	FieldDate        = "date"
)

// Post represents a blog post record.
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Body        string `json:"body"`
	Content     string `json:"content"`
	Excerpt     string `json:"excerpt"`
	Tags        string `json:"tags"`
	Category    string `json:"category"`
	Published   bool   `json:"published"`
	PublishedAt string `json:"published_at"`
	Date        string `json:"date"`
}

// HTML returns the post body, falling back to the legacy content field.
func (p *Post) HTML() string {
	if p.Body != "" {
		return p.Body
	}
	return p.Content
}

// DisplayTitle returns the title, or the slug for untitled posts.
func (p *Post) DisplayTitle() string {
	return util.FirstNonEmpty(p.Title, p.Slug)
}

// TagList returns the parsed, de-duplicated tags.
func (p *Post) TagList() []string {
	return util.ParseTags(p.Tags)
}

// OrderingField returns the field used to order this post and its value.
// published_at is preferred; date is the fallback for older records.
// ok is false when the post has neither.
func (p *Post) OrderingField() (field, value string, ok bool) {
	if v := strings.TrimSpace(p.PublishedAt); v != "" {
		return FieldPublishedAt, v, true
	}
	if v := strings.TrimSpace(p.Date); v != "" {
		return FieldDate, v, true
	}
	return "", "", false
}

// Timestamp returns published_at or date, whichever is set.
func (p *Post) Timestamp() string {
	_, v, _ := p.OrderingField()
	return v
}

// Summary returns the explicit excerpt, or one derived from the body.
func (p *Post) Summary() string {
	if strings.TrimSpace(p.Excerpt) != "" {
		return p.Excerpt
	}
	return util.Excerpt(p.HTML(), util.ExcerptLength)
}

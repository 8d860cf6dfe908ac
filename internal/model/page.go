// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"

	"github.com/olegiv/blogfront/internal/util"
)

// Page represents a static page record. URL is the routing key.
type Page struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	URL         string `json:"url"`
	Body        string `json:"body"`
	Content     string `json:"content"`
	MenuVisible bool   `json:"menuVisible"`
	MenuOrder   int    `json:"menuOrder"`
	MenuTitle   string `json:"menuTitle"`
	Published   bool   `json:"published"`
	PublishedAt string `json:"published_at"`
	Date        string `json:"date"`
}

// HTML returns the page body, falling back to the legacy content field.
func (p *Page) HTML() string {
	if p.Body != "" {
		return p.Body
	}
	return p.Content
}

// MenuLabel returns the navigation label.
func (p *Page) MenuLabel() string {
	return util.FirstNonEmpty(p.MenuTitle, p.Title)
}

// Path returns the page URL with a leading slash, or "" when unset.
func (p *Page) Path() string {
	u := strings.TrimSpace(p.URL)
	if u == "" {
		return ""
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return u
}

// Timestamp returns published_at or date, whichever is set.
func (p *Page) Timestamp() string {
	return strings.TrimSpace(util.FirstNonEmpty(p.PublishedAt, p.Date))
}

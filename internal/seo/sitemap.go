// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds sitemap.xml and robots.txt for the public site.
package seo

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/olegiv/blogfront/internal/uikit"
	"github.com/olegiv/blogfront/internal/util"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder builds sitemap XML from posts and pages.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder. siteURL must not end with a slash.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimRight(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// AddHomepage adds the homepage and the archive to the sitemap.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls,
		SitemapURL{Loc: b.siteURL + "/"},
		SitemapURL{Loc: b.siteURL + "/archive/"},
	)
}

// AddFeeds adds the Atom and JSON feeds to the sitemap.
func (b *SitemapBuilder) AddFeeds() {
	b.urls = append(b.urls,
		SitemapURL{Loc: b.siteURL + "/feed.xml"},
		SitemapURL{Loc: b.siteURL + "/feed.json"},
	)
}

// AddPage adds a static page by its URL path. Empty paths are skipped.
func (b *SitemapBuilder) AddPage(path, date string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	b.urls = append(b.urls, SitemapURL{
		Loc:     b.siteURL + path,
		LastMod: LastMod(date),
	})
}

// AddPost adds a post by slug. Empty slugs are skipped.
func (b *SitemapBuilder) AddPost(slug, date string) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return
	}
	b.urls = append(b.urls, SitemapURL{
		Loc:     b.siteURL + uikit.PostURL(slug),
		LastMod: LastMod(date),
	})
}

// Len returns the number of URLs added so far.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	// Add XML header
	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// LastMod formats a record timestamp for <lastmod>. Date-only values keep
// the date form; anything unparsable is dropped.
func LastMod(value string) string {
	value = strings.TrimSpace(value)
	t, ok := util.ParseDate(value)
	if !ok {
		return ""
	}
	if len(value) == len("2006-01-02") {
		return t.Format("2006-01-02")
	}
	return t.UTC().Format(time.RFC3339)
}

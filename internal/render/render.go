// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render turns resolved content into complete HTML documents.
// Renderers do no I/O: handlers resolve content first and pass it in.
package render

import (
	"html/template"
	"strings"

	"github.com/olegiv/blogfront/internal/content"
	"github.com/olegiv/blogfront/internal/model"
	"github.com/olegiv/blogfront/internal/theme"
	"github.com/olegiv/blogfront/internal/uikit"
	"github.com/olegiv/blogfront/internal/util"
)

// Page names in the theme.
const (
	PageHome     = "home"
	PageArchive  = "archive"
	PagePost     = "post"
	PagePage     = "page"
	PageNotFound = "404"
)

// Renderer renders pages with a theme.
type Renderer struct {
	theme  *theme.Theme
	assets *theme.Assets
}

// New creates a renderer.
func New(th *theme.Theme, assets *theme.Assets) *Renderer {
	return &Renderer{theme: th, assets: assets}
}

func (r *Renderer) render(c Chrome, pageName, title string, data any) (string, error) {
	doc := document{
		Site:       c.Site,
		Title:      title,
		Stylesheet: r.assets.Stylesheet(util.FirstNonEmpty(c.ThemeOverride, c.Site.Theme)),
		Menu:       menuItems(c.Menu),
		Content:    data,
	}

	var b strings.Builder
	if err := r.theme.RenderPage(&b, pageName, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Home renders the landing page with the most recent posts.
func (r *Renderer) Home(c Chrome, posts []model.Post) (string, error) {
	return r.render(c, PageHome, "Home", homeContent{Posts: summaryViews(posts)})
}

// ArchiveData is the resolved content of an archive page. At most one of
// Tag and Category is set.
type ArchiveData struct {
	Tag      string
	Category string
	Page     int
	Listing  content.Listing

	// AllTags and AllCategories are only shown on the first unfiltered page.
	AllTags       []string
	AllCategories []string
}

// ShowIndex reports whether the page carries feed links, search and the
// tag and category indexes.
func (a ArchiveData) ShowIndex() bool {
	return a.Tag == "" && a.Category == "" && a.Page <= 1
}

// Base returns the URL of the first page of this archive.
func (a ArchiveData) Base() string {
	if a.Category != "" {
		return uikit.CategoryURL(a.Category)
	}
	return ArchiveBase(a.Tag)
}

// ArchiveBase returns the URL of the first archive page for tag.
func ArchiveBase(tag string) string {
	if tag == "" {
		return "/archive/"
	}
	return uikit.TagURL(tag)
}

// Archive renders a page of the archive, optionally filtered by tag or category.
func (r *Renderer) Archive(c Chrome, a ArchiveData) (string, error) {
	title := "Archive"
	switch {
	case a.Category != "":
		title = "category: " + a.Category
	case a.Tag != "":
		title = "tag: " + a.Tag
	}
	page := max(a.Page, 1)

	total := a.Listing.TotalPages
	if total == 0 && a.Listing.TotalItems > 0 {
		total = uikit.CalculateTotalPages(a.Listing.TotalItems, a.Listing.PerPage)
	}

	data := archiveContent{
		Posts:      summaryViews(a.Listing.Posts),
		Pagination: uikit.BuildPagination(a.Base(), page, total),
		ShowIndex:  a.ShowIndex(),
	}
	if data.ShowIndex {
		data.Tags = a.AllTags
		if c.Site.ShowCategories {
			data.Categories = a.AllCategories
		}
	}
	return r.render(c, PageArchive, title, data)
}

// Post renders a single post. body is the post HTML after media rewriting.
func (r *Renderer) Post(c Chrome, post *model.Post, body string, adj content.Adjacent) (string, error) {
	view := summaryView(post)
	view.Title = post.Title
	if c.Site.ShowCategories {
		view.Category = strings.TrimSpace(post.Category)
	}
	view.ReadingTime = util.ReadingTime(body)

	var toc template.HTML
	if c.Site.ShowTOC {
		body, toc = BuildTOC(body)
	}

	data := postContent{
		Post:  view,
		TOC:   toc,
		Body:  template.HTML(body),
		Newer: postLink(adj.Newer),
		Older: postLink(adj.Older),
	}
	return r.render(c, PagePost, util.FirstNonEmpty(post.Title, "Post"), data)
}

// Page renders a static page. body is the page HTML after media rewriting.
func (r *Renderer) Page(c Chrome, page *model.Page, body string) (string, error) {
	data := pageContent{
		Title: page.Title,
		Body:  template.HTML(body),
	}
	return r.render(c, PagePage, util.FirstNonEmpty(page.Title, "Page"), data)
}

// NotFound renders the not-found page.
func (r *Renderer) NotFound(c Chrome) (string, error) {
	return r.render(c, PageNotFound, "Not Found", nil)
}

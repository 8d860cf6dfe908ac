// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html/template"

	"github.com/olegiv/blogfront/internal/model"
	"github.com/olegiv/blogfront/internal/uikit"
	"github.com/olegiv/blogfront/internal/util"
)

// Chrome is what every page needs besides its own content.
type Chrome struct {
	Site          Site
	Menu          []model.Page
	ThemeOverride string
}

// document is the data passed to the base layout.
type document struct {
	Site       Site
	Title      string
	Stylesheet string
	Menu       []MenuItem
	Content    any
}

// MenuItem is one navigation link.
type MenuItem struct {
	Label string
	URL   string
}

// PostView is a post as shown in lists and on its own page.
type PostView struct {
	Title       string
	URL         string
	Date        string
	ReadingTime int
	Category    string
	Tags        []string
	// Excerpt is either the stored summary or text cut from the body, both
	// of which already carry their entities encoded.
	Excerpt     template.HTML
}

// PostLink is the target of a newer/older link.
type PostLink struct {
	Title string
	URL   string
}

type homeContent struct {
	Posts []PostView
}

type archiveContent struct {
	Posts      []PostView
	Pagination uikit.Pagination
	ShowIndex  bool
	Tags       []string
	Categories []string
}

type postContent struct {
	Post  PostView
	TOC   template.HTML
	Body  template.HTML
	Newer *PostLink
	Older *PostLink
}

type pageContent struct {
	Title string
	Body  template.HTML
}

func menuItems(pages []model.Page) []MenuItem {
	items := make([]MenuItem, 0, len(pages))
	for i := range pages {
		items = append(items, MenuItem{
			Label: pages[i].MenuLabel(),
			URL:   pages[i].Path(),
		})
	}
	return items
}

// summaryView builds the list entry for a post.
func summaryView(p *model.Post) PostView {
	return PostView{
		Title:       p.DisplayTitle(),
		URL:         uikit.PostURL(p.Slug),
		Date:        p.Timestamp(),
		ReadingTime: util.ReadingTime(p.HTML()),
		Tags:        p.TagList(),
		Excerpt:     template.HTML(p.Summary()),
	}
}

func summaryViews(posts []model.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, summaryView(&posts[i]))
	}
	return views
}

func postLink(p *model.Post) *PostLink {
	if p == nil {
		return nil
	}
	return &PostLink{
		Title: util.FirstNonEmpty(p.Title, "Post"),
		URL:   uikit.PostURL(p.Slug),
	}
}

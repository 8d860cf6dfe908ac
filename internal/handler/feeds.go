// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/blogfront/internal/backend"
	"github.com/olegiv/blogfront/internal/feed"
	"github.com/olegiv/blogfront/internal/model"
	"github.com/olegiv/blogfront/internal/seo"
	"github.com/olegiv/blogfront/internal/util"
)

// feedItems returns the feed metadata and the most recent posts.
func (h *Frontend) feedItems(r *http.Request) (feed.Meta, []feed.Item) {
	ctx := r.Context()
	site := h.siteFor(ctx)
	meta := feed.Meta{Title: site.Name, BaseURL: site.URL}
	listing := h.resolver.ListPosts(ctx, 1, site.FeedItemsLimit, backend.Published)
	return meta, feed.Items(meta, listing.Posts)
}

func (h *Frontend) atomFeed(w http.ResponseWriter, r *http.Request) error {
	meta, items := h.feedItems(r)
	out, err := feed.Atom(meta, items, time.Now())
	if err != nil {
		return fmt.Errorf("building atom feed: %w", err)
	}
	return writeBody(w, feed.AtomContentType, out)
}

func (h *Frontend) jsonFeed(w http.ResponseWriter, r *http.Request) error {
	meta, items := h.feedItems(r)
	out, err := feed.JSON(meta, items)
	if err != nil {
		return fmt.Errorf("building json feed: %w", err)
	}
	return writeBody(w, feed.JSONContentType, out)
}

func (h *Frontend) sitemap(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	base := util.RequestBaseURL(r, h.siteFor(ctx).URL)
	if base == "" {
		http.Error(w, "missing site url", http.StatusBadRequest)
		return nil
	}

	var (
		posts []model.Post
		pages []model.Page
		g     errgroup.Group
	)
	g.Go(func() error {
		posts = h.resolver.AllPublishedPosts(ctx)
		return nil
	})
	g.Go(func() error {
		pages = h.resolver.AllPublishedPages(ctx)
		return nil
	})
	_ = g.Wait()

	b := seo.NewSitemapBuilder(base)
	b.AddHomepage()
	b.AddFeeds()
	for i := range pages {
		b.AddPage(pages[i].Path(), pages[i].Timestamp())
	}
	for i := range posts {
		b.AddPost(posts[i].Slug, posts[i].Timestamp())
	}

	out, err := b.Build()
	if err != nil {
		return fmt.Errorf("building sitemap: %w", err)
	}
	return writeBody(w, "application/xml; charset=utf-8", out)
}

func (h *Frontend) robots(w http.ResponseWriter, r *http.Request) error {
	base := util.RequestBaseURL(r, h.siteFor(r.Context()).URL)
	return writeBody(w, "text/plain; charset=utf-8", []byte(seo.GenerateRobots(base, false)))
}

func writeBody(w http.ResponseWriter, contentType string, body []byte) error {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(body)
	return err
}

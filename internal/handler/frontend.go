// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/blogfront/internal/backend"
	"github.com/olegiv/blogfront/internal/content"
	"github.com/olegiv/blogfront/internal/media"
	"github.com/olegiv/blogfront/internal/model"
	"github.com/olegiv/blogfront/internal/render"
)

// Frontend renders the public pages.
type Frontend struct {
	resolver            *content.Resolver
	rewriter            *media.Rewriter
	renderer            *render.Renderer
	site                render.Site
	settingsFromBackend bool
	logger              *slog.Logger
	pages               http.Handler
}

// NewFrontend creates a new Frontend. site holds the configured defaults;
// when settingsFromBackend is set the backend's settings record is
// overlaid on every request.
func NewFrontend(resolver *content.Resolver, rewriter *media.Rewriter, renderer *render.Renderer,
	site render.Site, settingsFromBackend bool, logger *slog.Logger) *Frontend {
	h := &Frontend{
		resolver:            resolver,
		rewriter:            rewriter,
		renderer:            renderer,
		site:                site,
		settingsFromBackend: settingsFromBackend,
		logger:              logger,
	}
	h.pages = NewPageRouter(h.dispatch)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Frontend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.pages.ServeHTTP(w, r)
}

// dispatch renders the response for a routed page request.
func (h *Frontend) dispatch(w http.ResponseWriter, r *http.Request, route PageRoute) {
	themeOverride := r.URL.Query().Get("theme")

	h.serve(w, r, func(w http.ResponseWriter, r *http.Request) error {
		switch route.Kind {
		case PageHome:
			return h.home(w, r, themeOverride)
		case PageArchive:
			return h.archive(w, r, route, themeOverride)
		case PagePost:
			return h.post(w, r, route.Slug, themeOverride)
		case PageAtomFeed:
			return h.atomFeed(w, r)
		case PageJSONFeed:
			return h.jsonFeed(w, r)
		case PageSitemap:
			return h.sitemap(w, r)
		case PageRobots:
			return h.robots(w, r)
		default:
			return h.page(w, r, route.Path, themeOverride)
		}
	})
}

// serve runs fn and applies the error policy: failures and panics become a
// plain-text 500 when nothing was sent yet, otherwise the connection is aborted.
func (h *Frontend) serve(w http.ResponseWriter, r *http.Request, fn func(http.ResponseWriter, *http.Request) error) {
	tw := &trackingWriter{ResponseWriter: w}

	err := func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				err = fmt.Errorf("panic: %v", p)
			}
		}()
		return fn(tw, r)
	}()
	if err == nil {
		return
	}

	h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	if tw.wrote {
		panic(http.ErrAbortHandler)
	}
	w.Header().Del("Content-Length")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = io.WriteString(w, "Internal Server Error")
}

// siteFor returns the site settings for one request.
func (h *Frontend) siteFor(ctx context.Context) render.Site {
	if !h.settingsFromBackend {
		return h.site
	}
	return h.site.WithSettings(h.resolver.Settings(ctx))
}

// chrome resolves the site settings and menu concurrently.
func (h *Frontend) chrome(ctx context.Context, themeOverride string) render.Chrome {
	c := render.Chrome{ThemeOverride: themeOverride}
	var g errgroup.Group
	g.Go(func() error {
		c.Site = h.siteFor(ctx)
		return nil
	})
	g.Go(func() error {
		c.Menu = h.resolver.MenuPages(ctx)
		return nil
	})
	_ = g.Wait()
	return c
}

func (h *Frontend) home(w http.ResponseWriter, r *http.Request, themeOverride string) error {
	ctx := r.Context()
	c := h.chrome(ctx, themeOverride)
	listing := h.resolver.ListPosts(ctx, 1, c.Site.HomePageSize, backend.Published)

	html, err := h.renderer.Home(c, listing.Posts)
	if err != nil {
		return fmt.Errorf("rendering home: %w", err)
	}
	return writeHTML(w, html)
}

// archiveFilter matches published posts, narrowed to the route's category
// or tag when one is set.
func archiveFilter(route PageRoute) backend.Filter {
	switch {
	case route.Category != "":
		return backend.And(backend.Published, backend.Eq("category", route.Category))
	case route.Tag != "":
		return backend.And(backend.Published, backend.Contains("tags", route.Tag))
	default:
		return backend.Published
	}
}

func (h *Frontend) archive(w http.ResponseWriter, r *http.Request, route PageRoute, themeOverride string) error {
	ctx := r.Context()
	c := h.chrome(ctx, themeOverride)
	data := render.ArchiveData{Tag: route.Tag, Category: route.Category, Page: route.Page}

	var g errgroup.Group
	g.Go(func() error {
		data.Listing = h.resolver.ListPosts(ctx, route.Page, c.Site.ArchivePageSize, archiveFilter(route))
		return nil
	})
	if data.ShowIndex() {
		g.Go(func() error {
			index := h.resolver.CollectIndex(ctx)
			data.AllTags, data.AllCategories = index.Tags, index.Categories
			return nil
		})
	}
	_ = g.Wait()

	html, err := h.renderer.Archive(c, data)
	if err != nil {
		return fmt.Errorf("rendering archive: %w", err)
	}
	return writeHTML(w, html)
}

func (h *Frontend) post(w http.ResponseWriter, r *http.Request, slug, themeOverride string) error {
	ctx := r.Context()
	c := h.chrome(ctx, themeOverride)

	var post *model.Post
	if slug != "" {
		post = h.resolver.PostBySlug(ctx, slug)
	}
	if post == nil {
		return h.notFound(w, c)
	}

	var (
		body string
		adj  content.Adjacent
		g    errgroup.Group
	)
	g.Go(func() error {
		body = h.rewriter.Rewrite(ctx, post.HTML())
		return nil
	})
	g.Go(func() error {
		adj = h.resolver.AdjacentPosts(ctx, post)
		return nil
	})
	_ = g.Wait()

	html, err := h.renderer.Post(c, post, body, adj)
	if err != nil {
		return fmt.Errorf("rendering post %q: %w", slug, err)
	}
	return writeHTML(w, html)
}

func (h *Frontend) page(w http.ResponseWriter, r *http.Request, path, themeOverride string) error {
	ctx := r.Context()
	c := h.chrome(ctx, themeOverride)

	page := h.resolver.PageByURL(ctx, path)
	if page == nil {
		return h.notFound(w, c)
	}

	body := h.rewriter.Rewrite(ctx, page.HTML())
	html, err := h.renderer.Page(c, page, body)
	if err != nil {
		return fmt.Errorf("rendering page %q: %w", path, err)
	}
	return writeHTML(w, html)
}

// notFound renders the not-found page with status 200.
func (h *Frontend) notFound(w http.ResponseWriter, c render.Chrome) error {
	html, err := h.renderer.NotFound(c)
	if err != nil {
		return fmt.Errorf("rendering not found: %w", err)
	}
	return writeHTML(w, html)
}

func writeHTML(w http.ResponseWriter, html string) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := io.WriteString(w, html)
	return err
}

// trackingWriter records whether any part of the response was sent.
type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (tw *trackingWriter) WriteHeader(code int) {
	tw.wrote = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *trackingWriter) Write(b []byte) (int, error) {
	tw.wrote = true
	return tw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (tw *trackingWriter) Unwrap() http.ResponseWriter {
	return tw.ResponseWriter
}

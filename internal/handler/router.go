// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler classifies incoming requests and serves them: proxies,
// static assets, uploads and rendered pages.
package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/blogfront/internal/proxy"
	"github.com/olegiv/blogfront/internal/uikit"
)

// Route is the top-level destination of a request.
type Route int

const (
	RoutePage Route = iota
	RouteAPI
	RouteThemeStatus
	RouteUploads
	RouteStatic
	RouteAdmin
)

var routeNames = map[Route]string{
	RoutePage:        "page",
	RouteAPI:         "api",
	RouteThemeStatus: "theme-status",
	RouteUploads:     "uploads",
	RouteStatic:      "static",
	RouteAdmin:       "admin",
}

func (r Route) String() string {
	return routeNames[r]
}

// Fixed request paths.
const (
	APIPrefix       = "/api/"
	UploadsPrefix   = "/uploads/"
	ThemeStatusPath = "/theme-status"
	AtomFeedPath    = "/feed.xml"
	JSONFeedPath    = "/feed.json"
	SitemapPath     = "/sitemap.xml"
	RobotsPath      = "/robots.txt"
)

// Classify picks the destination for a request path. The first match wins:
// API proxy, theme status, uploads, an existing static file, admin proxy,
// then pages. exists reports whether a static file is present.
func Classify(path string, exists func(string) bool) Route {
	switch {
	case strings.HasPrefix(path, APIPrefix):
		return RouteAPI
	case path == ThemeStatusPath:
		return RouteThemeStatus
	case strings.HasPrefix(path, UploadsPrefix):
		return RouteUploads
	case path != "/" && exists != nil && exists(path):
		return RouteStatic
	case strings.HasPrefix(path, proxy.AdminPrefix):
		return RouteAdmin
	default:
		return RoutePage
	}
}

// PageKind is the kind of rendered response.
type PageKind int

const (
	PageLookup PageKind = iota
	PageHome
	PageArchive
	PagePost
	PageAtomFeed
	PageJSONFeed
	PageSitemap
	PageRobots
)

// PageRoute is a parsed page request.
type PageRoute struct {
	Kind     PageKind
	Tag      string // archive tag, empty for the full archive
	Category string // archive category, set instead of Tag
	Page     int    // archive page, 1-based
	Slug     string // post slug
	Path     string // normalized path with a trailing slash, used for page lookups
}

// Archive and post patterns. Each is also served with a trailing slash.
var (
	archivePatterns = []string{
		"/archive",
		"/archive/{page:[0-9]+}",
		"/archive/category/{category}",
		"/archive/category/{category}/{page}",
		"/archive/{tag}",
		"/archive/{tag}/{page}",
	}
	postPatterns = []string{
		"/posts",
		"/posts/{slug}",
	}
)

// pageRouter matches page requests against the escaped path, so an encoded
// slash stays inside a single tag, category or slug.
type pageRouter struct {
	mux *chi.Mux
}

// NewPageRouter returns a handler that parses page requests and passes the
// route to serve. Paths no pattern claims become page URL lookups.
func NewPageRouter(serve func(http.ResponseWriter, *http.Request, PageRoute)) http.Handler {
	r := chi.NewRouter()

	fixed := map[string]PageKind{
		AtomFeedPath: PageAtomFeed,
		JSONFeedPath: PageJSONFeed,
		SitemapPath:  PageSitemap,
		RobotsPath:   PageRobots,
	}
	for path, kind := range fixed {
		route := PageRoute{Kind: kind}
		r.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
			serve(w, req, route)
		})
	}
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		serve(w, req, PageRoute{Kind: PageHome, Path: "/"})
	})

	archive := func(w http.ResponseWriter, req *http.Request) {
		route := PageRoute{
			Kind:     PageArchive,
			Tag:      pathParam(req, "tag"),
			Category: pathParam(req, "category"),
			Page:     1,
			Path:     normalizePath(req.URL.EscapedPath()),
		}
		if n, ok := uikit.ParsePageSegment(chi.URLParam(req, "page")); ok {
			route.Page = n
		}
		serve(w, req, route)
	}
	post := func(w http.ResponseWriter, req *http.Request) {
		serve(w, req, PageRoute{
			Kind: PagePost,
			Slug: pathParam(req, "slug"),
			Path: normalizePath(req.URL.EscapedPath()),
		})
	}
	for _, pattern := range archivePatterns {
		r.HandleFunc(pattern, archive)
		r.HandleFunc(pattern+"/", archive)
	}
	for _, pattern := range postPatterns {
		r.HandleFunc(pattern, post)
		r.HandleFunc(pattern+"/", post)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		serve(w, req, PageRoute{Kind: PageLookup, Path: normalizePath(req.URL.EscapedPath())})
	})
	return &pageRouter{mux: r}
}

// ServeHTTP routes with a fresh route context whose path is the escaped
// request path, independent of any router in front of this one.
func (p *pageRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rctx := chi.NewRouteContext()
	rctx.RoutePath = r.URL.EscapedPath()
	p.mux.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx)))
}

// pathParam returns the unescaped value of a route parameter.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	v, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return v
}

// normalizePath unescapes the path and ensures a trailing slash.
func normalizePath(escapedPath string) string {
	p, err := url.PathUnescape(escapedPath)
	if err != nil {
		p = escapedPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// Dispatcher routes every request not claimed by a fixed route.
type Dispatcher struct {
	API    http.Handler
	Admin  http.Handler
	Static http.Handler
	Assets *Assets
	Pages  http.Handler
}

// ServeHTTP implements http.Handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch Classify(r.URL.Path, d.Assets.Exists) {
	case RouteAPI:
		d.API.ServeHTTP(w, r)
	case RouteThemeStatus:
		d.Assets.ThemeStatus(w, r)
	case RouteUploads:
		if d.Assets.ServeUpload(w, r) {
			return
		}
		if d.Assets.Exists(r.URL.Path) {
			d.Static.ServeHTTP(w, r)
			return
		}
		d.Pages.ServeHTTP(w, r)
	case RouteStatic:
		d.Static.ServeHTTP(w, r)
	case RouteAdmin:
		d.Admin.ServeHTTP(w, r)
	default:
		d.Pages.ServeHTTP(w, r)
	}
}

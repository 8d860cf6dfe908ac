// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/blogfront/internal/backend"
	"github.com/olegiv/blogfront/internal/config"
	"github.com/olegiv/blogfront/internal/content"
	"github.com/olegiv/blogfront/internal/media"
	"github.com/olegiv/blogfront/internal/model"
	"github.com/olegiv/blogfront/internal/render"
	"github.com/olegiv/blogfront/internal/testutil"
	"github.com/olegiv/blogfront/internal/theme"
	"github.com/olegiv/blogfront/internal/themes"
	"github.com/olegiv/blogfront/internal/uikit"
)

// testEnv wires the page handlers over a scripted backend.
type testEnv struct {
	root     string
	posts    []model.Post
	pages    []model.Page
	media    map[string]string // public path -> stored file name
	fail     bool
	backend  *testutil.FakeBackend
	files    *fakeFiles
	assets   *Assets
	frontend *Frontend
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		root:  t.TempDir(),
		media: make(map[string]string),
		files: &fakeFiles{},
	}
	env.backend = &testutil.FakeBackend{
		ListFunc: func(_ context.Context, collection string, q backend.ListQuery) (*backend.ListResult, error) {
			if env.fail {
				return nil, &backend.UpstreamError{Status: http.StatusBadGateway}
			}
			return env.list(t, collection, q), nil
		},
	}

	require.NoError(t, os.MkdirAll(env.publicDir(), 0o755))
	defaults := filepath.Join(env.root, "default")
	require.NoError(t, os.MkdirAll(filepath.Join(defaults, "themes", "ember"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(defaults, "themes", "ember", "styles.css"), []byte("body{}"), 0o644))

	logger := testutil.TestLoggerSilent()
	themeAssets := theme.NewAssets(env.publicDir(), defaults, "ember", logger)
	th, err := theme.Load("blog", themes.FS, themes.Root, uikit.TemplateFuncs())
	require.NoError(t, err)

	resolver := content.NewResolver(env.backend, logger)
	rewriter := media.NewRewriter(resolver, logger)
	site := render.NewSite(&config.Config{
		SiteName:        "Example Blog",
		SiteDescription: "A calm place to write.",
		SiteLanguage:    "ja",
		Theme:           "ember",
		HomePageSize:    3,
		ArchivePageSize: 10,
		FeedItemsLimit:  20,
		ShowCategories:  true,
	})

	env.assets = NewAssets(themeAssets, resolver, env.files, logger)
	env.frontend = NewFrontend(resolver, rewriter, render.New(th, themeAssets), site, false, logger)
	return env
}

func (e *testEnv) publicDir() string {
	return filepath.Join(e.root, "public")
}

// writePublic adds a file to the custom public directory. Assets are
// selected at startup, so the handlers are rebuilt afterwards.
func (e *testEnv) writePublic(t *testing.T, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.publicDir(), name), []byte(body), 0o644))
	logger := testutil.TestLoggerSilent()
	themeAssets := theme.NewAssets(e.publicDir(), filepath.Join(e.root, "default"), "ember", logger)
	e.assets = NewAssets(themeAssets, e.assets.media, e.files, logger)
}

func (e *testEnv) list(t *testing.T, collection string, q backend.ListQuery) *backend.ListResult {
	filter := q.Filter.String()
	switch collection {
	case model.CollectionPosts:
		if strings.Contains(filter, " > ") || strings.Contains(filter, " < ") {
			return testutil.Result(t, q.Page, q.PerPage, 0)
		}
		var items []any
		for _, p := range e.posts {
			if strings.Contains(filter, "slug = ") && !strings.Contains(filter, `slug = "`+p.Slug+`"`) {
				continue
			}
			if strings.Contains(filter, "tags ~ ") && !strings.Contains(filter, `tags ~ "`+p.Tags+`"`) {
				continue
			}
			if strings.Contains(filter, "category = ") && !strings.Contains(filter, `category = "`+p.Category+`"`) {
				continue
			}
			items = append(items, p)
		}
		return testutil.Result(t, q.Page, q.PerPage, 1, items...)
	case model.CollectionPages:
		var items []any
		for _, p := range e.pages {
			if strings.Contains(filter, "url = ") && !strings.Contains(filter, `url = "`+p.URL+`"`) {
				continue
			}
			if strings.Contains(filter, "menuVisible = true") && !p.MenuVisible {
				continue
			}
			items = append(items, p)
		}
		return testutil.Result(t, q.Page, q.PerPage, 1, items...)
	case model.CollectionMedia:
		for p, file := range e.media {
			if strings.Contains(filter, `path = "`+p+`"`) {
				return testutil.Result(t, 1, 1, 1, model.Media{ID: "m-" + file, File: file, Path: p})
			}
		}
	}
	return testutil.Result(t, q.Page, q.PerPage, 0)
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	e.frontend.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestFrontend_Home(t *testing.T) {
	env := newTestEnv(t)
	env.posts = []model.Post{
		{Slug: "first", Title: "First", Body: "<p>one</p>", PublishedAt: "2024-03-01 10:00:00.000Z"},
	}
	env.pages = []model.Page{{Title: "About", URL: "/about/", MenuVisible: true}}

	w := env.get(t, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "<title>Home - Example Blog</title>")
	assert.Contains(t, body, `<a href="/posts/first/">First</a>`)
	assert.Contains(t, body, `<li><a href="/about/">About</a></li>`)

	calls := env.backend.ListCalls()
	var home *testutil.ListCall
	for i := range calls {
		if calls[i].Collection == model.CollectionPosts {
			home = &calls[i]
		}
	}
	require.NotNil(t, home)
	assert.Equal(t, 3, home.Query.PerPage)
	assert.Equal(t, content.SortPublishedAt, home.Query.Sort)
}

func TestFrontend_HomeExcerptEntities(t *testing.T) {
	env := newTestEnv(t)
	env.posts = []model.Post{{Slug: "tj", Title: "Cartoons", Body: "<p>Tom &amp; Jerry</p>"}}

	body := env.get(t, "/").Body.String()

	assert.Contains(t, body, "Tom &amp; Jerry")
	assert.NotContains(t, body, "&amp;amp;")
}

func TestFrontend_ThemeOverride(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/?theme=dusk")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/themes/dusk/styles.css"`)
}

func TestFrontend_Post(t *testing.T) {
	env := newTestEnv(t)
	env.posts = []model.Post{
		{Slug: "hello", Title: "Hello", Body: "<p>hello body</p>", PublishedAt: "2024-03-01 10:00:00.000Z"},
	}

	w := env.get(t, "/posts/hello/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<h1 class="post-title">Hello</h1>`)
	assert.Contains(t, w.Body.String(), "<p>hello body</p>")
}

func TestFrontend_SoftNotFound(t *testing.T) {
	tests := []string{"/posts/missing/", "/posts/", "/nowhere/"}

	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			env := newTestEnv(t)
			w := env.get(t, target)

			assert.Equal(t, http.StatusOK, w.Code, "not found pages are served with 200")
			assert.Contains(t, w.Body.String(), "<title>Not Found - Example Blog</title>")
		})
	}
}

func TestFrontend_Page(t *testing.T) {
	env := newTestEnv(t)
	env.pages = []model.Page{{Title: "About", URL: "/about/", Body: "<p>About me</p>"}}

	w := env.get(t, "/about")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<div class="post-body body"><p>About me</p></div>`)
}

func TestFrontend_ArchiveTag(t *testing.T) {
	env := newTestEnv(t)
	env.posts = []model.Post{{Slug: "a", Title: "Tagged", Tags: "a/b", PublishedAt: "2024-03-01"}}

	w := env.get(t, "/archive/a%2Fb/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<a href="/posts/a/">Tagged</a>`)

	var tagged bool
	for _, c := range env.backend.ListCalls() {
		if c.Collection == model.CollectionPosts && strings.Contains(c.Query.Filter.String(), `tags ~ "a/b"`) {
			tagged = true
			assert.Equal(t, 10, c.Query.PerPage)
		}
	}
	assert.True(t, tagged, "archive listing filtered by decoded tag")
}

func TestFrontend_ArchiveCategory(t *testing.T) {
	env := newTestEnv(t)
	env.posts = []model.Post{
		{Slug: "a", Title: "Filed", Category: "Tech/Go", PublishedAt: "2024-03-01"},
		{Slug: "b", Title: "Elsewhere", Category: "notes", PublishedAt: "2024-02-01"},
	}

	w := env.get(t, "/archive/category/Tech%2FGo/")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<title>category: Tech/Go - Example Blog</title>")
	assert.Contains(t, body, `<a href="/posts/a/">Filed</a>`)
	assert.NotContains(t, body, "Elsewhere")

	var filtered bool
	for _, c := range env.backend.ListCalls() {
		if c.Collection == model.CollectionPosts && c.Query.Filter.String() == `published = true && category = "Tech/Go"` {
			filtered = true
		}
	}
	assert.True(t, filtered, "archive listing filtered by decoded category")
}

func TestFrontend_ArchiveIndex(t *testing.T) {
	env := newTestEnv(t)
	env.posts = []model.Post{
		{Slug: "a", Title: "A", Tags: "go", Category: " notes "},
		{Slug: "b", Title: "B", Tags: "web", Category: "tech"},
	}

	body := env.get(t, "/archive/").Body.String()

	assert.Contains(t, body, `<h2>tags:</h2>`)
	assert.Contains(t, body, `<li><a href="/archive/go/" class="badge">go</a></li>`)
	assert.Contains(t, body, `<h2>categories:</h2>`)
	assert.Contains(t, body, `<li><a href="/archive/category/notes/" class="badge">notes</a></li>`)
	assert.Contains(t, body, `<li><a href="/archive/category/tech/" class="badge">tech</a></li>`)
}

func TestFrontend_BehindChiRouter(t *testing.T) {
	env := newTestEnv(t)
	env.posts = []model.Post{{Slug: "a", Title: "Tagged", Tags: "a/b", PublishedAt: "2024-03-01"}}

	outer := chi.NewRouter()
	outer.Handle("/*", env.frontend)
	w := httptest.NewRecorder()
	outer.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/archive/a%2Fb/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>tag: a/b - Example Blog</title>")
}

func TestFrontend_BackendDown(t *testing.T) {
	env := newTestEnv(t)
	env.fail = true

	w := env.get(t, "/")
	assert.Equal(t, http.StatusOK, w.Code, "backend failures degrade to empty content")

	w = env.get(t, "/posts/hello/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Not Found")
}

func TestServe_ErrorBeforeWrite(t *testing.T) {
	env := newTestEnv(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	env.frontend.serve(w, r, func(w http.ResponseWriter, _ *http.Request) error {
		w.Header().Set("Content-Length", "99")
		return errors.New("template failed")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get("Content-Length"))
	assert.Equal(t, "Internal Server Error", w.Body.String())
}

func TestServe_Panic(t *testing.T) {
	env := newTestEnv(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	env.frontend.serve(w, r, func(http.ResponseWriter, *http.Request) error {
		panic("boom")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", w.Body.String())
}

func TestServe_ErrorAfterWrite(t *testing.T) {
	env := newTestEnv(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		env.frontend.serve(w, r, func(w http.ResponseWriter, _ *http.Request) error {
			_, _ = io.WriteString(w, "partial")
			return errors.New("stream broke")
		})
	})
	assert.Equal(t, "partial", w.Body.String())
}

func TestTrackingWriter_Unwrap(t *testing.T) {
	w := httptest.NewRecorder()
	tw := &trackingWriter{ResponseWriter: w}

	assert.Same(t, w, tw.Unwrap())
	assert.False(t, tw.wrote)
	tw.WriteHeader(http.StatusNoContent)
	assert.True(t, tw.wrote)
}

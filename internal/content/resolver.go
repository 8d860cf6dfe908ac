// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content resolves posts, pages, menu entries, tags and media from
// the backend. Resolver methods never fail: backend errors are logged and
// reported as absence so renderers only ever see content or nothing.
package content

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/blogfront/internal/backend"
	"github.com/olegiv/blogfront/internal/model"
)

// Sort keys for post listings, in fallback order.
const (
	SortPublishedAt = "-" + model.FieldPublishedAt
	SortDate        = "-" + model.FieldDate
)

// batchSize is the page size used when walking a whole collection.
const batchSize = 200

// Listing is one page of posts.
type Listing struct {
	Posts      []model.Post
	Page       int
	PerPage    int
	TotalPages int
	TotalItems int
}

// Adjacent holds the chronological neighbours of a post.
type Adjacent struct {
	Newer *model.Post
	Older *model.Post
}

// Resolver fetches content through a backend client.
type Resolver struct {
	client backend.Client
	logger *slog.Logger
}

// NewResolver creates a resolver over client.
func NewResolver(client backend.Client, logger *slog.Logger) *Resolver {
	return &Resolver{client: client, logger: logger}
}

// PostBySlug returns the published post with slug, or nil.
func (r *Resolver) PostBySlug(ctx context.Context, slug string) *model.Post {
	return first[model.Post](ctx, r, model.CollectionPosts, backend.ListQuery{
		PerPage: 1,
		Filter:  backend.And(backend.Eq("slug", slug), backend.Published),
	})
}

// PageByURL returns the published page whose url equals path, or nil.
func (r *Resolver) PageByURL(ctx context.Context, path string) *model.Page {
	return first[model.Page](ctx, r, model.CollectionPages, backend.ListQuery{
		PerPage: 1,
		Filter:  backend.And(backend.Eq("url", path), backend.Published),
	})
}

// AdjacentPosts returns the nearest newer and older published posts. Posts
// without a timestamp have no neighbours.
func (r *Resolver) AdjacentPosts(ctx context.Context, post *model.Post) Adjacent {
	var adj Adjacent
	if post == nil {
		return adj
	}
	field, value, ok := post.OrderingField()
	if !ok {
		return adj
	}

	nearest := func(ctx context.Context, cmp backend.Filter, sortKey string) *model.Post {
		return first[model.Post](ctx, r, model.CollectionPosts, backend.ListQuery{
			Page:    1,
			PerPage: 1,
			Filter:  backend.And(backend.Published, cmp),
			Sort:    sortKey,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		adj.Newer = nearest(gctx, backend.Gt(field, value), field)
		return nil
	})
	g.Go(func() error {
		adj.Older = nearest(gctx, backend.Lt(field, value), "-"+field)
		return nil
	})
	_ = g.Wait()
	return adj
}

// ListPosts returns one page of posts matching filter, newest first.
// Ordering by published_at is tried first, then exactly one retry ordered
// by date. If both fail the listing is empty with TotalPages 0.
func (r *Resolver) ListPosts(ctx context.Context, page, perPage int, filter backend.Filter) Listing {
	q := backend.ListQuery{Page: page, PerPage: perPage, Filter: filter, Sort: SortPublishedAt}

	posts, res, err := r.listPosts(ctx, q)
	if err != nil {
		r.logger.WarnContext(ctx, "listing posts failed, retrying by date",
			"sort", q.Sort, "filter", filter.String(), "error", err)
		q.Sort = SortDate
		posts, res, err = r.listPosts(ctx, q)
	}
	if err != nil {
		r.logger.WarnContext(ctx, "listing posts failed",
			"sort", q.Sort, "filter", filter.String(), "error", err)
		return Listing{Page: page, PerPage: perPage}
	}

	return Listing{
		Posts:      posts,
		Page:       page,
		PerPage:    perPage,
		TotalPages: res.TotalPages,
		TotalItems: res.TotalItems,
	}
}

func (r *Resolver) listPosts(ctx context.Context, q backend.ListQuery) ([]model.Post, *backend.ListResult, error) {
	res, err := r.client.List(ctx, model.CollectionPosts, q)
	if err != nil {
		return nil, nil, err
	}
	posts, err := backend.Decode[model.Post](res)
	if err != nil {
		return nil, nil, err
	}
	return posts, res, nil
}

// Index is the archive's tag and category index.
type Index struct {
	Tags       []string
	Categories []string
}

// CollectIndex returns the sorted unique tags and categories across all
// published posts, gathered in a single walk.
func (r *Resolver) CollectIndex(ctx context.Context) Index {
	tags := make(map[string]struct{})
	categories := make(map[string]struct{})
	r.eachPublishedPost(ctx, func(p *model.Post) {
		for _, tag := range p.TagList() {
			tags[tag] = struct{}{}
		}
		if c := strings.TrimSpace(p.Category); c != "" {
			categories[c] = struct{}{}
		}
	})
	return Index{Tags: sortedKeys(tags), Categories: sortedKeys(categories)}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AllPublishedPosts walks every published post, newest first.
func (r *Resolver) AllPublishedPosts(ctx context.Context) []model.Post {
	var posts []model.Post
	r.eachPublishedPost(ctx, func(p *model.Post) {
		posts = append(posts, *p)
	})
	return posts
}

// eachPublishedPost pages through published posts until a short page.
// A failed page reads as empty, which also ends the walk.
func (r *Resolver) eachPublishedPost(ctx context.Context, fn func(*model.Post)) {
	for page := 1; ; page++ {
		listing := r.ListPosts(ctx, page, batchSize, backend.Published)
		for i := range listing.Posts {
			fn(&listing.Posts[i])
		}
		if len(listing.Posts) < batchSize || ctx.Err() != nil {
			return
		}
	}
}

// AllPublishedPages walks every published page.
func (r *Resolver) AllPublishedPages(ctx context.Context) []model.Page {
	var pages []model.Page
	for page := 1; ; page++ {
		batch := list[model.Page](ctx, r, model.CollectionPages, backend.ListQuery{
			Page:    page,
			PerPage: batchSize,
			Filter:  backend.Published,
			Sort:    "url",
		})
		pages = append(pages, batch...)
		if len(batch) < batchSize || ctx.Err() != nil {
			return pages
		}
	}
}

// MenuPages returns the published pages shown in navigation, in menu order.
func (r *Resolver) MenuPages(ctx context.Context) []model.Page {
	return list[model.Page](ctx, r, model.CollectionPages, backend.ListQuery{
		Page:    1,
		PerPage: batchSize,
		Filter:  backend.And(backend.Published, backend.Bool("menuVisible", true)),
		Sort:    "menuOrder",
	})
}

// MediaByPath returns the media record whose path equals path, or nil.
func (r *Resolver) MediaByPath(ctx context.Context, path string) *model.Media {
	return first[model.Media](ctx, r, model.CollectionMedia, backend.ListQuery{
		Page:    1,
		PerPage: 1,
		Filter:  backend.Eq("path", path),
	})
}

// MediaByID returns the media record with id. Unlike the other resolvers it
// reports errors, leaving the policy to the media rewriter.
func (r *Resolver) MediaByID(ctx context.Context, id string) (*model.Media, error) {
	raw, err := r.client.GetOne(ctx, model.CollectionMedia, id)
	if err != nil {
		return nil, err
	}
	return backend.DecodeOne[model.Media](raw)
}

// Settings returns the first settings record, or nil.
func (r *Resolver) Settings(ctx context.Context) *model.Settings {
	return first[model.Settings](ctx, r, model.CollectionSettings, backend.ListQuery{
		Page:    1,
		PerPage: 1,
	})
}

func list[T any](ctx context.Context, r *Resolver, collection string, q backend.ListQuery) []T {
	res, err := r.client.List(ctx, collection, q)
	if err != nil {
		r.logger.WarnContext(ctx, "backend list failed",
			"collection", collection, "filter", q.Filter.String(), "error", err)
		return nil
	}
	items, err := backend.Decode[T](res)
	if err != nil {
		r.logger.WarnContext(ctx, "decoding records failed",
			"collection", collection, "error", err)
		return nil
	}
	return items
}

func first[T any](ctx context.Context, r *Resolver, collection string, q backend.ListQuery) *T {
	items := list[T](ctx, r, collection, q)
	if len(items) == 0 {
		return nil
	}
	return &items[0]
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package media rewrites backend file URLs in rendered HTML to the
// canonical public paths stored on media records.
package media

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/blogfront/internal/model"
)

// DefaultConcurrency bounds parallel lookups within one Rewrite call.
const DefaultConcurrency = 8

// fileURLPattern matches /api/files/{collection}/{id}/{filename}, optionally
// preceded by an absolute origin.
var fileURLPattern = regexp.MustCompile(`(?:https?://[^"'\s)]+)?/api/files/([a-zA-Z0-9_-]+)/([a-zA-Z0-9_-]+)/([^"'\s)]+)`)

// Lookup resolves a media record by id.
type Lookup interface {
	MediaByID(ctx context.Context, id string) (*model.Media, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, id string) (*model.Media, error)

// MediaByID implements Lookup.
func (f LookupFunc) MediaByID(ctx context.Context, id string) (*model.Media, error) {
	return f(ctx, id)
}

// Rewriter replaces media file URLs with canonical paths.
type Rewriter struct {
	lookup      Lookup
	store       *Store
	concurrency int
	logger      *slog.Logger
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithStore shares resolved paths across Rewrite calls.
func WithStore(s *Store) Option {
	return func(r *Rewriter) { r.store = s }
}

// WithConcurrency sets the maximum number of parallel lookups.
func WithConcurrency(n int) Option {
	return func(r *Rewriter) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// NewRewriter creates a rewriter that resolves records through lookup.
func NewRewriter(lookup Lookup, logger *slog.Logger, opts ...Option) *Rewriter {
	r := &Rewriter{
		lookup:      lookup,
		concurrency: DefaultConcurrency,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite returns html with every resolvable media file URL replaced.
// Each distinct record id is looked up at most once per call. Lookup
// failures leave the original URL in place; Rewrite never fails.
func (r *Rewriter) Rewrite(ctx context.Context, html string) string {
	matches := fileURLPattern.FindAllStringSubmatchIndex(html, -1)
	if len(matches) == 0 {
		return html
	}

	var ids []string
	index := make(map[string]int)
	for _, m := range matches {
		collection, id := html[m[2]:m[3]], html[m[4]:m[5]]
		if !model.IsMediaCollection(collection) {
			continue
		}
		if _, seen := index[id]; !seen {
			index[id] = len(ids)
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return html
	}

	// Per-call cache: slot i holds the replacement for ids[i].
	resolved := make([]string, len(ids))
	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			resolved[i] = r.resolve(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	var b strings.Builder
	b.Grow(len(html))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		b.WriteString(html[last:start])
		last = end

		collection, id := html[m[2]:m[3]], html[m[4]:m[5]]
		i, ok := index[id]
		if !model.IsMediaCollection(collection) || !ok || resolved[i] == "" {
			b.WriteString(html[start:end])
			continue
		}
		b.WriteString(replacement(resolved[i]))
	}
	b.WriteString(html[last:])
	return b.String()
}

func (r *Rewriter) resolve(ctx context.Context, id string) string {
	load := func(ctx context.Context) (string, error) {
		m, err := r.lookup.MediaByID(ctx, id)
		if err != nil {
			return "", err
		}
		if m == nil {
			return "", nil
		}
		return m.PublicPath(), nil
	}

	var (
		path string
		err  error
	)
	if r.store != nil {
		path, err = r.store.Resolve(ctx, id, load)
	} else {
		path, err = load(ctx)
	}
	if err != nil {
		r.logger.DebugContext(ctx, "media lookup failed", "id", id, "error", err)
		return ""
	}
	return path
}

// replacement formats a resolved value for substitution.
func replacement(value string) string {
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	if !strings.HasPrefix(value, "/") {
		return "/" + value
	}
	return value
}

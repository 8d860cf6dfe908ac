// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/olegiv/blogfront/internal/cache"
)

// Store shares resolved media paths across requests. Concurrent misses for
// the same id share one lookup. Empty results are not stored, so records
// that gain a path later are picked up on the next request.
type Store struct {
	entries *cache.TypedCache[storeEntry]
	group   singleflight.Group
}

type storeEntry struct {
	Path string `json:"path"`
}

// NewStore creates a store over c with the given entry TTL.
func NewStore(c cache.Cacher, ttl time.Duration) *Store {
	return &Store{entries: cache.NewTypedCache[storeEntry](c, ttl)}
}

func storeKey(id string) string {
	return "media:" + id
}

// Resolve returns the cached path for id, calling load on a miss.
func (s *Store) Resolve(ctx context.Context, id string, load func(context.Context) (string, error)) (string, error) {
	key := storeKey(id)
	v, err, _ := s.group.Do(key, func() (any, error) {
		e, err := s.entries.GetOrSet(ctx, key, func() (*storeEntry, error) {
			path, err := load(ctx)
			if err != nil || path == "" {
				return nil, err
			}
			return &storeEntry{Path: path}, nil
		})
		if err != nil || e == nil {
			return "", err
		}
		return e.Path, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

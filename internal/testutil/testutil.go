// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the blogfront project.
package testutil

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/olegiv/blogfront/internal/backend"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a completely silent test logger (error level only).
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// ListCall records one List invocation on a FakeBackend.
type ListCall struct {
	Collection string
	Query      backend.ListQuery
}

// FakeBackend is a scripted backend.Client. ListFunc and GetFunc decide the
// responses; every call is recorded for later assertions.
type FakeBackend struct {
	ListFunc func(ctx context.Context, collection string, q backend.ListQuery) (*backend.ListResult, error)
	GetFunc  func(ctx context.Context, collection, id string) (json.RawMessage, error)

	mu       sync.Mutex
	lists    []ListCall
	getCalls []string
}

// List implements backend.Client.
func (f *FakeBackend) List(ctx context.Context, collection string, q backend.ListQuery) (*backend.ListResult, error) {
	f.mu.Lock()
	f.lists = append(f.lists, ListCall{Collection: collection, Query: q})
	f.mu.Unlock()

	if f.ListFunc == nil {
		return &backend.ListResult{Page: q.Page, PerPage: q.PerPage}, nil
	}
	return f.ListFunc(ctx, collection, q)
}

// GetOne implements backend.Client.
func (f *FakeBackend) GetOne(ctx context.Context, collection, id string) (json.RawMessage, error) {
	f.mu.Lock()
	f.getCalls = append(f.getCalls, collection+"/"+id)
	f.mu.Unlock()

	if f.GetFunc == nil {
		return nil, backend.ErrNotFound
	}
	return f.GetFunc(ctx, collection, id)
}

// ListCalls returns a copy of the recorded List calls.
func (f *FakeBackend) ListCalls() []ListCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ListCall(nil), f.lists...)
}

// GetCalls returns the recorded GetOne calls as "collection/id".
func (f *FakeBackend) GetCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.getCalls...)
}

var _ backend.Client = (*FakeBackend)(nil)

// Result builds a list result holding items marshaled to JSON.
func Result(t *testing.T, page, perPage, totalPages int, items ...any) *backend.ListResult {
	t.Helper()
	res := &backend.ListResult{
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalItems: len(items),
	}
	for _, item := range items {
		res.Items = append(res.Items, Raw(t, item))
	}
	return res
}

// Raw marshals v to a raw JSON message.
func Raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package backend is a thin client for the record API that stores posts,
// pages, media and settings.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody caps how much of an error response is kept in UpstreamError.
const maxErrorBody = 64 << 10

// Client issues record queries against the backend.
type Client interface {
	// List returns one page of records from a collection.
	List(ctx context.Context, collection string, q ListQuery) (*ListResult, error)

	// GetOne returns a single record by id, or ErrNotFound.
	GetOne(ctx context.Context, collection, id string) (json.RawMessage, error)
}

// ListQuery holds list parameters. Zero values are not sent.
type ListQuery struct {
	Page    int
	PerPage int
	Filter  Filter
	Sort    string
}

// Values encodes the query for the records endpoint.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("perPage", strconv.Itoa(q.PerPage))
	}
	if q.Filter != "" {
		v.Set("filter", q.Filter.String())
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v
}

// ListResult is one page of records.
type ListResult struct {
	Page       int               `json:"page"`
	PerPage    int               `json:"perPage"`
	TotalItems int               `json:"totalItems"`
	TotalPages int               `json:"totalPages"`
	Items      []json.RawMessage `json:"items"`
}

// Decode unmarshals every item of a list result into T.
func Decode[T any](res *ListResult) ([]T, error) {
	if res == nil {
		return nil, nil
	}
	out := make([]T, 0, len(res.Items))
	for i, raw := range res.Items {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("decode item %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// DecodeOne unmarshals a single record into T.
func DecodeOne[T any](raw json.RawMessage) (*T, error) {
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &item, nil
}

// HTTPClient is the HTTP implementation of Client.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a client for the backend at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend origin.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) recordsURL(collection string) string {
	return c.baseURL + "/api/collections/" + url.PathEscape(collection) + "/records"
}

// List implements Client.
func (c *HTTPClient) List(ctx context.Context, collection string, q ListQuery) (*ListResult, error) {
	endpoint := c.recordsURL(collection)
	if qs := q.Values().Encode(); qs != "" {
		endpoint += "?" + qs
	}

	var res ListResult
	if err := c.getJSON(ctx, endpoint, &res); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return &res, nil
}

// GetOne implements Client.
func (c *HTTPClient) GetOne(ctx context.Context, collection, id string) (json.RawMessage, error) {
	endpoint := c.recordsURL(collection) + "/" + url.PathEscape(id)

	var raw json.RawMessage
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return raw, nil
}

// FetchFile opens a stored file. The caller must close the response body.
// Non-2xx responses are returned as *UpstreamError.
func (c *HTTPClient) FetchFile(ctx context.Context, collection, id, filename string) (*http.Response, error) {
	endpoint := c.baseURL + "/api/files/" + url.PathEscape(collection) + "/" +
		url.PathEscape(id) + "/" + url.PathEscape(filename)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		return nil, upstreamError(resp)
	}
	return resp, nil
}

// Health checks the backend health endpoint.
func (c *HTTPClient) Health(ctx context.Context) error {
	var body json.RawMessage
	return c.getJSON(ctx, c.baseURL+"/api/health", &body)
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return upstreamError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func upstreamError(resp *http.Response) *UpstreamError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &UpstreamError{
		Status: resp.StatusCode,
		Body:   strings.TrimSpace(string(body)),
	}
}

// Ensure HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package proxy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/olegiv/blogfront/internal/util"
)

// DefaultMaxBodySize caps buffered request bodies.
const DefaultMaxBodySize int64 = 32 << 20

// API forwards requests to the backend origin, preserving path and query.
// Request and response bodies are buffered in full.
type API struct {
	target      *url.URL
	client      *http.Client
	logger      *slog.Logger
	maxBodySize int64
}

// NewAPI creates an API proxy for the backend at backendURL.
func NewAPI(backendURL string, client *http.Client, logger *slog.Logger) (*API, error) {
	target, err := url.Parse(backendURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", backendURL)
	}
	if client == nil {
		client = &http.Client{}
	}
	return &API{
		target:      target,
		client:      client,
		logger:      logger,
		maxBodySize: DefaultMaxBodySize,
	}, nil
}

// ServeHTTP implements http.Handler.
func (p *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body io.Reader
	if r.Method != http.MethodGet && r.Method != http.MethodHead && r.Body != nil {
		buf, err := io.ReadAll(http.MaxBytesReader(w, r.Body, p.maxBodySize))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		body = bytes.NewReader(buf)
	}

	target := *p.target
	target.Path = r.URL.Path
	target.RawPath = r.URL.RawPath
	target.RawQuery = r.URL.RawQuery

	out, err := http.NewRequestWithContext(r.Context(), r.Method, target.String(), body)
	if err != nil {
		p.logger.ErrorContext(r.Context(), "building api proxy request", "error", err)
		badGateway(w)
		return
	}
	copyHeaders(out.Header, r.Header)
	if ip := util.ClientIP(r); ip != "" {
		out.Header.Set("X-Forwarded-For", ip)
	}

	resp, err := p.client.Do(out)
	if err != nil {
		p.logger.WarnContext(r.Context(), "api proxy upstream failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		badGateway(w)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		p.logger.WarnContext(r.Context(), "reading api proxy response", "path", r.URL.Path, "error", err)
		badGateway(w)
		return
	}

	copyHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	if r.Method != http.MethodHead {
		_, _ = w.Write(payload)
	}
}

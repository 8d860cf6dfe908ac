// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package proxy

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"strings"
)

// AdminPrefix is the path prefix routed to the admin application.
const AdminPrefix = "/admin"

// assetRewriter prefixes the admin dev-server's absolute asset references
// so they route back through this proxy.
var assetRewriter = strings.NewReplacer(
	`"/@vite/`, `"`+AdminPrefix+`/@vite/`,
	`"/@react-refresh`, `"`+AdminPrefix+`/@react-refresh`,
	`"/src/`, `"`+AdminPrefix+`/src/`,
	`"/node_modules/`, `"`+AdminPrefix+`/node_modules/`,
)

// NewAdmin creates a reverse proxy to the admin application. The /admin
// prefix is stripped and the upstream Host header is set to hostHeader.
func NewAdmin(adminURL, hostHeader string, logger *slog.Logger) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(adminURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid admin url %q", adminURL)
	}

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Path = StripAdminPrefix(pr.In.URL.Path)
			pr.Out.URL.RawPath = ""
			pr.SetURL(target)
			pr.SetXForwarded()
			if hostHeader != "" {
				pr.Out.Host = hostHeader
			}
			pr.Out.Header.Set("Accept-Encoding", "identity")
		},
		ModifyResponse: rewriteAdminHTML,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.WarnContext(r.Context(), "admin proxy upstream failed",
				"method", r.Method, "path", r.URL.Path, "error", err)
			badGateway(w)
		},
	}, nil
}

// StripAdminPrefix removes the /admin prefix, returning "/" when nothing remains.
func StripAdminPrefix(path string) string {
	rest := strings.TrimPrefix(path, AdminPrefix)
	if rest == "" {
		return "/"
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return rest
}

// RewriteAdminHTML prefixes dev-tooling asset paths in an HTML document.
func RewriteAdminHTML(html string) string {
	return assetRewriter.Replace(html)
}

func rewriteAdminHTML(resp *http.Response) error {
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "text/html" {
		return nil
	}
	if enc := resp.Header.Get("Content-Encoding"); enc != "" && enc != "identity" {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading admin html: %w", err)
	}
	_ = resp.Body.Close()

	rewritten := []byte(RewriteAdminHTML(string(body)))
	resp.Body = io.NopCloser(bytes.NewReader(rewritten))
	resp.ContentLength = int64(len(rewritten))
	resp.Header.Set("Content-Length", strconv.Itoa(len(rewritten)))
	return nil
}

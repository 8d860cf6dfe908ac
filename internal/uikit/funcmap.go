// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package uikit provides reusable template helpers and pagination logic
// shared by the page templates.
package uikit

import (
	"html/template"
	"net/url"

	"github.com/olegiv/blogfront/internal/util"
)

// TemplateFuncs returns the template.FuncMap the page templates rely on.
//
// Callers can merge project-specific functions on top:
//
//	funcs := uikit.TemplateFuncs()
//	funcs["myFunc"] = myProjectFunc
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Links
		"tagURL":      TagURL,
		"categoryURL": CategoryURL,

		// Content
		"formatDate": util.FormatDate,
	}
}

// PostURL returns the public URL of the post with slug.
func PostURL(slug string) string {
	return "/posts/" + url.PathEscape(slug) + "/"
}

// TagURL returns the archive URL for tag.
func TagURL(tag string) string {
	return "/archive/" + url.PathEscape(tag) + "/"
}

// CategoryURL returns the archive URL for category.
func CategoryURL(category string) string {
	return "/archive/category/" + url.PathEscape(category) + "/"
}

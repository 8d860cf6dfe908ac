// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package themes embeds the page templates into the binary.
package themes

import "embed"

// FS contains the embedded blog theme. Stylesheet variants are served from
// the public asset directory; only markup lives here.
//
//go:embed all:blog
var FS embed.FS

// Root is the directory of the blog theme inside FS.
const Root = "blog/templates"

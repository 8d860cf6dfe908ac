// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html/template"
	"testing"
)

func TestBuildTOC(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantBody string
		wantTOC  template.HTML
	}{
		{
			name:     "no headings",
			body:     "<p>plain</p><h1>Title</h1><h4>deep</h4>",
			wantBody: "<p>plain</p><h1>Title</h1><h4>deep</h4>",
			wantTOC:  "",
		},
		{
			name:     "flat",
			body:     "<h2>One</h2><p>x</p><h2>Two</h2>",
			wantBody: `<h2 id="one">One</h2><p>x</p><h2 id="two">Two</h2>`,
			wantTOC:  `<ol><li><a href="#one">One</a></li><li><a href="#two">Two</a></li></ol>`,
		},
		{
			name:     "nested",
			body:     "<h2>A</h2><h3>A1</h3><h3>A2</h3><h2>B</h2>",
			wantBody: `<h2 id="a">A</h2><h3 id="a1">A1</h3><h3 id="a2">A2</h3><h2 id="b">B</h2>`,
			wantTOC:  `<ol><li><a href="#a">A</a><ul><li><a href="#a1">A1</a></li><li><a href="#a2">A2</a></li></ul></li><li><a href="#b">B</a></li></ol>`,
		},
		{
			name:     "existing id and attributes kept",
			body:     `<h2 class="x" id="custom">Named</h2><h2 class="y">Other Heading</h2>`,
			wantBody: `<h2 class="x" id="custom">Named</h2><h2 class="y" id="other-heading">Other Heading</h2>`,
			wantTOC:  `<ol><li><a href="#custom">Named</a></li><li><a href="#other-heading">Other Heading</a></li></ol>`,
		},
		{
			name:     "duplicates and unsluggable text",
			body:     "<h2>Setup</h2><h2>Setup</h2><h2>日本語</h2>",
			wantBody: `<h2 id="setup">Setup</h2><h2 id="setup-2">Setup</h2><h2 id="section">日本語</h2>`,
			wantTOC:  `<ol><li><a href="#setup">Setup</a></li><li><a href="#setup-2">Setup</a></li><li><a href="#section">日本語</a></li></ol>`,
		},
		{
			name:     "inline markup and entities",
			body:     "<h2><code>Tom</code> &amp; Jerry</h2>",
			wantBody: `<h2 id="tom-jerry"><code>Tom</code> &amp; Jerry</h2>`,
			wantTOC:  `<ol><li><a href="#tom-jerry">Tom &amp; Jerry</a></li></ol>`,
		},
		{
			name:     "leading subheading",
			body:     "<h3>Aside</h3><h2>Main</h2>",
			wantBody: `<h3 id="aside">Aside</h3><h2 id="main">Main</h2>`,
			wantTOC:  `<ol><li><ul><li><a href="#aside">Aside</a></li></ul></li><li><a href="#main">Main</a></li></ol>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, toc := BuildTOC(tt.body)
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
			if toc != tt.wantTOC {
				t.Errorf("toc = %q, want %q", toc, tt.wantTOC)
			}
		})
	}
}

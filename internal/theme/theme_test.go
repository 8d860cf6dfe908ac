// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package theme

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/olegiv/blogfront/internal/themes"
	"github.com/olegiv/blogfront/internal/uikit"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"t/layouts/base.html": {Data: []byte(
			"<html>{{template \"header.html\" .}}\n\n\n{{template \"content\" .}}</html>")},
		"t/partials/header.html": {Data: []byte(`<h1>{{.Title}}</h1>`)},
		"t/pages/home.html":      {Data: []byte(`{{define "content"}}<p>home {{.Body}}</p>{{end}}`)},
		"t/pages/404.html":       {Data: []byte(`{{define "content"}}<p>missing</p>{{end}}`)},
		"t/pages/notes.txt":      {Data: []byte(`ignored`)},
	}
}

func TestLoad_RenamesContentBlocks(t *testing.T) {
	th, err := Load("test", testFS(), "t", template.FuncMap{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !th.HasPage("home") || !th.HasPage("404") {
		t.Error("expected content_home and content_404 to be defined")
	}
	if th.HasPage("notes") {
		t.Error("non-html files should not become pages")
	}
}

func TestRenderPage(t *testing.T) {
	th, err := Load("test", testFS(), "t", template.FuncMap{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var buf bytes.Buffer
	data := map[string]string{"Title": "Hi", "Body": "<b>"}
	if err := th.RenderPage(&buf, "home", data); err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}

	got := buf.String()
	if got != "<html><h1>Hi</h1>\n<p>home &lt;b&gt;</p></html>" {
		t.Errorf("RenderPage() = %q", got)
	}

	// Rendering a second page from the same set must not leak the first content block.
	buf.Reset()
	if err := th.RenderPage(&buf, "404", data); err != nil {
		t.Fatalf("RenderPage(404) failed: %v", err)
	}
	if !strings.Contains(buf.String(), "missing") || strings.Contains(buf.String(), "home") {
		t.Errorf("RenderPage(404) = %q", buf.String())
	}
}

func TestRenderPage_PreservesBodyWhitespace(t *testing.T) {
	th, err := Load("test", testFS(), "t", template.FuncMap{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	body := "<pre>line1\n\n\n    indented</pre>\n\n<p>after</p>"
	var buf bytes.Buffer
	data := map[string]any{"Title": "Hi", "Body": template.HTML(body)}
	if err := th.RenderPage(&buf, "home", data); err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}

	want := "<html><h1>Hi</h1>\n<p>home " + body + "</p></html>"
	if got := buf.String(); got != want {
		t.Errorf("RenderPage() = %q, want %q", got, want)
	}
}

func TestRenderPage_UnknownPage(t *testing.T) {
	th, err := Load("test", testFS(), "t", template.FuncMap{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := th.RenderPage(&bytes.Buffer{}, "nope", nil); err == nil {
		t.Error("expected error for unknown page")
	}
}

func TestLoad_RequiresBaseLayout(t *testing.T) {
	fsys := testFS()
	delete(fsys, "t/layouts/base.html")
	fsys["t/layouts/other.html"] = &fstest.MapFile{Data: []byte(`x`)}

	if _, err := Load("test", fsys, "t", template.FuncMap{}); err == nil {
		t.Error("expected error without layouts/base.html")
	}
}

func TestLoad_EmbeddedTheme(t *testing.T) {
	th, err := Load("blog", themes.FS, themes.Root, uikit.TemplateFuncs())
	if err != nil {
		t.Fatalf("Load(embedded) failed: %v", err)
	}
	for _, page := range []string{"home", "archive", "post", "page", "404"} {
		if !th.HasPage(page) {
			t.Errorf("embedded theme is missing page %q", page)
		}
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package theme provides template loading and rendering for the frontend,
// together with the public asset directory that serves stylesheets and
// static files.
package theme

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
)

// baseLayout is the name of the layout every page renders into.
const baseLayout = "layouts/base.html"

// Theme is a parsed template set.
type Theme struct {
	Name      string
	Templates *template.Template
}

// HasPage reports whether the theme defines a content block for pageName.
func (t *Theme) HasPage(pageName string) bool {
	return t.Templates.Lookup(contentName(pageName)) != nil
}

// RenderPage renders a page template within the base layout.
// It handles the template composition by:
// 1. Getting the content block for the specific page
// 2. Injecting it into the base layout
// 3. Executing the combined template
func (t *Theme) RenderPage(w io.Writer, pageName string, data any) error {
	if t.Templates.Lookup(baseLayout) == nil {
		return fmt.Errorf("base layout not found")
	}

	// pageName is like "home", "archive", "post", "page", "404"
	name := contentName(pageName)
	if !t.HasPage(pageName) {
		return fmt.Errorf("content template not found: %s", name)
	}

	// Clone the template to avoid modifying the original
	clone, err := t.Templates.Clone()
	if err != nil {
		return fmt.Errorf("cloning template: %w", err)
	}

	// This allows {{template "content" .}} in base.html to work
	contentDef := fmt.Sprintf(`{{define "content"}}{{template "%s" .}}{{end}}`, name)
	if _, err := clone.Parse(contentDef); err != nil {
		return fmt.Errorf("parsing content definition: %w", err)
	}

	var buf bytes.Buffer
	if err := clone.ExecuteTemplate(&buf, baseLayout, data); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

func contentName(pageName string) string {
	return "content_" + pageName
}

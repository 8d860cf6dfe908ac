// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package theme

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

// blankLinesRegex matches two or more consecutive newlines (with optional whitespace between).
var blankLinesRegex = regexp.MustCompile(`(\r?\n\s*){2,}`)

// compact strips blank lines from template source. Only the template text is
// compacted; values rendered into it reach the output unchanged.
func compact(src []byte) string {
	return string(blankLinesRegex.ReplaceAll(src, []byte("\n")))
}

// Load parses the templates under root in fsys. The directory holds
// layouts/, partials/ and pages/; each page's {{define "content"}} block is
// renamed to content_<page> so all pages share one template set.
func Load(name string, fsys fs.FS, root string, funcMap template.FuncMap) (*Theme, error) {
	tmpl := template.New("").Funcs(funcMap)

	// Layouts keep their relative path, partials are addressed by file name
	// for {{template "nav.html" .}}.
	if err := parseDir(tmpl, fsys, path.Join(root, "layouts"), func(file string) string {
		return "layouts/" + file
	}); err != nil {
		return nil, err
	}
	if err := parseDir(tmpl, fsys, path.Join(root, "partials"), func(file string) string {
		return file
	}); err != nil {
		return nil, err
	}

	pageDir := path.Join(root, "pages")
	entries, err := fs.ReadDir(fsys, pageDir)
	if err != nil {
		return nil, fmt.Errorf("reading pages: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".html" {
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join(pageDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading page %s: %w", entry.Name(), err)
		}

		// e.g., "pages/home.html" -> "content_home"
		baseName := strings.TrimSuffix(entry.Name(), ".html")
		wrapped := strings.Replace(
			compact(content),
			`{{define "content"}}`,
			fmt.Sprintf(`{{define "%s"}}`, contentName(baseName)),
			1,
		)

		relPath := "pages/" + entry.Name()
		if _, err := tmpl.New(relPath).Parse(wrapped); err != nil {
			return nil, fmt.Errorf("parsing page %s: %w", relPath, err)
		}
	}

	if tmpl.Lookup(baseLayout) == nil {
		return nil, fmt.Errorf("theme %s: base layout not found", name)
	}

	return &Theme{Name: name, Templates: tmpl}, nil
}

func parseDir(tmpl *template.Template, fsys fs.FS, dir string, nameFor func(string) string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".html" {
			continue
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		name := nameFor(entry.Name())
		if _, err := tmpl.New(name).Parse(compact(content)); err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}
	}
	return nil
}

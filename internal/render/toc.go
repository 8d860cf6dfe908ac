// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html"
	"html/template"
	"regexp"
	"strconv"
	"strings"

	"github.com/olegiv/blogfront/internal/util"
)

var (
	headingRegex = regexp.MustCompile(`(?is)<h([23])([^>]*)>(.*?)</h[23]>`)
	idAttrRegex  = regexp.MustCompile(`(?:^|\s)id="([^"]+)"`)
)

type tocEntry struct {
	level int
	text  string
	id    string
}

// BuildTOC collects the h2 and h3 headings of body into a nested list of
// anchor links. Headings without an id get one derived from their text, so
// the returned body must be rendered in place of the input for the links to
// resolve. toc is empty when body has no headings.
func BuildTOC(body string) (string, template.HTML) {
	matches := headingRegex.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return body, ""
	}

	used := make(map[string]int)
	entries := make([]tocEntry, 0, len(matches))
	var out strings.Builder
	last := 0
	for _, m := range matches {
		out.WriteString(body[last:m[0]])
		level, attrs, inner := body[m[2]:m[3]], body[m[4]:m[5]], body[m[6]:m[7]]
		text := html.UnescapeString(util.StripHTML(inner))

		var id string
		if sub := idAttrRegex.FindStringSubmatch(attrs); sub != nil {
			id = sub[1]
		} else {
			id = util.FirstNonEmpty(util.Slugify(text), "section")
			used[id]++
			if n := used[id]; n > 1 {
				id += "-" + strconv.Itoa(n)
			}
			attrs = strings.TrimSpace(attrs) + ` id="` + id + `"`
		}

		entries = append(entries, tocEntry{level: int(level[0] - '0'), text: text, id: id})
		out.WriteString("<h" + level + " " + strings.TrimSpace(attrs) + ">" + inner + "</h" + level + ">")
		last = m[1]
	}
	out.WriteString(body[last:])

	return out.String(), template.HTML(tocList(entries))
}

// tocList nests each run of h3 entries under the preceding h2 entry.
func tocList(entries []tocEntry) string {
	var b strings.Builder
	b.WriteString("<ol>")
	open, sub := false, false
	for _, e := range entries {
		link := `<a href="#` + e.id + `">` + html.EscapeString(e.text) + `</a>`
		if e.level == 2 {
			if sub {
				b.WriteString("</ul>")
				sub = false
			}
			if open {
				b.WriteString("</li>")
			}
			b.WriteString("<li>" + link)
			open = true
			continue
		}
		if !open {
			b.WriteString("<li>")
			open = true
		}
		if !sub {
			b.WriteString("<ul>")
			sub = true
		}
		b.WriteString("<li>" + link + "</li>")
	}
	if sub {
		b.WriteString("</ul>")
	}
	if open {
		b.WriteString("</li>")
	}
	b.WriteString("</ol>")
	return b.String()
}

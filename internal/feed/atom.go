// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package feed

import (
	"encoding/xml"
	"time"

	"github.com/olegiv/blogfront/internal/util"
)

// AtomNamespace is the Atom XML namespace.
const AtomNamespace = "http://www.w3.org/2005/Atom"

// AtomLink represents an Atom link element.
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
}

// AtomEntry represents an Atom entry.
type AtomEntry struct {
	Title   string     `xml:"title"`
	Links   []AtomLink `xml:"link"`
	ID      string     `xml:"id"`
	Updated string     `xml:"updated,omitempty"`
	Summary string     `xml:"summary"`
}

// AtomFeed represents the Atom document.
type AtomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	XMLNS   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title"`
	Links   []AtomLink  `xml:"link"`
	Updated string      `xml:"updated"`
	ID      string      `xml:"id"`
	Entries []AtomEntry `xml:"entry"`
}

// Atom renders an Atom 1.0 document. now stamps the feed's updated element.
func Atom(meta Meta, items []Item, now time.Time) ([]byte, error) {
	feed := AtomFeed{
		XMLNS:   AtomNamespace,
		Title:   meta.Title,
		Updated: now.UTC().Format(time.RFC3339),
		ID:      meta.ID(),
		Entries: make([]AtomEntry, 0, len(items)),
	}
	if meta.BaseURL != "" {
		feed.Links = []AtomLink{
			{Href: meta.HomeURL()},
			{Href: meta.FeedURL("feed.xml"), Rel: "self"},
		}
	}

	for _, item := range items {
		entry := AtomEntry{
			Title:   item.Title,
			ID:      item.ID,
			Updated: atomDate(item.Date),
			Summary: item.Summary,
		}
		if item.URL != "" {
			entry.Links = []AtomLink{{Href: item.URL}}
		}
		feed.Entries = append(feed.Entries, entry)
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(output, xmlBytes...), nil
}

// atomDate normalizes a record timestamp to RFC 3339. Unparsable values are dropped.
func atomDate(value string) string {
	t, ok := util.ParseDate(value)
	if !ok {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

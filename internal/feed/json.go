// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package feed

import (
	"bytes"
	"encoding/json"
)

// JSONFeedVersion identifies the JSON Feed format revision.
const JSONFeedVersion = "https://jsonfeed.org/version/1"

// JSONItem is a JSON Feed item.
type JSONItem struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Title         string `json:"title"`
	DatePublished string `json:"date_published"`
	Summary       string `json:"summary"`
}

// JSONFeed is a JSON Feed document.
type JSONFeed struct {
	Version     string     `json:"version"`
	Title       string     `json:"title"`
	HomePageURL string     `json:"home_page_url"`
	FeedURL     string     `json:"feed_url"`
	Items       []JSONItem `json:"items"`
}

// JSON renders a JSON Feed document.
func JSON(meta Meta, items []Item) ([]byte, error) {
	feed := JSONFeed{
		Version:     JSONFeedVersion,
		Title:       meta.Title,
		HomePageURL: meta.HomeURL(),
		FeedURL:     meta.FeedURL("feed.json"),
		Items:       make([]JSONItem, 0, len(items)),
	}
	for _, item := range items {
		feed.Items = append(feed.Items, JSONItem{
			ID:            item.ID,
			URL:           item.URL,
			Title:         item.Title,
			DatePublished: item.Date,
			Summary:       item.Summary,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

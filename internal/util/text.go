// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides text helpers shared by the renderers and feeds,
// plus path and request utilities for the HTTP layer.
package util

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// ExcerptLength is the number of characters kept by Excerpt.
const ExcerptLength = 160

// ReadingSpeed is the number of plain-text characters read per minute.
const ReadingSpeed = 700

// tagStripper matches any HTML tag, including ones spanning lines.
var tagStripper = regexp.MustCompile(`(?s)<[^>]*>`)

// StripHTML removes tags and collapses whitespace runs into single spaces.
func StripHTML(s string) string {
	clean := tagStripper.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(clean), " ")
}

// Excerpt returns the stripped text cut to length characters with "..."
// appended when anything was cut.
func Excerpt(html string, length int) string {
	text := StripHTML(html)
	if utf8.RuneCountInString(text) <= length {
		return text
	}
	return string([]rune(text)[:length]) + "..."
}

// ReadingTime returns the estimated reading time in whole minutes, never less than one.
func ReadingTime(html string) int {
	n := utf8.RuneCountInString(StripHTML(html))
	minutes := int(math.Ceil(float64(n) / ReadingSpeed))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// dateLayouts are tried in order when parsing record timestamps.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.000Z",
	"2006-01-02 15:04:05Z",
	"2006-01-02",
}

// ParseDate parses a record timestamp in any of the formats the backend emits.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a timestamp as yyyy/mm/dd. Unparsable values are returned as given.
func FormatDate(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	return t.Format("2006/01/02")
}

// ParseTags splits a comma-separated tag string into trimmed, non-empty,
// de-duplicated tags in first-seen order.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// FirstNonEmpty returns the first value that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

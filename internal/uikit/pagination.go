// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

import (
	"math"
	"strconv"
	"strings"
)

// MaxPage is the largest page number a path segment parses to.
const MaxPage = math.MaxInt32

// Pagination holds the previous/next links of a paged listing.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
	PrevURL     string
	NextURL     string
}

// BuildPagination creates prev/next pagination for baseURL, which must end
// with a slash (e.g. "/archive/" or "/archive/go/"). Page 1 lives at
// baseURL itself and page N at baseURL + "N/".
func BuildPagination(baseURL string, currentPage, totalPages int) Pagination {
	p := Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
	}
	if currentPage > 1 {
		p.HasPrev = true
		p.PrevPage = currentPage - 1
		p.PrevURL = PageLink(baseURL, p.PrevPage)
	}
	if currentPage < totalPages {
		p.HasNext = true
		p.NextPage = currentPage + 1
		p.NextURL = PageLink(baseURL, p.NextPage)
	}
	return p
}

// ShouldShow returns true if pagination should be displayed (more than 1 page).
func (p Pagination) ShouldShow() bool {
	return p.TotalPages > 1
}

// PageLink returns the URL of page n under baseURL.
func PageLink(baseURL string, n int) string {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if n <= 1 {
		return baseURL
	}
	return baseURL + strconv.Itoa(n) + "/"
}

// CalculateTotalPages calculates the number of pages for the given total items and items per page.
func CalculateTotalPages(totalItems, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	return totalPages
}

// ParsePageSegment parses a path segment as a page number.
// ok is false unless the segment is all ASCII digits. Values below 1 become 1
// and values above MaxPage become MaxPage.
func ParsePageSegment(s string) (page int, ok bool) {
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > MaxPage {
		// All digits, so the only failure is overflow.
		return MaxPage, true
	}
	if n < 1 {
		n = 1
	}
	return n, true
}

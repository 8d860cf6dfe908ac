// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// MediaCollectionID is the backend's internal identifier for the media collection.
// File URLs may reference either this or CollectionMedia.
const MediaCollectionID = "pbc_2708086759"

// Media represents an uploaded file record.
type Media struct {
	ID      string `json:"id"`
	File    string `json:"file"`
	Caption string `json:"caption"`
	Path    string `json:"path"`
}

// PublicPath returns the canonical path, falling back to the caption.
// An empty result means the record has no usable public location.
func (m *Media) PublicPath() string {
	if p := strings.TrimSpace(m.Path); p != "" {
		return p
	}
	return strings.TrimSpace(m.Caption)
}

// IsMediaCollection reports whether a file URL collection segment names the media collection.
func IsMediaCollection(collection string) bool {
	return collection == CollectionMedia || collection == MediaCollectionID
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ErrHiddenPath is returned for request paths that touch a dot-file or dot-directory.
var ErrHiddenPath = errors.New("hidden path")

// ValidatePathWithinBase ensures that a resolved path is within the expected
// base directory. Both paths are cleaned and made absolute first.
func ValidatePathWithinBase(basePath, targetPath string) error {
	absBase, err := filepath.Abs(filepath.Clean(basePath))
	if err != nil {
		return fmt.Errorf("invalid base path: %w", err)
	}

	absTarget, err := filepath.Abs(filepath.Clean(targetPath))
	if err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	// Trailing separator keeps /public-other from matching /public
	if absTarget != absBase && !strings.HasPrefix(absTarget, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path traversal detected: path escapes base directory")
	}

	return nil
}

// ResolveURLPath maps a URL path onto a file path under root. The URL path is
// cleaned as an absolute path first, so ".." can never climb above root.
// Segments starting with a dot are rejected with ErrHiddenPath.
func ResolveURLPath(root, urlPath string) (string, error) {
	cleaned := path.Clean("/" + urlPath)
	if cleaned == "/" {
		return "", fmt.Errorf("empty asset path")
	}
	for _, segment := range strings.Split(strings.TrimPrefix(cleaned, "/"), "/") {
		if strings.HasPrefix(segment, ".") {
			return "", ErrHiddenPath
		}
	}

	full := filepath.Join(root, filepath.FromSlash(cleaned))
	if err := ValidatePathWithinBase(root, full); err != nil {
		return "", err
	}
	return full, nil
}

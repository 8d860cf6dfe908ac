// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePathWithinBase(t *testing.T) {
	tmpDir := t.TempDir()

	publicDir := filepath.Join(tmpDir, "public")
	if err := os.MkdirAll(publicDir, 0755); err != nil {
		t.Fatalf("Failed to create public dir: %v", err)
	}

	tests := []struct {
		name       string
		targetPath string
		wantErr    bool
	}{
		{"same directory", publicDir, false},
		{"subdirectory", filepath.Join(publicDir, "themes"), false},
		{"traversal to parent", filepath.Join(publicDir, ".."), true},
		{"traversal to sibling", filepath.Join(publicDir, "..", "config"), true},
		{"absolute path outside base", "/etc/passwd", true},
		{"similar prefix", publicDir + "-malicious", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathWithinBase(publicDir, tt.targetPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePathWithinBase() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveURLPath(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		urlPath string
		want    string
		wantErr bool
	}{
		{"simple file", "/styles.css", filepath.Join(root, "styles.css"), false},
		{"nested file", "/themes/ember/styles.css", filepath.Join(root, "themes", "ember", "styles.css"), false},
		{"traversal is clamped to root", "/../../etc/passwd", filepath.Join(root, "etc", "passwd"), false},
		{"root", "/", "", true},
		{"hidden file", "/.env", "", true},
		{"hidden directory", "/.git/config", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURLPath(root, tt.urlPath)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveURLPath(%q) error = %v, wantErr %v", tt.urlPath, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ResolveURLPath(%q) = %q, want %q", tt.urlPath, got, tt.want)
			}
		})
	}

	if _, err := ResolveURLPath(root, "/.env"); !errors.Is(err, ErrHiddenPath) {
		t.Errorf("ResolveURLPath(/.env) error = %v, want ErrHiddenPath", err)
	}
}

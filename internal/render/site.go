// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/olegiv/blogfront/internal/config"
	"github.com/olegiv/blogfront/internal/model"
)

const highlightBase = "https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.9.0/"

// Site is the presentation configuration shared by every page. It is a
// value: WithSettings returns a copy and never mutates the receiver.
type Site struct {
	Name            string
	Description     string
	Welcome         string
	HeroImage       string
	HeroAlt         string
	FooterHTML      template.HTML
	AnalyticsURL    string
	AnalyticsSiteID string
	AdsClient       string
	Language        string
	Theme           string
	URL             string

	// CodeHighlight loads highlight.js with the HighlightTheme stylesheet.
	CodeHighlight  bool
	HighlightTheme string
	ShowTOC        bool
	ShowCategories bool

	HomePageSize    int
	ArchivePageSize int
	FeedItemsLimit  int
}

// NewSite builds the site from the environment configuration.
func NewSite(cfg *config.Config) Site {
	return Site{
		Name:            cfg.SiteName,
		Description:     cfg.SiteDescription,
		Welcome:         cfg.HomeWelcome,
		HeroImage:       cfg.HomeTopImage,
		HeroAlt:         cfg.HomeTopImageAlt,
		FooterHTML:      template.HTML(cfg.FooterHTML),
		AnalyticsURL:    cfg.AnalyticsURL,
		AnalyticsSiteID: cfg.AnalyticsSiteID,
		AdsClient:       cfg.AdsClient,
		Language:        orDefault(cfg.SiteLanguage, "ja"),
		Theme:           cfg.Theme,
		URL:             cfg.SiteURL,
		CodeHighlight:   cfg.CodeHighlight,
		HighlightTheme:  cfg.HighlightTheme,
		ShowTOC:         cfg.ShowTOC,
		ShowCategories:  cfg.ShowCategories,
		HomePageSize:    cfg.HomePageSize,
		ArchivePageSize: cfg.ArchivePageSize,
		FeedItemsLimit:  cfg.FeedItemsLimit,
	}
}

// WithSettings overlays the non-blank fields of a settings record.
func (s Site) WithSettings(st *model.Settings) Site {
	if st == nil {
		return s
	}
	overlay := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	overlay(&s.Name, st.SiteName)
	overlay(&s.Description, st.Description)
	overlay(&s.Welcome, st.WelcomeText)
	overlay(&s.HeroImage, st.HomeTopImage)
	overlay(&s.HeroAlt, st.HomeTopImageAlt)
	overlay(&s.AnalyticsURL, st.AnalyticsURL)
	overlay(&s.AnalyticsSiteID, st.AnalyticsSiteID)
	overlay(&s.AdsClient, st.AdsClient)
	overlay(&s.Language, st.SiteLanguage)
	overlay(&s.Theme, st.Theme)
	overlay(&s.HighlightTheme, st.HighlightTheme)
	flag := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	flag(&s.CodeHighlight, st.EnableCodeHighlight)
	flag(&s.ShowTOC, st.ShowToc)
	flag(&s.ShowCategories, st.ShowCategories)
	if u := strings.TrimRight(strings.TrimSpace(st.SiteURL), "/"); u != "" {
		s.URL = u
	}
	if strings.TrimSpace(st.FooterHTML) != "" {
		s.FooterHTML = template.HTML(st.FooterHTML)
	}
	if st.HomePageSize > 0 {
		s.HomePageSize = st.HomePageSize
	}
	if st.ArchivePageSize > 0 {
		s.ArchivePageSize = st.ArchivePageSize
	}
	if st.FeedItemsLimit > 0 {
		s.FeedItemsLimit = st.FeedItemsLimit
	}
	return s
}

// AnalyticsEnabled returns true if both analytics settings are present.
func (s Site) AnalyticsEnabled() bool {
	return s.AnalyticsURL != "" && s.AnalyticsSiteID != ""
}

// HighlightStylesheet returns the highlight.js theme stylesheet URL.
func (s Site) HighlightStylesheet() string {
	return highlightBase + "styles/" + url.PathEscape(orDefault(s.HighlightTheme, "github-dark")) + ".min.css"
}

// HighlightScript returns the highlight.js script URL.
func (s Site) HighlightScript() string {
	return highlightBase + "highlight.min.js"
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

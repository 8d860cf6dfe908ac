// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Settings is the site settings record managed from the admin console.
// Blank fields and absent flags mean "use the environment default".
type Settings struct {
	ID              string `json:"id"`
	SiteName        string `json:"site_name"`
	Description     string `json:"description"`
	WelcomeText     string `json:"welcome_text"`
	HomeTopImage    string `json:"home_top_image"`
	HomeTopImageAlt string `json:"home_top_image_alt"`
	FooterHTML      string `json:"footer_html"`
	Theme           string `json:"theme"`
	SiteURL         string `json:"site_url"`
	SiteLanguage    string `json:"site_language"`
	FeedItemsLimit  int    `json:"feed_items_limit"`
	ArchivePageSize int    `json:"archive_page_size"`
	HomePageSize    int    `json:"home_page_size"`
	AnalyticsURL    string `json:"analytics_url"`
	AnalyticsSiteID string `json:"analytics_site_id"`
	AdsClient       string `json:"ads_client"`

	EnableCodeHighlight *bool  `json:"enable_code_highlight"`
	HighlightTheme      string `json:"highlight_theme"`
	ShowToc             *bool  `json:"show_toc"`
	ShowCategories      *bool  `json:"show_categories"`
}

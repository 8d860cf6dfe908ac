// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
// It is built once at startup and passed by value; nothing mutates it afterwards.
type Config struct {
	BackendURL      string `env:"PB_URL" envDefault:"http://127.0.0.1:8090"`
	ServerHost      string `env:"LISTEN_HOST"`
	ServerPort      int    `env:"PORT" envDefault:"5173"`
	AdminURL        string `env:"ADMIN_URL" envDefault:"http://admin:5174"`
	AdminHostHeader string `env:"ADMIN_HOST_HEADER" envDefault:"localhost:5173"`
	Env             string `env:"ENV" envDefault:"production"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`

	// Site presentation
	SiteName        string `env:"SITE_NAME" envDefault:"Example Blog"`
	SiteDescription string `env:"SITE_DESCRIPTION" envDefault:"A calm place to write."`
	SiteURL         string `env:"SITE_URL"`
	SiteLanguage    string `env:"SITE_LANGUAGE" envDefault:"ja"`
	HomeWelcome     string `env:"HOME_WELCOME" envDefault:"Welcome to your blog"`
	HomeTopImage    string `env:"HOME_TOP_IMAGE" envDefault:"/default-hero.svg"`
	HomeTopImageAlt string `env:"HOME_TOP_IMAGE_ALT" envDefault:"Default hero image"`
	FooterHTML      string `env:"FOOTER_HTML"`
	AnalyticsURL    string `env:"ANALYTICS_URL"`
	AnalyticsSiteID string `env:"ANALYTICS_SITE_ID"`
	AdsClient       string `env:"ADS_CLIENT"`
	Theme           string `env:"THEME" envDefault:"ember"`
	CodeHighlight   bool   `env:"CODE_HIGHLIGHT" envDefault:"true"`
	HighlightTheme  string `env:"HIGHLIGHT_THEME" envDefault:"github-dark"`
	ShowTOC         bool   `env:"SHOW_TOC" envDefault:"false"`
	ShowCategories  bool   `env:"SHOW_CATEGORIES" envDefault:"true"`

	// Static assets
	PublicDir        string `env:"PUBLIC_DIR" envDefault:"./public"`
	DefaultPublicDir string `env:"DEFAULT_PUBLIC_DIR" envDefault:"./default-public-asset"`

	// Listing sizes
	HomePageSize        int  `env:"HOME_PAGE_SIZE" envDefault:"3"`
	ArchivePageSize     int  `env:"ARCHIVE_PAGE_SIZE" envDefault:"10"`
	FeedItemsLimit      int  `env:"FEED_ITEMS_LIMIT" envDefault:"20"`
	SettingsFromBackend bool `env:"SETTINGS_FROM_BACKEND" envDefault:"true"`

	// Timeouts and limits
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
	APIRateLimit   float64       `env:"API_RATE_LIMIT" envDefault:"50"` // requests per second per client, 0 disables
	APIRateBurst   int           `env:"API_RATE_BURST" envDefault:"100"`

	// Cache configuration
	MediaCacheTTL time.Duration `env:"MEDIA_CACHE_TTL" envDefault:"0s"` // 0 keeps media resolution per request
	RedisURL      string        `env:"REDIS_URL"`                       // Optional Redis URL for the media cache
	CachePrefix   string        `env:"CACHE_PREFIX" envDefault:"blogfront:"`
	CacheMaxSize  int           `env:"CACHE_MAX_SIZE" envDefault:"10000"`

	HealthCheckSchedule string `env:"HEALTH_CHECK_SCHEDULE" envDefault:"@every 30s"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MediaCacheEnabled returns true if resolved media paths are shared across requests.
func (c Config) MediaCacheEnabled() bool {
	return c.MediaCacheTTL > 0
}

// AnalyticsEnabled returns true if both analytics settings are present.
func (c Config) AnalyticsEnabled() bool {
	return c.AnalyticsURL != "" && c.AnalyticsSiteID != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	cfg.AdminURL = strings.TrimRight(cfg.AdminURL, "/")
	cfg.SiteURL = strings.TrimRight(strings.TrimSpace(cfg.SiteURL), "/")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for name, raw := range map[string]string{"PB_URL": c.BackendURL, "ADMIN_URL": c.AdminURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.ServerPort)
	}
	if c.HomePageSize <= 0 || c.ArchivePageSize <= 0 || c.FeedItemsLimit <= 0 {
		return errors.New("HOME_PAGE_SIZE, ARCHIVE_PAGE_SIZE and FEED_ITEMS_LIMIT must be positive")
	}
	if c.APIRateLimit < 0 {
		return fmt.Errorf("API_RATE_LIMIT must not be negative, got %v", c.APIRateLimit)
	}
	return nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/blogfront/internal/backend"
	"github.com/olegiv/blogfront/internal/cache"
	"github.com/olegiv/blogfront/internal/config"
	"github.com/olegiv/blogfront/internal/content"
	"github.com/olegiv/blogfront/internal/handler"
	"github.com/olegiv/blogfront/internal/logging"
	"github.com/olegiv/blogfront/internal/media"
	"github.com/olegiv/blogfront/internal/middleware"
	"github.com/olegiv/blogfront/internal/proxy"
	"github.com/olegiv/blogfront/internal/render"
	"github.com/olegiv/blogfront/internal/scheduler"
	"github.com/olegiv/blogfront/internal/theme"
	"github.com/olegiv/blogfront/internal/themes"
	"github.com/olegiv/blogfront/internal/uikit"
	"github.com/olegiv/blogfront/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// themeName is the embedded template set.
const themeName = "blog"

// staticMaxAge is the Cache-Control max-age for public directory files.
const staticMaxAge = time.Hour

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	envFile := flag.String("env", ".env", "Path to an optional .env file")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "blogfront - server-rendered blog front end\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PB_URL           Backend origin (default: http://127.0.0.1:8090)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORT             Listen port (default: 5173)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ADMIN_URL        Admin UI origin (default: http://admin:5174)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_URL         Public site URL used by feeds and the sitemap\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PUBLIC_DIR       Custom public assets (default: ./public)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MEDIA_CACHE_TTL  Share resolved media paths across requests (default: off)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  REDIS_URL        Redis URL for the media cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(*envFile, info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(envFile string, info version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load(envFile)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.IsDevelopment())
	slog.SetDefault(logger)

	client := backend.NewHTTPClient(cfg.BackendURL, cfg.BackendTimeout)
	resolver := content.NewResolver(client, logger)

	var rewriterOpts []media.Option
	if cfg.MediaCacheEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		mediaCache, backendName := cache.New(ctx, mediaCacheConfig(cfg), logger)
		cancel()
		defer func() {
			if err := mediaCache.Close(); err != nil {
				slog.Error("error closing media cache", "error", err)
			}
		}()
		slog.Info("media cache enabled", "backend", backendName, "ttl", cfg.MediaCacheTTL)
		rewriterOpts = append(rewriterOpts, media.WithStore(media.NewStore(mediaCache, cfg.MediaCacheTTL)))
	}
	rewriter := media.NewRewriter(resolver, logger, rewriterOpts...)

	th, err := theme.Load(themeName, themes.FS, themes.Root, uikit.TemplateFuncs())
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}
	publicAssets := theme.NewAssets(cfg.PublicDir, cfg.DefaultPublicDir, cfg.Theme, logger)
	renderer := render.New(th, publicAssets)

	apiProxy, err := proxy.NewAPI(cfg.BackendURL, &http.Client{Timeout: cfg.RequestTimeout}, logger)
	if err != nil {
		return fmt.Errorf("creating api proxy: %w", err)
	}
	adminProxy, err := proxy.NewAdmin(cfg.AdminURL, cfg.AdminHostHeader, logger)
	if err != nil {
		return fmt.Errorf("creating admin proxy: %w", err)
	}

	healthScheduler := scheduler.New(client, cfg.HealthCheckSchedule, logger)
	if err := healthScheduler.Start(); err != nil {
		return fmt.Errorf("starting health check: %w", err)
	}
	defer healthScheduler.Stop()

	frontend := handler.NewFrontend(resolver, rewriter, renderer, render.NewSite(cfg), cfg.SettingsFromBackend, logger)
	assets := handler.NewAssets(publicAssets, resolver, client, logger)
	health := handler.NewHealthHandler(healthScheduler, info.Version)

	r := newRouter(cfg, logger, &handler.Dispatcher{
		API:    middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateBurst, logger)(apiProxy),
		Admin:  adminProxy,
		Static: middleware.StaticCache(staticMaxAge)(http.HandlerFunc(assets.Static)),
		Assets: assets,
		Pages:  pageChain(cfg)(frontend),
	}, health)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env,
			"backend", cfg.BackendURL, "version", info.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// newRouter mounts the health endpoints and hands everything else to the dispatcher.
// mediaCacheConfig builds the media cache settings. Expired entries in the
// memory fallback are swept every minute.
func mediaCacheConfig(cfg *config.Config) cache.Config {
	return cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cfg.MediaCacheTTL,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}
}

func newRouter(cfg *config.Config, logger *slog.Logger, d *handler.Dispatcher, health *handler.HealthHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestLogger(&chimw.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		NoColor: !cfg.IsDevelopment(),
	}))
	r.Use(chimw.Recoverer)

	r.Get("/health", health.Health)
	r.Get("/health/ready", health.Readiness)

	r.Handle("/*", d)
	return r
}

// pageChain is the middleware stack for rendered pages. The timeout runs innermost.
func pageChain(cfg *config.Config) func(http.Handler) http.Handler {
	security := middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment()))
	timeout := middleware.Timeout(cfg.RequestTimeout)
	compress := chimw.Compress(5)
	return func(next http.Handler) http.Handler {
		return compress(security(timeout(next)))
	}
}

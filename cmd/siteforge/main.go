// Package main is the entry point for the SiteForge API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"siteforge/internal/ai"
	"siteforge/internal/assets"
	"siteforge/internal/cache"
	"siteforge/internal/config"
	"siteforge/internal/database"
	"siteforge/internal/handlers"
	"siteforge/internal/imaging"
	"siteforge/internal/payment"
	"siteforge/internal/router"
	"siteforge/internal/sitegen"
	"siteforge/internal/storage"
	"siteforge/internal/store"
)

func main() {
	// Structured logger — text output; ship to a collector in production.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (optional — site records then lose their fallback
	// store, everything else still works).
	var siteFallback handlers.SiteFallback
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, running without site fallback store", "error", err)
	} else {
		defer valkeyClient.Close()
		siteFallback = cache.NewSiteCache(valkeyClient, cache.DefaultSiteQuota)
	}

	// Start libvips for PNG normalization of generated images.
	imaging.Startup(0)
	defer imaging.Shutdown()

	// Initialize data stores.
	assetStore := store.NewAssetStore(db)
	templateStore := store.NewTemplateStore(db)
	websiteStore := store.NewWebsiteStore(db)

	// Connect to S3-compatible object storage (optional — asset references
	// degrade to inline data URIs without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.StorageBucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
	} else {
		slog.Warn("s3 storage not configured — images will be returned inline")
	}

	// Image generation chain: Gemini first, OpenAI second, and the free
	// stock photo service as the last resort. Unconfigured backends are nil
	// and skipped by the chain.
	var geminiBackend, openaiBackend ai.ImageBackend
	if key := cfg.GeminiKey(); key != "" {
		geminiBackend = ai.NewGemini(ai.ProviderConfig{APIKey: key})
	}
	if cfg.OpenAIKey != "" {
		openaiBackend = ai.NewOpenAI(ai.ProviderConfig{APIKey: cfg.OpenAIKey})
	}
	chain := ai.NewChain(geminiBackend, openaiBackend, ai.NewPhotoService(""))

	// Text providers for template generation, Gemini preferred.
	activeProvider := "gemini"
	if cfg.GeminiKey() == "" && cfg.OpenAIKey != "" {
		activeProvider = "openai"
	}
	registry := ai.NewRegistry(activeProvider, map[string]ai.ProviderConfig{
		"gemini": {APIKey: cfg.GeminiKey()},
		"openai": {APIKey: cfg.OpenAIKey},
	})
	slog.Info("ai providers initialized",
		"active", registry.ActiveName(),
		"available", registry.Available(),
	)

	// Resolvers.
	var assetUploader assets.Uploader
	if storageClient != nil {
		assetUploader = storageClient
	}
	assetResolver := assets.NewResolver(assetStore, chain, assetUploader)

	// Registry.Generate routes to the active provider alone, so template
	// generation is only enabled when that specific provider has a key.
	var textGen sitegen.TextGenerator
	if registry.HasProvider(registry.ActiveName()) {
		textGen = registry
	}
	templateResolver := sitegen.NewResolver(templateStore, textGen)

	// Stripe client is nil without a key; the endpoint then reports the
	// integration as unavailable.
	var verifier handlers.PaymentVerifier
	if stripeClient := payment.New(cfg.StripeSecretKey, ""); stripeClient != nil {
		verifier = stripeClient
	}

	api := handlers.NewAPI(
		assetResolver,
		templateResolver,
		verifier,
		websiteStore,
		siteFallback,
		templateStore,
		assetStore,
	)

	r := router.New(api, cfg.AdminTokenHash)

	// WriteTimeout must accommodate full asset batches that wait on image
	// generation (typically 15-30s, worst case around a minute).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

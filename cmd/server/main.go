package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/groupbuy/internal/config"
	"github.com/JonMunkholm/groupbuy/internal/logging"
	"github.com/JonMunkholm/groupbuy/internal/shop"
	"github.com/JonMunkholm/groupbuy/internal/web"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

// demoCatalog is loaded when SHOP_SEED_DEMO is set.
var demoCatalog = []shop.ProductInput{
	{Name: "Item 1", Price: 100},
	{Name: "Item 2", Price: 200},
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"csrf_enabled", cfg.Security.EnableCSRF,
		"max_image_size", cfg.Upload.MaxImageSize,
	)
	slog.Debug("configuration", "config", cfg.String())

	keys, err := cfg.Security.Keys()
	if err != nil {
		return err
	}
	for _, name := range keys.Generated {
		slog.Warn("no key configured, using a random one; sessions will not survive a restart", "variable", name)
	}

	verifier, err := adminVerifier(cfg.Admin)
	if err != nil {
		return err
	}

	var catalog []shop.ProductInput
	if cfg.Shop.SeedDemo {
		catalog = demoCatalog
	}

	sh, err := shop.New(shop.Options{
		Storefront: shop.Storefront{
			Title:           cfg.Shop.Title,
			Description:     cfg.Shop.Description,
			TextColor:       cfg.Shop.TextColor,
			BackgroundColor: cfg.Shop.BackgroundColor,
		},
		Verifier: verifier,
		Catalog:  catalog,
	})
	if err != nil {
		return err
	}
	slog.Info("shop ready", "title", cfg.Shop.Title, "products", len(sh.Products()))

	server, err := web.NewServer(cfg, sh, keys)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Start(cfg.Server.Addr()); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}

// adminVerifier prefers the bcrypt hash over the plaintext secret.
func adminVerifier(cfg config.AdminConfig) (shop.Verifier, error) {
	if cfg.PasswordHash != "" {
		return shop.NewBcryptVerifier(cfg.PasswordHash)
	}
	return shop.NewPlaintextVerifier(cfg.Password), nil
}

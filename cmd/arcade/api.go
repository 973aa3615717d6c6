package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mdlunited/arcade/internal/api"
	"github.com/mdlunited/arcade/internal/config"
	"github.com/mdlunited/arcade/internal/notify"
	"github.com/mdlunited/arcade/internal/shop"
	"github.com/mdlunited/arcade/internal/storage"
	"github.com/mdlunited/arcade/internal/wallet"
)

var (
	flagAPIAddr string
	flagCatalog string
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the points store HTTP API",
	Long: `Start the HTTP API serving scoreboards, the points store and wallets.

Settings come from the environment (a .env file is loaded if present):
  APP_ENV               development or production
  API_ADDR              listen address (default :8080)
  ARCADE_DB             sqlite database path
  REDIS_URL             keep wallets in Redis instead of sqlite
  JWT_SECRET            HS256 secret for bearer tokens
  ADMIN_USER_ID         user allowed to grant coins
  DISCORD_WEBHOOK_URL   purchase and grant notifications
  WEBHOOK_QUEUE_SIZE    pending notifications before dropping

Examples:
  arcade api
  arcade api --addr :9090 --catalog ./store.yaml`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "Listen address (overrides API_ADDR)")
	apiCmd.Flags().StringVar(&flagCatalog, "catalog", "", "Path to store catalog YAML")
}

// backend holds the store services shared by the api and wallet commands.
type backend struct {
	cfg    config.ServerConfig
	store  *storage.Store
	ledger wallet.Ledger
	shop   *shop.Service
	notify *notify.Dispatcher

	closers []func() error
}

// openBackend wires storage, the ledger, notifications and the shop from
// the server config.
func openBackend(ctx context.Context, cfg config.ServerConfig) (*backend, error) {
	b := &backend{cfg: cfg}

	dbPath := cfg.DBPath
	if rootCmd.PersistentFlags().Changed("db") {
		dbPath = flagDBPath
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, err
	}
	b.store = store
	b.ledger = store
	b.closers = append(b.closers, store.Close)

	if cfg.RedisURL != "" {
		rdb, err := wallet.Connect(ctx, cfg.RedisURL)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.ledger = wallet.NewRedisLedger(rdb)
		b.closers = append(b.closers, rdb.Close)
		logger.Info("wallets stored in redis")
	}

	storeCfg, err := config.LoadStore(flagCatalog)
	if err != nil {
		b.Close()
		return nil, err
	}
	catalog, err := shop.NewCatalog(storeCfg)
	if err != nil {
		b.Close()
		return nil, err
	}

	webhook := notify.NewWebhook(cfg.WebhookURL, logger)
	if !webhook.Configured() {
		logger.Warn("DISCORD_WEBHOOK_URL not set, notifications disabled")
	}
	b.notify = notify.NewDispatcher(webhook, cfg.WebhookQueueSize, logger)

	b.shop = shop.NewService(b.ledger, catalog, b.notify, cfg.AdminUserID, logger)
	return b, nil
}

// Close drains pending notifications and releases connections.
func (b *backend) Close() {
	if b.notify != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := b.notify.Close(ctx); err != nil {
			logger.Warn("notifications not drained", "error", err)
		}
		cancel()
	}
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}
}

func runAPI(_ *cobra.Command, _ []string) error {
	cfg := config.LoadServer()
	if flagAPIAddr != "" {
		cfg.Addr = flagAPIAddr
	}
	if cfg.IsProduction() {
		if cfg.JWTSecret == "change-me-in-production" {
			return errors.New("JWT_SECRET must be set in production")
		}
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	router := api.NewRouter(api.Deps{
		Shop:      b.shop,
		Scores:    b.store,
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.WithPrefix("api"),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting API server", "address", cfg.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ABOUTME: Entry point for the sitechat chat gateway
// ABOUTME: Serves POST /api/chat and GET /api/models backed by a model provider

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sitechat/sitechat/internal/config"
	"github.com/sitechat/sitechat/internal/gateway"
	"github.com/sitechat/sitechat/internal/logging"
	"github.com/sitechat/sitechat/internal/model"
)

// Version is set at build time.
var version = "dev"

// getConfigPath returns the path to the gateway config file.
// Priority: SITECHAT_CONFIG env var > XDG_CONFIG_HOME/sitechat/gateway.yaml > ~/.config/sitechat/gateway.yaml
func getConfigPath() string {
	if envPath := os.Getenv("SITECHAT_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "gateway.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "sitechat", "gateway.yaml")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", configPath, err)
	}

	logger := logging.Setup(cfg.Logging)
	logger.Info("sitechat-gateway starting", "version", version, "addr", cfg.Server.HTTPAddr)

	provider, err := buildProvider(ctx, cfg, logger)
	if err != nil {
		return err
	}

	gw := gateway.New(provider, logger,
		gateway.WithSiteContext(cfg.Context.SiteContext, cfg.Context.Acknowledgement),
		gateway.WithHistoryLimit(cfg.Context.HistoryLimit),
	)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           gw.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (model.Provider, error) {
	switch cfg.Model.Provider {
	case "gemini":
		return model.NewGeminiProvider(ctx, cfg.Model.APIKey, cfg.Model.Name, cfg.Model.Timeout, logger)
	case "echo":
		logger.Warn("using echo provider, replies are canned")
		return model.NewEchoProvider(), nil
	default:
		// unreachable, config validation rejects unknown providers
		return nil, fmt.Errorf("unknown provider %q", cfg.Model.Provider)
	}
}

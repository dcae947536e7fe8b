package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	internalapi "github.com/phil777/curiefense/internal/api"
	"github.com/phil777/curiefense/internal/branch"
	"github.com/phil777/curiefense/internal/config"
	"github.com/phil777/curiefense/internal/fetch"
	"github.com/phil777/curiefense/internal/index"
	"github.com/phil777/curiefense/internal/metrics"
)

func main() {
	var (
		configPath string
		listenAddr string
		backendURL string
	)

	flag.StringVar(&configPath, "config", "", "Path to YAML config file (optional).")
	flag.StringVar(&listenAddr, "listen-addr", "", "Address the API server binds to. Overrides config file.")
	flag.StringVar(&backendURL, "backend-url", "", "Root URL of the document backend. Overrides config file.")
	flag.Parse()

	// Setup logger
	logConfig := zap.NewProductionConfig()
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := logConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}
	if backendURL != "" {
		cfg.BackendURL = backendURL
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

// run contains the main application logic, separated from main() for testability.
func run(cfg config.Config, logger *zap.Logger) error {
	logger.Info("Starting curieconsole",
		zap.String("listen_addr", cfg.ListenAddr),
		zap.String("backend_url", cfg.BackendURL),
		zap.Duration("fetch_timeout", cfg.FetchTimeout()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	client := fetch.NewClient(logger, fetch.ClientOptions{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.FetchTimeout(),
	})

	m := metrics.NewProm("curieconsole")

	store := index.NewStore(func(event index.IndexEvent) {
		logger.Debug("Index replaced",
			zap.String("branch", event.Branch),
			zap.Int("documents", event.Count),
		)
	})
	builder := index.NewBuilder(logger, client, store, m)

	// Branch selection drives rebuilds. Rebuild blocks until all six
	// fetches settle, so a select request returns once the index reflects
	// its branch; the staleness token keeps overlapping selects from
	// letting a superseded branch overwrite a newer one.
	bctx := branch.New(logger, client, builder.Rebuild)

	// Initial branch listing + first rebuild. A failure here is absorbed:
	// the server comes up with no branches and an empty index.
	bctx.Load(ctx)

	mux := http.NewServeMux()
	for path, handler := range internalapi.Handlers(store, bctx, logger) {
		mux.Handle(path, handler)
	}

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API server listening", zap.String("addr", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

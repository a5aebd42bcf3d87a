package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"go.uber.org/zap"

	"evault/internal/config"
	"evault/internal/container"
	"evault/internal/core/ports"
	httpapi "evault/internal/http"
	"evault/internal/keys"
	"evault/internal/logging"
	"evault/internal/storage"
	"evault/internal/storage/local"
	s3store "evault/internal/storage/s3"
	"evault/internal/vault"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "evault: %v\n", err)
		os.Exit(1)
	}
	logging.Init(cfg.LogLevel)
	defer func() { _ = logging.L.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		logging.L.Fatal("failed to open storage", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}

	// Without a key the server still starts so existing containers can be
	// listed and removed.
	var codec ports.Codec
	key, err := keys.FromEnv(cfg.KeyEnv)
	if err != nil {
		logging.L.Warn("encryption disabled",
			zap.String("env", cfg.KeyEnv),
			zap.Error(err),
			zap.String("hint", "generate a key with: go run ./cmd/evault/keygen"),
		)
	} else if codec, err = container.New(key); err != nil {
		logging.L.Fatal("failed to initialise codec", zap.Error(err))
	}

	svc := vault.NewService(codec, store)
	api := httpapi.NewServer(svc, httpapi.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		RateLimit:      cfg.RateLimit,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.L.Info("evault listening",
		zap.String("addr", cfg.Addr),
		zap.String("storage", cfg.Storage.Backend),
		zap.Bool("encryption_enabled", svc.Enabled()),
	)
	if err := httpapi.StartHTTP(ctx, srv); err != nil && ctx.Err() == nil {
		logging.L.Fatal("http server failed", zap.Error(err))
	}
	logging.L.Info("evault stopped")
}

func openStore(ctx context.Context, cfg storage.Config) (storage.Store, error) {
	switch cfg.Backend {
	case "s3":
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("unable to load SDK config: %w", err)
		}
		return s3store.NewClient(ctx, awsCfg, cfg.Bucket, s3store.WithPrefix(cfg.Prefix))
	default:
		return local.New(cfg.Dir)
	}
}

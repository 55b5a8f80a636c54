package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"ragbooks/internal/app"
	"ragbooks/internal/config"
	"ragbooks/internal/ragclient"
	"ragbooks/internal/ratelimit"
	"ragbooks/internal/server"
	"ragbooks/internal/util"
	"ragbooks/pkg/corpus"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to load config: %v\n", err)
		os.Exit(1)
	}

	util.InitLogger(cfg.LogLevel, "assistant")

	appCore, err := app.New(app.Config{
		Corpus:           corpus.NewSeededStore(),
		Client:           ragclient.NewClient(cfg.RagServiceURL),
		SeedConversation: corpus.SeedConversation(),
	})
	if err != nil {
		util.Fatal("failed to init app", "err", err)
	}

	var queryLimiter *ratelimit.FixedWindowLimiter
	if cfg.QueryRateLimitPerMinute > 0 {
		queryLimiter, err = ratelimit.NewRedisFixedWindowLimiter(
			cfg.RedisAddr, cfg.RedisPassword, "ragbooks:query",
			cfg.QueryRateLimitPerMinute, time.Minute,
		)
		if err != nil {
			util.Fatal("failed to init rate limiter", "err", err)
		}
	}

	trustedProxies, err := util.NewTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		util.Fatal("failed to parse trusted proxies", "err", err)
	}

	httpServer := server.New(server.Config{
		App:            appCore,
		QueryLimiter:   queryLimiter,
		TrustedProxies: trustedProxies,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("assistant server listening", "addr", addr, "session_id", appCore.SessionID())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server error", "err", err)
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jask/glossview/internal/config"
	"github.com/jask/glossview/internal/database"
	"github.com/jask/glossview/internal/database/repository"
	"github.com/jask/glossview/internal/logging"
	"github.com/jask/glossview/internal/server"
	"github.com/jask/glossview/internal/testdata"
)

func main() {
	seed := pflag.Bool("seed", false, "load sample terms and write a sample graph file when absent")
	addr := pflag.String("addr", "", "listen address (overrides server.addr)")
	pflag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	// The server logs to stderr.
	cfg.Log.File = ""
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, *seed, logger); err != nil {
		logger.Fatal("glossaryd", zap.Error(err))
	}
}

func run(cfg config.Config, seed bool, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return err
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	terms := repository.NewTermRepo(db)
	if seed {
		n, err := testdata.Seed(ctx, terms)
		if err != nil {
			return err
		}
		wrote, err := testdata.WriteGraph(cfg.Graph.Path)
		if err != nil {
			return err
		}
		logger.Info("seeded", zap.Int("terms", n), zap.Bool("graph_written", wrote), zap.String("graph", cfg.Graph.Path))
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(terms, server.Options{GraphPath: cfg.Graph.Path, AllowedOrigins: cfg.Server.AllowedOrigins}, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("database", cfg.Database.Path))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

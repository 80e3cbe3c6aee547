package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jask/glossview/internal/api"
	"github.com/jask/glossview/internal/config"
	"github.com/jask/glossview/internal/logging"
	"github.com/jask/glossview/internal/tui"
)

func main() {
	writeConfig := pflag.Bool("write-config", false, "write the effective configuration to the config file and exit")
	pflag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *writeConfig {
		if err := config.Save(cfg); err != nil {
			log.Fatalf("config: %v", err)
		}
		fmt.Println(config.Path())
		return
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	client := api.New(cfg.API.BaseURL, api.WithLogger(logger))
	app := tui.New(ctx, client, logger)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(app, opts...)
	app.Attach(p)

	logger.Info("glossview started", zap.String("api", cfg.API.BaseURL))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

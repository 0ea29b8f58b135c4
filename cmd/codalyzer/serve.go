package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/codalyzer/codalyzer/internal/server"
	"github.com/codalyzer/codalyzer/internal/service/analysis"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Bind address (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides config)",
			},
		},
		Action: runServeCmd,
	}
}

func runServeCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if host := c.String("host"); host != "" {
		cfg.Server.Host = host
	}
	if port := c.Int("port"); port != 0 {
		cfg.Server.Port = port
	}

	level := slog.LevelInfo
	if cfg.Output.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	svc, err := analysis.New(analysis.WithConfig(cfg))
	if err != nil {
		return err
	}
	if !svc.Available() {
		logger.Warn("no API key configured, analysis requests will return 503",
			"env", "CODALYZER_API_KEY")
	}

	srv := server.New(cfg.Server, svc, logger)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server", "addr", cfg.Server.Addr(), "model", svc.Model())
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

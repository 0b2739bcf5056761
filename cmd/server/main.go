package main

import (
	"context"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/jobs-client/internal/config"
	"github.com/honeycarbs/jobs-client/internal/domain"
	"github.com/honeycarbs/jobs-client/internal/mcp"
	"github.com/honeycarbs/jobs-client/internal/scheduler"
	"github.com/honeycarbs/jobs-client/pkg/logging"
	"github.com/honeycarbs/jobs-client/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	res, cleanup := mcp.LoadResources(ctx, cfg, logger)
	defer cleanup()

	srv := mcp.NewServer(logger, cfg, res)
	targets := []shutdown.Stoppable{srv}

	if cfg.Discovery.Schedule != "" && res.JobService != nil {
		sched, err := scheduler.New(
			res.JobService,
			res.Tracker,
			logger,
			cfg.Discovery.Schedule,
			cfg.Discovery.Keywords,
			domain.JobSearchFilters{Location: cfg.Discovery.Location},
		)
		if err != nil {
			logger.Error("failed to create discovery scheduler", "err", err)
			cleanup()
			os.Exit(1)
		}
		if err := sched.Start(ctx); err != nil {
			logger.Error("failed to start discovery scheduler", "err", err)
			cleanup()
			os.Exit(1)
		}
		targets = append(targets, sched)
	}

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		targets...,
	)

	logger.Info("MCP server initialized and starting", "addr", net.JoinHostPort(cfg.Host, cfg.Port))

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
	} else {
		logger.Info("MCP server stopped")
	}
}

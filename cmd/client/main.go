package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/freelancework02/welfare-admin/internal/buildinfo"
	"github.com/freelancework02/welfare-admin/internal/client/cli"
	"github.com/freelancework02/welfare-admin/internal/client/config"
	"github.com/freelancework02/welfare-admin/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("%v", err)
	}

	logWriter := io.Writer(os.Stderr)
	if cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0o755); err == nil {
			if f, ferr := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); ferr == nil {
				defer f.Close()
				logWriter = f
			}
		}
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(logWriter, nil)))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Run(ctx)
}

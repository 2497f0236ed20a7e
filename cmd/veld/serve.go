package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/veld-ui/veld/internal/config"
	"github.com/veld-ui/veld/pkg/server"
	"github.com/veld-ui/veld/pkg/session"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live demo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			logger := newLogger(cfg.LogLevel)
			store, err := openStore(cfg.Server.SnapshotPath)
			if err != nil {
				return err
			}
			defer store.Close()

			srv, err := server.New(server.Config{
				Addr:   cfg.Server.Addr,
				App:    demoApp,
				Title:  cfg.Server.Title,
				Logger: logger,
				Store:  store,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			info("serving on %s (metrics on /metrics)", cfg.Server.Addr)
			return srv.ListenAndServe(ctx)
		},
	}
	return cmd
}

func openStore(path string) (session.Store, error) {
	if path == "" {
		return session.NewMemoryStore(), nil
	}
	return session.NewBoltStore(path)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

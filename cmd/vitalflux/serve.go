package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vitalflux/vitalflux/gateway"
	"github.com/vitalflux/vitalflux/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the widget generation HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.APIKey == "" {
				return fmt.Errorf("an API key is required: set VITALFLUX_API_KEY or --api-key")
			}

			reg, err := buildRegistry(cfg)
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			gw := gateway.New(gateway.Config{
				APIKey:   cfg.APIKey,
				Model:    cfg.Model,
				Endpoint: cfg.Endpoint,
			}, reg)

			srv := server.New(server.Config{
				Registry:  reg,
				Generator: gw,
				Port:      cfg.Port,
				Logger:    logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().Int("port", 0, "HTTP listen port (default 8080)")
	return cmd
}

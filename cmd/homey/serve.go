package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrSnakeDoc/homey/internal/app"
	"github.com/MrSnakeDoc/homey/internal/config"
	"github.com/MrSnakeDoc/homey/internal/logger"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and the editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, v)
		},
	}
}

func runServe(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = loggerClient.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, loggerClient)
	if err != nil {
		loggerClient.Error("failed to start", logger.Error(err))
		return err
	}

	return a.Run(ctx)
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdf3md/profilectl/internal/config"
	"github.com/pdf3md/profilectl/internal/logging"
	"github.com/pdf3md/profilectl/internal/paths"
	"github.com/pdf3md/profilectl/internal/server"
	"github.com/pdf3md/profilectl/internal/store"
)

var (
	serveAddr string
	serveDir  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local profile service",
	Long: `Run a profile service backed by one JSON file per profile, the same layout
pdf3md uses. Useful for development and for editing profiles offline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.NewServer()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		dir := serveDir
		if dir == "" {
			dir = paths.StoreDir()
		}
		st, err := store.Open(dir, logger)
		if err != nil {
			return err
		}
		logger.Info("profile store ready", zap.String("dir", st.Dir()))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.Run(ctx, serveAddr, server.New(st, logger), logger)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":"+strconv.Itoa(config.DevPort), "listen address")
	serveCmd.Flags().StringVar(&serveDir, "dir", "", "profile directory (default ~/.pdf3md/profiles)")
}

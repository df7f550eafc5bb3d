package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/hexboard/internal/api"
	"github.com/talgya/hexboard/internal/persistence"
)

var (
	serveAddr      string
	serveNoHistory bool
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board API over HTTP",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides the tuning file)")
	serveCmd.Flags().BoolVar(&serveNoHistory, "no-history", false, "Run without the history database")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		settings.Server.Addr = serveAddr
	}

	var db *persistence.DB
	if !serveNoHistory {
		var err error
		if db, err = openDB(); err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		slog.Info("database opened", "path", settings.Server.DBPath)
	}

	srv := (&api.Server{
		Gen:         newGenerator(cmd.Context(), db),
		DB:          db,
		Addr:        settings.Server.Addr,
		RateLimit:   settings.Server.RateLimit,
		CORSOrigins: settings.Server.CORSOrigins,
	}).Start()

	fmt.Printf("API: http://localhost%s/api/v1/board\n", settings.Server.Addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

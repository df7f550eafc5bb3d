// Command hexboard generates balanced hex boards, decodes board tokens and
// serves both over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/engine"
	"github.com/talgya/hexboard/internal/entropy"
	"github.com/talgya/hexboard/internal/persistence"
	"github.com/talgya/hexboard/internal/tuning"
)

var (
	configPath string
	verbose    bool
	dbPath     string

	settings tuning.Tuning
)

var rootCmd = &cobra.Command{
	Use:   "hexboard",
	Short: "Balanced board generator for hex resource games",
	Long: `hexboard builds fair boards for hex-tile trading games and packs each
one into a short token that rebuilds it exactly.

Examples:
  hexboard gen --shape expansion6 --desert center
  hexboard gen -n 3 --save
  hexboard decode <token>
  hexboard serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)

		var err error
		if settings, err = tuning.Load(configPath); err != nil {
			return fmt.Errorf("load %s: %w", configPath, err)
		}
		if dbPath != "" {
			settings.Server.DBPath = dbPath
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "hexboard.yaml", "Tuning file (missing file uses defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log search details")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides the tuning file)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// openDB opens the board history database, creating its directory.
func openDB() (*persistence.DB, error) {
	path := settings.Server.DBPath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := persistence.Open(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("database opened", "path", path)
	return db, nil
}

// newGenerator builds a generator from the tuning file. An unseeded
// generator draws its seed from random.org when a key is configured. Stored
// calibration targets are preloaded when db is not nil.
func newGenerator(ctx context.Context, db *persistence.DB) *engine.Generator {
	cfg := settings.EngineConfig()
	if cfg.Seed == 0 {
		if client := entropy.NewClient(settings.RandomOrgAPIKey); client != nil {
			cfg.Seed = entropy.SeedFromSource(ctx, client)
			slog.Debug("seeded from random.org", "seed", cfg.Seed)
		}
	}
	g := engine.New(cfg)

	if db != nil {
		cals, err := db.LoadCalibrations()
		if err != nil {
			slog.Warn("failed to load calibrations", "error", err)
		}
		for _, c := range cals {
			g.SetTarget(board.Shape(c.Shape), engine.Target{Greedy: c.Greedy, Fair: c.Fair})
		}
		if len(cals) > 0 {
			slog.Debug("calibrations loaded", "shapes", len(cals))
		}
	}
	return g
}

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/persistence"
	"github.com/talgya/hexboard/internal/shapes"
)

var (
	calibrateShape   string
	calibrateSamples int
)

func init() {
	calibrateCmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Measure quality targets and store them",
		Long: `Measure the mean quality of fair and greedy number placement for each
shape and store the results, so servers skip calibration on their first
request for a mixed number distribution.`,
		RunE: runCalibrate,
	}
	calibrateCmd.Flags().StringVarP(&calibrateShape, "shape", "s", "", "Calibrate one shape (default all)")
	calibrateCmd.Flags().IntVar(&calibrateSamples, "samples", 0, "Candidates per extreme (default from the tuning file)")

	rootCmd.AddCommand(calibrateCmd)
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	specs := shapes.All()
	if calibrateShape != "" {
		spec, ok := shapes.ByName(calibrateShape)
		if !ok {
			return fmt.Errorf("unknown shape %q (have %v)", calibrateShape, shapes.Names())
		}
		specs = []*board.Spec{spec}
	}
	samples := calibrateSamples
	if samples <= 0 {
		samples = settings.Engine.CalibrationSamples
	}
	if samples <= 0 {
		return fmt.Errorf("--samples must be positive")
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	g := newGenerator(cmd.Context(), nil)
	for _, spec := range specs {
		start := time.Now()
		t, err := g.Calibrate(cmd.Context(), spec, samples)
		if err != nil {
			return fmt.Errorf("calibrate %s: %w", spec.Shape, err)
		}
		err = db.SaveCalibration(persistence.Calibration{
			Shape:   string(spec.Shape),
			Greedy:  t.Greedy,
			Fair:    t.Fair,
			Samples: samples,
		})
		if err != nil {
			return err
		}
		slog.Info("calibration stored", "shape", spec.Shape, "elapsed", time.Since(start).Round(time.Millisecond))
		fmt.Printf("%-12s greedy %8.2f  fair %8.2f\n", spec.Shape, t.Greedy, t.Fair)
	}
	return nil
}

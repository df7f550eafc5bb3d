package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/boardurl"
	"github.com/talgya/hexboard/internal/engine"
	"github.com/talgya/hexboard/internal/entropy"
	"github.com/talgya/hexboard/internal/persistence"
	"github.com/talgya/hexboard/internal/shapes"
)

var (
	genShape          string
	genStyle          string
	genDesert         string
	genResources      float64
	genNumbers        float64
	genShufflePorts   bool
	genResourceOnPort bool
	genCount          int
	genSave           bool
	genRandom         bool
	genQuiet          bool
)

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate balanced boards",
		Long: `Generate one or more boards and print each token and layout.

Examples:
  hexboard gen
  hexboard gen --shape seafarers1 --numbers 0.5
  hexboard gen --style cities-and-knights
  hexboard gen -n 5 --desert coast --shuffle-ports --save`,
		RunE: runGen,
	}

	genCmd.Flags().StringVarP(&genShape, "shape", "s", string(shapes.Standard), "Board shape or display name")
	genCmd.Flags().StringVar(&genStyle, "style", string(engine.StyleStandard), "Game style: standard, cities-and-knights")
	genCmd.Flags().StringVar(&genDesert, "desert", string(engine.DesertRandom), "Desert placement: random, center, off-center, inland, coast")
	genCmd.Flags().Float64Var(&genResources, "resources", 1, "Fraction of hexes that avoid their neighbors' resources (0 clumps)")
	genCmd.Flags().Float64Var(&genNumbers, "numbers", 1, "Fraction of roll numbers placed fairly (0 is greedy)")
	genCmd.Flags().BoolVar(&genShufflePorts, "shuffle-ports", false, "Shuffle port resources")
	genCmd.Flags().BoolVar(&genResourceOnPort, "resource-on-port", false, "Allow a hex to produce its own port's resource")
	genCmd.Flags().IntVarP(&genCount, "number", "n", 1, "Number of boards to generate")
	genCmd.Flags().BoolVar(&genSave, "save", false, "Record boards in the history database")
	genCmd.Flags().BoolVar(&genRandom, "random", false, "Skip the search and fill the board at random")
	genCmd.Flags().BoolVarP(&genQuiet, "quiet", "q", false, "Print tokens only")

	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	spec, ok := shapes.ByName(genShape)
	if !ok {
		return fmt.Errorf("unknown shape %q (have %v)", genShape, shapes.Names())
	}
	style, err := engine.ParseGameStyle(genStyle)
	if err != nil {
		return err
	}
	desert, err := engine.ParseDesertPlacement(genDesert)
	if err != nil {
		return err
	}
	if genCount < 1 {
		return fmt.Errorf("--number must be at least 1")
	}
	opts := engine.Options{
		GameStyle:            style,
		DesertPlacement:      desert,
		ResourceDistribution: genResources,
		NumberDistribution:   genNumbers,
		ShufflePorts:         genShufflePorts,
		AllowResourceOnPort:  genResourceOnPort,
		ColdStart:            true,
	}

	ctx := cmd.Context()
	var db *persistence.DB
	if needDB(genSave, genRandom, settings.Server.DBPath) {
		if db, err = openDB(); err != nil {
			if genSave {
				return fmt.Errorf("open database: %w", err)
			}
			slog.Debug("running without stored calibrations", "error", err)
			db = nil
		}
	}
	if db != nil {
		defer db.Close()
	}
	g := newGenerator(ctx, db)

	for i := 0; i < genCount; i++ {
		var (
			b       *board.Board
			quality float64
			res     *engine.Result
		)
		if genRandom {
			b = engine.Random(spec, entropy.NewRand(0))
			quality = engine.Evaluate(b, opts, g.Config().BestSpotWeight)
		} else {
			res, err = g.Generate(ctx, spec, opts)
			if err != nil {
				return fmt.Errorf("generate %s: %w", spec.Shape, err)
			}
			b, quality = res.Board, res.Quality
			opts.ColdStart = false
		}

		token, err := boardurl.Serialize(b)
		if err != nil {
			return err
		}

		if genSave {
			rec := persistence.BoardRecord{Token: token, Shape: string(spec.Shape), Quality: quality}
			if res != nil {
				optsJSON, _ := json.Marshal(res.Options)
				rec.Attempts = res.Attempts
				rec.ElapsedMS = res.Elapsed.Milliseconds()
				rec.OptionsJSON = string(optsJSON)
			}
			if rec, err = db.SaveBoard(rec); err != nil {
				return err
			}
			slog.Info("board saved", "id", rec.ID)
		}

		if genQuiet {
			fmt.Println(token)
			continue
		}
		fmt.Printf("Board #%d  %s (%s)\n", i+1, spec.Name, spec.Shape)
		fmt.Printf("Token:   %s\n", token)
		fmt.Printf("Quality: %.2f\n", quality)
		if res != nil {
			fmt.Printf("Search:  %s candidates, %s failed, %s\n",
				humanize.Comma(int64(res.Attempts)), humanize.Comma(int64(res.Failures)), res.Elapsed.Round(time.Millisecond))
		}
		fmt.Printf("Ports:   %s\n\n", describePorts(b))
		fmt.Println(renderBoard(b))
	}
	return nil
}

// needDB reports whether gen should open the history database. Saving
// always needs it. A search only reads stored calibrations, so it never
// creates a database that is not there yet.
func needDB(save, random bool, path string) bool {
	if save {
		return true
	}
	if random {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Package engine fills boards with resources and roll numbers, searching
// many random candidates for the one closest to a fairness target.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/entropy"
)

// ErrNoFeasibleBoard is returned when MaxFailures candidates in a row
// cannot be completed, which means the spec's constraints cannot be met.
var ErrNoFeasibleBoard = errors.New("no feasible board")

// Result is the outcome of one Generate call.
type Result struct {
	Board    *board.Board
	Options  Options
	Quality  float64
	Target   float64
	Attempts int
	Failures int
	Elapsed  time.Duration
	// Seed reproduces the call with a zero time floor.
	Seed int64
}

// Generator runs board searches. It is safe for concurrent use; every
// Generate call builds and owns its own board.
type Generator struct {
	cfg Config

	mu      sync.Mutex
	rng     *rand.Rand
	targets map[board.Shape]Target
}

// New creates a Generator.
func New(cfg Config) *Generator {
	return &Generator{
		cfg:     cfg.normalized(),
		rng:     entropy.NewRand(cfg.Seed),
		targets: make(map[board.Shape]Target),
	}
}

// Config returns the generator's effective configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// SetTarget preloads the quality target for a shape, skipping calibration.
func (g *Generator) SetTarget(shape board.Shape, t Target) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.targets[shape] = t
}

// Target returns the cached target for shape.
func (g *Generator) Target(shape board.Shape) (Target, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.targets[shape]
	return t, ok
}

func (g *Generator) nextSeed() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Int63()
}

// Calibrate measures the greedy and fair mean quality for spec with samples
// candidates each, caches the result and returns it.
func (g *Generator) Calibrate(ctx context.Context, spec *board.Spec, samples int) (Target, error) {
	if err := spec.Validate(); err != nil {
		return Target{}, err
	}
	start := time.Now()
	t, err := calibrate(ctx, spec, rand.New(rand.NewSource(g.nextSeed())), g.cfg, samples)
	if err != nil {
		return Target{}, err
	}
	g.SetTarget(spec.Shape, t)
	slog.Debug("shape calibrated",
		"shape", spec.Shape,
		"greedy", t.Greedy,
		"fair", t.Fair,
		"samples", samples,
		"elapsed", time.Since(start),
	)
	return t, nil
}

func (g *Generator) target(ctx context.Context, spec *board.Spec, numberDistribution float64) (float64, error) {
	if numberDistribution <= 0 || numberDistribution >= 1 {
		return Target{}.For(numberDistribution), nil
	}
	t, ok := g.Target(spec.Shape)
	if !ok {
		var err error
		t, err = g.Calibrate(ctx, spec, g.cfg.CalibrationSamples)
		if err != nil {
			return 0, err
		}
	}
	return t.For(numberDistribution), nil
}

// Generate builds candidates for spec until both the attempt and time
// floors are met and returns the one whose quality is closest to the
// target. If ctx ends after at least one candidate succeeded, the best so
// far is returned.
func (g *Generator) Generate(ctx context.Context, spec *board.Spec, opts Options) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	opts = opts.normalized()

	target, err := g.target(ctx, spec, opts.NumberDistribution)
	if err != nil {
		return nil, fmt.Errorf("target for %s: %w", spec.Shape, err)
	}

	seed := g.nextSeed()
	b := board.New(spec)
	c := newCandidate(b, rand.New(rand.NewSource(seed)), opts, g.cfg.BestSpotWeight)

	minTime := g.cfg.MinTime
	if opts.ColdStart {
		minTime = g.cfg.ColdStartMinTime
	}

	res := &Result{Options: opts, Target: target, Seed: seed}
	var best *board.Assignment
	bestDist := math.Inf(1)
	consecutive := 0
	start := time.Now()

	for res.Attempts < g.cfg.MinAttempts || time.Since(start) < minTime {
		if err := ctx.Err(); err != nil {
			if best != nil {
				break
			}
			return nil, err
		}

		q, err := c.build()
		if err != nil {
			res.Failures++
			consecutive++
			if consecutive >= g.cfg.MaxFailures {
				if best != nil {
					break
				}
				return nil, fmt.Errorf("%s after %d attempts: %w", spec.Shape, res.Failures, ErrNoFeasibleBoard)
			}
			continue
		}
		consecutive = 0
		res.Attempts++

		if d := distance(q, target); best == nil || d < bestDist {
			best = b.Snapshot()
			bestDist = d
			res.Quality = q
		}
	}

	b.Restore(best)
	res.Board = b
	res.Elapsed = time.Since(start)
	slog.Debug("board search finished",
		"shape", spec.Shape,
		"attempts", res.Attempts,
		"failures", res.Failures,
		"quality", res.Quality,
		"target", target,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/talgya/hexboard/internal/board"
)

// Target holds the mean quality a shape reaches when every number is placed
// greedily and when every number is placed fairly.
type Target struct {
	Greedy float64 `json:"greedy"`
	Fair   float64 `json:"fair"`
}

// For returns the quality to aim at for a number distribution. Fully fair
// aims at zero variance, fully greedy at unbounded quality.
func (t Target) For(numberDistribution float64) float64 {
	switch {
	case numberDistribution >= 1:
		return 0
	case numberDistribution <= 0:
		return math.Inf(1)
	}
	return t.Greedy + (t.Fair-t.Greedy)*numberDistribution
}

// distance is how far quality q is from target t. An infinite target
// rewards the highest quality.
func distance(q, t float64) float64 {
	if math.IsInf(t, 1) {
		return -q
	}
	return math.Abs(q - t)
}

// calibrate measures t for spec by building samples candidates at each
// extreme of the number distribution.
func calibrate(ctx context.Context, spec *board.Spec, rng *rand.Rand, cfg Config, samples int) (Target, error) {
	if samples <= 0 {
		return Target{}, nil
	}
	mean := func(numberDistribution float64) (float64, error) {
		opts := Options{
			DesertPlacement:      DesertRandom,
			ResourceDistribution: 1,
			NumberDistribution:   numberDistribution,
			AllowResourceOnPort:  true,
		}
		c := newCandidate(board.New(spec), rng, opts, cfg.BestSpotWeight)
		var sum float64
		failures := 0
		for n := 0; n < samples; {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			q, err := c.build()
			if err != nil {
				failures++
				if failures >= cfg.MaxFailures {
					return 0, fmt.Errorf("calibrate %s: %w", spec.Shape, ErrNoFeasibleBoard)
				}
				continue
			}
			failures = 0
			sum += q
			n++
		}
		return sum / float64(samples), nil
	}

	greedy, err := mean(0)
	if err != nil {
		return Target{}, err
	}
	fair, err := mean(1)
	if err != nil {
		return Target{}, err
	}
	return Target{Greedy: greedy, Fair: fair}, nil
}

package engine

import (
	"fmt"
	"strings"
	"time"
)

// DesertPlacement selects where deserts go before the other resources.
type DesertPlacement string

const (
	// DesertRandom leaves deserts in the pool with everything else.
	DesertRandom DesertPlacement = "random"
	// DesertCenter uses the spec's center hexes, then inland hexes.
	DesertCenter DesertPlacement = "center"
	// DesertOffCenter uses inland hexes that are not center hexes.
	DesertOffCenter DesertPlacement = "off-center"
	// DesertInland is DesertOffCenter for shapes without a center.
	DesertInland DesertPlacement = "inland"
	// DesertCoast uses coastal hexes that touch at most one kind of port.
	DesertCoast DesertPlacement = "coast"
)

// DesertPlacements lists every policy in menu order.
var DesertPlacements = []DesertPlacement{
	DesertRandom,
	DesertCenter,
	DesertOffCenter,
	DesertInland,
	DesertCoast,
}

// ParseDesertPlacement accepts a policy name, ignoring case. The empty
// string means DesertRandom.
func ParseDesertPlacement(s string) (DesertPlacement, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DesertRandom, nil
	}
	for _, p := range DesertPlacements {
		if string(p) == s || strings.ReplaceAll(string(p), "-", "") == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown desert placement %q", s)
}

// GameStyle selects the rules boards are scored for.
type GameStyle string

const (
	StyleStandard         GameStyle = "standard"
	StyleCitiesAndKnights GameStyle = "cities-and-knights"
)

// GameStyles lists every style in menu order.
var GameStyles = []GameStyle{StyleStandard, StyleCitiesAndKnights}

// ParseGameStyle accepts a style name, ignoring case and dashes, or "ck".
// The empty string means StyleStandard.
func ParseGameStyle(s string) (GameStyle, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return StyleStandard, nil
	case "ck", "c&k":
		return StyleCitiesAndKnights, nil
	}
	for _, g := range GameStyles {
		if string(g) == s || strings.ReplaceAll(string(g), "-", "") == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown game style %q", s)
}

// ResourceStrategy is how a single hex draws its resource.
type ResourceStrategy uint8

const (
	// Even avoids every resource already on a neighbor.
	Even ResourceStrategy = iota
	// Clumped takes a neighbor's resource when the pool still has one.
	Clumped
)

func (s ResourceStrategy) String() string {
	if s == Clumped {
		return "clumped"
	}
	return "even"
}

// NumberStrategy is how a single roll number picks its hex.
type NumberStrategy uint8

const (
	// Fair puts the number on one of the lowest-scoring hexes.
	Fair NumberStrategy = iota
	// Greedy puts the number on one of the highest-scoring hexes.
	Greedy
)

func (s NumberStrategy) String() string {
	if s == Greedy {
		return "greedy"
	}
	return "fair"
}

// Options are the per-board choices a player makes.
type Options struct {
	GameStyle       GameStyle       `json:"game_style"`
	DesertPlacement DesertPlacement `json:"desert_placement"`
	// ResourceDistribution is the fraction of hexes drawn Even; the rest
	// are drawn Clumped.
	ResourceDistribution float64 `json:"resource_distribution"`
	// NumberDistribution is the fraction of roll numbers placed Fair; the
	// rest are placed Greedy. It also sets the quality target.
	NumberDistribution  float64 `json:"number_distribution"`
	ShufflePorts        bool    `json:"shuffle_ports"`
	AllowResourceOnPort bool    `json:"allow_resource_on_port"`

	// ColdStart uses Config.ColdStartMinTime as the time floor, for the
	// first board a process generates.
	ColdStart bool `json:"-"`
}

// DefaultOptions returns the most balanced settings.
func DefaultOptions() Options {
	return Options{
		GameStyle:            StyleStandard,
		DesertPlacement:      DesertRandom,
		ResourceDistribution: 1,
		NumberDistribution:   1,
	}
}

func (o Options) normalized() Options {
	if o.GameStyle == "" {
		o.GameStyle = StyleStandard
	}
	if o.DesertPlacement == "" {
		o.DesertPlacement = DesertRandom
	}
	o.ResourceDistribution = clamp01(o.ResourceDistribution)
	o.NumberDistribution = clamp01(o.NumberDistribution)
	return o
}

// Config tunes the search. It is usually loaded from the tuning file.
type Config struct {
	// MinAttempts is the least number of successful candidates to score.
	MinAttempts int
	// MinTime is how long to keep searching once MinAttempts is reached.
	MinTime time.Duration
	// ColdStartMinTime replaces MinTime when Options.ColdStart is set.
	ColdStartMinTime time.Duration
	// MaxFailures is the number of consecutive failed candidates after
	// which Generate gives up with ErrNoFeasibleBoard.
	MaxFailures int
	// BestSpotWeight scales the best corner's score into quality.
	BestSpotWeight float64
	// CalibrationSamples is the number of candidates per extreme measured
	// when a shape has no target yet. Zero disables calibration.
	CalibrationSamples int
	// Seed fixes the generator's randomness. Zero seeds from crypto/rand.
	Seed int64
}

// DefaultConfig returns the settings the server runs with.
func DefaultConfig() Config {
	return Config{
		MinAttempts:        50,
		MinTime:            100 * time.Millisecond,
		ColdStartMinTime:   300 * time.Millisecond,
		MaxFailures:        10000,
		BestSpotWeight:     0.1,
		CalibrationSamples: 200,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.MinAttempts < 1 {
		c.MinAttempts = 1
	}
	if c.MaxFailures < 1 {
		c.MaxFailures = d.MaxFailures
	}
	if c.MinTime < 0 {
		c.MinTime = 0
	}
	if c.ColdStartMinTime < c.MinTime {
		c.ColdStartMinTime = c.MinTime
	}
	return c
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

package engine

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/shapes"
)

func testConfig(seed int64) Config {
	return Config{
		MinAttempts: 3,
		MaxFailures: 10000,
		Seed:        seed,
	}
}

func generate(t *testing.T, g *Generator, spec *board.Spec, opts Options) *board.Board {
	t.Helper()
	res, err := g.Generate(context.Background(), spec, opts)
	if err != nil {
		t.Fatalf("generate %s: %v", spec.Shape, err)
	}
	if res.Attempts < 3 {
		t.Fatalf("generate %s: only %d attempts", spec.Shape, res.Attempts)
	}
	return res.Board
}

func checkConservation(t *testing.T, b *board.Board) {
	t.Helper()
	want := make(map[board.ResourceType]int)
	for _, r := range b.Spec.Resources() {
		want[r]++
	}
	got := make(map[board.ResourceType]int)
	for _, h := range b.MutableHexes() {
		if h.Resource == board.ResourceNone {
			t.Fatalf("%s: hex %v left empty", b.Shape(), h.Coord)
		}
		got[h.Resource]++
	}
	for r, n := range want {
		if got[r] != n {
			t.Fatalf("%s: %s count %d want %d", b.Shape(), r, got[r], n)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("%s: resources %v want %v", b.Shape(), got, want)
	}
}

func checkRolls(t *testing.T, b *board.Board) {
	t.Helper()
	want := make(map[int]int)
	for _, n := range b.Spec.RollNumbers() {
		want[n]++
	}
	numbered := 0
	for _, h := range b.Hexes() {
		if h.RollNumber == 0 {
			if h.Resource.HasNumber() {
				t.Fatalf("%s: %s hex %v has no number", b.Shape(), h.Resource, h.Coord)
			}
			continue
		}
		if !h.Resource.HasNumber() {
			t.Fatalf("%s: %s hex %v got number %d", b.Shape(), h.Resource, h.Coord, h.RollNumber)
		}
		want[h.RollNumber]--
		numbered++
	}
	if numbered != len(b.Spec.RollNumbers()) {
		t.Fatalf("%s: %d numbered hexes want %d", b.Shape(), numbered, len(b.Spec.RollNumbers()))
	}
	for n, left := range want {
		if left != 0 {
			t.Fatalf("%s: roll %d used %d times too few", b.Shape(), n, left)
		}
	}
}

func TestGenerate_AllShapes(t *testing.T) {
	g := New(testConfig(1))
	policies := []Options{
		DefaultOptions(),
		{DesertPlacement: DesertCenter, ResourceDistribution: 0.5, NumberDistribution: 0, ShufflePorts: true},
		{DesertPlacement: DesertInland, ResourceDistribution: 0, NumberDistribution: 1, AllowResourceOnPort: true},
		{DesertPlacement: DesertCoast, ResourceDistribution: 1, NumberDistribution: 0},
	}
	for _, spec := range shapes.All() {
		for _, opts := range policies {
			b := generate(t, g, spec, opts)
			checkConservation(t, b)
			checkRolls(t, b)
			for _, c := range b.Corners() {
				if n := len(c.Hexes()); n < 1 || n > 3 {
					t.Fatalf("%s: corner %v touches %d hexes", spec.Shape, c.Coord, n)
				}
				if c.IsCoastal() != b.IsPerimeter(c.Coord) {
					t.Fatalf("%s: corner %v coastal mismatch", spec.Shape, c.Coord)
				}
			}
		}
	}
}

func TestGenerate_EvenHasNoEqualNeighbors(t *testing.T) {
	g := New(testConfig(2))
	opts := Options{DesertPlacement: DesertRandom, ResourceDistribution: 1, NumberDistribution: 1}
	for _, spec := range shapes.All() {
		for i := 0; i < 5; i++ {
			b := generate(t, g, spec, opts)
			for _, h := range b.MutableHexes() {
				for _, n := range h.Neighbors() {
					if !n.Immutable && n.Resource == h.Resource {
						t.Fatalf("%s: %v and %v both hold %s", spec.Shape, h.Coord, n.Coord, h.Resource)
					}
				}
			}
		}
	}
}

func TestGenerate_TypedPortHexes(t *testing.T) {
	g := New(testConfig(3))
	spec := shapes.MustGet(shapes.Standard)
	for i := 0; i < 10; i++ {
		b := generate(t, g, spec, Options{DesertPlacement: DesertRandom, ResourceDistribution: 0.5, NumberDistribution: 1})
		for _, h := range b.Hexes() {
			typed := h.TypedPortResources()
			if len(typed) == 0 {
				continue
			}
			if h.Resource == board.ResourceDesert {
				t.Fatalf("desert on typed-port hex %v", h.Coord)
			}
			for _, r := range typed {
				if h.Resource == r {
					t.Fatalf("hex %v holds its own port resource %s", h.Coord, r)
				}
			}
		}
	}
}

func TestGenerate_DesertPlacement(t *testing.T) {
	g := New(testConfig(4))

	std := shapes.MustGet(shapes.Standard)
	b := generate(t, g, std, Options{DesertPlacement: DesertCenter, ResourceDistribution: 1, NumberDistribution: 1})
	if r := b.Hex(board.Coord{X: 4, Y: 2}).Resource; r != board.ResourceDesert {
		t.Fatalf("center hex holds %s", r)
	}

	for i := 0; i < 5; i++ {
		b = generate(t, g, std, Options{DesertPlacement: DesertCoast, ResourceDistribution: 1, NumberDistribution: 1})
		for _, h := range b.Hexes() {
			if h.Resource == board.ResourceDesert && !h.IsCoastal() {
				t.Fatalf("coast desert placed inland at %v", h.Coord)
			}
		}
	}

	e6 := shapes.MustGet(shapes.Expansion6)
	for i := 0; i < 5; i++ {
		b = generate(t, g, e6, Options{DesertPlacement: DesertOffCenter, ResourceDistribution: 1, NumberDistribution: 1})
		for _, h := range b.Hexes() {
			if h.Resource != board.ResourceDesert {
				continue
			}
			if h.IsCoastal() || e6.IsCenter(h.Coord) {
				t.Fatalf("off-center desert at %v", h.Coord)
			}
		}
	}
}

func TestGenerate_IslandRules(t *testing.T) {
	g := New(testConfig(5))
	spec := shapes.MustGet(shapes.Seafarers1)
	for i := 0; i < 5; i++ {
		b := generate(t, g, spec, DefaultOptions())
		for _, h := range b.MutableHexes() {
			if !spec.IsResourceAllowed(h.Coord, h.Resource) {
				t.Fatalf("%s not allowed at %v", h.Resource, h.Coord)
			}
		}
	}
}

func ringSpec() *board.Spec {
	return &board.Spec{
		Shape:      "ring",
		Dimensions: board.Dimensions{Width: 3, Height: 3},
		ResourceCounts: []board.ResourceCount{
			{Resource: board.ResourceBrick, Count: 3},
			{Resource: board.ResourceWood, Count: 3},
		},
		Rolls: []int{2, 4, 5, 6, 8, 10},
		Layout: board.FixedLayout(
			board.Coord{X: 1, Y: 0}, board.Coord{X: 3, Y: 0},
			board.Coord{X: 0, Y: 1}, board.Coord{X: 4, Y: 1},
			board.Coord{X: 1, Y: 2}, board.Coord{X: 3, Y: 2},
		),
		HasDefaultPortResources: true,
	}
}

func TestGenerate_RingEven(t *testing.T) {
	g := New(testConfig(6))
	spec := ringSpec()
	for i := 0; i < 20; i++ {
		b := generate(t, g, spec, Options{ResourceDistribution: 1, NumberDistribution: 1})
		for _, h := range b.Hexes() {
			if len(h.Neighbors()) != 2 {
				t.Fatalf("ring hex %v has %d neighbors", h.Coord, len(h.Neighbors()))
			}
			for _, n := range h.Neighbors() {
				if n.Resource == h.Resource {
					t.Fatalf("even ring has %s next to %s at %v", h.Resource, n.Resource, h.Coord)
				}
			}
		}
	}
}

func TestGenerate_RingClumped(t *testing.T) {
	g := New(testConfig(7))
	spec := ringSpec()
	for i := 0; i < 20; i++ {
		b := generate(t, g, spec, Options{ResourceDistribution: 0, NumberDistribution: 1})
		for _, r := range []board.ResourceType{board.ResourceBrick, board.ResourceWood} {
			if n := components(b, r); n != 1 {
				t.Fatalf("clumped ring: %s forms %d blocks", r, n)
			}
			if !hasSamePair(b, r) {
				t.Fatalf("clumped ring: no %s pair", r)
			}
		}
	}
}

// components counts the connected groups of hexes holding r.
func components(b *board.Board, r board.ResourceType) int {
	seen := make(map[*board.Hex]bool)
	n := 0
	for _, h := range b.Hexes() {
		if h.Resource != r || seen[h] {
			continue
		}
		n++
		stack := []*board.Hex{h}
		seen[h] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range cur.Neighbors() {
				if nb.Resource == r && !seen[nb] {
					seen[nb] = true
					stack = append(stack, nb)
				}
			}
		}
	}
	return n
}

func hasSamePair(b *board.Board, r board.ResourceType) bool {
	for _, h := range b.Hexes() {
		if h.Resource != r {
			continue
		}
		for _, n := range h.Neighbors() {
			if n.Resource == r {
				return true
			}
		}
	}
	return false
}

func TestGenerate_Infeasible(t *testing.T) {
	spec := &board.Spec{
		Shape:      "pair",
		Dimensions: board.Dimensions{Width: 2, Height: 1},
		ResourceCounts: []board.ResourceCount{
			{Resource: board.ResourceBrick, Count: 2},
		},
		Rolls:                   []int{6, 8},
		Layout:                  board.FixedLayout(board.Coord{X: 0, Y: 0}, board.Coord{X: 2, Y: 0}),
		HasDefaultPortResources: true,
	}
	g := New(Config{MinAttempts: 1, MaxFailures: 50, Seed: 8})
	_, err := g.Generate(context.Background(), spec, Options{ResourceDistribution: 1, NumberDistribution: 1})
	if !errors.Is(err, ErrNoFeasibleBoard) {
		t.Fatalf("expected ErrNoFeasibleBoard, got %v", err)
	}

	// Clumped draws never fail on the same spec.
	if _, err := g.Generate(context.Background(), spec, Options{ResourceDistribution: 0, NumberDistribution: 1}); err != nil {
		t.Fatalf("clumped pair: %v", err)
	}
}

func TestGenerate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := New(testConfig(9))
	_, err := g.Generate(ctx, shapes.MustGet(shapes.Standard), DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerate_SeedIsDeterministic(t *testing.T) {
	spec := shapes.MustGet(shapes.Expansion6)
	opts := Options{DesertPlacement: DesertInland, ResourceDistribution: 0.5, NumberDistribution: 0, ShufflePorts: true}
	a := generate(t, New(testConfig(42)), spec, opts)
	b := generate(t, New(testConfig(42)), spec, opts)
	for i, h := range a.Hexes() {
		o := b.Hexes()[i]
		if h.Resource != o.Resource || h.RollNumber != o.RollNumber {
			t.Fatalf("hex %v differs: %s/%d vs %s/%d", h.Coord, h.Resource, h.RollNumber, o.Resource, o.RollNumber)
		}
	}
	for i, p := range a.Ports() {
		if p.Resource != b.Ports()[i].Resource {
			t.Fatalf("port %d differs", i)
		}
	}
}

func TestGenerate_QualityMatchesEvaluate(t *testing.T) {
	cfg := testConfig(10)
	cfg.BestSpotWeight = 0.1
	g := New(cfg)
	for _, style := range GameStyles {
		opts := Options{GameStyle: style, ResourceDistribution: 1, NumberDistribution: 1, AllowResourceOnPort: true}
		res, err := g.Generate(context.Background(), shapes.MustGet(shapes.Standard), opts)
		if err != nil {
			t.Fatalf("generate %s: %v", style, err)
		}
		if got := Evaluate(res.Board, opts, cfg.BestSpotWeight); got != res.Quality {
			t.Fatalf("%s: Evaluate = %v, search recorded %v", style, got, res.Quality)
		}
		if res.Target != 0 {
			t.Fatalf("%s: fully fair target: %v", style, res.Target)
		}
		if res.Options.GameStyle != style {
			t.Fatalf("result options style %q want %q", res.Options.GameStyle, style)
		}
	}
}

func TestCalibrate(t *testing.T) {
	cfg := testConfig(11)
	cfg.CalibrationSamples = 20
	g := New(cfg)
	spec := shapes.MustGet(shapes.Standard)

	if _, ok := g.Target(spec.Shape); ok {
		t.Fatalf("target cached before calibration")
	}
	res, err := g.Generate(context.Background(), spec, Options{ResourceDistribution: 1, NumberDistribution: 0.5})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	target, ok := g.Target(spec.Shape)
	if !ok {
		t.Fatalf("generate did not calibrate")
	}
	if target.Greedy <= target.Fair {
		t.Fatalf("greedy mean %v should exceed fair mean %v", target.Greedy, target.Fair)
	}
	if want := target.For(0.5); res.Target != want {
		t.Fatalf("target: got %v want %v", res.Target, want)
	}
}

func TestTargetFor(t *testing.T) {
	tg := Target{Greedy: 40, Fair: 20}
	if got := tg.For(1); got != 0 {
		t.Fatalf("For(1) = %v", got)
	}
	if got := tg.For(0); !math.IsInf(got, 1) {
		t.Fatalf("For(0) = %v", got)
	}
	if got := tg.For(0.25); got != 35 {
		t.Fatalf("For(0.25) = %v", got)
	}
	if distance(10, math.Inf(1)) >= distance(5, math.Inf(1)) {
		t.Fatalf("infinite target should prefer higher quality")
	}
	if distance(7, 5) != 2 || distance(3, 5) != 2 {
		t.Fatalf("distance is not symmetric")
	}
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	for _, spec := range shapes.All() {
		for i := 0; i < 50; i++ {
			b := Random(spec, rng)
			checkConservation(t, b)
			checkRolls(t, b)
			for _, h := range b.MutableHexes() {
				if !spec.IsResourceAllowed(h.Coord, h.Resource) {
					t.Fatalf("%s: %s placed at %v", spec.Shape, h.Resource, h.Coord)
				}
			}
		}
	}
}

func TestGenerate_TimeFloors(t *testing.T) {
	cfg := Config{
		MinAttempts:      1,
		MinTime:          30 * time.Millisecond,
		ColdStartMinTime: 80 * time.Millisecond,
		MaxFailures:      10000,
		Seed:             14,
	}
	g := New(cfg)
	spec := shapes.MustGet(shapes.Standard)

	tests := []struct {
		coldStart bool
		floor     time.Duration
	}{
		{false, cfg.MinTime},
		{true, cfg.ColdStartMinTime},
	}
	for _, tt := range tests {
		opts := DefaultOptions()
		opts.ColdStart = tt.coldStart
		res, err := g.Generate(context.Background(), spec, opts)
		if err != nil {
			t.Fatalf("cold start %v: %v", tt.coldStart, err)
		}
		if res.Elapsed < tt.floor {
			t.Fatalf("cold start %v: searched %v, floor %v", tt.coldStart, res.Elapsed, tt.floor)
		}
		if res.Attempts < 2 {
			t.Fatalf("cold start %v: only %d attempts in %v", tt.coldStart, res.Attempts, res.Elapsed)
		}
	}
}

package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/entropy"
)

// errPlacement marks a candidate that painted itself into a corner. The
// search discards it and starts over on a reset board.
var errPlacement = errors.New("placement failed")

// placeable are the resources a hex can draw from the pool.
var placeable = []board.ResourceType{
	board.ResourceBrick,
	board.ResourceDesert,
	board.ResourceOre,
	board.ResourceSheep,
	board.ResourceWood,
	board.ResourceWheat,
	board.ResourceGold,
}

// candidate fills one board over and over. It owns the board and its rng.
type candidate struct {
	board  *board.Board
	spec   *board.Spec
	rng    *rand.Rand
	opts   Options
	scorer scorer

	resources  *entropy.Queue[board.ResourceType]
	strategies *entropy.Queue[ResourceStrategy]
}

func newCandidate(b *board.Board, rng *rand.Rand, opts Options, bestSpotWeight float64) *candidate {
	return &candidate{
		board:  b,
		spec:   b.Spec,
		rng:    rng,
		opts:   opts,
		scorer: newScorer(b.Spec, opts, bestSpotWeight),
	}
}

// build resets the board, fills it and returns its quality.
func (c *candidate) build() (float64, error) {
	c.board.Reset()
	if c.opts.ShufflePorts || !c.spec.HasDefaultPortResources {
		c.shufflePorts()
	}

	c.resources = entropy.NewQueueRand(c.rng, c.spec.Resources()...)
	c.strategies = weightedQueue(c.rng, len(c.board.MutableHexes()), c.opts.ResourceDistribution, Even, Clumped)

	c.placeDeserts()
	if err := c.placeResources(); err != nil {
		return 0, err
	}
	if err := c.placeNumbers(); err != nil {
		return 0, err
	}
	return c.scorer.quality(c.board), nil
}

// weightedQueue holds round(frac*n) of first and the rest of second.
func weightedQueue[T comparable](rng *rand.Rand, n int, frac float64, first, second T) *entropy.Queue[T] {
	k := int(math.Round(frac * float64(n)))
	q := entropy.NewQueueRand[T](rng)
	for i := 0; i < n; i++ {
		if i < k {
			q.Push(first)
		} else {
			q.Push(second)
		}
	}
	return q
}

func (c *candidate) shufflePorts() {
	ports := c.board.Ports()
	c.rng.Shuffle(len(ports), func(i, j int) {
		ports[i].Resource, ports[j].Resource = ports[j].Resource, ports[i].Resource
	})
}

// pick returns a random hex from hexes.
func (c *candidate) pick(hexes []*board.Hex) (*board.Hex, bool) {
	return entropy.NewQueueRand(c.rng, hexes...).Pop()
}

// placeDeserts moves deserts out of the pool onto hexes chosen by the
// desert policy. Deserts that find no hex stay in the pool.
func (c *candidate) placeDeserts() {
	policy := c.opts.DesertPlacement
	if c.spec.AllCoastalHexes {
		policy = DesertRandom
	}
	if policy == DesertCenter && len(c.spec.CenterCoords) == 0 {
		policy = DesertInland
	}

	var pools [][]*board.Hex
	switch policy {
	case DesertCenter:
		pools = append(pools, c.desertHexes(func(h *board.Hex) bool {
			return c.spec.IsCenter(h.Coord)
		}))
		fallthrough
	case DesertOffCenter, DesertInland:
		pools = append(pools, c.desertHexes(func(h *board.Hex) bool {
			return !h.IsCoastal() && !c.spec.IsCenter(h.Coord)
		}))
	case DesertCoast:
		pools = append(pools, c.desertHexes(func(h *board.Hex) bool {
			return h.IsCoastal() && len(h.PortResources()) < 2
		}))
	default:
		return
	}

	for _, pool := range pools {
		hexes := entropy.NewQueueRand(c.rng, pool...)
		for c.resources.Contains(board.ResourceDesert) {
			hex, ok := hexes.Pop()
			if !ok {
				break
			}
			hex.Resource = board.ResourceDesert
			c.resources.Remove(board.ResourceDesert)
		}
	}
}

func (c *candidate) desertHexes(keep func(*board.Hex) bool) []*board.Hex {
	var out []*board.Hex
	for _, h := range c.board.MutableHexes() {
		if h.Resource == board.ResourceNone &&
			c.spec.IsResourceAllowed(h.Coord, board.ResourceDesert) &&
			keep(h) {
			out = append(out, h)
		}
	}
	return out
}

// placeResources fills typed-port hexes first, so they never get a desert
// or their own port's resource, then every other unset hex in board order.
func (c *candidate) placeResources() error {
	for _, hex := range c.board.MutableHexes() {
		if hex.Resource != board.ResourceNone || len(hex.TypedPortResources()) == 0 {
			continue
		}
		if err := c.placeResource(hex, true); err != nil {
			return err
		}
	}
	for _, hex := range c.board.MutableHexes() {
		if hex.Resource != board.ResourceNone {
			continue
		}
		if err := c.placeResource(hex, false); err != nil {
			return err
		}
	}
	return nil
}

func (c *candidate) placeResource(hex *board.Hex, typedPort bool) error {
	strategy, ok := c.strategies.Pop()
	if !ok {
		strategy = Even
	}
	excluded := c.excluded(hex, typedPort)
	neighbors := hex.NeighborResources()

	if strategy == Clumped {
		var prefer []board.ResourceType
		for _, r := range neighbors {
			if !containsResource(excluded, r) {
				prefer = append(prefer, r)
			}
		}
		if r, ok := c.resources.PopOneOf(prefer...); ok {
			hex.Resource = r
			return nil
		}
	}

	r, ok := c.resources.PopExcluding(append(excluded, neighbors...)...)
	if !ok {
		return fmt.Errorf("%w: no %s resource for hex %v", errPlacement, strategy, hex.Coord)
	}
	hex.Resource = r
	return nil
}

// excluded lists the resources hex may never draw.
func (c *candidate) excluded(hex *board.Hex, typedPort bool) []board.ResourceType {
	var ex []board.ResourceType
	for _, r := range placeable {
		if !c.spec.IsResourceAllowed(hex.Coord, r) {
			ex = append(ex, r)
		}
	}
	if typedPort {
		ex = append(ex, board.ResourceDesert)
		if !c.opts.AllowResourceOnPort {
			ex = append(ex, hex.TypedPortResources()...)
		}
	}
	return ex
}

// placeNumbers hands out roll numbers best first: one to an inland hex, one
// to each resource that has none yet, then the rest by score.
func (c *candidate) placeNumbers() error {
	rolls := c.spec.RollNumbers()
	sort.SliceStable(rolls, func(i, j int) bool {
		return board.PipWeight(rolls[i]) < board.PipWeight(rolls[j])
	})

	var open []*board.Hex
	for _, h := range c.board.Hexes() {
		if h.Resource.HasNumber() && h.RollNumber == 0 {
			open = append(open, h)
		}
	}
	if len(open) != len(rolls) {
		return fmt.Errorf("%w: %d numbered hexes for %d roll numbers", errPlacement, len(open), len(rolls))
	}

	assign := func(h *board.Hex) {
		h.RollNumber = rolls[len(rolls)-1]
		rolls = rolls[:len(rolls)-1]
	}
	unnumbered := func(keep func(*board.Hex) bool) []*board.Hex {
		var out []*board.Hex
		for _, h := range open {
			if h.RollNumber == 0 && keep(h) {
				out = append(out, h)
			}
		}
		return out
	}

	if inland := unnumbered(func(h *board.Hex) bool { return !h.IsCoastal() }); len(inland) > 0 {
		h, _ := c.pick(inland)
		assign(h)
	}

	var present []board.ResourceType
	for _, r := range board.NumberedResources {
		for _, h := range open {
			if h.Resource == r {
				present = append(present, r)
				break
			}
		}
	}
	if len(present) > 1 {
		for _, r := range present {
			if len(rolls) == 0 || c.represented(open, r) {
				continue
			}
			eligible := unnumbered(func(h *board.Hex) bool {
				return h.Resource == r && !h.HasNumberedNeighbor(r)
			})
			h, ok := c.pick(eligible)
			if !ok {
				return fmt.Errorf("%w: no hex for a good %s number", errPlacement, r)
			}
			assign(h)
		}
	}

	strategies := weightedQueue(c.rng, len(rolls), c.opts.NumberDistribution, Fair, Greedy)
	for len(rolls) > 0 {
		c.scorer.score(c.board)
		strategy, ok := strategies.Pop()
		if !ok {
			strategy = Fair
		}
		h, ok := c.pick(extremes(unnumbered(func(*board.Hex) bool { return true }), strategy))
		if !ok {
			return fmt.Errorf("%w: no hex left for roll %d", errPlacement, rolls[len(rolls)-1])
		}
		assign(h)
	}
	return nil
}

func (c *candidate) represented(open []*board.Hex, r board.ResourceType) bool {
	for _, h := range open {
		if h.Resource == r && h.RollNumber != 0 {
			return true
		}
	}
	return false
}

// extremes returns the lowest-scoring hexes for Fair and the
// highest-scoring for Greedy.
func extremes(hexes []*board.Hex, strategy NumberStrategy) []*board.Hex {
	var out []*board.Hex
	var bound float64
	for _, h := range hexes {
		better := len(out) == 0 ||
			(strategy == Fair && h.Score < bound) ||
			(strategy == Greedy && h.Score > bound)
		switch {
		case better:
			bound = h.Score
			out = append(out[:0], h)
		case h.Score == bound:
			out = append(out, h)
		}
	}
	return out
}

func containsResource(list []board.ResourceType, r board.ResourceType) bool {
	for _, v := range list {
		if v == r {
			return true
		}
	}
	return false
}

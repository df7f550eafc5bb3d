package engine

import (
	"math/rand"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/entropy"
)

// maxRandomFills bounds the restarts Random makes when a hex is left with
// only resources it may not hold.
const maxRandomFills = 1000

// Random fills a board with plain queue pops and no balancing at all. It
// still keeps resources where the spec allows them, so the result is a
// legal board to compare balanced boards against.
func Random(spec *board.Spec, rng *rand.Rand) *board.Board {
	b := board.New(spec)

	// Hexes with island rules draw first so the free hexes take what is left.
	var constrained, free []*board.Hex
	banned := make(map[*board.Hex][]board.ResourceType)
	for _, h := range b.MutableHexes() {
		for _, r := range placeable {
			if !spec.IsResourceAllowed(h.Coord, r) {
				banned[h] = append(banned[h], r)
			}
		}
		if len(banned[h]) > 0 {
			constrained = append(constrained, h)
		} else {
			free = append(free, h)
		}
	}
	order := append(constrained, free...)

	for i := 0; ; i++ {
		if fillRandom(spec, rng, order, banned) || i == maxRandomFills {
			break
		}
		b.Reset()
	}

	rolls := entropy.NewQueueRand(rng, spec.RollNumbers()...)
	for _, h := range b.Hexes() {
		if !h.Resource.HasNumber() {
			continue
		}
		if n, ok := rolls.Pop(); ok {
			h.RollNumber = n
		}
	}
	newScorer(spec, Options{}, 0).score(b)
	return b
}

// fillRandom draws a resource for every hex in order and reports whether
// each one got an allowed resource.
func fillRandom(spec *board.Spec, rng *rand.Rand, order []*board.Hex, banned map[*board.Hex][]board.ResourceType) bool {
	resources := entropy.NewQueueRand(rng, spec.Resources()...)
	for _, h := range order {
		r, ok := resources.PopExcluding(banned[h]...)
		if !ok {
			// Keep the board full even when no legal fill turned up.
			r, _ = resources.PopAvoiding(banned[h]...)
			h.Resource = r
			for _, rest := range order {
				if rest.Resource == board.ResourceNone {
					rest.Resource, _ = resources.Pop()
				}
			}
			return false
		}
		h.Resource = r
	}
	return true
}

package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/talgya/hexboard/internal/board"
)

// hexScoreExponent amplifies strong corners when they are summed into a
// hex score.
const hexScoreExponent = 1.5

const portBonus = 2.0

type combo struct {
	name       string
	multiplier float64
	resources  []board.ResourceType
	// standardOnly combos are not scored under Cities & Knights, which has
	// no development cards.
	standardOnly bool
}

var combos = []combo{
	{"City", 3, []board.ResourceType{board.ResourceWheat, board.ResourceOre}, false},
	{"Road", 2.5, []board.ResourceType{board.ResourceBrick, board.ResourceWood}, false},
	{"Development card", 1, []board.ResourceType{board.ResourceSheep, board.ResourceOre, board.ResourceWheat}, true},
}

// resourceValue weighs how useful a resource is under style. Ore builds
// cities, gold is any resource. Cities & Knights commodities lift every
// resource but sheep.
func resourceValue(style GameStyle, r board.ResourceType) float64 {
	if !r.HasNumber() {
		return 0
	}
	switch {
	case r == board.ResourceGold:
		return 1.2
	case style == StyleCitiesAndKnights:
		switch r {
		case board.ResourceSheep:
			return 1
		case board.ResourceOre:
			return 1.2
		}
		return 1.1
	case r == board.ResourceOre:
		return 1.1
	}
	return 1
}

// scorer scores corners and hexes of one board shape.
type scorer struct {
	style               GameStyle
	allowResourceOnPort bool
	bestSpotWeight      float64

	// Average hex value and pips for the shape, used to pad corners that
	// touch fewer than three producing hexes.
	avgValue float64
	avgPips  float64
}

func newScorer(spec *board.Spec, opts Options, bestSpotWeight float64) scorer {
	s := scorer{
		style:               opts.GameStyle,
		allowResourceOnPort: opts.AllowResourceOnPort,
		bestSpotWeight:      bestSpotWeight,
	}
	var value float64
	var n int
	for _, r := range spec.Resources() {
		if r.HasNumber() {
			value += resourceValue(s.style, r)
			n++
		}
	}
	if n > 0 {
		s.avgValue = value / float64(n)
	}
	rolls := spec.RollNumbers()
	if len(rolls) > 0 {
		pips := 0
		for _, r := range rolls {
			pips += board.PipWeight(r)
		}
		s.avgPips = float64(pips) / float64(len(rolls))
	}
	return s
}

// cornerScore returns the plain score of c, its notes, and how many of its
// hexes produce resources.
func (s scorer) cornerScore(c *board.Corner) (float64, string, int) {
	var score float64
	var notes []string
	producing := 0
	pips := make(map[board.ResourceType]int, 3)
	for _, h := range c.Hexes() {
		p := board.PipWeight(h.RollNumber)
		score += resourceValue(s.style, h.Resource) * float64(p)
		if h.Resource.HasNumber() {
			producing++
			pips[h.Resource] += p
		}
	}

	if c.Port != nil {
		notes = append(notes, "Has port")
		score += portBonus
		if s.allowResourceOnPort && c.Port.Resource != board.ResourceAny {
			if p := pips[c.Port.Resource]; p > 0 {
				score += 0.5 * float64(p)
				notes = append(notes, fmt.Sprintf("Port resource: %.2f", 0.5*float64(p)))
			}
		}
	}

	for _, cb := range combos {
		if cb.standardOnly && s.style == StyleCitiesAndKnights {
			continue
		}
		sum, ok := 0, true
		for _, r := range cb.resources {
			p, has := pips[r]
			if !has {
				ok = false
				break
			}
			sum += p
		}
		if !ok {
			continue
		}
		addition := float64(sum) * 0.1 * cb.multiplier
		score += addition
		notes = append(notes, fmt.Sprintf("%s corner: %.2f", cb.name, addition))
	}
	return score, strings.Join(notes, "\n"), producing
}

// score runs a plain scoring pass: every corner gets its score and notes,
// every hex the sum of its corner scores raised to hexScoreExponent.
func (s scorer) score(b *board.Board) {
	for _, c := range b.Corners() {
		c.Score, c.Notes, _ = s.cornerScore(c)
	}
	for _, h := range b.Hexes() {
		var sum float64
		for _, c := range h.Corners() {
			sum += math.Pow(c.Score, hexScoreExponent)
		}
		h.Score = sum
	}
}

// quality scores b and returns the variance of its balance-aware corner
// scores plus the weighted best plain corner. Lower is fairer. Corners
// with no producing hex, such as open sea, are left out of the variance.
func (s scorer) quality(b *board.Board) float64 {
	s.score(b)

	var best float64
	balanced := make([]float64, 0, len(b.Corners()))
	for _, c := range b.Corners() {
		if c.Score > best {
			best = c.Score
		}
		_, _, producing := s.cornerScore(c)
		if producing == 0 {
			continue
		}
		padded := c.Score
		if producing < 3 {
			padded += float64(3-producing) * s.avgValue * s.avgPips
		}
		balanced = append(balanced, padded)
	}
	return variance(balanced) + s.bestSpotWeight*best
}

func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	var v float64
	for _, x := range xs {
		v += (x - mean) * (x - mean)
	}
	return v / float64(len(xs))
}

// Evaluate scores a finished board, such as one decoded from a token, the
// same way Generate scores its candidates.
func Evaluate(b *board.Board, opts Options, bestSpotWeight float64) float64 {
	return newScorer(b.Spec, opts, bestSpotWeight).quality(b)
}

package board

import (
	"errors"
	"fmt"
)

// ErrSpecMismatch is returned when a spec's declared resources, numbers or
// coordinates disagree with its own hex layout.
var ErrSpecMismatch = errors.New("board spec mismatch")

// Shape identifies a board spec, e.g. "standard".
type Shape string

// Dimensions are measured in hexes: Width is the widest row, Height the
// number of rows.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ResourceCount is one entry of a spec's resource multiset.
type ResourceCount struct {
	Resource ResourceType
	Count    int
}

// RequiredResource pins a resource to fixed hexes. Those hexes are immutable.
type RequiredResource struct {
	Resource ResourceType
	Coords   []Coord
}

// BeachConnection is a labelled anchor corner where two beach frame pieces meet.
type BeachConnection struct {
	Coord Coord
	Label int
}

// Spec describes one board shape. Specs are static configuration: build them
// once and share them.
type Spec struct {
	Shape      Shape
	Name       string
	Dimensions Dimensions

	// ResourceCounts covers the mutable hexes only.
	ResourceCounts []ResourceCount
	Rolls          []int

	// Layout returns every hex coordinate of the board, water included.
	Layout   func(Dimensions) []Coord
	Required []RequiredResource

	// Allowed restricts where a resource may be placed. Nil allows everything.
	Allowed func(c Coord, r ResourceType) bool

	CenterCoords     []Coord
	BeachConnections []BeachConnection
	DefaultPorts     []Port

	// HasDefaultPortResources is false for shapes whose ports are always shuffled.
	HasDefaultPortResources bool
	// AllCoastalHexes marks shapes with no land interior, where desert
	// placement policies have no meaning.
	AllCoastalHexes bool
}

// Resources returns a fresh copy of the resource multiset.
func (s *Spec) Resources() []ResourceType {
	var res []ResourceType
	for _, rc := range s.ResourceCounts {
		for i := 0; i < rc.Count; i++ {
			res = append(res, rc.Resource)
		}
	}
	return res
}

// RollNumbers returns a fresh copy of the roll number multiset.
func (s *Spec) RollNumbers() []int {
	return append([]int(nil), s.Rolls...)
}

// Ports returns a fresh copy of the default ports.
func (s *Spec) Ports() []Port {
	return append([]Port(nil), s.DefaultPorts...)
}

// Hexes returns the layout coordinates.
func (s *Spec) Hexes() []Coord {
	if s.Layout == nil {
		return nil
	}
	return s.Layout(s.Dimensions)
}

// IsResourceAllowed reports whether r may be placed on the hex at c.
func (s *Spec) IsResourceAllowed(c Coord, r ResourceType) bool {
	if s.Allowed == nil {
		return true
	}
	return s.Allowed(c, r)
}

// RequiredAt returns the fixed resource for c, if any.
func (s *Spec) RequiredAt(c Coord) (ResourceType, bool) {
	for _, req := range s.Required {
		for _, rc := range req.Coords {
			if rc == c {
				return req.Resource, true
			}
		}
	}
	return ResourceNone, false
}

// CountResource returns how many r the resource multiset holds.
func (s *Spec) CountResource(r ResourceType) int {
	n := 0
	for _, rc := range s.ResourceCounts {
		if rc.Resource == r {
			n += rc.Count
		}
	}
	return n
}

// IsCenter reports whether c is one of the spec's center coordinates.
func (s *Spec) IsCenter(c Coord) bool {
	for _, cc := range s.CenterCoords {
		if cc == c {
			return true
		}
	}
	return false
}

// Validate checks the spec's declared counts and coordinates against its own
// layout. Every error wraps ErrSpecMismatch.
func (s *Spec) Validate() error {
	coords := s.Hexes()
	if len(coords) == 0 {
		return fmt.Errorf("%w: %s has no hexes", ErrSpecMismatch, s.Shape)
	}

	hexSet := make(map[Coord]bool, len(coords))
	cornerSet := make(map[Coord]bool, len(coords)*3)
	for _, c := range coords {
		if hexSet[c] {
			return fmt.Errorf("%w: %s lists hex %v twice", ErrSpecMismatch, s.Shape, c)
		}
		hexSet[c] = true
		for _, cc := range c.HexCorners() {
			cornerSet[cc] = true
		}
	}

	fixed := make(map[Coord]bool)
	for _, req := range s.Required {
		for _, c := range req.Coords {
			if !hexSet[c] {
				return fmt.Errorf("%w: %s requires %s at missing hex %v", ErrSpecMismatch, s.Shape, req.Resource, c)
			}
			if fixed[c] {
				return fmt.Errorf("%w: %s fixes hex %v twice", ErrSpecMismatch, s.Shape, c)
			}
			fixed[c] = true
		}
	}

	resources := s.Resources()
	mutable := len(coords) - len(fixed)
	if len(resources) != mutable {
		return fmt.Errorf("%w: %s declares %d resources for %d mutable hexes",
			ErrSpecMismatch, s.Shape, len(resources), mutable)
	}

	numbered := 0
	for _, r := range resources {
		if r == ResourceNone || r == ResourceAny || r == ResourceWater {
			return fmt.Errorf("%w: %s cannot place %s at random", ErrSpecMismatch, s.Shape, r)
		}
		if r.HasNumber() {
			numbered++
		}
	}
	if len(s.Rolls) != numbered {
		return fmt.Errorf("%w: %s declares %d roll numbers for %d numbered hexes",
			ErrSpecMismatch, s.Shape, len(s.Rolls), numbered)
	}
	for _, n := range s.Rolls {
		if !IsRollNumber(n) {
			return fmt.Errorf("%w: %s has invalid roll number %d", ErrSpecMismatch, s.Shape, n)
		}
	}

	for _, c := range s.CenterCoords {
		if !hexSet[c] {
			return fmt.Errorf("%w: %s center %v is not a hex", ErrSpecMismatch, s.Shape, c)
		}
	}
	for i, p := range s.DefaultPorts {
		for _, c := range p.Corners {
			if !cornerSet[c] {
				return fmt.Errorf("%w: %s port %d corner %v is not on the board", ErrSpecMismatch, s.Shape, i, c)
			}
		}
	}
	for _, bc := range s.BeachConnections {
		if !cornerSet[bc.Coord] {
			return fmt.Errorf("%w: %s beach connection %v is not on the board", ErrSpecMismatch, s.Shape, bc.Coord)
		}
	}
	return nil
}

package board

import (
	"fmt"
	"sort"
)

// Board holds the hexes, corners and ports built from a Spec. A generator
// owns a Board exclusively while filling it; afterwards it is read-only by
// convention.
type Board struct {
	Spec *Spec `json:"-"`

	hexes      []*Hex
	hexGrid    map[Coord]*Hex
	mutable    []*Hex
	corners    []*Corner
	cornerGrid map[Coord]*Corner
	ports      []*Port

	// Clockwise successor of every perimeter corner.
	perimeter map[Coord]Coord
}

// New builds the grid for spec and applies its required resources. It panics
// if the spec fails Validate; callers that take specs from outside should
// validate first.
func New(spec *Spec) *Board {
	if err := spec.Validate(); err != nil {
		panic(err)
	}

	coords := spec.Hexes()
	sortCoords(coords)

	b := &Board{
		Spec:       spec,
		hexes:      make([]*Hex, 0, len(coords)),
		hexGrid:    make(map[Coord]*Hex, len(coords)),
		cornerGrid: make(map[Coord]*Corner),
	}
	for _, c := range coords {
		hex := &Hex{Coord: c}
		if r, ok := spec.RequiredAt(c); ok {
			hex.Resource = r
			hex.Immutable = true
		} else {
			b.mutable = append(b.mutable, hex)
		}
		b.hexes = append(b.hexes, hex)
		b.hexGrid[c] = hex
	}

	for _, p := range spec.Ports() {
		port := p
		b.ports = append(b.ports, &port)
	}

	b.buildCorners()
	b.linkHexes()
	b.perimeter = b.tracePerimeter()
	return b
}

// buildCorners derives the corner grid from the hex footprint, so every
// corner touches at least one hex.
func (b *Board) buildCorners() {
	for _, hex := range b.hexes {
		for _, cc := range hex.Coord.HexCorners() {
			if _, ok := b.cornerGrid[cc]; ok {
				continue
			}
			b.cornerGrid[cc] = &Corner{Coord: cc}
		}
	}
	coords := make([]Coord, 0, len(b.cornerGrid))
	for c := range b.cornerGrid {
		coords = append(coords, c)
	}
	sortCoords(coords)
	b.corners = make([]*Corner, 0, len(coords))
	for _, c := range coords {
		corner := b.cornerGrid[c]
		for _, hc := range c.TouchingHexes() {
			if h := b.hexGrid[hc]; h != nil {
				corner.hexes = append(corner.hexes, h)
			}
		}
		b.corners = append(b.corners, corner)
	}
	for _, p := range b.ports {
		for _, c := range p.Corners {
			b.cornerGrid[c].Port = p
		}
	}
}

func (b *Board) linkHexes() {
	for _, hex := range b.hexes {
		for _, nc := range hex.Coord.Neighbors() {
			if n := b.hexGrid[nc]; n != nil {
				hex.neighbors = append(hex.neighbors, n)
			}
		}
		for _, cc := range hex.Coord.HexCorners() {
			hex.corners = append(hex.corners, b.cornerGrid[cc])
		}
	}
}

// Shape returns the spec's shape.
func (b *Board) Shape() Shape {
	return b.Spec.Shape
}

// Dimensions returns the spec's dimensions.
func (b *Board) Dimensions() Dimensions {
	return b.Spec.Dimensions
}

// Hexes returns every hex in row-major order.
func (b *Board) Hexes() []*Hex {
	return b.hexes
}

// MutableHexes returns the hexes placement may assign, in row-major order.
func (b *Board) MutableHexes() []*Hex {
	return b.mutable
}

// Corners returns every corner in row-major order.
func (b *Board) Corners() []*Corner {
	return b.corners
}

// Ports returns the board's ports in spec order.
func (b *Board) Ports() []*Port {
	return b.ports
}

// Hex returns the hex at c, or nil.
func (b *Board) Hex(c Coord) *Hex {
	return b.hexGrid[c]
}

// Corner returns the corner at c, or nil.
func (b *Board) Corner(c Coord) *Corner {
	return b.cornerGrid[c]
}

// Reset clears all mutable hex state, re-applies required resources, clears
// corner scores and restores the default port resources. It is much cheaper
// than building a new Board.
func (b *Board) Reset() {
	for _, hex := range b.hexes {
		hex.reset()
	}
	for _, c := range b.corners {
		c.Score = 0
		c.Notes = ""
	}
	for i, p := range b.Spec.DefaultPorts {
		b.ports[i].Resource = p.Resource
	}
}

// HasDefaultPorts reports whether every port still trades its spec resource.
func (b *Board) HasDefaultPorts() bool {
	for i, p := range b.Spec.DefaultPorts {
		if b.ports[i].Resource != p.Resource {
			return false
		}
	}
	return true
}

// Counts returns how many hexes hold each resource.
func (b *Board) Counts() map[ResourceType]int {
	counts := make(map[ResourceType]int)
	for _, hex := range b.hexes {
		counts[hex.Resource]++
	}
	return counts
}

// String returns a summary of the board.
func (b *Board) String() string {
	return fmt.Sprintf("Board(shape=%s, hexes=%d, mutable=%d, corners=%d, ports=%d)",
		b.Spec.Shape, len(b.hexes), len(b.mutable), len(b.corners), len(b.ports))
}

// Assignment is a copy of everything placement writes to a board. The
// generator snapshots its best candidate and restores it at the end.
type Assignment struct {
	Resources     []ResourceType
	RollNumbers   []int
	HexScores     []float64
	PortResources []ResourceType
	CornerScores  []float64
	CornerNotes   []string
}

// Snapshot copies the current assignment.
func (b *Board) Snapshot() *Assignment {
	a := &Assignment{
		Resources:     make([]ResourceType, len(b.hexes)),
		RollNumbers:   make([]int, len(b.hexes)),
		HexScores:     make([]float64, len(b.hexes)),
		PortResources: make([]ResourceType, len(b.ports)),
		CornerScores:  make([]float64, len(b.corners)),
		CornerNotes:   make([]string, len(b.corners)),
	}
	for i, h := range b.hexes {
		a.Resources[i] = h.Resource
		a.RollNumbers[i] = h.RollNumber
		a.HexScores[i] = h.Score
	}
	for i, p := range b.ports {
		a.PortResources[i] = p.Resource
	}
	for i, c := range b.corners {
		a.CornerScores[i] = c.Score
		a.CornerNotes[i] = c.Notes
	}
	return a
}

// Restore writes a snapshot taken from this board back onto it.
func (b *Board) Restore(a *Assignment) {
	for i, h := range b.hexes {
		h.Resource = a.Resources[i]
		h.RollNumber = a.RollNumbers[i]
		h.Score = a.HexScores[i]
	}
	for i, p := range b.ports {
		p.Resource = a.PortResources[i]
	}
	for i, c := range b.corners {
		c.Score = a.CornerScores[i]
		c.Notes = a.CornerNotes[i]
	}
}

func sortCoords(coords []Coord) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
}

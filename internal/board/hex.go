// Package board provides the hex grid, corners, ports and board specs.
// Hexes use a doubled-column layout: a row only populates every other column,
// so same-row neighbors are two columns apart and diagonal neighbors one.
package board

import "fmt"

// Coord is a position on either the hex grid or the corner grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// HexNeighborDirections defines the six neighbor offsets in doubled-column coordinates.
var HexNeighborDirections = [6]Coord{
	{X: -2, Y: 0},
	{X: 2, Y: 0},
	{X: -1, Y: -1},
	{X: 1, Y: -1},
	{X: -1, Y: 1},
	{X: 1, Y: 1},
}

// HexCornerOffsets lists a hex's corners clockwise from the north-west corner:
// NW, N, NE, SE, S, SW. The N and S tips share a row with their neighbors.
var HexCornerOffsets = [6]Coord{
	{X: 0, Y: 0},
	{X: 1, Y: 0},
	{X: 2, Y: 0},
	{X: 2, Y: 1},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (c Coord) Neighbors() [6]Coord {
	var result [6]Coord
	for i, dir := range HexNeighborDirections {
		result[i] = Coord{X: c.X + dir.X, Y: c.Y + dir.Y}
	}
	return result
}

// HexCorners returns the corner coordinates of the hex at c, clockwise.
func (c Coord) HexCorners() [6]Coord {
	var result [6]Coord
	for i, off := range HexCornerOffsets {
		result[i] = Coord{X: c.X + off.X, Y: c.Y + off.Y}
	}
	return result
}

// TouchingHexes returns every hex coordinate that could own the corner at c.
// At most three of them exist on any board because rows alternate columns.
func (c Coord) TouchingHexes() [6]Coord {
	return [6]Coord{
		{X: c.X - 2, Y: c.Y - 1},
		{X: c.X - 1, Y: c.Y - 1},
		{X: c.X, Y: c.Y - 1},
		{X: c.X - 2, Y: c.Y},
		{X: c.X - 1, Y: c.Y},
		{X: c.X, Y: c.Y},
	}
}

// Hex is a single tile on the board.
type Hex struct {
	Coord      Coord        `json:"coord"`
	Resource   ResourceType `json:"resource"`
	RollNumber int          `json:"roll_number,omitempty"` // 0 when unset
	Score      float64      `json:"score,omitempty"`

	// Immutable hexes hold a resource fixed by the spec and are never
	// touched by placement.
	Immutable bool `json:"immutable,omitempty"`

	// Filled once by New after the whole grid exists.
	neighbors []*Hex
	corners   []*Corner
}

// Neighbors returns the hexes adjacent to h.
func (h *Hex) Neighbors() []*Hex {
	return h.neighbors
}

// Corners returns the six corners of h, clockwise from north-west.
func (h *Hex) Corners() []*Corner {
	return h.corners
}

// NeighborResources returns the resources of the neighbors that have one.
func (h *Hex) NeighborResources() []ResourceType {
	res := make([]ResourceType, 0, len(h.neighbors))
	for _, n := range h.neighbors {
		if n.Resource != ResourceNone {
			res = append(res, n.Resource)
		}
	}
	return res
}

// PortResources returns the distinct resources of the ports touching h,
// including the wildcard.
func (h *Hex) PortResources() []ResourceType {
	var res []ResourceType
	for _, c := range h.corners {
		if c.Port == nil || containsResource(res, c.Port.Resource) {
			continue
		}
		res = append(res, c.Port.Resource)
	}
	return res
}

// TypedPortResources returns the distinct non-wildcard port resources
// reachable through h's corners. Ports can be shuffled between generation
// attempts, so this is derived on every call.
func (h *Hex) TypedPortResources() []ResourceType {
	var res []ResourceType
	for _, r := range h.PortResources() {
		if r != ResourceAny {
			res = append(res, r)
		}
	}
	return res
}

// IsCoastal reports whether h sits on the edge of the land: either the grid
// ends next to it or one of its neighbors is water.
func (h *Hex) IsCoastal() bool {
	if len(h.neighbors) < 6 {
		return true
	}
	for _, n := range h.neighbors {
		if n.Resource == ResourceWater {
			return true
		}
	}
	return false
}

// HasNumberedNeighbor reports whether any neighbor holding resource r
// already carries a roll number.
func (h *Hex) HasNumberedNeighbor(r ResourceType) bool {
	for _, n := range h.neighbors {
		if n.Resource == r && n.RollNumber != 0 {
			return true
		}
	}
	return false
}

func (h *Hex) reset() {
	if !h.Immutable {
		h.Resource = ResourceNone
	}
	h.RollNumber = 0
	h.Score = 0
}

// Corner is an intersection of up to three hexes. Corners live on their own
// grid: hex (x, y) owns corners (x..x+2, y..y+1).
type Corner struct {
	Coord Coord   `json:"coord"`
	Port  *Port   `json:"-"`
	Score float64 `json:"score,omitempty"`
	Notes string  `json:"notes,omitempty"`

	hexes []*Hex
}

// Hexes returns the one to three hexes touching c.
func (c *Corner) Hexes() []*Hex {
	return c.hexes
}

// IsCoastal reports whether c lies on the perimeter of the grid.
func (c *Corner) IsCoastal() bool {
	return len(c.hexes) < 3
}

// Port is a trade post anchored at two adjacent corners.
type Port struct {
	Resource ResourceType `json:"resource"`
	Corners  [2]Coord     `json:"corners"`
}

func containsResource(list []ResourceType, r ResourceType) bool {
	for _, v := range list {
		if v == r {
			return true
		}
	}
	return false
}

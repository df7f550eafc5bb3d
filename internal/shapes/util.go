package shapes

import "github.com/talgya/hexboard/internal/board"

// coords turns a flat x0, y0, x1, y1, ... list into coordinates.
func coords(xy ...int) []board.Coord {
	if len(xy)%2 != 0 {
		panic("shapes: odd coordinate list")
	}
	out := make([]board.Coord, 0, len(xy)/2)
	for i := 0; i < len(xy); i += 2 {
		out = append(out, board.Coord{X: xy[i], Y: xy[i+1]})
	}
	return out
}

// port pins a resource to the corners (x0, y0) and (x1, y1).
func port(r board.ResourceType, x0, y0, x1, y1 int) board.Port {
	return board.Port{Resource: r, Corners: [2]board.Coord{{X: x0, Y: y0}, {X: x1, Y: y1}}}
}

// Cycled over the port list of shapes that ship without port resources.
var autoPortResources = []board.ResourceType{
	board.ResourceAny,
	board.ResourceWheat,
	board.ResourceBrick,
	board.ResourceSheep,
	board.ResourceOre,
	board.ResourceWood,
	board.ResourceAny,
}

// generatePorts builds ports from x0, y0, x1, y1 quadruples, assigning
// resources round-robin from autoPortResources.
func generatePorts(xy ...int) []board.Port {
	if len(xy)%4 != 0 {
		panic("shapes: port list is not a list of corner pairs")
	}
	ports := make([]board.Port, 0, len(xy)/4)
	for i := 0; i < len(xy); i += 4 {
		r := autoPortResources[(i/4)%len(autoPortResources)]
		ports = append(ports, port(r, xy[i], xy[i+1], xy[i+2], xy[i+3]))
	}
	return ports
}

func connections(cs ...board.Coord) []board.BeachConnection {
	out := make([]board.BeachConnection, len(cs))
	for i, c := range cs {
		out[i] = board.BeachConnection{Coord: c}
	}
	return out
}

// mainIslandRules allows gold only on the listed sub-island hexes and
// deserts everywhere else.
func mainIslandRules(islands []board.Coord) func(board.Coord, board.ResourceType) bool {
	onIsland := make(map[board.Coord]bool, len(islands))
	for _, c := range islands {
		onIsland[c] = true
	}
	return func(c board.Coord, r board.ResourceType) bool {
		switch r {
		case board.ResourceGold:
			return onIsland[c]
		case board.ResourceDesert:
			return !onIsland[c]
		}
		return true
	}
}

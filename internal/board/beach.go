package board

// Beach is the stretch of board frame between two consecutive beach
// connections, walked clockwise.
type Beach struct {
	From        Coord   `json:"from"`
	To          Coord   `json:"to"`
	Connections [2]int  `json:"connections"`
	Corners     []Coord `json:"corners"`
	Ports       []*Port `json:"ports,omitempty"`
}

type edge struct{ a, b Coord }

// tracePerimeter maps every perimeter corner to its clockwise successor. An
// edge is on the perimeter when exactly one hex uses it; walking each hex's
// corners clockwise orients those edges clockwise around the board.
func (b *Board) tracePerimeter() map[Coord]Coord {
	uses := make(map[edge]int)
	var directed []edge
	for _, hex := range b.hexes {
		cs := hex.Coord.HexCorners()
		for i := range cs {
			e := edge{cs[i], cs[(i+1)%len(cs)]}
			directed = append(directed, e)
			uses[undirected(e)]++
		}
	}
	next := make(map[Coord]Coord)
	for _, e := range directed {
		if uses[undirected(e)] != 1 {
			continue
		}
		if _, ok := next[e.a]; !ok {
			next[e.a] = e.b
		}
	}
	return next
}

func undirected(e edge) edge {
	if e.b.Y < e.a.Y || (e.b.Y == e.a.Y && e.b.X < e.a.X) {
		return edge{e.b, e.a}
	}
	return e
}

// IsPerimeter reports whether c lies on a perimeter edge.
func (b *Board) IsPerimeter(c Coord) bool {
	_, ok := b.perimeter[c]
	return ok
}

// BeachCorners walks the perimeter clockwise from one corner to another and
// returns the corners visited, both ends included. It returns nil when to is
// not reachable from from.
func (b *Board) BeachCorners(from, to Coord) []Coord {
	if !b.IsPerimeter(from) || !b.IsPerimeter(to) {
		return nil
	}
	path := []Coord{from}
	cur := from
	for steps := 0; steps <= len(b.perimeter); steps++ {
		if cur == to && len(path) > 1 {
			return path
		}
		nxt, ok := b.perimeter[cur]
		if !ok {
			return nil
		}
		if nxt == from && to != from {
			return nil
		}
		path = append(path, nxt)
		cur = nxt
	}
	return nil
}

// Beaches returns one Beach per beach connection, each running to the next
// connection and the last wrapping to the first. Connections with no label
// are numbered by position starting at 1.
func (b *Board) Beaches() []Beach {
	conns := b.Spec.BeachConnections
	if len(conns) < 2 {
		return nil
	}
	label := func(i int) int {
		if conns[i].Label != 0 {
			return conns[i].Label
		}
		return i + 1
	}

	var beaches []Beach
	for i := range conns {
		j := (i + 1) % len(conns)
		corners := b.BeachCorners(conns[i].Coord, conns[j].Coord)
		if corners == nil {
			continue
		}
		onBeach := make(map[Coord]bool, len(corners))
		for _, c := range corners {
			onBeach[c] = true
		}
		beach := Beach{
			From:        conns[i].Coord,
			To:          conns[j].Coord,
			Connections: [2]int{label(i), label(j)},
			Corners:     corners,
		}
		for _, p := range b.ports {
			if onBeach[p.Corners[0]] && onBeach[p.Corners[1]] {
				beach.Ports = append(beach.Ports, p)
			}
		}
		beaches = append(beaches, beach)
	}
	return beaches
}

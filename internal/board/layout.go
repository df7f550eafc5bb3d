package board

// StandardLayout generates a hexagon-shaped board: the middle row holds
// Width hexes and every row above or below it one fewer.
//
//	   012345678
//	0    2 4 6
//	1   1 3 5 7
//	2  0 2 4 6 8
//	3   1 3 5 7
//	4    2 4 6
func StandardLayout(d Dimensions) []Coord {
	return generateLayout(d, false)
}

// SeafarersLayout generates the seafarers frame: the middle row is pushed
// one column in from the rows around it.
func SeafarersLayout(d Dimensions) []Coord {
	return generateLayout(d, true)
}

// FixedLayout returns a layout function that ignores dimensions and always
// yields coords.
func FixedLayout(coords ...Coord) func(Dimensions) []Coord {
	fixed := append([]Coord(nil), coords...)
	return func(Dimensions) []Coord {
		return append([]Coord(nil), fixed...)
	}
}

func generateLayout(d Dimensions, seafarers bool) []Coord {
	var coords []Coord
	middle := (d.Height - 1) / 2
	for r := 0; r < d.Height; r++ {
		dist := abs(r - middle)
		start := dist
		if seafarers {
			if dist == 0 {
				start = 1
			} else {
				start = dist - 1
			}
		}
		count := d.Width - start
		for i := 0; i < count; i++ {
			coords = append(coords, Coord{X: start + 2*i, Y: r})
		}
	}
	return coords
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

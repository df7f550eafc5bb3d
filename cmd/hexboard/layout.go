package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/talgya/hexboard/internal/board"
)

var abbrev = map[board.ResourceType]string{
	board.ResourceNone:   "..",
	board.ResourceAny:    "3:",
	board.ResourceBrick:  "Br",
	board.ResourceDesert: "De",
	board.ResourceOre:    "Or",
	board.ResourceSheep:  "Sh",
	board.ResourceWood:   "Wd",
	board.ResourceWheat:  "Wh",
	board.ResourceGold:   "Au",
	board.ResourceWater:  "~~",
}

// columnWidth is the characters per grid column. Same-row hexes are two
// columns apart, so every label gets twice this.
const columnWidth = 3

// renderBoard draws b as text, one line per hex row, each hex labelled with
// its resource and roll number.
func renderBoard(b *board.Board) string {
	rows := make(map[int][]*board.Hex)
	minX := 0
	for i, h := range b.Hexes() {
		rows[h.Coord.Y] = append(rows[h.Coord.Y], h)
		if i == 0 || h.Coord.X < minX {
			minX = h.Coord.X
		}
	}
	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Ints(ys)

	var sb strings.Builder
	for _, y := range ys {
		col := 0
		for _, h := range rows[y] {
			at := (h.Coord.X - minX) * columnWidth
			sb.WriteString(strings.Repeat(" ", at-col))
			label := hexLabel(h)
			sb.WriteString(label)
			col = at + len(label)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func hexLabel(h *board.Hex) string {
	roll := ""
	if h.RollNumber != 0 {
		roll = fmt.Sprint(h.RollNumber)
	}
	return fmt.Sprintf("[%s%2s]", abbrev[h.Resource], roll)
}

// describePorts lists the ports in board order.
func describePorts(b *board.Board) string {
	parts := make([]string, 0, len(b.Ports()))
	for _, p := range b.Ports() {
		parts = append(parts, p.Resource.String())
	}
	return strings.Join(parts, ", ")
}

// sortCornersByScore orders corners best first, keeping board order on ties.
func sortCornersByScore(corners []*board.Corner) {
	sort.SliceStable(corners, func(i, j int) bool {
		return corners[i].Score > corners[j].Score
	})
}

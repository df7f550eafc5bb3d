package main

import (
	"strings"
	"testing"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/shapes"
)

func TestRenderBoard_Standard(t *testing.T) {
	b := board.New(shapes.MustGet(shapes.Standard))
	b.Hex(board.Coord{X: 2, Y: 0}).Resource = board.ResourceWheat
	b.Hex(board.Coord{X: 2, Y: 0}).RollNumber = 6
	b.Hex(board.Coord{X: 4, Y: 0}).Resource = board.ResourceOre
	b.Hex(board.Coord{X: 4, Y: 0}).RollNumber = 10

	lines := strings.Split(strings.TrimSuffix(renderBoard(b), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d rows:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if want := "      [Wh 6][Or10][..  ]"; lines[0] != want {
		t.Fatalf("row 0 %q want %q", lines[0], want)
	}
	if want := strings.Repeat("[..  ]", 5); lines[2] != want {
		t.Fatalf("row 2 %q want %q", lines[2], want)
	}
	if !strings.HasPrefix(lines[1], "   [") {
		t.Fatalf("row 1 not offset by half a hex: %q", lines[1])
	}
}

func TestSortCornersByScore(t *testing.T) {
	corners := []*board.Corner{
		{Coord: board.Coord{X: 0}, Score: 1},
		{Coord: board.Coord{X: 1}, Score: 3},
		{Coord: board.Coord{X: 2}, Score: 1},
	}
	sortCornersByScore(corners)
	if corners[0].Coord.X != 1 || corners[1].Coord.X != 0 || corners[2].Coord.X != 2 {
		t.Fatalf("order %v %v %v", corners[0].Coord, corners[1].Coord, corners[2].Coord)
	}
}

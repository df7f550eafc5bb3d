package boardurl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/engine"
	"github.com/talgya/hexboard/internal/shapes"
)

func generated(t *testing.T, spec *board.Spec, shufflePorts bool, seed int64) *board.Board {
	t.Helper()
	g := engine.New(engine.Config{MinAttempts: 2, MaxFailures: 10000, Seed: seed})
	opts := engine.DefaultOptions()
	opts.ShufflePorts = shufflePorts
	res, err := g.Generate(context.Background(), spec, opts)
	if err != nil {
		t.Fatalf("generate %s: %v", spec.Shape, err)
	}
	return res.Board
}

func sameBoard(t *testing.T, want, got *board.Board) {
	t.Helper()
	if got.Shape() != want.Shape() {
		t.Fatalf("shape %s want %s", got.Shape(), want.Shape())
	}
	wh, gh := want.Hexes(), got.Hexes()
	for i := range wh {
		if wh[i].Resource != gh[i].Resource || wh[i].RollNumber != gh[i].RollNumber {
			t.Fatalf("%s hex %v: got %s/%d want %s/%d", want.Shape(), wh[i].Coord,
				gh[i].Resource, gh[i].RollNumber, wh[i].Resource, wh[i].RollNumber)
		}
	}
	wp, gp := want.Ports(), got.Ports()
	for i := range wp {
		if wp[i].Resource != gp[i].Resource {
			t.Fatalf("%s port %d: got %s want %s", want.Shape(), i, gp[i].Resource, wp[i].Resource)
		}
	}
}

func TestRoundTrip_AllShapes(t *testing.T) {
	for _, spec := range shapes.All() {
		for _, shuffle := range []bool{false, true} {
			b := generated(t, spec, shuffle, 11)
			token, err := Serialize(b)
			if err != nil {
				t.Fatalf("serialize %s: %v", spec.Shape, err)
			}
			if token[0] != '0' {
				t.Fatalf("%s: token %q has no version", spec.Shape, token)
			}
			key, _ := shapes.Key(spec.Shape)
			if token[1] != key {
				t.Fatalf("%s: token %q has shape key %q", spec.Shape, token, token[1])
			}
			if HasCustomPorts(token) == b.HasDefaultPorts() {
				t.Fatalf("%s: token %q port section disagrees with board", spec.Shape, token)
			}

			got, err := Deserialize(token)
			if err != nil {
				t.Fatalf("deserialize %s %q: %v", spec.Shape, token, err)
			}
			sameBoard(t, b, got)
		}
	}
}

func TestSerialize_DefaultPortsOmitted(t *testing.T) {
	b := generated(t, shapes.MustGet(shapes.Standard), false, 3)
	token, err := Serialize(b)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.HasPrefix(token, "0s") || strings.Count(token, "-") != 1 {
		t.Fatalf("token %q", token)
	}
	for _, c := range token {
		if !strings.ContainsRune("0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-", c) {
			t.Fatalf("token %q is not URL safe", token)
		}
	}
}

func TestSerialize_SwappedPorts(t *testing.T) {
	b := generated(t, shapes.MustGet(shapes.Standard), false, 5)
	ports := b.Ports()
	// The first two standard ports trade different resources.
	ports[0].Resource, ports[1].Resource = ports[1].Resource, ports[0].Resource
	if b.HasDefaultPorts() {
		t.Fatalf("swap did not change ports")
	}
	token, err := Serialize(b)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !HasCustomPorts(token) {
		t.Fatalf("token %q has no port section", token)
	}
	got, err := Deserialize(token)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	sameBoard(t, b, got)
}

func TestSerialize_EmptyBoard(t *testing.T) {
	b := board.New(shapes.MustGet(shapes.Standard))
	if _, err := Serialize(b); err == nil {
		t.Fatalf("empty board serialized")
	}
}

func TestDeserialize_Unsupported(t *testing.T) {
	b := generated(t, shapes.MustGet(shapes.Standard), false, 7)
	token, err := Serialize(b)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	sections := strings.Split(token[2:], "-")

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"version only", "0"},
		{"old version", "1" + token[1:]},
		{"unknown shape", "0x" + token[2:]},
		{"one section", "0s" + sections[0]},
		{"too many sections", token + "-1-1"},
		{"bad character", "0s" + sections[0] + "-" + sections[1] + "!"},
		{"rolls swapped for resources", "0s" + sections[1] + "-" + sections[0]},
		{"shape mismatch", "06" + token[2:]},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Deserialize(tc.token)
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Fatalf("Deserialize(%q) error %v", tc.token, err)
			}
		})
	}
}

// Package boardurl turns a finished board into a short URL-safe token and
// back.
//
// A token is laid out as
//
//	<version><shape key><hex resources>-<roll numbers>[-<port resources>]
//
// The hex and roll sections list the board's mutable hexes in row-major
// order. The port section is present only when the ports differ from the
// shape's defaults.
package boardurl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/talgya/hexboard/internal/board"
	"github.com/talgya/hexboard/internal/encoding"
	"github.com/talgya/hexboard/internal/shapes"
)

// Version is the leading character of every token this package writes.
const Version = '0'

const separator = "-"

// ErrUnsupportedFormat means a token has an unknown version or shape, or
// its sections do not decode against the shape. Callers should fall back to
// generating a fresh board.
var ErrUnsupportedFormat = errors.New("boardurl: unsupported format")

// The order of each value set is part of the format.
var (
	hexResources = encoding.NewCodec(
		board.ResourceDesert,
		board.ResourceBrick,
		board.ResourceOre,
		board.ResourceSheep,
		board.ResourceWheat,
		board.ResourceWood,
		board.ResourceGold,
	)
	// 0 stands for a hex without a number.
	rollNumbers = encoding.NewCodec(0, 2, 3, 4, 5, 6, 8, 9, 10, 11, 12)

	portResources = encoding.NewCodec(
		board.ResourceAny,
		board.ResourceBrick,
		board.ResourceOre,
		board.ResourceSheep,
		board.ResourceWheat,
		board.ResourceWood,
	)
)

// Serialize returns the token for b. It fails when b has unfilled hexes or
// values its shape could never produce.
func Serialize(b *board.Board) (string, error) {
	key, ok := shapes.Key(b.Shape())
	if !ok {
		return "", fmt.Errorf("%w: shape %q has no key", ErrUnsupportedFormat, b.Shape())
	}

	mutable := b.MutableHexes()
	resources := make([]board.ResourceType, len(mutable))
	rolls := make([]int, len(mutable))
	for i, h := range mutable {
		resources[i] = h.Resource
		rolls[i] = h.RollNumber
	}

	res, err := hexResources.Encode(resources)
	if err != nil {
		return "", fmt.Errorf("hex resources: %w", err)
	}
	nums, err := rollNumbers.Encode(rolls)
	if err != nil {
		return "", fmt.Errorf("roll numbers: %w", err)
	}

	var sb strings.Builder
	sb.WriteByte(Version)
	sb.WriteByte(key)
	sb.WriteString(res)
	sb.WriteString(separator)
	sb.WriteString(nums)

	if !b.HasDefaultPorts() {
		ports := b.Ports()
		values := make([]board.ResourceType, len(ports))
		for i, p := range ports {
			values[i] = p.Resource
		}
		enc, err := portResources.Encode(values)
		if err != nil {
			return "", fmt.Errorf("port resources: %w", err)
		}
		sb.WriteString(separator)
		sb.WriteString(enc)
	}
	return sb.String(), nil
}

// Deserialize rebuilds the board a token describes. Hex scores and corner
// notes are not part of the token and come back zero.
func Deserialize(token string) (*board.Board, error) {
	if len(token) < 2 || token[0] != Version {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, token)
	}
	spec, ok := shapes.FromKey(token[1])
	if !ok {
		return nil, fmt.Errorf("%w: unknown shape key %q", ErrUnsupportedFormat, token[1])
	}
	parts := strings.Split(token[2:], separator)
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("%w: %d sections", ErrUnsupportedFormat, len(parts))
	}

	b := board.New(spec)
	mutable := b.MutableHexes()

	entries := spec.Resources()
	resources, err := hexResources.Decode(parts[0], entries)
	if err != nil {
		return nil, fmt.Errorf("%w: hex resources: %w", ErrUnsupportedFormat, err)
	}

	rollEntries := spec.RollNumbers()
	for _, r := range entries {
		if !r.HasNumber() {
			rollEntries = append(rollEntries, 0)
		}
	}
	rolls, err := rollNumbers.Decode(parts[1], rollEntries)
	if err != nil {
		return nil, fmt.Errorf("%w: roll numbers: %w", ErrUnsupportedFormat, err)
	}

	for i, h := range mutable {
		if resources[i].HasNumber() != (rolls[i] != 0) {
			return nil, fmt.Errorf("%w: %s hex %v has roll number %d",
				ErrUnsupportedFormat, resources[i], h.Coord, rolls[i])
		}
		h.Resource = resources[i]
		h.RollNumber = rolls[i]
	}

	if len(parts) == 3 {
		ports := b.Ports()
		defaults := spec.Ports()
		portEntries := make([]board.ResourceType, len(defaults))
		for i, p := range defaults {
			portEntries[i] = p.Resource
		}
		values, err := portResources.Decode(parts[2], portEntries)
		if err != nil {
			return nil, fmt.Errorf("%w: port resources: %w", ErrUnsupportedFormat, err)
		}
		for i, p := range ports {
			p.Resource = values[i]
		}
	}
	return b, nil
}

// HasCustomPorts reports whether token carries a port section.
func HasCustomPorts(token string) bool {
	return strings.Count(token, separator) > 1
}

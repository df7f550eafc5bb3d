// Package encoding packs sequences of values drawn from a known, shrinking
// pool into short base-62 strings.
//
// Each value is written as its 1-based rank in the working value set, and
// ranks are combined as digits of a mixed-radix number whose base is the
// size of the working set plus one. A value leaves the working set once the
// rest of the input holds no more of it, so later digits get smaller bases.
// Digits are packed into blocks below 62^10; every block except the last is
// padded to BlockSize characters. The first value is the least significant
// digit of its block.
package encoding

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

var (
	// ErrMismatch means the input does not fit the codec's value set or the
	// caller's entry multiset.
	ErrMismatch = errors.New("encoding: values do not match")
	// ErrInvalidBlock means a serialized block is not valid base 62.
	ErrInvalidBlock = errors.New("encoding: invalid block")
)

// Codec serializes sequences over a fixed, ordered value set.
type Codec[V comparable] struct {
	valueSet []V
}

// NewCodec returns a codec for valueSet. Order matters: encoder and decoder
// must agree on it.
func NewCodec[V comparable](valueSet ...V) *Codec[V] {
	return &Codec[V]{valueSet: append([]V(nil), valueSet...)}
}

// Encode serializes values. Every value must be in the codec's value set.
func (c *Codec[V]) Encode(values []V) (string, error) {
	blocks, err := c.blocks(values)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for i, b := range blocks {
		width := BlockSize
		if i == len(blocks)-1 {
			width = 0
		}
		sb.WriteString(formatBlock(b, width))
	}
	return sb.String(), nil
}

func (c *Codec[V]) blocks(values []V) ([]uint64, error) {
	set := append([]V(nil), c.valueSet...)
	remaining := make(map[V]int, len(set))
	for _, v := range values {
		remaining[v]++
	}

	var blocks []uint64
	var cur uint64
	scalar := uint64(1)
	for i, v := range values {
		idx := indexOf(set, v)
		if idx < 0 {
			return nil, fmt.Errorf("%w: value %v at %d is not in the value set", ErrMismatch, v, i)
		}
		rank := uint64(idx + 1)

		hi, lo := bits.Mul64(rank, scalar)
		if hi != 0 || lo >= maxBlock-cur {
			blocks = append(blocks, cur)
			cur, scalar = 0, 1
			lo = rank
		}
		cur += lo
		scalar = saturatingMul(scalar, uint64(len(set)+1))

		remaining[v]--
		if remaining[v] == 0 {
			set = removeAt(set, idx)
		}
	}
	if scalar > 1 {
		blocks = append(blocks, cur)
	}
	return blocks, nil
}

// Decode reverses Encode. entries must be the multiset of values that was
// encoded, in any order. Decode never returns a partial sequence, but it
// can only catch a wrong entry multiset when some rank or count stops
// fitting it; a consistent but different multiset decodes without error.
func (c *Codec[V]) Decode(s string, entries []V) ([]V, error) {
	set := append([]V(nil), c.valueSet...)
	left := make(map[V]int, len(set))
	total := 0
	for _, e := range entries {
		left[e]++
		total++
	}

	values := make([]V, 0, len(entries))
	for start := 0; start < len(s); start += BlockSize {
		end := min(start+BlockSize, len(s))
		block, err := parseBlock(s[start:end])
		if err != nil {
			return nil, err
		}
		for block > 0 {
			if total == 0 {
				return nil, fmt.Errorf("%w: entry set ran out after %d values", ErrMismatch, len(values))
			}
			if len(set) == 0 {
				return nil, fmt.Errorf("%w: value set ran out after %d values", ErrMismatch, len(values))
			}
			base := uint64(len(set) + 1)
			rank := block % base
			block /= base
			if rank == 0 || rank > uint64(len(set)) {
				return nil, fmt.Errorf("%w: rank %d outside 1..%d", ErrMismatch, rank, len(set))
			}
			v := set[rank-1]
			if left[v] == 0 {
				return nil, fmt.Errorf("%w: value %v is not in the entry set", ErrMismatch, v)
			}
			values = append(values, v)
			left[v]--
			total--
			if left[v] == 0 {
				set = removeAt(set, int(rank-1))
			}
		}
	}
	if total != 0 {
		return nil, fmt.Errorf("%w: %d entries left over", ErrMismatch, total)
	}
	return values, nil
}

func saturatingMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 || lo > maxBlock {
		return maxBlock
	}
	return lo
}

func indexOf[V comparable](list []V, v V) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}

func removeAt[V any](list []V, i int) []V {
	return append(list[:i], list[i+1:]...)
}

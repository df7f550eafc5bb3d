// Package shapes registers the built-in board specs.
package shapes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/talgya/hexboard/internal/board"
)

const (
	Standard   board.Shape = "standard"
	Expansion6 board.Shape = "expansion6"
	Seafarers1 board.Shape = "seafarers1"
	Seafarers2 board.Shape = "seafarers2"
	Dragons    board.Shape = "dragons"
)

type entry struct {
	spec *board.Spec
	key  byte
}

// Registration order is the order All reports.
var registry = []entry{
	{standardSpec, 's'},
	{expansion6Spec, '6'},
	{seafarers1Spec, '1'},
	{seafarers2Spec, '2'},
	{dragonsSpec, 'd'},
}

// Get returns the spec registered for shape.
func Get(shape board.Shape) (*board.Spec, bool) {
	for _, e := range registry {
		if e.spec.Shape == shape {
			return e.spec, true
		}
	}
	return nil, false
}

// MustGet is Get for shapes known at compile time.
func MustGet(shape board.Shape) *board.Spec {
	spec, ok := Get(shape)
	if !ok {
		panic(fmt.Sprintf("shapes: unknown shape %q", shape))
	}
	return spec
}

// All returns every registered spec.
func All() []*board.Spec {
	specs := make([]*board.Spec, len(registry))
	for i, e := range registry {
		specs[i] = e.spec
	}
	return specs
}

// Names returns the registered shape identifiers, sorted.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = string(e.spec.Shape)
	}
	sort.Strings(names)
	return names
}

// ByName looks a spec up by shape identifier or display name, ignoring case.
func ByName(name string) (*board.Spec, bool) {
	name = strings.TrimSpace(name)
	for _, e := range registry {
		if strings.EqualFold(string(e.spec.Shape), name) || strings.EqualFold(e.spec.Name, name) {
			return e.spec, true
		}
	}
	return nil, false
}

// Key returns the one-character marker used for shape in board tokens.
func Key(shape board.Shape) (byte, bool) {
	for _, e := range registry {
		if e.spec.Shape == shape {
			return e.key, true
		}
	}
	return 0, false
}

// FromKey is the inverse of Key.
func FromKey(key byte) (*board.Spec, bool) {
	for _, e := range registry {
		if e.key == key {
			return e.spec, true
		}
	}
	return nil, false
}

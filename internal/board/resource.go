package board

import (
	"fmt"
	"strings"
)

// ResourceType enumerates what a hex produces or what a port trades.
type ResourceType uint8

const (
	ResourceNone   ResourceType = iota // Unassigned
	ResourceAny                        // Wildcard, only used for 3:1 ports
	ResourceBrick
	ResourceDesert
	ResourceOre
	ResourceSheep
	ResourceWood
	ResourceWheat
	ResourceGold  // Seafarers: pick any resource
	ResourceWater // Seafarers: open sea, never placed at random
)

// UsableResources are the five resources every board distributes.
var UsableResources = []ResourceType{
	ResourceBrick,
	ResourceOre,
	ResourceSheep,
	ResourceWood,
	ResourceWheat,
}

// NumberedResources are the hex resources that receive a roll number.
var NumberedResources = []ResourceType{
	ResourceBrick,
	ResourceOre,
	ResourceSheep,
	ResourceWood,
	ResourceWheat,
	ResourceGold,
}

var resourceNames = [...]string{
	ResourceNone:   "none",
	ResourceAny:    "any",
	ResourceBrick:  "brick",
	ResourceDesert: "desert",
	ResourceOre:    "ore",
	ResourceSheep:  "sheep",
	ResourceWood:   "wood",
	ResourceWheat:  "wheat",
	ResourceGold:   "gold",
	ResourceWater:  "water",
}

func (r ResourceType) String() string {
	if int(r) < len(resourceNames) {
		return resourceNames[r]
	}
	return fmt.Sprintf("resource(%d)", uint8(r))
}

// HasNumber reports whether a hex holding r gets a roll number.
func (r ResourceType) HasNumber() bool {
	switch r {
	case ResourceNone, ResourceAny, ResourceDesert, ResourceWater:
		return false
	}
	return int(r) < len(resourceNames)
}

// ParseResource parses the lower-case resource name produced by String.
func ParseResource(s string) (ResourceType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range resourceNames {
		if name == s {
			return ResourceType(i), nil
		}
	}
	return ResourceNone, fmt.Errorf("unknown resource %q", s)
}

// MarshalText encodes r by name so JSON output stays readable.
func (r ResourceType) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (r *ResourceType) UnmarshalText(text []byte) error {
	v, err := ParseResource(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// RollNumbers are the numbers that can appear on a hex. 7 never does.
var RollNumbers = []int{2, 3, 4, 5, 6, 8, 9, 10, 11, 12}

// PipWeight returns the number of dots printed on a roll number token, which
// is its two-die frequency out of 36. Numbers outside 2..12 and 7 weigh 0.
func PipWeight(rollNumber int) int {
	switch {
	case rollNumber < 2 || rollNumber > 12 || rollNumber == 7:
		return 0
	case rollNumber < 7:
		return rollNumber - 1
	default:
		return 13 - rollNumber
	}
}

// IsRollNumber reports whether n can appear on a hex.
func IsRollNumber(n int) bool {
	return PipWeight(n) > 0
}

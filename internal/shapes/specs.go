package shapes

import "github.com/talgya/hexboard/internal/board"

var standardSpec = &board.Spec{
	Shape:      Standard,
	Name:       "Standard",
	Dimensions: board.Dimensions{Width: 5, Height: 5},
	ResourceCounts: []board.ResourceCount{
		{Resource: board.ResourceBrick, Count: 3},
		{Resource: board.ResourceDesert, Count: 1},
		{Resource: board.ResourceOre, Count: 3},
		{Resource: board.ResourceSheep, Count: 4},
		{Resource: board.ResourceWood, Count: 4},
		{Resource: board.ResourceWheat, Count: 4},
	},
	Rolls:            []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12},
	Layout:           board.StandardLayout,
	CenterCoords:     coords(4, 2),
	BeachConnections: connections(coords(7, 0, 10, 2, 8, 5, 3, 5, 0, 3, 2, 0)...),
	DefaultPorts: []board.Port{
		port(board.ResourceAny, 2, 0, 3, 0),
		port(board.ResourceSheep, 5, 0, 6, 0),
		port(board.ResourceAny, 8, 1, 9, 1),
		port(board.ResourceAny, 10, 2, 10, 3),
		port(board.ResourceBrick, 9, 4, 8, 4),
		port(board.ResourceWood, 6, 5, 5, 5),
		port(board.ResourceOre, 1, 2, 1, 1),
		port(board.ResourceAny, 3, 5, 2, 5),
		port(board.ResourceWheat, 1, 4, 1, 3),
	},
	HasDefaultPortResources: true,
}

var expansion6Spec = &board.Spec{
	Shape:      Expansion6,
	Name:       "5-6 Player Expansion",
	Dimensions: board.Dimensions{Width: 6, Height: 7},
	ResourceCounts: []board.ResourceCount{
		{Resource: board.ResourceBrick, Count: 5},
		{Resource: board.ResourceDesert, Count: 2},
		{Resource: board.ResourceOre, Count: 5},
		{Resource: board.ResourceSheep, Count: 6},
		{Resource: board.ResourceWood, Count: 6},
		{Resource: board.ResourceWheat, Count: 6},
	},
	Rolls: []int{
		2, 2,
		3, 3, 3,
		4, 4, 4,
		5, 5, 5,
		6, 6, 6,
		8, 8, 8,
		9, 9, 9,
		10, 10, 10,
		11, 11, 11,
		12, 12,
	},
	Layout:           board.StandardLayout,
	CenterCoords:     coords(4, 3, 6, 3),
	BeachConnections: connections(coords(8, 0, 12, 3, 9, 7, 4, 7, 0, 4, 3, 0)...),
	DefaultPorts: []board.Port{
		port(board.ResourceAny, 3, 0, 4, 0),
		port(board.ResourceSheep, 6, 0, 7, 0),
		port(board.ResourceAny, 9, 1, 10, 1),
		port(board.ResourceAny, 12, 3, 12, 4),
		port(board.ResourceBrick, 11, 5, 10, 5),
		port(board.ResourceSheep, 9, 6, 9, 7),
		port(board.ResourceWood, 7, 7, 6, 7),
		port(board.ResourceAny, 4, 7, 3, 7),
		port(board.ResourceWheat, 2, 6, 2, 5),
		port(board.ResourceAny, 1, 4, 0, 4),
		port(board.ResourceOre, 1, 3, 1, 2),
	},
	HasDefaultPortResources: true,
}

// Seafarers "Heading for New Shores": a main island with gold on the small
// islands around it.
var seafarers1Spec = &board.Spec{
	Shape:      Seafarers1,
	Name:       "Seafarers: Heading for New Shores",
	Dimensions: board.Dimensions{Width: 7, Height: 7},
	ResourceCounts: []board.ResourceCount{
		{Resource: board.ResourceBrick, Count: 4},
		{Resource: board.ResourceDesert, Count: 1},
		{Resource: board.ResourceOre, Count: 5},
		{Resource: board.ResourceSheep, Count: 5},
		{Resource: board.ResourceWood, Count: 5},
		{Resource: board.ResourceWheat, Count: 5},
		{Resource: board.ResourceGold, Count: 2},
	},
	Rolls: []int{
		2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12,
		9, 2, 10, 8, 3, 4, 5, 11,
	},
	Layout: board.SeafarersLayout,
	Required: []board.RequiredResource{{
		Resource: board.ResourceWater,
		Coords: coords(
			4, 0, 1, 1, 3, 1, 2, 2, 3, 3,
			0, 4, 2, 4, 4, 4, 12, 4, 3, 5,
			5, 5, 7, 5, 9, 5, 11, 5, 6, 6,
		),
	}},
	Allowed: mainIslandRules(coords(
		2, 0, 0, 2, 1, 3, 1, 5,
		2, 6, 4, 6, 8, 6, 10, 6,
	)),
	CenterCoords: coords(8, 2),
	BeachConnections: connections(coords(
		0, 2, 3, 0, 7, 0, 12, 0, 14, 3,
		14, 5, 11, 7, 7, 7, 2, 7, 0, 4,
	)...),
	DefaultPorts: generatePorts(
		11, 0, 12, 0,
		8, 0, 9, 0,
		5, 1, 6, 1,
		4, 3, 4, 2,
		13, 1, 13, 2,
		13, 3, 13, 4,
		6, 4, 5, 4,
		9, 5, 8, 5,
		12, 5, 11, 5,
	),
}

// Seafarers "The Four Islands". Every land hex touches the sea.
var seafarers2Spec = &board.Spec{
	Shape:      Seafarers2,
	Name:       "Seafarers: The Four Islands",
	Dimensions: board.Dimensions{Width: 7, Height: 7},
	ResourceCounts: []board.ResourceCount{
		{Resource: board.ResourceBrick, Count: 4},
		{Resource: board.ResourceDesert, Count: 2},
		{Resource: board.ResourceOre, Count: 4},
		{Resource: board.ResourceSheep, Count: 5},
		{Resource: board.ResourceWood, Count: 4},
		{Resource: board.ResourceWheat, Count: 4},
	},
	Rolls:  []int{2, 3, 3, 4, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 9, 10, 10, 10, 11, 11, 12},
	Layout: board.SeafarersLayout,
	Required: []board.RequiredResource{{
		Resource: board.ResourceWater,
		Coords: coords(
			6, 0, 5, 1, 7, 1, 6, 2, 10, 2,
			12, 2, 1, 3, 3, 3, 5, 3, 7, 3,
			9, 3, 11, 3, 0, 4, 2, 4, 4, 4,
			6, 4, 5, 5, 7, 5, 6, 6,
		),
	}},
	BeachConnections: connections(coords(
		3, 0, 7, 0, 12, 0, 14, 3, 14, 5,
		11, 7, 7, 7, 2, 7, 0, 4, 0, 2,
	)...),
	DefaultPorts: generatePorts(
		2, 0, 3, 0,
		5, 0, 6, 0,
		10, 0, 11, 0,
		1, 2, 1, 1,
		9, 1, 8, 1,
		4, 3, 3, 3,
		9, 5, 8, 5,
		13, 5, 13, 6,
		12, 7, 11, 7,
		5, 7, 4, 7,
	),
	AllCoastalHexes: true,
}

// Seafarers "The Desert Dragons": a fixed desert ridge with gold on the
// dragon island.
var dragonsSpec = &board.Spec{
	Shape:      Dragons,
	Name:       "The Desert Dragons",
	Dimensions: board.Dimensions{Width: 9, Height: 7},
	ResourceCounts: []board.ResourceCount{
		{Resource: board.ResourceBrick, Count: 5},
		{Resource: board.ResourceDesert, Count: 1},
		{Resource: board.ResourceOre, Count: 5},
		{Resource: board.ResourceSheep, Count: 5},
		{Resource: board.ResourceWood, Count: 6},
		{Resource: board.ResourceWheat, Count: 6},
		{Resource: board.ResourceGold, Count: 2},
	},
	Rolls: []int{
		12, 3, 8, 9, 4, 6, 5, 4, 10, 11,
		9, 6, 11, 10, 5, 3, 8, 11, 8, 3,
		4, 9, 5, 3, 10, 10, 5, 2, 6,
	},
	Layout: board.SeafarersLayout,
	Required: []board.RequiredResource{
		{
			Resource: board.ResourceWater,
			Coords: coords(
				14, 0, 9, 1, 11, 1, 13, 1, 15, 1,
				6, 2, 8, 2, 10, 2, 12, 2, 14, 2,
				16, 2, 5, 3, 7, 3, 15, 3, 4, 4,
				6, 4, 16, 4, 3, 5, 5, 5, 4, 6,
				6, 6,
			),
		},
		{
			Resource: board.ResourceDesert,
			Coords:   coords(10, 4, 12, 4, 9, 5, 11, 5, 13, 5),
		},
	},
	Allowed: mainIslandRules(coords(
		9, 3, 11, 3, 13, 3, 8, 4, 14, 4, 7, 5,
		15, 5, 8, 6, 10, 6, 12, 6, 14, 6,
	)),
	BeachConnections: connections(coords(
		3, 0, 7, 0, 11, 0, 16, 0, 18, 3, 18, 5,
		15, 7, 11, 7, 7, 7, 2, 7, 0, 4, 0, 2,
	)...),
	DefaultPorts: generatePorts(
		1, 1, 2, 1,
		3, 0, 4, 0,
		6, 0, 7, 0,
		9, 0, 10, 0,
		12, 0, 13, 0,
		1, 4, 1, 3,
		1, 6, 1, 5,
		3, 6, 4, 6,
	),
}

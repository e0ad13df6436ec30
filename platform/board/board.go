package board

import (
	"github.com/DedS3t/monopoly-engine/app/models"
)

// Well-known positions.
const (
	GoCell          = 0
	JailCell        = 10
	FreeParkingCell = 20
	GoToJailCell    = 30
	Size            = 40
)

// groupSizes is a fixed table; the two cheapest groups have two members,
// every other color group has three.
var groupSizes = map[string]int{
	"brown":      2,
	"light_blue": 3,
	"pink":       3,
	"orange":     3,
	"red":        3,
	"yellow":     3,
	"green":      3,
	"dark_blue":  2,
}

func GroupSize(group string) int {
	return groupSizes[group]
}

func prop(id int, name, group string, price, houseCost int, rent [6]int) models.Cell {
	return models.Cell{Id: id, Name: name, Kind: models.CellProperty, Group: group, Price: price, HouseCost: houseCost, Rent: rent}
}

func station(id int, name string) models.Cell {
	return models.Cell{Id: id, Name: name, Kind: models.CellStation, Price: 200}
}

func utility(id int, name string) models.Cell {
	return models.Cell{Id: id, Name: name, Kind: models.CellUtility, Price: 150}
}

// NewCells returns a fresh 40-cell board with empty ownership slots,
// indexed by position.
func NewCells() []models.Cell {
	return []models.Cell{
		{Id: 0, Name: "Go", Kind: models.CellGo},
		prop(1, "Mediterranean Avenue", "brown", 60, 50, [6]int{2, 10, 30, 90, 160, 250}),
		{Id: 2, Name: "Community Chest", Kind: models.CellChest},
		prop(3, "Baltic Avenue", "brown", 60, 50, [6]int{4, 20, 60, 180, 320, 450}),
		{Id: 4, Name: "Income Tax", Kind: models.CellTax, Tax: 200},
		station(5, "Reading Railroad"),
		prop(6, "Oriental Avenue", "light_blue", 100, 50, [6]int{6, 30, 90, 270, 400, 550}),
		{Id: 7, Name: "Chance", Kind: models.CellChance},
		prop(8, "Vermont Avenue", "light_blue", 100, 50, [6]int{6, 30, 90, 270, 400, 550}),
		prop(9, "Connecticut Avenue", "light_blue", 120, 50, [6]int{8, 40, 100, 300, 450, 600}),
		{Id: 10, Name: "Jail", Kind: models.CellJail},
		prop(11, "St. Charles Place", "pink", 140, 100, [6]int{10, 50, 150, 450, 625, 750}),
		utility(12, "Electric Company"),
		prop(13, "States Avenue", "pink", 140, 100, [6]int{10, 50, 150, 450, 625, 750}),
		prop(14, "Virginia Avenue", "pink", 160, 100, [6]int{12, 60, 180, 500, 700, 900}),
		station(15, "Pennsylvania Railroad"),
		prop(16, "St. James Place", "orange", 180, 100, [6]int{14, 70, 200, 550, 750, 950}),
		{Id: 17, Name: "Community Chest", Kind: models.CellChest},
		prop(18, "Tennessee Avenue", "orange", 180, 100, [6]int{14, 70, 200, 550, 750, 950}),
		prop(19, "New York Avenue", "orange", 200, 100, [6]int{16, 80, 220, 600, 800, 1000}),
		{Id: 20, Name: "Free Parking", Kind: models.CellFreeParking},
		prop(21, "Kentucky Avenue", "red", 220, 150, [6]int{18, 90, 250, 700, 875, 1050}),
		{Id: 22, Name: "Chance", Kind: models.CellChance},
		prop(23, "Indiana Avenue", "red", 220, 150, [6]int{18, 90, 250, 700, 875, 1050}),
		prop(24, "Illinois Avenue", "red", 240, 150, [6]int{20, 100, 300, 750, 925, 1100}),
		station(25, "B&O Railroad"),
		prop(26, "Atlantic Avenue", "yellow", 260, 150, [6]int{22, 110, 330, 800, 975, 1150}),
		prop(27, "Ventnor Avenue", "yellow", 260, 150, [6]int{22, 110, 330, 800, 975, 1150}),
		utility(28, "Water Works"),
		prop(29, "Marvin Gardens", "yellow", 280, 150, [6]int{24, 120, 360, 850, 1025, 1200}),
		{Id: 30, Name: "Go To Jail", Kind: models.CellGoToJail},
		prop(31, "Pacific Avenue", "green", 300, 200, [6]int{26, 130, 390, 900, 1100, 1275}),
		prop(32, "North Carolina Avenue", "green", 300, 200, [6]int{26, 130, 390, 900, 1100, 1275}),
		{Id: 33, Name: "Community Chest", Kind: models.CellChest},
		prop(34, "Pennsylvania Avenue", "green", 320, 200, [6]int{28, 150, 450, 1000, 1200, 1400}),
		station(35, "Short Line"),
		{Id: 36, Name: "Chance", Kind: models.CellChance},
		prop(37, "Park Place", "dark_blue", 350, 200, [6]int{35, 175, 500, 1100, 1300, 1500}),
		{Id: 38, Name: "Luxury Tax", Kind: models.CellTax, Tax: 100},
		prop(39, "Boardwalk", "dark_blue", 400, 200, [6]int{50, 200, 600, 1400, 1700, 2000}),
	}
}

// GetCell resolves a position to its cell, wrapping modulo the board size.
func GetCell(cells []models.Cell, pos int) *models.Cell {
	i := pos % Size
	if i < 0 {
		i += Size
	}
	return &cells[i]
}

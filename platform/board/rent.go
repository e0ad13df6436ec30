package board

import (
	"errors"
	"fmt"

	"github.com/DedS3t/monopoly-engine/app/models"
)

var stationRent = [4]int{25, 50, 100, 200}

// Assets partitions one owner's holdings by cell kind.
type Assets struct {
	Properties []int
	Stations   []int
	Utilities  []int
}

// OwnerAssets collects the cell ids owned by the given player.
func OwnerAssets(cells []models.Cell, owner string) Assets {
	var a Assets
	for _, c := range cells {
		if c.Owner != owner || owner == "" {
			continue
		}
		switch c.Kind {
		case models.CellProperty:
			a.Properties = append(a.Properties, c.Id)
		case models.CellStation:
			a.Stations = append(a.Stations, c.Id)
		case models.CellUtility:
			a.Utilities = append(a.Utilities, c.Id)
		}
	}
	return a
}

// OwnsFullGroup reports whether owner holds every cell of the color group.
func OwnsFullGroup(cells []models.Cell, owner, group string) bool {
	if owner == "" || group == "" {
		return false
	}
	n := 0
	for _, c := range cells {
		if c.Kind == models.CellProperty && c.Group == group && c.Owner == owner {
			n++
		}
	}
	return n == GroupSize(group)
}

// ComputeRent returns the rent due when landing on cell with the given dice
// total. Unowned and mortgaged cells charge nothing.
func ComputeRent(cells []models.Cell, cell *models.Cell, diceTotal int) int {
	if cell.Owner == "" || cell.Mortgaged {
		return 0
	}
	switch cell.Kind {
	case models.CellProperty:
		if cell.Hotel {
			return cell.Rent[5]
		}
		if cell.Houses > 0 {
			return cell.Rent[cell.Houses]
		}
		if OwnsFullGroup(cells, cell.Owner, cell.Group) {
			return cell.Rent[0] * 2
		}
		return cell.Rent[0]
	case models.CellStation:
		owned := len(OwnerAssets(cells, cell.Owner).Stations)
		idx := owned - 1
		if idx > 3 {
			idx = 3
		}
		return stationRent[idx]
	case models.CellUtility:
		if len(OwnerAssets(cells, cell.Owner).Utilities) == 1 {
			return diceTotal * 4
		}
		return diceTotal * 10
	}
	return 0
}

// CanBuildHouse validates a house purchase on the cell. Building requires
// the whole color group, no mortgage anywhere in the group, and level
// development: a cell may only gain a house while its count is at the group
// minimum. The fifth house becomes a hotel.
func CanBuildHouse(cells []models.Cell, owner string, cellId int) error {
	if cellId < 0 || cellId >= Size {
		return fmt.Errorf("no cell at position %d", cellId)
	}
	cell := &cells[cellId]
	if cell.Kind != models.CellProperty {
		return errors.New("houses can only be built on properties")
	}
	if cell.Owner != owner {
		return errors.New("you do not own this property")
	}
	if !OwnsFullGroup(cells, owner, cell.Group) {
		return errors.New("you must own the whole color group to build")
	}
	if cell.Hotel {
		return errors.New("this property already has a hotel")
	}
	min := 5
	for _, c := range cells {
		if c.Kind != models.CellProperty || c.Group != cell.Group {
			continue
		}
		if c.Mortgaged {
			return errors.New("cannot build while the group is mortgaged")
		}
		h := c.Houses
		if c.Hotel {
			h = 5
		}
		if h < min {
			min = h
		}
	}
	if cell.Houses > min {
		return errors.New("build evenly across the group")
	}
	return nil
}

// BuildHouse applies a validated build; the fifth house converts to a hotel.
func BuildHouse(cells []models.Cell, owner string, cellId int) error {
	if err := CanBuildHouse(cells, owner, cellId); err != nil {
		return err
	}
	cell := &cells[cellId]
	if cell.Houses == 4 {
		cell.Houses = 0
		cell.Hotel = true
	} else {
		cell.Houses++
	}
	return nil
}

package board

import (
	"testing"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/stretchr/testify/require"
)

func TestNewCellsLayout(t *testing.T) {
	cells := NewCells()
	require.Len(t, cells, Size)
	for i, c := range cells {
		require.Equal(t, i, c.Id)
	}
	require.Equal(t, models.CellGo, cells[GoCell].Kind)
	require.Equal(t, models.CellJail, cells[JailCell].Kind)
	require.Equal(t, models.CellFreeParking, cells[FreeParkingCell].Kind)
	require.Equal(t, models.CellGoToJail, cells[GoToJailCell].Kind)
	require.Equal(t, 200, cells[4].Tax)
	require.Equal(t, 100, cells[38].Tax)
}

func TestGetCellWraps(t *testing.T) {
	cells := NewCells()
	require.Equal(t, 1, GetCell(cells, 41).Id)
	require.Equal(t, 0, GetCell(cells, 40).Id)
	require.Equal(t, 39, GetCell(cells, 79).Id)
}

func TestComputeRentUnownedOrMortgaged(t *testing.T) {
	cells := NewCells()
	require.Equal(t, 0, ComputeRent(cells, &cells[1], 7))

	cells[1].Owner = "A"
	cells[1].Mortgaged = true
	require.Equal(t, 0, ComputeRent(cells, &cells[1], 7))
}

func TestComputeRentBaseAndFullGroup(t *testing.T) {
	cells := NewCells()
	cells[1].Owner = "A"
	require.Equal(t, 2, ComputeRent(cells, &cells[1], 7))

	// Owning all of brown doubles the unimproved rent.
	cells[3].Owner = "A"
	require.Equal(t, 4, ComputeRent(cells, &cells[1], 7))
}

func TestComputeRentMonotonicWithHouses(t *testing.T) {
	cells := NewCells()
	cells[1].Owner = "A"
	cells[3].Owner = "A"

	prev := ComputeRent(cells, &cells[1], 7) // doubled base
	for h := 1; h <= 4; h++ {
		cells[1].Houses = h
		rent := ComputeRent(cells, &cells[1], 7)
		require.Greater(t, rent, prev, "rent with %d houses", h)
		prev = rent
	}
	cells[1].Houses = 0
	cells[1].Hotel = true
	require.GreaterOrEqual(t, ComputeRent(cells, &cells[1], 7), prev)
}

func TestComputeRentStations(t *testing.T) {
	cells := NewCells()
	stations := []int{5, 15, 25, 35}
	expected := []int{25, 50, 100, 200}
	for i, pos := range stations {
		cells[pos].Owner = "A"
		require.Equal(t, expected[i], ComputeRent(cells, &cells[5], 7))
	}
}

func TestComputeRentUtilities(t *testing.T) {
	cells := NewCells()
	cells[12].Owner = "A"
	require.Equal(t, 28, ComputeRent(cells, &cells[12], 7))

	cells[28].Owner = "A"
	require.Equal(t, 70, ComputeRent(cells, &cells[12], 7))
}

func TestCanBuildHouseRequiresFullGroup(t *testing.T) {
	cells := NewCells()
	cells[1].Owner = "A"
	require.Error(t, CanBuildHouse(cells, "A", 1))

	cells[3].Owner = "A"
	require.NoError(t, CanBuildHouse(cells, "A", 1))
	require.Error(t, CanBuildHouse(cells, "B", 1))
}

func TestCanBuildHouseLevelRule(t *testing.T) {
	cells := NewCells()
	cells[1].Owner = "A"
	cells[3].Owner = "A"

	require.NoError(t, BuildHouse(cells, "A", 1))
	require.Equal(t, 1, cells[1].Houses)

	// The group minimum is 0, so a second house here is uneven.
	require.Error(t, CanBuildHouse(cells, "A", 1))
	require.NoError(t, BuildHouse(cells, "A", 3))
	require.NoError(t, BuildHouse(cells, "A", 1))
}

func TestCanBuildHouseMortgagedGroup(t *testing.T) {
	cells := NewCells()
	cells[1].Owner = "A"
	cells[3].Owner = "A"
	cells[3].Mortgaged = true
	require.Error(t, CanBuildHouse(cells, "A", 1))
}

func TestBuildHouseFifthBecomesHotel(t *testing.T) {
	cells := NewCells()
	cells[1].Owner = "A"
	cells[3].Owner = "A"
	for i := 0; i < 4; i++ {
		require.NoError(t, BuildHouse(cells, "A", 1))
		require.NoError(t, BuildHouse(cells, "A", 3))
	}
	require.Equal(t, 4, cells[1].Houses)
	require.NoError(t, BuildHouse(cells, "A", 1))
	require.True(t, cells[1].Hotel)
	require.Equal(t, 0, cells[1].Houses)

	// A hotel-complete cell cannot build further.
	require.Error(t, CanBuildHouse(cells, "A", 1))
}

func TestOwnerAssetsPartition(t *testing.T) {
	cells := NewCells()
	cells[1].Owner = "A"
	cells[5].Owner = "A"
	cells[12].Owner = "A"
	cells[3].Owner = "B"

	a := OwnerAssets(cells, "A")
	require.Equal(t, []int{1}, a.Properties)
	require.Equal(t, []int{5}, a.Stations)
	require.Equal(t, []int{12}, a.Utilities)
}

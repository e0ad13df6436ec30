package models

type CellKind string

const (
	CellGo          CellKind = "go"
	CellProperty    CellKind = "property"
	CellStation     CellKind = "station"
	CellUtility     CellKind = "utility"
	CellChance      CellKind = "chance"
	CellChest       CellKind = "chest"
	CellTax         CellKind = "tax"
	CellJail        CellKind = "jail"
	CellGoToJail    CellKind = "go_to_jail"
	CellFreeParking CellKind = "free_parking"
)

// Cell is one of the 40 board positions. The template fields (name, kind,
// group, pricing, rent schedule) never change after the board is built;
// Owner, Houses, Hotel and Mortgaged are the mutable per-game slots.
type Cell struct {
	Id        int      `json:"id"`
	Name      string   `json:"name"`
	Kind      CellKind `json:"kind"`
	Group     string   `json:"group,omitempty"`
	Price     int      `json:"price,omitempty"`
	HouseCost int      `json:"house_cost,omitempty"`
	Rent      [6]int   `json:"rent"` // rent at 0-4 houses, then hotel
	Tax       int      `json:"tax,omitempty"`
	Houses    int      `json:"houses"`
	Hotel     bool     `json:"hotel"`
	Owner     string   `json:"owner,omitempty"` // empty means unowned
	Mortgaged bool     `json:"mortgaged"`
}

// Ownable reports whether the cell can be bought at all.
func (c *Cell) Ownable() bool {
	return c.Kind == CellProperty || c.Kind == CellStation || c.Kind == CellUtility
}

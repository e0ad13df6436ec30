package models

type PlayerStatus string

const (
	PlayerActive   PlayerStatus = "active"
	PlayerInJail   PlayerStatus = "in_jail"
	PlayerBankrupt PlayerStatus = "bankrupt"
)

// Player is the lobby membership row kept in Postgres while a game is open.
type Player struct {
	User_id  string
	Game_id  string
	Username string
	Active   string
}

// PlayerState is the authoritative in-game state of one participant.
// Money may go negative transiently when a rent or tax exceeds the balance;
// that signals a pending bankruptcy the player has to resolve.
type PlayerState struct {
	Id         string       `json:"id"`
	Name       string       `json:"name"`
	Color      string       `json:"color"`
	Money      int          `json:"money"`
	Position   int          `json:"position"`
	Properties []int        `json:"properties"`
	Stations   []int        `json:"stations"`
	Utilities  []int        `json:"utilities"`
	InJail     bool         `json:"in_jail"`
	JailTurns  int          `json:"jail_turns"`
	JailCards  int          `json:"jail_cards"`
	Status     PlayerStatus `json:"status"`
	Stats      PlayerStats  `json:"stats"`
}

// PlayerStats are running counters for the end screen. They are never read
// back by the rules.
type PlayerStats struct {
	RentPaid       int `json:"rent_paid"`
	RentReceived   int `json:"rent_received"`
	TaxesPaid      int `json:"taxes_paid"`
	SalaryReceived int `json:"salary_received"`
}

// Owns reports whether the player holds the given cell id in any of the
// three holding sets.
func (p *PlayerState) Owns(cellId int) bool {
	for _, set := range [][]int{p.Properties, p.Stations, p.Utilities} {
		for _, id := range set {
			if id == cellId {
				return true
			}
		}
	}
	return false
}

package models

type GameState string

const (
	GameLobby      GameState = "lobby"
	GameInProgress GameState = "in_progress"
	GameFinished   GameState = "finished"
)

// SnapshotVersion tags persisted sessions so the format can evolve.
const SnapshotVersion = "1"

// SessionSnapshot is the versioned persistable form of a running game.
// Every mutable field of the session round-trips through it, including the
// remaining deck order and any still-pending trades.
type SessionSnapshot struct {
	Version      string           `json:"version"`
	Id           string           `json:"id"`
	Creator      string           `json:"creator"`
	State        GameState        `json:"state"`
	Players      []PlayerState    `json:"players"` // join order
	TurnOrder    []string         `json:"turn_order"`
	TurnIndex    int              `json:"turn_index"`
	TurnCount    int              `json:"turn_count"`
	Pot          int              `json:"free_parking_pot"`
	Doubles      int              `json:"doubles"`
	HasRolled    bool             `json:"has_rolled"`
	Cells        []Cell           `json:"cells"`
	ChanceDeck   []Card           `json:"chance_deck"`
	ChestDeck    []Card           `json:"chest_deck"`
	ActiveTrades []TradeOffer     `json:"active_trades"`
	TradeHistory []TradeOffer     `json:"trade_history"`
	Pending      *PendingDecision `json:"pending,omitempty"`
}

type PendingKind string

const (
	PendingPurchase PendingKind = "purchase"
	PendingDeficit  PendingKind = "deficit"
	PendingJail     PendingKind = "jail"
)

// PendingDecision blocks the turn until the named player resolves it.
// For deficits Creditor is empty when the money is owed to the bank or pot.
type PendingDecision struct {
	Kind     PendingKind `json:"kind"`
	Player   string      `json:"player"`
	CellId   int         `json:"cell_id,omitempty"`
	Amount   int         `json:"amount,omitempty"`
	Creditor string      `json:"creditor,omitempty"`
}

type DecisionKind string

const (
	DecideBuy        DecisionKind = "buy"
	DecideSkip       DecisionKind = "skip"
	DecideJailPay    DecisionKind = "jail_pay"
	DecideJailCard   DecisionKind = "jail_card"
	DecideJailRoll   DecisionKind = "jail_roll"
	DecideSellHouse  DecisionKind = "sell_house"
	DecideMortgage   DecisionKind = "mortgage"
	DecideUnmortgage DecisionKind = "unmortgage"
	DecideBankrupt   DecisionKind = "bankrupt"
)

// Decision is the caller's answer to a PendingDecision.
type Decision struct {
	Kind   DecisionKind `json:"kind"`
	CellId int          `json:"cell_id,omitempty"`
}

// TurnResult describes everything that happened during one roll so the
// front end can render it.
type TurnResult struct {
	Player    string           `json:"player"`
	Dice      [2]int           `json:"dice"`
	OldPos    int              `json:"old_pos"`
	NewPos    int              `json:"new_pos"`
	Cell      Cell             `json:"cell"`
	Action    string           `json:"action"`
	Message   string           `json:"message"`
	Delta     int              `json:"delta"` // net change to the roller's balance
	Card      *Card            `json:"card,omitempty"`
	ExtraTurn bool             `json:"extra_turn"`
	Pending   *PendingDecision `json:"pending,omitempty"`
}

// ActionResult is the outcome of a decision or trade call.
type ActionResult struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message"`
	Delta   int    `json:"delta"`
}

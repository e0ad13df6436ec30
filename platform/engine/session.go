package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/decks"
)

const (
	StartingBalance = 1500
	GoSalary        = 200
	JailFine        = 50
	MaxPlayers      = 6
	MaxJailAttempts = 3
)

// Palette is the fixed set of player colors, assigned in order of free slots.
var Palette = []string{"red", "blue", "green", "yellow", "purple", "orange"}

var (
	ErrNotInLobby      = errors.New("game is not accepting players")
	ErrNotInProgress   = errors.New("game is not in progress")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrAlreadyRolled   = errors.New("you have already rolled the dice")
	ErrMustRollFirst   = errors.New("you must roll the die first")
	ErrPendingDecision = errors.New("a pending decision must be resolved first")
)

// GameSession is the aggregate root of one game. All mutating operations
// take the session mutex, so commands against the same session never
// interleave; different sessions share no mutable state.
type GameSession struct {
	mu sync.Mutex

	Id      string
	Creator string

	state     models.GameState
	players   []*models.PlayerState // join order
	turnOrder []string
	turnIndex int
	turnCount int
	pot       int
	doubles   int
	hasRolled bool
	cells     []models.Cell
	chance    *decks.Deck
	chest     *decks.Deck
	trades    *tradeBook
	pending   *models.PendingDecision

	// Roll produces one throw of two dice. Swapped out in tests.
	Roll func() (int, int)
	now  func() time.Time
	rng  *rand.Rand
}

func NewSession(id, creator string) *GameSession {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &GameSession{
		Id:      id,
		Creator: creator,
		state:   models.GameLobby,
		cells:   board.NewCells(),
		chance:  decks.New(decks.ChanceCards),
		chest:   decks.New(decks.ChestCards),
		trades:  newTradeBook(),
		Roll:    func() (int, int) { return rng.Intn(6) + 1, rng.Intn(6) + 1 },
		now:     time.Now,
		rng:     rng,
	}
}

func (s *GameSession) State() models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AddPlayer joins a player while the game sits in the lobby. The first free
// palette color is assigned.
func (s *GameSession) AddPlayer(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.GameLobby {
		return ErrNotInLobby
	}
	if len(s.players) >= MaxPlayers {
		return errors.New("game is full")
	}
	if s.playerById(id) != nil {
		return errors.New("player already joined")
	}
	s.players = append(s.players, &models.PlayerState{
		Id:     id,
		Name:   name,
		Color:  s.freeColor(),
		Money:  StartingBalance,
		Status: models.PlayerActive,
	})
	return nil
}

// RemovePlayer drops a player. In the lobby their color is freed; mid-game
// they are excised from the turn order and their turn is skipped safely.
func (s *GameSession) RemovePlayer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.playerById(id)
	if p == nil {
		return errors.New("player not in game")
	}
	if s.state == models.GameLobby {
		for i, q := range s.players {
			if q.Id == id {
				s.players = append(s.players[:i], s.players[i+1:]...)
				break
			}
		}
		return nil
	}
	s.releaseAssets(p, "")
	p.Status = models.PlayerBankrupt
	s.exciseFromOrder(id)
	s.checkGameOver()
	return nil
}

// Start fixes a shuffled turn order and moves the session to in-progress.
// force permits a degenerate single-player start.
func (s *GameSession) Start(force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.GameLobby {
		return errors.New("game has already started")
	}
	if len(s.players) < 2 && !force {
		return errors.New("at least two players are required")
	}
	if len(s.players) == 0 {
		return errors.New("no players have joined")
	}
	s.turnOrder = make([]string, len(s.players))
	for i, p := range s.players {
		s.turnOrder[i] = p.Id
	}
	s.rng.Shuffle(len(s.turnOrder), func(i, j int) {
		s.turnOrder[i], s.turnOrder[j] = s.turnOrder[j], s.turnOrder[i]
	})
	s.turnIndex = 0
	s.turnCount = 1
	s.state = models.GameInProgress
	return nil
}

// EndTurn hands the turn to the next player in order. The current player
// must have rolled and have nothing pending.
func (s *GameSession) EndTurn(playerId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.GameInProgress {
		return ErrNotInProgress
	}
	if s.currentId() != playerId {
		return ErrNotYourTurn
	}
	if s.pending != nil {
		return ErrPendingDecision
	}
	if !s.hasRolled {
		return ErrMustRollFirst
	}
	s.advanceTurn()
	return nil
}

// End finishes the game regardless of remaining players.
func (s *GameSession) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.GameFinished
}

// Winner picks the single non-bankrupt player, or on a forced end the
// richest by current money. ok is false when nobody qualifies.
func (s *GameSession) Winner() (winner models.PlayerState, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var alive []*models.PlayerState
	for _, p := range s.players {
		if p.Status != models.PlayerBankrupt {
			alive = append(alive, p)
		}
	}
	if len(alive) == 0 {
		return models.PlayerState{}, false
	}
	best := alive[0]
	for _, p := range alive[1:] {
		if p.Money > best.Money {
			best = p
		}
	}
	if len(alive) == 1 {
		best = alive[0]
	}
	return *best, true
}

// CurrentPlayer returns the id of the player whose turn it is.
func (s *GameSession) CurrentPlayer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentId()
}

// Players returns a copy of the roster in join order.
func (s *GameSession) Players() []models.PlayerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PlayerState, len(s.players))
	for i, p := range s.players {
		out[i] = *p
	}
	return out
}

// Cells returns a copy of the board state.
func (s *GameSession) Cells() []models.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Cell, len(s.cells))
	copy(out, s.cells)
	return out
}

// --- internals (callers hold s.mu) ---

func (s *GameSession) playerById(id string) *models.PlayerState {
	for _, p := range s.players {
		if p.Id == id {
			return p
		}
	}
	return nil
}

func (s *GameSession) currentId() string {
	if len(s.turnOrder) == 0 {
		return ""
	}
	return s.turnOrder[s.turnIndex]
}

func (s *GameSession) currentPlayer() *models.PlayerState {
	return s.playerById(s.currentId())
}

func (s *GameSession) freeColor() string {
	for _, c := range Palette {
		taken := false
		for _, p := range s.players {
			if p.Color == c {
				taken = true
				break
			}
		}
		if !taken {
			return c
		}
	}
	return ""
}

func (s *GameSession) advanceTurn() {
	if len(s.turnOrder) == 0 {
		return
	}
	s.turnIndex = (s.turnIndex + 1) % len(s.turnOrder)
	s.turnCount++
	s.hasRolled = false
	s.doubles = 0
}

// exciseFromOrder removes the player and keeps turnIndex pointing at a
// valid entry. Only when it was the removed player's turn does the turn
// pass on; removing anyone else leaves the current turn untouched.
func (s *GameSession) exciseFromOrder(id string) {
	for i, pid := range s.turnOrder {
		if pid != id {
			continue
		}
		wasCurrent := i == s.turnIndex
		s.turnOrder = append(s.turnOrder[:i], s.turnOrder[i+1:]...)
		if len(s.turnOrder) == 0 {
			s.turnIndex = 0
			return
		}
		if i < s.turnIndex {
			s.turnIndex--
		}
		if s.turnIndex >= len(s.turnOrder) {
			s.turnIndex = 0
		}
		if wasCurrent {
			s.turnCount++
			s.hasRolled = false
			s.doubles = 0
		}
		return
	}
}

func (s *GameSession) checkGameOver() {
	alive := 0
	for _, p := range s.players {
		if p.Status != models.PlayerBankrupt {
			alive++
		}
	}
	if alive <= 1 {
		s.state = models.GameFinished
	}
}

// releaseAssets hands every cell the player owns to the creditor, or back
// to the bank when creditor is empty.
func (s *GameSession) releaseAssets(p *models.PlayerState, creditor string) {
	to := s.playerById(creditor)
	for i := range s.cells {
		c := &s.cells[i]
		if c.Owner != p.Id {
			continue
		}
		if to != nil {
			c.Owner = to.Id
			addHolding(to, c)
		} else {
			c.Owner = ""
			c.Houses = 0
			c.Hotel = false
			c.Mortgaged = false
		}
	}
	p.Properties, p.Stations, p.Utilities = nil, nil, nil
}

func addHolding(p *models.PlayerState, c *models.Cell) {
	switch c.Kind {
	case models.CellProperty:
		p.Properties = insertSorted(p.Properties, c.Id)
	case models.CellStation:
		p.Stations = insertSorted(p.Stations, c.Id)
	case models.CellUtility:
		p.Utilities = insertSorted(p.Utilities, c.Id)
	}
}

func removeHolding(p *models.PlayerState, c *models.Cell) {
	switch c.Kind {
	case models.CellProperty:
		p.Properties = removeId(p.Properties, c.Id)
	case models.CellStation:
		p.Stations = removeId(p.Stations, c.Id)
	case models.CellUtility:
		p.Utilities = removeId(p.Utilities, c.Id)
	}
}

func insertSorted(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			panic(fmt.Sprintf("cell %d already held", id))
		}
		if v > id {
			ids = append(ids, 0)
			copy(ids[i+1:], ids[i:])
			ids[i] = id
			return ids
		}
	}
	return append(ids, id)
}

func removeId(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	panic(fmt.Sprintf("cell %d not held", id))
}

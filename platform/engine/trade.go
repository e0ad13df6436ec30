package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/DedS3t/monopoly-engine/app/models"
	uuid "github.com/satori/go.uuid"
)

// TradeTTL bounds how long a proposal stays open.
const TradeTTL = 5 * time.Minute

var ErrTradeGone = errors.New("offer no longer available")

// tradeBook holds a session's open offers and its append-only history.
// Every session constructs its own book; nothing here is shared.
type tradeBook struct {
	active  map[string]*models.TradeOffer
	history []models.TradeOffer
}

func newTradeBook() *tradeBook {
	return &tradeBook{active: make(map[string]*models.TradeOffer)}
}

func (b *tradeBook) archive(t *models.TradeOffer, status models.TradeStatus) {
	t.Status = status
	delete(b.active, t.Id)
	b.history = append(b.history, *t)
}

// ProposeTrade validates and registers a bilateral offer. No money or
// ownership moves until acceptance.
func (s *GameSession) ProposeTrade(from, to string, offer, request models.TradeBundle) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.GameInProgress {
		return "", ErrNotInProgress
	}
	if err := s.validateTrade(from, to, offer, request); err != nil {
		return "", err
	}
	now := s.now()
	t := &models.TradeOffer{
		Id:        uuid.NewV4().String(),
		From:      from,
		To:        to,
		Offer:     offer,
		Request:   request,
		Status:    models.TradePending,
		CreatedAt: now,
		ExpiresAt: now.Add(TradeTTL),
	}
	s.trades.active[t.Id] = t
	return t.Id, nil
}

// AcceptTrade settles the offer atomically. Everything checked at proposal
// time is checked again here, since balances and ownership may have moved;
// a failed re-validation leaves the offer pending and both players
// untouched.
func (s *GameSession) AcceptTrade(tradeId, playerId string) (models.ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.liveTrade(tradeId)
	if err != nil {
		return models.ActionResult{}, err
	}
	if t.To != playerId {
		return models.ActionResult{}, errors.New("only the receiving player may accept")
	}
	if err := s.validateTrade(t.From, t.To, t.Offer, t.Request); err != nil {
		return models.ActionResult{}, err
	}

	from := s.playerById(t.From)
	to := s.playerById(t.To)
	from.Money -= t.Offer.Money
	to.Money += t.Offer.Money
	to.Money -= t.Request.Money
	from.Money += t.Request.Money
	for _, id := range t.Offer.Cells {
		s.reassignCell(id, from, to)
	}
	for _, id := range t.Request.Cells {
		s.reassignCell(id, to, from)
	}
	s.trades.archive(t, models.TradeAccepted)
	return models.ActionResult{Ok: true, Message: "Trade settled"}, nil
}

// RejectTrade lets the receiving player turn the offer down.
func (s *GameSession) RejectTrade(tradeId, playerId string) (models.ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.liveTrade(tradeId)
	if err != nil {
		return models.ActionResult{}, err
	}
	if t.To != playerId {
		return models.ActionResult{}, errors.New("only the receiving player may reject")
	}
	s.trades.archive(t, models.TradeRejected)
	return models.ActionResult{Ok: true, Message: "Trade rejected"}, nil
}

// CancelTrade lets the proposer withdraw a still-pending offer.
func (s *GameSession) CancelTrade(tradeId, playerId string) (models.ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.liveTrade(tradeId)
	if err != nil {
		return models.ActionResult{}, err
	}
	if t.From != playerId {
		return models.ActionResult{}, errors.New("only the proposer may cancel")
	}
	s.trades.archive(t, models.TradeCancelled)
	return models.ActionResult{Ok: true, Message: "Trade cancelled"}, nil
}

// SweepTrades expires every pending offer past its deadline and returns how
// many were swept. Driven by an external scheduler.
func (s *GameSession) SweepTrades() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for _, t := range s.trades.active {
		if now.After(t.ExpiresAt) {
			s.trades.archive(t, models.TradeExpired)
			n++
		}
	}
	return n
}

// ActiveTrades returns a copy of the open offers.
func (s *GameSession) ActiveTrades() []models.TradeOffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TradeOffer, 0, len(s.trades.active))
	for _, t := range s.trades.active {
		out = append(out, *t)
	}
	return out
}

// TradeHistory returns the archived offers in settlement order.
func (s *GameSession) TradeHistory() []models.TradeOffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TradeOffer, len(s.trades.history))
	copy(out, s.trades.history)
	return out
}

// liveTrade resolves a pending offer, lazily expiring it when its deadline
// has passed. Expired, settled and unknown offers all report ErrTradeGone.
func (s *GameSession) liveTrade(tradeId string) (*models.TradeOffer, error) {
	t, ok := s.trades.active[tradeId]
	if !ok {
		return nil, ErrTradeGone
	}
	if s.now().After(t.ExpiresAt) {
		s.trades.archive(t, models.TradeExpired)
		return nil, ErrTradeGone
	}
	return t, nil
}

func (s *GameSession) validateTrade(from, to string, offer, request models.TradeBundle) error {
	if from == to {
		return errors.New("cannot trade with yourself")
	}
	if offer.Money < 0 || request.Money < 0 {
		return errors.New("money amounts cannot be negative")
	}
	for _, side := range []struct {
		id     string
		bundle models.TradeBundle
	}{{from, offer}, {to, request}} {
		p := s.playerById(side.id)
		if p == nil {
			return fmt.Errorf("unknown player %s", side.id)
		}
		if p.Status != models.PlayerActive {
			return fmt.Errorf("%s cannot trade right now", p.Name)
		}
		if p.Money < side.bundle.Money {
			return fmt.Errorf("%s cannot afford this trade", p.Name)
		}
		for _, id := range side.bundle.Cells {
			if id < 0 || id >= len(s.cells) {
				return fmt.Errorf("no cell at position %d", id)
			}
			cell := &s.cells[id]
			if !cell.Ownable() {
				return fmt.Errorf("%s cannot be traded", cell.Name)
			}
			if cell.Owner != side.id {
				return fmt.Errorf("%s does not own %s", p.Name, cell.Name)
			}
			if cell.Mortgaged {
				return fmt.Errorf("%s is mortgaged", cell.Name)
			}
			if cell.Houses > 0 || cell.Hotel {
				return fmt.Errorf("sell the houses on %s before trading it", cell.Name)
			}
		}
	}
	return nil
}

func (s *GameSession) reassignCell(cellId int, from, to *models.PlayerState) {
	cell := &s.cells[cellId]
	if cell.Owner != from.Id {
		panic(fmt.Sprintf("cell %d not owned by %s during settlement", cellId, from.Id))
	}
	removeHolding(from, cell)
	cell.Owner = to.Id
	addHolding(to, cell)
}

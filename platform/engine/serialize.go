package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/decks"
)

// Snapshot captures every mutable field of the session, including the
// remaining deck order and still-pending trades, so a restored game replays
// identically.
func (s *GameSession) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.SessionSnapshot{
		Version:   models.SnapshotVersion,
		Id:        s.Id,
		Creator:   s.Creator,
		State:     s.state,
		TurnIndex: s.turnIndex,
		TurnCount: s.turnCount,
		Pot:       s.pot,
		Doubles:   s.doubles,
		HasRolled: s.hasRolled,
	}
	snap.Players = make([]models.PlayerState, len(s.players))
	for i, p := range s.players {
		snap.Players[i] = copyPlayer(p)
	}
	snap.TurnOrder = append([]string(nil), s.turnOrder...)
	snap.Cells = append([]models.Cell(nil), s.cells...)
	snap.ChanceDeck = s.chance.Remaining()
	snap.ChestDeck = s.chest.Remaining()

	snap.ActiveTrades = make([]models.TradeOffer, 0, len(s.trades.active))
	for _, t := range s.trades.active {
		snap.ActiveTrades = append(snap.ActiveTrades, copyTrade(t))
	}
	sort.Slice(snap.ActiveTrades, func(i, j int) bool {
		a, b := snap.ActiveTrades[i], snap.ActiveTrades[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Id < b.Id
	})
	snap.TradeHistory = make([]models.TradeOffer, len(s.trades.history))
	for i := range s.trades.history {
		snap.TradeHistory[i] = copyTrade(&s.trades.history[i])
	}
	if s.pending != nil {
		p := *s.pending
		snap.Pending = &p
	}
	return snap
}

// RestoreSession rebuilds a live session from a snapshot.
func RestoreSession(snap models.SessionSnapshot) (*GameSession, error) {
	if snap.Version != models.SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %q", snap.Version)
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	s := &GameSession{
		Id:        snap.Id,
		Creator:   snap.Creator,
		state:     snap.State,
		turnIndex: snap.TurnIndex,
		turnCount: snap.TurnCount,
		pot:       snap.Pot,
		doubles:   snap.Doubles,
		hasRolled: snap.HasRolled,
		trades:    newTradeBook(),
		Roll:      func() (int, int) { return rng.Intn(6) + 1, rng.Intn(6) + 1 },
		now:       time.Now,
		rng:       rng,
	}
	s.players = make([]*models.PlayerState, len(snap.Players))
	for i := range snap.Players {
		p := copyPlayer(&snap.Players[i])
		s.players[i] = &p
	}
	s.turnOrder = append([]string(nil), snap.TurnOrder...)
	s.cells = append([]models.Cell(nil), snap.Cells...)
	s.chance = decks.Restore(decks.ChanceCards, snap.ChanceDeck)
	s.chest = decks.Restore(decks.ChestCards, snap.ChestDeck)
	for i := range snap.ActiveTrades {
		t := copyTrade(&snap.ActiveTrades[i])
		s.trades.active[t.Id] = &t
	}
	s.trades.history = make([]models.TradeOffer, len(snap.TradeHistory))
	for i := range snap.TradeHistory {
		s.trades.history[i] = copyTrade(&snap.TradeHistory[i])
	}
	if snap.Pending != nil {
		p := *snap.Pending
		s.pending = &p
	}
	return s, nil
}

func copyPlayer(p *models.PlayerState) models.PlayerState {
	out := *p
	out.Properties = append([]int(nil), p.Properties...)
	out.Stations = append([]int(nil), p.Stations...)
	out.Utilities = append([]int(nil), p.Utilities...)
	return out
}

func copyTrade(t *models.TradeOffer) models.TradeOffer {
	out := *t
	out.Offer.Cells = append([]int(nil), t.Offer.Cells...)
	out.Request.Cells = append([]int(nil), t.Request.Cells...)
	return out
}

package engine

import (
	"errors"
	"sync"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/pkg"
	"github.com/rs/zerolog"
)

var ErrNoSuchGame = errors.New("no such game")

// SnapshotStore persists session snapshots. Saves happen after a command
// has committed in memory and never hold the session lock; a failed save
// leaves the in-memory session authoritative.
type SnapshotStore interface {
	SaveSnapshot(snap models.SessionSnapshot) error
	LoadSnapshot(gameId string) (models.SessionSnapshot, error)
}

// Service owns the live sessions. It is handed to the HTTP and socket
// layers; there is no process-wide registry.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*GameSession
	store    SnapshotStore
	log      zerolog.Logger
}

// NewService builds a service. store may be nil for purely in-memory games.
func NewService(store SnapshotStore, log zerolog.Logger) *Service {
	return &Service{
		sessions: make(map[string]*GameSession),
		store:    store,
		log:      log,
	}
}

// CreateSession opens a new lobby and returns its id.
func (svc *Service) CreateSession(creator string) string {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	id := pkg.RandString(8)
	for svc.sessions[id] != nil {
		id = pkg.RandString(8)
	}
	svc.sessions[id] = NewSession(id, creator)
	svc.log.Info().Str("game", id).Str("creator", creator).Msg("session created")
	return id
}

// Get returns the live session for an id.
func (svc *Service) Get(id string) (*GameSession, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	s, ok := svc.sessions[id]
	if !ok {
		return nil, ErrNoSuchGame
	}
	return s, nil
}

// Remove drops a finished session from the store.
func (svc *Service) Remove(id string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	delete(svc.sessions, id)
}

// Restore loads a persisted session back into memory.
func (svc *Service) Restore(gameId string) (*GameSession, error) {
	if svc.store == nil {
		return nil, errors.New("no snapshot store configured")
	}
	snap, err := svc.store.LoadSnapshot(gameId)
	if err != nil {
		return nil, err
	}
	s, err := RestoreSession(snap)
	if err != nil {
		return nil, err
	}
	svc.mu.Lock()
	svc.sessions[gameId] = s
	svc.mu.Unlock()
	svc.log.Info().Str("game", gameId).Msg("session restored")
	return s, nil
}

// persist saves the session outside its critical section. Failures are
// logged and reported via the log only; memory stays authoritative.
func (svc *Service) persist(s *GameSession) {
	if svc.store == nil {
		return
	}
	snap := s.Snapshot()
	if err := svc.store.SaveSnapshot(snap); err != nil {
		svc.log.Error().Err(err).Str("game", s.Id).Msg("saving snapshot failed")
	}
}

func (svc *Service) Join(gameId, playerId, name string) error {
	s, err := svc.Get(gameId)
	if err != nil {
		return err
	}
	if err := s.AddPlayer(playerId, name); err != nil {
		return err
	}
	svc.persist(s)
	return nil
}

func (svc *Service) Leave(gameId, playerId string) error {
	s, err := svc.Get(gameId)
	if err != nil {
		return err
	}
	if err := s.RemovePlayer(playerId); err != nil {
		return err
	}
	svc.persist(s)
	return nil
}

func (svc *Service) Start(gameId string, force bool) error {
	s, err := svc.Get(gameId)
	if err != nil {
		return err
	}
	if err := s.Start(force); err != nil {
		return err
	}
	svc.log.Info().Str("game", gameId).Msg("game started")
	svc.persist(s)
	return nil
}

func (svc *Service) TakeTurn(gameId, playerId string) (models.TurnResult, error) {
	s, err := svc.Get(gameId)
	if err != nil {
		return models.TurnResult{}, err
	}
	res, err := s.TakeTurn(playerId)
	if err != nil {
		return models.TurnResult{}, err
	}
	svc.persist(s)
	return res, nil
}

func (svc *Service) ResolveDecision(gameId, playerId string, d models.Decision) (models.ActionResult, error) {
	s, err := svc.Get(gameId)
	if err != nil {
		return models.ActionResult{}, err
	}
	res, err := s.ResolveDecision(playerId, d)
	if err != nil {
		return models.ActionResult{}, err
	}
	svc.persist(s)
	return res, nil
}

func (svc *Service) BuildHouse(gameId, playerId string, cellId int) (models.ActionResult, error) {
	s, err := svc.Get(gameId)
	if err != nil {
		return models.ActionResult{}, err
	}
	res, err := s.BuildHouse(playerId, cellId)
	if err != nil {
		return models.ActionResult{}, err
	}
	svc.persist(s)
	return res, nil
}

func (svc *Service) EndTurn(gameId, playerId string) error {
	s, err := svc.Get(gameId)
	if err != nil {
		return err
	}
	if err := s.EndTurn(playerId); err != nil {
		return err
	}
	svc.persist(s)
	return nil
}

func (svc *Service) ProposeTrade(gameId, from, to string, offer, request models.TradeBundle) (string, error) {
	s, err := svc.Get(gameId)
	if err != nil {
		return "", err
	}
	id, err := s.ProposeTrade(from, to, offer, request)
	if err != nil {
		return "", err
	}
	svc.persist(s)
	return id, nil
}

func (svc *Service) AcceptTrade(gameId, tradeId, playerId string) (models.ActionResult, error) {
	return svc.tradeCall(gameId, tradeId, playerId, (*GameSession).AcceptTrade)
}

func (svc *Service) RejectTrade(gameId, tradeId, playerId string) (models.ActionResult, error) {
	return svc.tradeCall(gameId, tradeId, playerId, (*GameSession).RejectTrade)
}

func (svc *Service) CancelTrade(gameId, tradeId, playerId string) (models.ActionResult, error) {
	return svc.tradeCall(gameId, tradeId, playerId, (*GameSession).CancelTrade)
}

func (svc *Service) tradeCall(gameId, tradeId, playerId string, op func(*GameSession, string, string) (models.ActionResult, error)) (models.ActionResult, error) {
	s, err := svc.Get(gameId)
	if err != nil {
		return models.ActionResult{}, err
	}
	res, err := op(s, tradeId, playerId)
	if err != nil {
		return models.ActionResult{}, err
	}
	svc.persist(s)
	return res, nil
}

// SweepTrades expires overdue offers in every live session. Invoked by an
// external ticker, not self-scheduled.
func (svc *Service) SweepTrades() int {
	svc.mu.RLock()
	sessions := make([]*GameSession, 0, len(svc.sessions))
	for _, s := range svc.sessions {
		sessions = append(sessions, s)
	}
	svc.mu.RUnlock()

	total := 0
	for _, s := range sessions {
		if n := s.SweepTrades(); n > 0 {
			total += n
			svc.log.Info().Str("game", s.Id).Int("expired", n).Msg("swept expired trades")
			svc.persist(s)
		}
	}
	return total
}

// EndGame force-finishes a session and reports the winner if any.
func (svc *Service) EndGame(gameId string) (models.PlayerState, bool, error) {
	s, err := svc.Get(gameId)
	if err != nil {
		return models.PlayerState{}, false, err
	}
	s.End()
	winner, ok := s.Winner()
	svc.persist(s)
	return winner, ok, nil
}

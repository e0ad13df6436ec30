package engine

import (
	"testing"
	"time"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/stretchr/testify/require"
)

func tradeSession(t *testing.T) *GameSession {
	s := testSession(t, "A", "B")
	s.now = func() time.Time { return time.Date(2021, 5, 1, 12, 0, 0, 0, time.UTC) }
	giveCell(s, "B", 1)
	return s
}

func TestProposeTradeValidation(t *testing.T) {
	s := tradeSession(t)

	_, err := s.ProposeTrade("A", "A", models.TradeBundle{Money: 10}, models.TradeBundle{})
	require.Error(t, err, "self trade")

	_, err = s.ProposeTrade("A", "ghost", models.TradeBundle{}, models.TradeBundle{})
	require.Error(t, err, "unknown counterpart")

	_, err = s.ProposeTrade("A", "B", models.TradeBundle{Money: 2000}, models.TradeBundle{})
	require.Error(t, err, "proposer cannot afford the offer")

	_, err = s.ProposeTrade("A", "B", models.TradeBundle{}, models.TradeBundle{Money: 2000})
	require.Error(t, err, "counterpart cannot afford the request")

	_, err = s.ProposeTrade("A", "B", models.TradeBundle{Cells: []int{1}}, models.TradeBundle{})
	require.Error(t, err, "offered cell belongs to the other side")

	s.cells[1].Mortgaged = true
	_, err = s.ProposeTrade("A", "B", models.TradeBundle{Money: 100}, models.TradeBundle{Cells: []int{1}})
	require.Error(t, err, "mortgaged cell")
	s.cells[1].Mortgaged = false

	s.sendToJail(s.playerById("B"))
	_, err = s.ProposeTrade("A", "B", models.TradeBundle{Money: 100}, models.TradeBundle{Cells: []int{1}})
	require.Error(t, err, "jailed counterpart")
	s.releaseFromJail(s.playerById("B"))

	id, err := s.ProposeTrade("A", "B", models.TradeBundle{Money: 100}, models.TradeBundle{Cells: []int{1}})
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Len(t, s.ActiveTrades(), 1)
	require.Equal(t, StartingBalance, s.playerById("A").Money, "proposal moves no money")
}

func TestAcceptTradeSettlesAtomically(t *testing.T) {
	s := tradeSession(t)
	before := totalMoney(s)

	id, err := s.ProposeTrade("A", "B", models.TradeBundle{Money: 100}, models.TradeBundle{Cells: []int{1}})
	require.NoError(t, err)

	res, err := s.AcceptTrade(id, "B")
	require.NoError(t, err)
	require.True(t, res.Ok)

	a := s.playerById("A")
	b := s.playerById("B")
	require.Equal(t, StartingBalance-100, a.Money)
	require.Equal(t, StartingBalance+100, b.Money)
	require.Equal(t, "A", s.cells[1].Owner)
	require.Equal(t, []int{1}, a.Properties)
	require.Empty(t, b.Properties)
	require.Equal(t, before, totalMoney(s))

	require.Empty(t, s.ActiveTrades())
	history := s.TradeHistory()
	require.Len(t, history, 1)
	require.Equal(t, models.TradeAccepted, history[0].Status)
}

func TestAcceptOnlyByReceiver(t *testing.T) {
	s := tradeSession(t)
	id, err := s.ProposeTrade("A", "B", models.TradeBundle{Money: 100}, models.TradeBundle{Cells: []int{1}})
	require.NoError(t, err)

	_, err = s.AcceptTrade(id, "A")
	require.Error(t, err)
	require.Len(t, s.ActiveTrades(), 1, "offer survives the bad accept")
}

func TestAcceptRevalidatesAndAborts(t *testing.T) {
	s := tradeSession(t)
	id, err := s.ProposeTrade("A", "B", models.TradeBundle{Money: 100}, models.TradeBundle{Cells: []int{1}})
	require.NoError(t, err)

	// A's balance changed between proposal and acceptance.
	s.playerById("A").Money = 50

	_, err = s.AcceptTrade(id, "B")
	require.Error(t, err)

	// Nothing moved and the offer stays pending for a retry.
	require.Equal(t, 50, s.playerById("A").Money)
	require.Equal(t, StartingBalance, s.playerById("B").Money)
	require.Equal(t, "B", s.cells[1].Owner)
	trades := s.ActiveTrades()
	require.Len(t, trades, 1)
	require.Equal(t, models.TradePending, trades[0].Status)

	// Once the proposer can pay again the same offer settles.
	s.playerById("A").Money = StartingBalance
	_, err = s.AcceptTrade(id, "B")
	require.NoError(t, err)
	require.Equal(t, "A", s.cells[1].Owner)
}

func TestRejectAndCancelAuthorization(t *testing.T) {
	s := tradeSession(t)

	id, err := s.ProposeTrade("A", "B", models.TradeBundle{Money: 100}, models.TradeBundle{Cells: []int{1}})
	require.NoError(t, err)

	_, err = s.RejectTrade(id, "A")
	require.Error(t, err, "only the receiver rejects")
	_, err = s.CancelTrade(id, "B")
	require.Error(t, err, "only the proposer cancels")

	_, err = s.RejectTrade(id, "B")
	require.NoError(t, err)
	require.Equal(t, models.TradeRejected, s.TradeHistory()[0].Status)

	id, err = s.ProposeTrade("A", "B", models.TradeBundle{Money: 100}, models.TradeBundle{Cells: []int{1}})
	require.NoError(t, err)
	_, err = s.CancelTrade(id, "A")
	require.NoError(t, err)
	require.Equal(t, models.TradeCancelled, s.TradeHistory()[1].Status)

	_, err = s.AcceptTrade(id, "B")
	require.ErrorIs(t, err, ErrTradeGone, "terminal offers cannot be accepted")
}

func TestAcceptAfterExpiry(t *testing.T) {
	s := tradeSession(t)
	created := time.Date(2021, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return created }

	id, err := s.ProposeTrade("A", "B", models.TradeBundle{Money: 100}, models.TradeBundle{Cells: []int{1}})
	require.NoError(t, err)

	s.now = func() time.Time { return created.Add(TradeTTL + time.Second) }

	_, err = s.AcceptTrade(id, "B")
	require.ErrorIs(t, err, ErrTradeGone)

	require.Empty(t, s.ActiveTrades())
	history := s.TradeHistory()
	require.Len(t, history, 1)
	require.Equal(t, models.TradeExpired, history[0].Status)
	require.Equal(t, "B", s.cells[1].Owner, "nothing moved")
}

func TestSweepTrades(t *testing.T) {
	s := tradeSession(t)
	created := time.Date(2021, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return created }

	_, err := s.ProposeTrade("A", "B", models.TradeBundle{Money: 100}, models.TradeBundle{Cells: []int{1}})
	require.NoError(t, err)
	_, err = s.ProposeTrade("B", "A", models.TradeBundle{Money: 5}, models.TradeBundle{Money: 5})
	require.NoError(t, err)

	require.Equal(t, 0, s.SweepTrades(), "nothing due yet")

	s.now = func() time.Time { return created.Add(TradeTTL + time.Minute) }
	require.Equal(t, 2, s.SweepTrades())
	require.Empty(t, s.ActiveTrades())
	require.Len(t, s.TradeHistory(), 2)
}

func TestTradeWithHousesRefused(t *testing.T) {
	s := tradeSession(t)
	s.cells[1].Houses = 2

	_, err := s.ProposeTrade("A", "B", models.TradeBundle{Money: 100}, models.TradeBundle{Cells: []int{1}})
	require.Error(t, err)
}

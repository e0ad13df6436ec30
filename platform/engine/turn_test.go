package engine

import (
	"testing"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/stretchr/testify/require"
)

func TestRentPaymentOnLanding(t *testing.T) {
	s := testSession(t, "B", "A")
	giveCell(s, "A", 1) // Mediterranean, rent 2 at 0 houses
	s.playerById("B").Position = 34
	s.Roll = fixedRolls([2]int{3, 4})
	before := totalMoney(s)

	res, err := s.TakeTurn("B")
	require.NoError(t, err)

	require.Equal(t, [2]int{3, 4}, res.Dice)
	require.Equal(t, 1, res.NewPos)
	require.Equal(t, "rent", res.Action)
	// Passing Go paid 200, then 2 went to the owner.
	require.Equal(t, StartingBalance+200-2, s.playerById("B").Money)
	require.Equal(t, StartingBalance+2, s.playerById("A").Money)
	require.Equal(t, 198, res.Delta)
	require.Equal(t, 2, s.playerById("A").Stats.RentReceived)
	require.Equal(t, 2, s.playerById("B").Stats.RentPaid)
	require.Equal(t, before+GoSalary, totalMoney(s), "only the salary enters the economy")
}

func TestLandingOnOwnCellIsFree(t *testing.T) {
	s := testSession(t, "A")
	giveCell(s, "A", 3)
	s.Roll = fixedRolls([2]int{1, 2})

	res, err := s.TakeTurn("A")
	require.NoError(t, err)
	require.Equal(t, "landed", res.Action)
	require.Equal(t, StartingBalance, s.playerById("A").Money)
	require.Nil(t, res.Pending)
}

func TestMortgagedCellChargesNothing(t *testing.T) {
	s := testSession(t, "B", "A")
	giveCell(s, "A", 3)
	s.cells[3].Mortgaged = true
	s.Roll = fixedRolls([2]int{1, 2})

	res, err := s.TakeTurn("B")
	require.NoError(t, err)
	require.Equal(t, "landed", res.Action)
	require.Equal(t, StartingBalance, s.playerById("B").Money)
}

func TestTaxFeedsThePot(t *testing.T) {
	s := testSession(t, "A")
	s.Roll = fixedRolls([2]int{1, 3})
	before := totalMoney(s)

	res, err := s.TakeTurn("A")
	require.NoError(t, err)

	require.Equal(t, "tax", res.Action)
	require.Equal(t, StartingBalance-200, s.playerById("A").Money)
	require.Equal(t, 200, s.pot)
	require.Equal(t, 200, s.playerById("A").Stats.TaxesPaid)
	require.Equal(t, before, totalMoney(s))
}

func TestFreeParkingPaysOutThePot(t *testing.T) {
	s := testSession(t, "A")
	s.pot = 300
	s.playerById("A").Position = 15
	s.Roll = fixedRolls([2]int{2, 3})

	_, err := s.TakeTurn("A")
	require.NoError(t, err)

	require.Equal(t, StartingBalance+300, s.playerById("A").Money)
	require.Equal(t, 0, s.pot)
}

func TestPurchaseDecision(t *testing.T) {
	s := testSession(t, "A")
	s.Roll = fixedRolls([2]int{1, 2})

	res, err := s.TakeTurn("A")
	require.NoError(t, err)
	require.Equal(t, "purchase_offer", res.Action)
	require.NotNil(t, res.Pending)
	require.Equal(t, models.PendingPurchase, res.Pending.Kind)

	// Rolling again while the offer is open is refused.
	_, err = s.TakeTurn("A")
	require.ErrorIs(t, err, ErrPendingDecision)

	buy, err := s.ResolveDecision("A", models.Decision{Kind: models.DecideBuy})
	require.NoError(t, err)
	require.True(t, buy.Ok)

	p := s.playerById("A")
	require.Equal(t, StartingBalance-60, p.Money)
	require.Equal(t, "A", s.cells[3].Owner)
	require.Equal(t, []int{3}, p.Properties)
}

func TestPurchaseSkip(t *testing.T) {
	s := testSession(t, "A")
	s.Roll = fixedRolls([2]int{1, 2})
	_, err := s.TakeTurn("A")
	require.NoError(t, err)

	_, err = s.ResolveDecision("A", models.Decision{Kind: models.DecideSkip})
	require.NoError(t, err)
	require.Empty(t, s.cells[3].Owner)
	require.Equal(t, StartingBalance, s.playerById("A").Money)
}

func TestThreeDoublesGoDirectlyToJail(t *testing.T) {
	s := testSession(t, "A")
	s.Roll = fixedRolls([2]int{4, 4}, [2]int{5, 5}, [2]int{6, 6})

	for i := 0; i < 2; i++ {
		res, err := s.TakeTurn("A")
		require.NoError(t, err)
		require.True(t, res.ExtraTurn)
		if res.Pending != nil {
			_, err = s.ResolveDecision("A", models.Decision{Kind: models.DecideSkip})
			require.NoError(t, err)
		}
	}

	res, err := s.TakeTurn("A")
	require.NoError(t, err)

	p := s.playerById("A")
	require.Equal(t, "go_to_jail", res.Action)
	require.True(t, p.InJail)
	require.Equal(t, board.JailCell, p.Position, "third move is never completed")
	require.Equal(t, 0, s.doubles)
	require.Equal(t, models.PlayerInJail, p.Status)
}

func TestGoToJailCell(t *testing.T) {
	s := testSession(t, "A")
	s.playerById("A").Position = 25
	s.Roll = fixedRolls([2]int{2, 3})

	res, err := s.TakeTurn("A")
	require.NoError(t, err)

	require.Equal(t, "go_to_jail", res.Action)
	require.True(t, s.playerById("A").InJail)
	require.Equal(t, board.JailCell, s.playerById("A").Position)
}

type stubDeck struct {
	card models.Card
}

func (d stubDeck) Draw() models.Card { return d.card }

func TestCardGoToJailBypassesSalary(t *testing.T) {
	s := testSession(t, "A")
	p := s.playerById("A")
	p.Position = 38

	var res models.TurnResult
	s.drawCard(p, stubDeck{models.Card{Text: "Go directly to Jail", Action: models.CardGoToJail}}, &res)

	require.True(t, p.InJail)
	require.Equal(t, board.JailCell, p.Position)
	require.Equal(t, StartingBalance, p.Money, "jail transitions never pay salary")
}

func TestCardMoveToGoPaysSalary(t *testing.T) {
	s := testSession(t, "A")
	p := s.playerById("A")
	p.Position = 20

	var res models.TurnResult
	s.drawCard(p, stubDeck{models.Card{Text: "Advance to Go", Action: models.CardMoveTo, Value: 0}}, &res)

	require.Equal(t, 0, p.Position)
	require.Equal(t, StartingBalance+GoSalary, p.Money)
	require.Equal(t, GoSalary, p.Stats.SalaryReceived)
}

func TestCardMoneyEffects(t *testing.T) {
	s := testSession(t, "A")
	p := s.playerById("A")

	var res models.TurnResult
	s.drawCard(p, stubDeck{models.Card{Text: "Bank pays you $50", Action: models.CardAddMoney, Value: 50}}, &res)
	require.Equal(t, StartingBalance+50, p.Money)

	s.drawCard(p, stubDeck{models.Card{Text: "Pay $15", Action: models.CardDeductMoney, Value: 15}}, &res)
	require.Equal(t, StartingBalance+35, p.Money)
	require.Equal(t, 15, s.pot)

	s.drawCard(p, stubDeck{models.Card{Text: "Get Out of Jail Free", Action: models.CardJailFree}}, &res)
	require.Equal(t, 1, p.JailCards)
}

func TestJailPayFine(t *testing.T) {
	s := testSession(t, "A")
	p := s.playerById("A")
	s.sendToJail(p)

	res, err := s.TakeTurn("A")
	require.NoError(t, err)
	require.Equal(t, "jail_decision", res.Action)

	out, err := s.ResolveDecision("A", models.Decision{Kind: models.DecideJailPay})
	require.NoError(t, err)
	require.True(t, out.Ok)
	require.False(t, p.InJail)
	require.Equal(t, StartingBalance-JailFine, p.Money)
	require.Equal(t, JailFine, s.pot)

	// The fine only buys the release; the roll still happens normally.
	s.Roll = fixedRolls([2]int{1, 2})
	_, err = s.TakeTurn("A")
	require.NoError(t, err)
	require.Equal(t, 13, p.Position)
}

func TestJailUseCard(t *testing.T) {
	s := testSession(t, "A")
	p := s.playerById("A")
	p.JailCards = 1
	s.sendToJail(p)

	_, err := s.TakeTurn("A")
	require.NoError(t, err)
	_, err = s.ResolveDecision("A", models.Decision{Kind: models.DecideJailCard})
	require.NoError(t, err)

	require.False(t, p.InJail)
	require.Equal(t, 0, p.JailCards)
	require.Equal(t, StartingBalance, p.Money)
}

func TestJailRollDoubleReleases(t *testing.T) {
	s := testSession(t, "A")
	p := s.playerById("A")
	s.sendToJail(p)
	s.Roll = fixedRolls([2]int{2, 2})

	_, err := s.TakeTurn("A")
	require.NoError(t, err)
	out, err := s.ResolveDecision("A", models.Decision{Kind: models.DecideJailRoll})
	require.NoError(t, err)
	require.True(t, out.Ok)

	require.False(t, p.InJail)
	require.Equal(t, 14, p.Position, "released by the double and moved by it")
	require.Equal(t, StartingBalance, p.Money, "no fine on a double")
}

func TestJailThirdFailedAttemptReleases(t *testing.T) {
	s := testSession(t, "A")
	p := s.playerById("A")
	s.sendToJail(p)
	s.Roll = fixedRolls([2]int{1, 2})

	for attempt := 1; attempt <= 2; attempt++ {
		_, err := s.TakeTurn("A")
		require.NoError(t, err)
		_, err = s.ResolveDecision("A", models.Decision{Kind: models.DecideJailRoll})
		require.NoError(t, err)
		require.True(t, p.InJail)
		require.Equal(t, attempt, p.JailTurns)
		require.NoError(t, s.EndTurn("A"))
	}

	_, err := s.TakeTurn("A")
	require.NoError(t, err)
	_, err = s.ResolveDecision("A", models.Decision{Kind: models.DecideJailRoll})
	require.NoError(t, err)

	require.False(t, p.InJail, "released on the third attempt regardless of the roll")
	require.Equal(t, StartingBalance-JailFine, p.Money)
	require.Equal(t, 13, p.Position, "the failed roll still moves the player")
}

func TestDeficitThenBankruptcy(t *testing.T) {
	s := testSession(t, "B", "A")
	giveCell(s, "A", 39)
	s.cells[39].Hotel = true // rent 2000
	s.playerById("B").Position = 32
	s.Roll = fixedRolls([2]int{3, 4})
	before := totalMoney(s)

	res, err := s.TakeTurn("B")
	require.NoError(t, err)

	b := s.playerById("B")
	a := s.playerById("A")
	require.Equal(t, -500, b.Money)
	require.Equal(t, StartingBalance+2000, a.Money)
	require.NotNil(t, res.Pending)
	require.Equal(t, models.PendingDeficit, res.Pending.Kind)
	require.Equal(t, 500, res.Pending.Amount)
	require.Equal(t, "A", res.Pending.Creditor)
	require.Equal(t, before, totalMoney(s))

	out, err := s.ResolveDecision("B", models.Decision{Kind: models.DecideBankrupt})
	require.NoError(t, err)
	require.True(t, out.Ok)

	require.Equal(t, 0, b.Money)
	require.Equal(t, models.PlayerBankrupt, b.Status)
	require.Equal(t, StartingBalance+1500, a.Money, "the uncollectable part of the debt is written off")
	require.Equal(t, before, totalMoney(s))
	require.Equal(t, models.GameFinished, s.State())

	winner, ok := s.Winner()
	require.True(t, ok)
	require.Equal(t, "A", winner.Id)
}

func TestDeficitClearedByMortgage(t *testing.T) {
	s := testSession(t, "A")
	p := s.playerById("A")
	giveCell(s, "A", 39)
	p.Money = 50
	s.Roll = fixedRolls([2]int{1, 3}) // income tax, 200

	_, err := s.TakeTurn("A")
	require.NoError(t, err)
	require.Equal(t, -150, p.Money)
	require.NotNil(t, s.pending)

	out, err := s.ResolveDecision("A", models.Decision{Kind: models.DecideMortgage, CellId: 39})
	require.NoError(t, err)
	require.True(t, out.Ok)

	require.Equal(t, 50, p.Money)
	require.True(t, s.cells[39].Mortgaged)
	require.Nil(t, s.pending, "covering the deficit clears it")
}

func TestBuildAndSellHouse(t *testing.T) {
	s := testSession(t, "A")
	giveCell(s, "A", 1)
	giveCell(s, "A", 3)
	p := s.playerById("A")

	out, err := s.BuildHouse("A", 1)
	require.NoError(t, err)
	require.True(t, out.Ok)
	require.Equal(t, 1, s.cells[1].Houses)
	require.Equal(t, StartingBalance-50, p.Money)

	_, err = s.BuildHouse("A", 1)
	require.Error(t, err, "uneven build refused")

	out, err = s.ResolveDecision("A", models.Decision{Kind: models.DecideSellHouse, CellId: 1})
	require.NoError(t, err)
	require.Equal(t, 25, out.Delta)
	require.Equal(t, 0, s.cells[1].Houses)
}

func TestUnmortgageCostsInterest(t *testing.T) {
	s := testSession(t, "A")
	giveCell(s, "A", 39)
	p := s.playerById("A")

	_, err := s.ResolveDecision("A", models.Decision{Kind: models.DecideMortgage, CellId: 39})
	require.NoError(t, err)
	require.Equal(t, StartingBalance+200, p.Money)

	_, err = s.ResolveDecision("A", models.Decision{Kind: models.DecideUnmortgage, CellId: 39})
	require.NoError(t, err)
	require.Equal(t, StartingBalance+200-220, p.Money)
	require.False(t, s.cells[39].Mortgaged)
}

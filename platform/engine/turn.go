package engine

import (
	"errors"
	"fmt"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/board"
)

// TakeTurn rolls for the current player and resolves the landing. A jailed
// player gets a jail decision instead of a roll. Doubles leave the turn
// open for another roll; the third consecutive double goes straight to
// jail without completing the move.
func (s *GameSession) TakeTurn(playerId string) (models.TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.GameInProgress {
		return models.TurnResult{}, ErrNotInProgress
	}
	if s.currentId() != playerId {
		return models.TurnResult{}, ErrNotYourTurn
	}
	if s.pending != nil {
		return models.TurnResult{}, ErrPendingDecision
	}
	if s.hasRolled {
		return models.TurnResult{}, ErrAlreadyRolled
	}

	p := s.currentPlayer()
	if p.InJail {
		s.pending = &models.PendingDecision{Kind: models.PendingJail, Player: p.Id, Amount: JailFine}
		return models.TurnResult{
			Player:  p.Id,
			OldPos:  p.Position,
			NewPos:  p.Position,
			Cell:    s.cells[board.JailCell],
			Action:  "jail_decision",
			Message: "You are in jail: pay the fine, use a card or roll for doubles",
			Pending: s.pending,
		}, nil
	}

	d1, d2 := s.Roll()
	res := models.TurnResult{Player: p.Id, Dice: [2]int{d1, d2}, OldPos: p.Position}

	if d1 == d2 {
		s.doubles++
	} else {
		s.doubles = 0
	}
	if s.doubles >= 3 {
		// Three doubles in a row: the move is never completed.
		s.doubles = 0
		s.sendToJail(p)
		s.hasRolled = true
		res.NewPos = p.Position
		res.Cell = s.cells[board.JailCell]
		res.Action = "go_to_jail"
		res.Message = "Three doubles in a row, go directly to jail"
		return res, nil
	}
	if d1 == d2 {
		res.ExtraTurn = true
	} else {
		s.hasRolled = true
	}

	before := p.Money
	s.moveBy(p, d1+d2, &res)
	s.resolveCell(p, d1+d2, &res)
	res.Delta = p.Money - before
	res.NewPos = p.Position
	res.Cell = *board.GetCell(s.cells, p.Position)
	res.Pending = s.pending
	return res, nil
}

// moveBy advances the player, paying the Go salary exactly once per lap.
func (s *GameSession) moveBy(p *models.PlayerState, steps int, res *models.TurnResult) {
	if p.Position+steps >= board.Size {
		s.paySalary(p, res)
	}
	p.Position = (p.Position + steps) % board.Size
}

func (s *GameSession) paySalary(p *models.PlayerState, res *models.TurnResult) {
	p.Money += GoSalary
	p.Stats.SalaryReceived += GoSalary
	if res != nil && res.Message == "" {
		res.Message = fmt.Sprintf("Collected $%d salary for passing Go", GoSalary)
	}
}

func (s *GameSession) resolveCell(p *models.PlayerState, diceTotal int, res *models.TurnResult) {
	cell := board.GetCell(s.cells, p.Position)
	switch cell.Kind {
	case models.CellGo:
		res.Action = "landed"
	case models.CellJail:
		res.Action = "landed"
		res.Message = "Just visiting"
	case models.CellFreeParking:
		res.Action = "landed"
		if s.pot > 0 {
			p.Money += s.pot
			res.Message = fmt.Sprintf("Free Parking pays out $%d", s.pot)
			s.pot = 0
		}
	case models.CellTax:
		p.Money -= cell.Tax
		s.pot += cell.Tax
		p.Stats.TaxesPaid += cell.Tax
		res.Action = "tax"
		res.Message = fmt.Sprintf("%s: paid $%d", cell.Name, cell.Tax)
		s.deficitCheck(p, "")
	case models.CellGoToJail:
		s.sendToJail(p)
		s.hasRolled = true
		res.Action = "go_to_jail"
		res.Message = "Go directly to jail"
	case models.CellChance:
		s.drawCard(p, s.chance, res)
	case models.CellChest:
		s.drawCard(p, s.chest, res)
	case models.CellProperty, models.CellStation, models.CellUtility:
		s.resolveOwnable(p, cell, diceTotal, res)
	}
}

func (s *GameSession) resolveOwnable(p *models.PlayerState, cell *models.Cell, diceTotal int, res *models.TurnResult) {
	switch {
	case cell.Owner == "":
		s.pending = &models.PendingDecision{
			Kind:   models.PendingPurchase,
			Player: p.Id,
			CellId: cell.Id,
			Amount: cell.Price,
		}
		res.Action = "purchase_offer"
		res.Message = fmt.Sprintf("%s is for sale at $%d", cell.Name, cell.Price)
	case cell.Owner == p.Id:
		res.Action = "landed"
		res.Message = "You own this"
	case cell.Mortgaged:
		res.Action = "landed"
		res.Message = fmt.Sprintf("%s is mortgaged, no rent due", cell.Name)
	default:
		owner := s.playerById(cell.Owner)
		if owner == nil {
			panic(fmt.Sprintf("cell %d owned by unknown player %s", cell.Id, cell.Owner))
		}
		rent := board.ComputeRent(s.cells, cell, diceTotal)
		p.Money -= rent
		owner.Money += rent
		p.Stats.RentPaid += rent
		owner.Stats.RentReceived += rent
		res.Action = "rent"
		res.Message = fmt.Sprintf("Paid $%d rent to %s", rent, owner.Name)
		s.deficitCheck(p, owner.Id)
	}
}

func (s *GameSession) drawCard(p *models.PlayerState, deck cardDrawer, res *models.TurnResult) {
	card := deck.Draw()
	res.Action = "card"
	res.Message = card.Text
	res.Card = &card
	switch card.Action {
	case models.CardMoveTo:
		// Moving forward to the target; wrapping past Go pays salary.
		if card.Value <= p.Position {
			s.paySalary(p, nil)
		}
		p.Position = card.Value
		s.resolveCell(p, 0, res)
		res.Message = card.Text + ". " + res.Message
		res.Action = "card"
	case models.CardGoToJail:
		// Jail transitions never pay salary, whatever path got us here.
		s.sendToJail(p)
		s.hasRolled = true
	case models.CardAddMoney:
		p.Money += card.Value
	case models.CardDeductMoney:
		p.Money -= card.Value
		s.pot += card.Value
		s.deficitCheck(p, "")
	case models.CardJailFree:
		p.JailCards++
	}
}

type cardDrawer interface {
	Draw() models.Card
}

func (s *GameSession) sendToJail(p *models.PlayerState) {
	p.Position = board.JailCell
	p.InJail = true
	p.JailTurns = 0
	p.Status = models.PlayerInJail
}

func (s *GameSession) releaseFromJail(p *models.PlayerState) {
	p.InJail = false
	p.JailTurns = 0
	p.Status = models.PlayerActive
}

// deficitCheck flags a pending bankruptcy when a payment pushed the balance
// below zero. The transfer itself has already been applied; the player must
// now liquidate assets or declare bankruptcy.
func (s *GameSession) deficitCheck(p *models.PlayerState, creditor string) {
	if p.Money >= 0 {
		return
	}
	s.pending = &models.PendingDecision{
		Kind:     models.PendingDeficit,
		Player:   p.Id,
		Amount:   -p.Money,
		Creditor: creditor,
	}
}

// ResolveDecision applies the caller's answer to the pending decision, or
// a standalone asset operation (mortgage, unmortgage, sell house) when
// nothing is pending.
func (s *GameSession) ResolveDecision(playerId string, d models.Decision) (models.ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.GameInProgress {
		return models.ActionResult{}, ErrNotInProgress
	}
	p := s.playerById(playerId)
	if p == nil {
		return models.ActionResult{}, errors.New("player not in game")
	}

	switch d.Kind {
	case models.DecideBuy:
		return s.decideBuy(p)
	case models.DecideSkip:
		return s.decideSkip(p)
	case models.DecideJailPay, models.DecideJailCard, models.DecideJailRoll:
		return s.decideJail(p, d.Kind)
	case models.DecideSellHouse:
		return s.decideSellHouse(p, d.CellId)
	case models.DecideMortgage:
		return s.decideMortgage(p, d.CellId)
	case models.DecideUnmortgage:
		return s.decideUnmortgage(p, d.CellId)
	case models.DecideBankrupt:
		return s.decideBankrupt(p)
	}
	return models.ActionResult{}, fmt.Errorf("unknown decision %q", d.Kind)
}

func (s *GameSession) pendingFor(p *models.PlayerState, kind models.PendingKind) error {
	if s.pending == nil || s.pending.Kind != kind {
		return errors.New("no such decision is pending")
	}
	if s.pending.Player != p.Id {
		return errors.New("this decision is not yours to make")
	}
	return nil
}

func (s *GameSession) decideBuy(p *models.PlayerState) (models.ActionResult, error) {
	if err := s.pendingFor(p, models.PendingPurchase); err != nil {
		return models.ActionResult{}, err
	}
	cell := &s.cells[s.pending.CellId]
	if cell.Owner != "" {
		panic(fmt.Sprintf("purchase pending on owned cell %d", cell.Id))
	}
	if p.Money < cell.Price {
		return models.ActionResult{}, errors.New("insufficient funds to buy")
	}
	p.Money -= cell.Price
	cell.Owner = p.Id
	addHolding(p, cell)
	s.pending = nil
	return models.ActionResult{Ok: true, Message: fmt.Sprintf("Bought %s for $%d", cell.Name, cell.Price), Delta: -cell.Price}, nil
}

func (s *GameSession) decideSkip(p *models.PlayerState) (models.ActionResult, error) {
	if err := s.pendingFor(p, models.PendingPurchase); err != nil {
		return models.ActionResult{}, err
	}
	name := s.cells[s.pending.CellId].Name
	s.pending = nil
	return models.ActionResult{Ok: true, Message: fmt.Sprintf("Passed on %s", name)}, nil
}

func (s *GameSession) decideJail(p *models.PlayerState, kind models.DecisionKind) (models.ActionResult, error) {
	if err := s.pendingFor(p, models.PendingJail); err != nil {
		return models.ActionResult{}, err
	}
	switch kind {
	case models.DecideJailPay:
		if p.Money < JailFine {
			return models.ActionResult{}, errors.New("insufficient funds to pay the fine")
		}
		p.Money -= JailFine
		s.pot += JailFine
		s.releaseFromJail(p)
		s.pending = nil
		return models.ActionResult{Ok: true, Message: "Paid the fine, roll to move", Delta: -JailFine}, nil

	case models.DecideJailCard:
		if p.JailCards == 0 {
			return models.ActionResult{}, errors.New("you have no get out of jail card")
		}
		p.JailCards--
		s.releaseFromJail(p)
		s.pending = nil
		return models.ActionResult{Ok: true, Message: "Used a get out of jail card, roll to move"}, nil

	case models.DecideJailRoll:
		d1, d2 := s.Roll()
		s.pending = nil
		s.hasRolled = true
		if d1 != d2 {
			p.JailTurns++
			if p.JailTurns < MaxJailAttempts {
				return models.ActionResult{Ok: true, Message: fmt.Sprintf("Rolled %d and %d, no double: still in jail", d1, d2)}, nil
			}
			// Third failed attempt: released unconditionally, fine due,
			// and the roll still moves the player.
			p.Money -= JailFine
			s.pot += JailFine
		}
		s.releaseFromJail(p)
		before := p.Money
		var tr models.TurnResult
		tr.Player = p.Id
		s.moveBy(p, d1+d2, &tr)
		s.resolveCell(p, d1+d2, &tr)
		if p.Money < 0 && s.pending == nil {
			s.deficitCheck(p, "")
		}
		return models.ActionResult{
			Ok:      true,
			Message: fmt.Sprintf("Rolled %d and %d: released from jail. %s", d1, d2, tr.Message),
			Delta:   p.Money - before,
		}, nil
	}
	return models.ActionResult{}, fmt.Errorf("unknown jail decision %q", kind)
}

func (s *GameSession) assetOpAllowed(p *models.PlayerState) error {
	if s.pending == nil {
		return nil
	}
	if s.pending.Kind == models.PendingDeficit && s.pending.Player == p.Id {
		return nil
	}
	return ErrPendingDecision
}

// clearDeficitIfCovered drops the deficit flag once liquidation brought the
// balance back above zero.
func (s *GameSession) clearDeficitIfCovered(p *models.PlayerState) {
	if s.pending != nil && s.pending.Kind == models.PendingDeficit && s.pending.Player == p.Id && p.Money >= 0 {
		s.pending = nil
	}
}

func (s *GameSession) decideSellHouse(p *models.PlayerState, cellId int) (models.ActionResult, error) {
	if err := s.assetOpAllowed(p); err != nil {
		return models.ActionResult{}, err
	}
	if cellId < 0 || cellId >= board.Size {
		return models.ActionResult{}, fmt.Errorf("no cell at position %d", cellId)
	}
	cell := &s.cells[cellId]
	if cell.Owner != p.Id || cell.Kind != models.CellProperty {
		return models.ActionResult{}, errors.New("you do not own a property there")
	}
	if cell.Houses == 0 && !cell.Hotel {
		return models.ActionResult{}, errors.New("nothing to sell on this property")
	}
	if cell.Hotel {
		cell.Hotel = false
		cell.Houses = 4
	} else {
		cell.Houses--
	}
	refund := cell.HouseCost / 2
	p.Money += refund
	s.clearDeficitIfCovered(p)
	return models.ActionResult{Ok: true, Message: fmt.Sprintf("Sold a house on %s for $%d", cell.Name, refund), Delta: refund}, nil
}

func (s *GameSession) decideMortgage(p *models.PlayerState, cellId int) (models.ActionResult, error) {
	if err := s.assetOpAllowed(p); err != nil {
		return models.ActionResult{}, err
	}
	if cellId < 0 || cellId >= board.Size {
		return models.ActionResult{}, fmt.Errorf("no cell at position %d", cellId)
	}
	cell := &s.cells[cellId]
	if cell.Owner != p.Id || !cell.Ownable() {
		return models.ActionResult{}, errors.New("you do not own this cell")
	}
	if cell.Mortgaged {
		return models.ActionResult{}, errors.New("already mortgaged")
	}
	if cell.Kind == models.CellProperty {
		for _, c := range s.cells {
			if c.Kind == models.CellProperty && c.Group == cell.Group && (c.Houses > 0 || c.Hotel) {
				return models.ActionResult{}, errors.New("sell the group's houses before mortgaging")
			}
		}
	}
	value := cell.Price / 2
	cell.Mortgaged = true
	p.Money += value
	s.clearDeficitIfCovered(p)
	return models.ActionResult{Ok: true, Message: fmt.Sprintf("Mortgaged %s for $%d", cell.Name, value), Delta: value}, nil
}

func (s *GameSession) decideUnmortgage(p *models.PlayerState, cellId int) (models.ActionResult, error) {
	if err := s.assetOpAllowed(p); err != nil {
		return models.ActionResult{}, err
	}
	if cellId < 0 || cellId >= board.Size {
		return models.ActionResult{}, fmt.Errorf("no cell at position %d", cellId)
	}
	cell := &s.cells[cellId]
	if cell.Owner != p.Id || !cell.Mortgaged {
		return models.ActionResult{}, errors.New("no mortgaged cell of yours there")
	}
	cost := cell.Price/2 + cell.Price/20 // mortgage value plus 10% interest
	if p.Money < cost {
		return models.ActionResult{}, errors.New("insufficient funds to lift the mortgage")
	}
	p.Money -= cost
	cell.Mortgaged = false
	return models.ActionResult{Ok: true, Message: fmt.Sprintf("Lifted the mortgage on %s for $%d", cell.Name, cost), Delta: -cost}, nil
}

// decideBankrupt settles an unpayable debt: the creditor absorbs the
// negative balance and every asset, or the bank reclaims them when the debt
// was owed to the pot.
func (s *GameSession) decideBankrupt(p *models.PlayerState) (models.ActionResult, error) {
	if err := s.pendingFor(p, models.PendingDeficit); err != nil {
		return models.ActionResult{}, err
	}
	creditor := s.pending.Creditor
	if c := s.playerById(creditor); c != nil {
		c.Money += p.Money // negative: the part of the debt never collected
	} else if creditor == "" {
		s.pot += p.Money
	}
	p.Money = 0
	s.releaseAssets(p, creditor)
	p.Status = models.PlayerBankrupt
	p.InJail = false
	s.pending = nil
	s.exciseFromOrder(p.Id)
	s.checkGameOver()
	return models.ActionResult{Ok: true, Message: fmt.Sprintf("%s is bankrupt", p.Name)}, nil
}

// BuildHouse buys one house (or the hotel as the fifth) on the player's
// property, enforcing level development across the color group.
func (s *GameSession) BuildHouse(playerId string, cellId int) (models.ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.GameInProgress {
		return models.ActionResult{}, ErrNotInProgress
	}
	p := s.playerById(playerId)
	if p == nil {
		return models.ActionResult{}, errors.New("player not in game")
	}
	if s.pending != nil {
		return models.ActionResult{}, ErrPendingDecision
	}
	if err := board.CanBuildHouse(s.cells, playerId, cellId); err != nil {
		return models.ActionResult{}, err
	}
	cell := &s.cells[cellId]
	if p.Money < cell.HouseCost {
		return models.ActionResult{}, errors.New("insufficient funds to build")
	}
	if err := board.BuildHouse(s.cells, playerId, cellId); err != nil {
		return models.ActionResult{}, err
	}
	p.Money -= cell.HouseCost
	what := "a house"
	if cell.Hotel {
		what = "a hotel"
	}
	return models.ActionResult{Ok: true, Message: fmt.Sprintf("Built %s on %s", what, cell.Name), Delta: -cell.HouseCost}, nil
}

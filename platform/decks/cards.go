package decks

import (
	"github.com/DedS3t/monopoly-engine/app/models"
)

// Canonical card sets. Decks are refilled from these when they run out.

func ChanceCards() []models.Card {
	return []models.Card{
		{Text: "Advance to Go", Action: models.CardMoveTo, Value: 0},
		{Text: "Advance to Illinois Avenue", Action: models.CardMoveTo, Value: 24},
		{Text: "Advance to St. Charles Place", Action: models.CardMoveTo, Value: 11},
		{Text: "Take a trip to Reading Railroad", Action: models.CardMoveTo, Value: 5},
		{Text: "Advance to Boardwalk", Action: models.CardMoveTo, Value: 39},
		{Text: "Go directly to Jail", Action: models.CardGoToJail},
		{Text: "Bank pays you dividend of $50", Action: models.CardAddMoney, Value: 50},
		{Text: "Your building loan matures, collect $150", Action: models.CardAddMoney, Value: 150},
		{Text: "Speeding fine $15", Action: models.CardDeductMoney, Value: 15},
		{Text: "Pay poor tax of $15", Action: models.CardDeductMoney, Value: 15},
		{Text: "Pay school fees of $50", Action: models.CardDeductMoney, Value: 50},
		{Text: "Get Out of Jail Free", Action: models.CardJailFree},
	}
}

func ChestCards() []models.Card {
	return []models.Card{
		{Text: "Advance to Go", Action: models.CardMoveTo, Value: 0},
		{Text: "Bank error in your favor, collect $200", Action: models.CardAddMoney, Value: 200},
		{Text: "Doctor's fee, pay $50", Action: models.CardDeductMoney, Value: 50},
		{Text: "From sale of stock you get $50", Action: models.CardAddMoney, Value: 50},
		{Text: "Go directly to Jail", Action: models.CardGoToJail},
		{Text: "Holiday fund matures, receive $100", Action: models.CardAddMoney, Value: 100},
		{Text: "Income tax refund, collect $20", Action: models.CardAddMoney, Value: 20},
		{Text: "Life insurance matures, collect $100", Action: models.CardAddMoney, Value: 100},
		{Text: "Pay hospital fees of $100", Action: models.CardDeductMoney, Value: 100},
		{Text: "You inherit $100", Action: models.CardAddMoney, Value: 100},
		{Text: "Get Out of Jail Free", Action: models.CardJailFree},
	}
}

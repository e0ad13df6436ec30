package decks

import (
	"math/rand"
	"time"

	"github.com/DedS3t/monopoly-engine/app/models"
)

// Deck is a shuffled draw pile consumed from the front. When the pile runs
// out it is refilled from its canonical set and reshuffled, so a deck never
// refuses a draw.
type Deck struct {
	canon func() []models.Card
	cards []models.Card
	rng   *rand.Rand
}

func New(canon func() []models.Card) *Deck {
	return NewSeeded(canon, time.Now().UnixNano())
}

func NewSeeded(canon func() []models.Card, seed int64) *Deck {
	d := &Deck{canon: canon, rng: rand.New(rand.NewSource(seed))}
	d.refill()
	return d
}

// Restore rebuilds a deck from a persisted remaining-card order.
func Restore(canon func() []models.Card, remaining []models.Card) *Deck {
	d := &Deck{canon: canon, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	d.cards = append(d.cards, remaining...)
	return d
}

func (d *Deck) refill() {
	d.cards = d.canon()
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card, refilling the pile first if empty.
func (d *Deck) Draw() models.Card {
	if len(d.cards) == 0 {
		d.refill()
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card
}

// Len returns the number of cards left before the next refill.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Remaining returns a copy of the undrawn cards in draw order.
func (d *Deck) Remaining() []models.Card {
	out := make([]models.Card, len(d.cards))
	copy(out, d.cards)
	return out
}

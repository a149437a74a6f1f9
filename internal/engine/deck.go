package engine

import "math/rand/v2"

// Deck is one tier's face-down bag of cards.
type Deck struct {
	tier  int
	cards []Card
}

func NewDeck(tier int, cards []Card) *Deck {
	d := &Deck{tier: tier, cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Draw removes and returns one card chosen uniformly at random from the
// remaining cards. The second return is false when the deck is empty; an
// empty deck is not an error here, callers decide what it means.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	i := rand.IntN(len(d.cards))
	c := d.cards[i]
	d.cards[i] = d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, true
}

// put returns a card to the bag. Only cancellation of a pending reservation
// uses it, when no visible slot is free to restore the card into.
func (d *Deck) put(c Card) {
	d.cards = append(d.cards, c)
}

// Tier returns the deck's card tier (1-3).
func (d *Deck) Tier() int { return d.tier }

// Len returns the number of cards remaining.
func (d *Deck) Len() int { return len(d.cards) }

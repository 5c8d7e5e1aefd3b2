// Package deck provides playing cards and shuffled decks. All shuffling
// goes through an injected *rand.Rand so hands are reproducible from a seed.
package deck

import rand "math/rand/v2"

// Deck is an ordered set of cards dealt from the front.
type Deck struct {
	cards []Card
	next  int
}

// All returns the 52 cards of a standard deck in canonical order.
func All() []Card {
	cards := make([]Card, 0, 52)
	for rank := Two; rank <= Ace; rank++ {
		for suit := Clubs; suit <= Spades; suit++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}

// New returns a full deck shuffled with the provided RNG.
func New(rng *rand.Rand) *Deck {
	d := &Deck{cards: All()}
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// Stacked returns a deck that deals the given cards in order, for
// deterministic tests. The remaining cards follow in canonical order.
func Stacked(front ...Card) *Deck {
	used := make(map[Card]bool, len(front))
	for _, c := range front {
		used[c] = true
	}
	cards := make([]Card, 0, 52)
	cards = append(cards, front...)
	for _, c := range All() {
		if !used[c] {
			cards = append(cards, c)
		}
	}
	return &Deck{cards: cards}
}

// Deal removes and returns the next n cards. It panics if the deck runs
// out, which cannot happen in a legal hold'em hand.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		panic("deck: out of cards")
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

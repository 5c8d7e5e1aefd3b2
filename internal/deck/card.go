package deck

import "fmt"

// Suit represents a card suit.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// String returns the single-letter suit code used in hand histories.
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// Rank represents a card rank. Aces are high.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankChars = "23456789TJQKA"

// String returns the single-character rank code.
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankChars[r-Two])
}

// Card represents a single playing card.
type Card struct {
	Rank Rank
	Suit Suit
}

// String returns the two-character card code, e.g. "As" or "Td".
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Index returns the card's position in [0,52), used for bitset bookkeeping.
func (c Card) Index() int {
	return int(c.Rank-Two)*4 + int(c.Suit)
}

// Parse converts a two-character code like "Ah" into a Card.
func Parse(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("deck: invalid card %q", s)
	}
	var rank Rank
	switch s[0] {
	case 'A':
		rank = Ace
	case 'K':
		rank = King
	case 'Q':
		rank = Queen
	case 'J':
		rank = Jack
	case 'T':
		rank = Ten
	default:
		if s[0] < '2' || s[0] > '9' {
			return Card{}, fmt.Errorf("deck: invalid rank %q", s)
		}
		rank = Rank(s[0] - '0')
	}
	var suit Suit
	switch s[1] {
	case 'c':
		suit = Clubs
	case 'd':
		suit = Diamonds
	case 'h':
		suit = Hearts
	case 's':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("deck: invalid suit %q", s)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// MustParse is Parse for tests and fixtures; it panics on bad input.
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MustParseAll is ParseAll for tests and fixtures; it panics on bad input.
func MustParseAll(codes ...string) []Card {
	cards, err := ParseAll(codes...)
	if err != nil {
		panic(err)
	}
	return cards
}

// ParseAll parses a list of card codes.
func ParseAll(codes ...string) ([]Card, error) {
	cards := make([]Card, 0, len(codes))
	for _, code := range codes {
		c, err := Parse(code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// Package evaluator scores poker hands. Evaluate reduces 5-7 cards to a
// Rank that totally orders hands: lower is stronger, and two hands whose
// best five cards are identical in rank compare equal. Everything here is
// pure and safe for concurrent use.
package evaluator

import (
	"math/bits"

	"github.com/handcoach/holdem/internal/deck"
)

// Category is the hand class, strongest first.
type Category int

const (
	RoyalFlush Category = iota + 1
	StraightFlush
	FourOfAKind
	FullHouse
	Flush
	Straight
	ThreeOfAKind
	TwoPair
	OnePair
	HighCard
)

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case RoyalFlush:
		return "Royal Flush"
	case StraightFlush:
		return "Straight Flush"
	case FourOfAKind:
		return "Four of a Kind"
	case FullHouse:
		return "Full House"
	case Flush:
		return "Flush"
	case Straight:
		return "Straight"
	case ThreeOfAKind:
		return "Three of a Kind"
	case TwoPair:
		return "Two Pair"
	case OnePair:
		return "One Pair"
	case HighCard:
		return "High Card"
	default:
		return "Unknown"
	}
}

// Rank is a total ordering over hands: category in the high bits, kicker
// tiebreaks in the low 20. Lower values are stronger hands.
type Rank uint32

// Category extracts the hand class from a rank.
func (r Rank) Category() Category {
	return Category(r >> 20)
}

// Compare returns 1 if r is the stronger hand, -1 if other is, 0 on a tie.
func (r Rank) Compare(other Rank) int {
	if r < other {
		return 1
	}
	if r > other {
		return -1
	}
	return 0
}

func (r Rank) String() string {
	return r.Category().String()
}

// rank indices within masks: 0=Two .. 12=Ace. Tiebreak nibbles store the
// inverted index so that lower encodes stronger.
func inv(rankIdx int) uint32 {
	return uint32(12 - rankIdx)
}

func encode(cat Category, nibbles ...uint32) Rank {
	var tie uint32
	for _, n := range nibbles {
		tie = tie<<4 | n
	}
	return Rank(uint32(cat)<<20 | tie)
}

// suitMasks splits cards into four 13-bit rank masks, one per suit.
func suitMasks(cards []deck.Card) [4]uint16 {
	var m [4]uint16
	for _, c := range cards {
		m[c.Suit] |= 1 << (c.Rank - deck.Two)
	}
	return m
}

// straightHigh returns the rank index of the highest straight in the mask,
// or -1. The wheel (A-5) reports Five as its high card.
func straightHigh(ranks uint16) int {
	for high := 12; high >= 4; high-- {
		run := uint16(0x1F) << (high - 4)
		if ranks&run == run {
			return high
		}
	}
	// Wheel: A,2,3,4,5.
	if ranks&0x100F == 0x100F {
		return 3
	}
	return -1
}

// topRankIdxs returns up to n rank indices present in the mask, descending.
func topRankIdxs(ranks uint16, n int) []int {
	out := make([]int, 0, n)
	for idx := 12; idx >= 0 && len(out) < n; idx-- {
		if ranks&(1<<idx) != 0 {
			out = append(out, idx)
		}
	}
	return out
}

// Evaluate scores the best five-card hand among 5-7 cards.
func Evaluate(cards []deck.Card) Rank {
	if len(cards) < 5 || len(cards) > 7 {
		panic("evaluator: need 5 to 7 cards")
	}

	suits := suitMasks(cards)
	ranks := suits[0] | suits[1] | suits[2] | suits[3]

	flushSuit := -1
	for s, mask := range suits {
		if bits.OnesCount16(mask) >= 5 {
			flushSuit = s
			break
		}
	}

	if flushSuit >= 0 {
		if high := straightHigh(suits[flushSuit]); high >= 0 {
			if high == 12 {
				return encode(RoyalFlush)
			}
			return encode(StraightFlush, inv(high))
		}
	}

	// Count cards per rank.
	var counts [13]int
	for _, mask := range suits {
		for idx := 0; idx < 13; idx++ {
			if mask&(1<<idx) != 0 {
				counts[idx]++
			}
		}
	}

	quad, tripHi, tripLo, pairHi, pairLo := -1, -1, -1, -1, -1
	for idx := 12; idx >= 0; idx-- {
		switch counts[idx] {
		case 4:
			quad = idx
		case 3:
			if tripHi < 0 {
				tripHi = idx
			} else if tripLo < 0 {
				tripLo = idx
			}
		case 2:
			if pairHi < 0 {
				pairHi = idx
			} else if pairLo < 0 {
				pairLo = idx
			}
		}
	}

	if quad >= 0 {
		kicker := -1
		for idx := 12; idx >= 0; idx-- {
			if idx != quad && counts[idx] > 0 {
				kicker = idx
				break
			}
		}
		return encode(FourOfAKind, inv(quad), inv(kicker))
	}

	if tripHi >= 0 {
		// Best pair to fill the house: a second trip outranks any pair.
		fill := pairHi
		if tripLo > fill {
			fill = tripLo
		}
		if fill >= 0 {
			return encode(FullHouse, inv(tripHi), inv(fill))
		}
	}

	if flushSuit >= 0 {
		top := topRankIdxs(suits[flushSuit], 5)
		return encode(Flush, inv(top[0]), inv(top[1]), inv(top[2]), inv(top[3]), inv(top[4]))
	}

	if high := straightHigh(ranks); high >= 0 {
		return encode(Straight, inv(high))
	}

	if tripHi >= 0 {
		kickers := kickersExcluding(counts, 2, tripHi)
		return encode(ThreeOfAKind, inv(tripHi), inv(kickers[0]), inv(kickers[1]))
	}

	if pairHi >= 0 && pairLo >= 0 {
		kicker := -1
		for idx := 12; idx >= 0; idx-- {
			if idx != pairHi && idx != pairLo && counts[idx] > 0 {
				kicker = idx
				break
			}
		}
		return encode(TwoPair, inv(pairHi), inv(pairLo), inv(kicker))
	}

	if pairHi >= 0 {
		kickers := kickersExcluding(counts, 3, pairHi)
		return encode(OnePair, inv(pairHi), inv(kickers[0]), inv(kickers[1]), inv(kickers[2]))
	}

	top := topRankIdxs(ranks, 5)
	return encode(HighCard, inv(top[0]), inv(top[1]), inv(top[2]), inv(top[3]), inv(top[4]))
}

// kickersExcluding returns the n highest rank indices with at least one
// card, skipping the excluded ranks.
func kickersExcluding(counts [13]int, n int, exclude ...int) []int {
	out := make([]int, 0, n)
	for idx := 12; idx >= 0 && len(out) < n; idx-- {
		if counts[idx] == 0 {
			continue
		}
		skip := false
		for _, ex := range exclude {
			if idx == ex {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, idx)
		}
	}
	return out
}

// EvaluateHole scores a seat's best hand from two hole cards plus the board.
func EvaluateHole(hole []deck.Card, board []deck.Card) Rank {
	all := make([]deck.Card, 0, len(hole)+len(board))
	all = append(all, hole...)
	all = append(all, board...)
	return Evaluate(all)
}

package evaluator

import (
	"testing"

	poker "github.com/paulhankin/poker"

	"github.com/handcoach/holdem/internal/deck"
	"github.com/handcoach/holdem/internal/randutil"
)

func rank(t *testing.T, codes ...string) Rank {
	t.Helper()
	return Evaluate(deck.MustParseAll(codes...))
}

func TestCategories(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cards []string
		want  Category
	}{
		{[]string{"As", "Ks", "Qs", "Js", "Ts"}, RoyalFlush},
		{[]string{"9h", "8h", "7h", "6h", "5h"}, StraightFlush},
		{[]string{"5h", "4h", "3h", "2h", "Ah"}, StraightFlush}, // steel wheel
		{[]string{"Ac", "Ad", "Ah", "As", "2c"}, FourOfAKind},
		{[]string{"Kc", "Kd", "Kh", "3s", "3c"}, FullHouse},
		{[]string{"Ad", "Jd", "8d", "6d", "2d"}, Flush},
		{[]string{"9c", "8d", "7h", "6s", "5c"}, Straight},
		{[]string{"5c", "4d", "3h", "2s", "Ac"}, Straight}, // wheel
		{[]string{"7c", "7d", "7h", "Ks", "2c"}, ThreeOfAKind},
		{[]string{"Jc", "Jd", "4h", "4s", "9c"}, TwoPair},
		{[]string{"Tc", "Td", "8h", "5s", "2c"}, OnePair},
		{[]string{"Ac", "Jd", "9h", "6s", "3c"}, HighCard},
	}
	for _, tc := range cases {
		if got := rank(t, tc.cards...).Category(); got != tc.want {
			t.Errorf("%v: got %v, want %v", tc.cards, got, tc.want)
		}
	}
}

func TestSevenCardsPickBestFive(t *testing.T) {
	t.Parallel()

	// Board pairs the deuce, but the flush is the hand.
	r := rank(t, "Ah", "Kh", "2c", "2d", "Qh", "Jh", "9h")
	if r.Category() != Flush {
		t.Fatalf("got %v, want Flush", r.Category())
	}
}

func TestKickersBreakTies(t *testing.T) {
	t.Parallel()

	// Same pair of kings, ace kicker beats queen kicker.
	a := rank(t, "Kc", "Kd", "Ah", "8s", "3c")
	b := rank(t, "Kh", "Ks", "Qh", "8d", "3d")
	if a.Compare(b) != 1 {
		t.Fatalf("ace kicker should win: %v vs %v", a, b)
	}

	// Identical best-five hands tie exactly, suits notwithstanding.
	x := rank(t, "Kc", "Kd", "Ah", "8s", "3c")
	y := rank(t, "Kh", "Ks", "Ad", "8c", "3h")
	if x.Compare(y) != 0 {
		t.Fatalf("identical hands should tie: %v vs %v", x, y)
	}
}

func TestWheelLosesToSixHighStraight(t *testing.T) {
	t.Parallel()

	wheel := rank(t, "5c", "4d", "3h", "2s", "Ac")
	sixHigh := rank(t, "6c", "5d", "4h", "3s", "2c")
	if sixHigh.Compare(wheel) != 1 {
		t.Fatal("six-high straight should beat the wheel")
	}
}

func TestDoubleTripsMakeAFullHouse(t *testing.T) {
	t.Parallel()

	// Two trips in seven cards: the lower trip fills the house.
	r := rank(t, "Ac", "Ad", "Ah", "Kc", "Kd", "Kh", "2s")
	if r.Category() != FullHouse {
		t.Fatalf("got %v, want FullHouse", r.Category())
	}
	lesser := rank(t, "Ac", "Ad", "Ah", "Qc", "Qd", "3h", "2s")
	if r.Compare(lesser) != 1 {
		t.Fatal("aces full of kings should beat aces full of queens")
	}
}

func TestThreePairsKeepBestTwo(t *testing.T) {
	t.Parallel()

	// A-A, K-K, Q-Q in seven cards: two pair aces and kings, queen kicker.
	r := rank(t, "Ac", "Ad", "Kc", "Kd", "Qc", "Qd", "2s")
	if r.Category() != TwoPair {
		t.Fatalf("got %v, want TwoPair", r.Category())
	}
	lower := rank(t, "Ac", "Ad", "Kc", "Kd", "Jc", "9d", "2s")
	if r.Compare(lower) != 1 {
		t.Fatal("queen kicker should beat jack kicker")
	}
}

// toOracle converts a card for the reference evaluator, which numbers
// aces low.
func toOracle(t *testing.T, c deck.Card) poker.Card {
	t.Helper()
	suits := map[deck.Suit]poker.Suit{
		deck.Clubs:    poker.Club,
		deck.Diamonds: poker.Diamond,
		deck.Hearts:   poker.Heart,
		deck.Spades:   poker.Spade,
	}
	r := poker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		r = poker.Rank(1)
	}
	card, err := poker.MakeCard(suits[c.Suit], r)
	if err != nil {
		t.Fatalf("MakeCard(%v): %v", c, err)
	}
	return card
}

// TestAgainstReferenceEvaluator deals random pairs of seven-card hands and
// requires our ordering to agree with the reference library's.
func TestAgainstReferenceEvaluator(t *testing.T) {
	t.Parallel()

	rng := randutil.New(42)
	for trial := 0; trial < 2000; trial++ {
		d := deck.New(rng)
		board := d.Deal(5)
		h1 := d.Deal(2)
		h2 := d.Deal(2)

		mine := EvaluateHole(h1, board).Compare(EvaluateHole(h2, board))

		var a, b [7]poker.Card
		for i, c := range append(append([]deck.Card(nil), board...), h1...) {
			a[i] = toOracle(t, c)
		}
		for i, c := range append(append([]deck.Card(nil), board...), h2...) {
			b[i] = toOracle(t, c)
		}
		s1, s2 := poker.Eval7(&a), poker.Eval7(&b)
		theirs := 0
		if s1 > s2 {
			theirs = 1
		} else if s1 < s2 {
			theirs = -1
		}

		if mine != theirs {
			t.Fatalf("trial %d: board %v, %v vs %v: got %d, reference says %d",
				trial, board, h1, h2, mine, theirs)
		}
	}
}

func TestStrengthOrdering(t *testing.T) {
	t.Parallel()

	quads := rank(t, "Ac", "Ad", "Ah", "As", "2c")
	pair := rank(t, "Tc", "Td", "8h", "5s", "2c")
	high := rank(t, "Ac", "Jd", "9h", "6s", "3c")

	sq, sp, sh := Strength(quads), Strength(pair), Strength(high)
	if !(sq > sp && sp > sh) {
		t.Fatalf("strength not ordered: quads %f, pair %f, high card %f", sq, sp, sh)
	}
	for _, s := range []float64{sq, sp, sh} {
		if s < 0 || s > 1 {
			t.Fatalf("strength %f outside [0,1]", s)
		}
	}

	// Kickers spread hands inside a category without crossing into the next.
	aces := rank(t, "Ac", "Ad", "8h", "5s", "2c")
	twos := rank(t, "2c", "2d", "8h", "5s", "3c")
	if Strength(aces) <= Strength(twos) {
		t.Fatal("pair of aces should read stronger than pair of twos")
	}
	trips := rank(t, "2c", "2d", "2h", "5s", "3c")
	if Strength(trips) <= Strength(aces) {
		t.Fatal("any trips should read stronger than any pair")
	}
}

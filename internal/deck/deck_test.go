package deck

import (
	"testing"

	"github.com/handcoach/holdem/internal/randutil"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		rank Rank
		suit Suit
	}{
		{"As", Ace, Spades},
		{"Td", Ten, Diamonds},
		{"2c", Two, Clubs},
		{"Qh", Queen, Hearts},
	}
	for _, tc := range cases {
		c, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if c.Rank != tc.rank || c.Suit != tc.suit {
			t.Errorf("Parse(%q) = %v, want %s%s", tc.in, c, tc.rank, tc.suit)
		}
		if c.String() != tc.in {
			t.Errorf("Parse(%q).String() = %q", tc.in, c.String())
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "A", "Asd", "1s", "Ax", "sA"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestAllCardsDistinct(t *testing.T) {
	t.Parallel()

	seen := make(map[Card]bool)
	for _, c := range All() {
		if seen[c] {
			t.Fatalf("duplicate card %v", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Fatalf("expected 52 cards, got %d", len(seen))
	}
}

func TestIndexIsDense(t *testing.T) {
	t.Parallel()

	seen := make(map[int]bool)
	for _, c := range All() {
		idx := c.Index()
		if idx < 0 || idx > 51 {
			t.Fatalf("%v index %d out of range", c, idx)
		}
		if seen[idx] {
			t.Fatalf("index %d used twice", idx)
		}
		seen[idx] = true
	}
}

func TestShuffleIsSeedDeterministic(t *testing.T) {
	t.Parallel()

	a := New(randutil.New(7)).Deal(52)
	b := New(randutil.New(7)).Deal(52)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at card %d: %v vs %v", i, a[i], b[i])
		}
	}

	c := New(randutil.New(8)).Deal(52)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical shuffles")
	}
}

func TestStackedDealsFrontFirst(t *testing.T) {
	t.Parallel()

	front := MustParseAll("As", "Kh", "2c")
	d := Stacked(front...)
	got := d.Deal(3)
	for i, c := range front {
		if got[i] != c {
			t.Fatalf("card %d = %v, want %v", i, got[i], c)
		}
	}
	if d.Remaining() != 49 {
		t.Fatalf("remaining = %d, want 49", d.Remaining())
	}
}

func TestDealPanicsWhenExhausted(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(1))
	d.Deal(52)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic dealing from an empty deck")
		}
	}()
	d.Deal(1)
}

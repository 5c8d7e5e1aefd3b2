package evaluator

import (
	"testing"

	"github.com/handcoach/holdem/internal/deck"
	"github.com/handcoach/holdem/internal/randutil"
)

func TestEquityPocketAcesHeadsUp(t *testing.T) {
	t.Parallel()

	rng := randutil.New(1)
	eq := Equity(rng, deck.MustParseAll("As", "Ah"), nil, 1, 5000)
	if eq < 0.80 || eq > 0.90 {
		t.Fatalf("AA heads-up equity %f outside the expected band", eq)
	}
}

func TestEquityDropsWithMoreOpponents(t *testing.T) {
	t.Parallel()

	hole := deck.MustParseAll("As", "Ah")
	one := Equity(randutil.New(2), hole, nil, 1, 3000)
	four := Equity(randutil.New(2), hole, nil, 4, 3000)
	if four >= one {
		t.Fatalf("equity should fall with more opponents: 1 opp %f, 4 opp %f", one, four)
	}
}

func TestEquityIsSeedDeterministic(t *testing.T) {
	t.Parallel()

	hole := deck.MustParseAll("Kd", "Qd")
	board := deck.MustParseAll("Jd", "Td", "2c")
	a := Equity(randutil.New(9), hole, board, 2, 1000)
	b := Equity(randutil.New(9), hole, board, 2, 1000)
	if a != b {
		t.Fatalf("same seed gave different estimates: %f vs %f", a, b)
	}
}

func TestEquityNutsOnCompleteBoard(t *testing.T) {
	t.Parallel()

	// Royal flush on the river cannot lose or tie.
	hole := deck.MustParseAll("As", "Ks")
	board := deck.MustParseAll("Qs", "Js", "Ts", "2c", "3d")
	eq := Equity(randutil.New(3), hole, board, 3, 500)
	if eq != 1 {
		t.Fatalf("nut hand equity = %f, want 1", eq)
	}
}

func TestEquityDegenerateInputs(t *testing.T) {
	t.Parallel()

	hole := deck.MustParseAll("2c", "7d")
	if eq := Equity(randutil.New(4), hole, nil, 0, 100); eq != 0 {
		t.Fatalf("zero opponents pre-river should report 0, got %f", eq)
	}
	if eq := Equity(randutil.New(4), hole, nil, 1, 0); eq != 0 {
		t.Fatalf("zero trials should report 0, got %f", eq)
	}
}

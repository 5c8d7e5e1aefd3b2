package ai

import (
	"fmt"
	"testing"

	"github.com/handcoach/holdem/internal/deck"
	"github.com/handcoach/holdem/internal/evaluator"
	"github.com/handcoach/holdem/internal/game"
	"github.com/handcoach/holdem/internal/randutil"
)

func TestFactoryKnowsEveryKind(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		s, err := New(kind)
		if err != nil {
			t.Fatalf("New(%q): %v", kind, err)
		}
		if s.Name() != kind {
			t.Errorf("strategy %q reports name %q", kind, s.Name())
		}
	}
	if len(Kinds()) != 4 {
		t.Fatalf("expected 4 strategies, got %v", Kinds())
	}
	if _, err := New("gto-wizard"); err == nil {
		t.Fatal("unknown strategy should error")
	}
}

// TestDecisionsAreAlwaysLegal runs full tables of each personality and
// applies every decision without a fallback: the engine accepting each one
// proves the strategies stay inside the advertised action set.
func TestDecisionsAreAlwaysLegal(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()

			strat, err := New(kind)
			if err != nil {
				t.Fatal(err)
			}
			rng := randutil.New(31)
			cfg := game.Config{SmallBlind: 5, BigBlind: 10}
			for i := 0; i < 4; i++ {
				cfg.Seats = append(cfg.Seats, game.SeatConfig{Name: fmt.Sprintf("p%d", i), Stack: 400})
			}
			tbl, err := game.New(rng, cfg)
			if err != nil {
				t.Fatal(err)
			}
			seatRNG := randutil.Derive(rng)

			for hand := 0; hand < 15 && tbl.FundedSeats() >= 2; hand++ {
				if err := tbl.StartHand(); err != nil {
					t.Fatalf("hand %d: %v", hand, err)
				}
				for steps := 0; ; steps++ {
					if steps > 500 {
						t.Fatalf("hand %d did not converge", hand)
					}
					change, err := tbl.AdvanceIfRoundComplete()
					if err != nil {
						t.Fatalf("hand %d: %v", hand, err)
					}
					if change != nil && change.HandComplete {
						break
					}
					seat, ok := tbl.CurrentTurn()
					if !ok {
						continue
					}
					view, err := tbl.View(seat)
					if err != nil {
						t.Fatalf("hand %d: %v", hand, err)
					}
					d := strat.Decide(seatRNG, view)
					if err := tbl.ApplyAction(seat, d.Action, d.Amount); err != nil {
						t.Fatalf("hand %d: %s returned illegal %v(%d) for view %+v: %v",
							hand, kind, d.Action, d.Amount, view, err)
					}
				}
			}
		})
	}
}

func TestHandStrengthUsesExactScoreOnCompleteBoard(t *testing.T) {
	t.Parallel()

	hole := deck.MustParseAll("As", "Ks")
	board := deck.MustParseAll("Qs", "Js", "Ts", "2c", "3d")
	v := game.SeatView{Hole: hole, Board: board, Opponents: 2}

	got := handStrength(randutil.New(1), v)
	want := evaluator.Strength(evaluator.EvaluateHole(hole, board))
	if got != want {
		t.Fatalf("complete board strength = %f, want exact %f", got, want)
	}
}

func TestHandStrengthSamplesIncompleteBoard(t *testing.T) {
	t.Parallel()

	aces := game.SeatView{Hole: deck.MustParseAll("As", "Ah"), Opponents: 1}
	junk := game.SeatView{Hole: deck.MustParseAll("2c", "7d"), Opponents: 1}

	sa := handStrength(randutil.New(5), aces)
	sj := handStrength(randutil.New(5), junk)
	if sa <= sj {
		t.Fatalf("aces (%f) should estimate stronger than 7-2 (%f)", sa, sj)
	}
	for _, s := range []float64{sa, sj} {
		if s < 0 || s > 1 {
			t.Fatalf("strength %f outside [0,1]", s)
		}
	}
}

func TestRaiseToClampsIntoLegalWindow(t *testing.T) {
	t.Parallel()

	v := game.SeatView{
		CurrentBet: 100,
		MinRaiseTo: 200,
		MaxRaiseTo: 600,
		Legal:      []game.Action{game.Fold, game.Call, game.Raise, game.AllIn},
	}

	if d := raiseTo(v, 150); d.Action != game.Raise || d.Amount != 200 {
		t.Errorf("below-minimum target should clamp up, got %+v", d)
	}
	if d := raiseTo(v, 400); d.Action != game.Raise || d.Amount != 400 {
		t.Errorf("in-window target should pass through, got %+v", d)
	}
	if d := raiseTo(v, 900); d.Action != game.AllIn {
		t.Errorf("beyond-stack target should shove, got %+v", d)
	}

	// Without the raise option the decision degrades to a call.
	v.Legal = []game.Action{game.Fold, game.Call}
	if d := raiseTo(v, 400); d.Action != game.Call {
		t.Errorf("raise unavailable should degrade to call, got %+v", d)
	}
}

func TestCheckOrFoldPrefersTheFreeOption(t *testing.T) {
	t.Parallel()

	free := game.SeatView{Legal: []game.Action{game.Fold, game.Check}}
	if d := checkOrFold(free); d.Action != game.Check {
		t.Errorf("got %+v, want check", d)
	}
	priced := game.SeatView{Legal: []game.Action{game.Fold, game.Call}}
	if d := checkOrFold(priced); d.Action != game.Fold {
		t.Errorf("got %+v, want fold", d)
	}
}

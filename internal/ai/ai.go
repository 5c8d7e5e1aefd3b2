// Package ai provides the scripted decision-makers that drive seats in a
// simulation. Each strategy is a pure function of the seat's view: it
// never touches table state, and the action it returns is re-validated by
// the engine on application.
package ai

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/handcoach/holdem/internal/evaluator"
	"github.com/handcoach/holdem/internal/game"
)

// Trials is the number of board completions sampled when estimating win
// probability with an incomplete board.
const Trials = 200

// Decision is a chosen action. Amount is the raise target and is ignored
// for everything else.
type Decision struct {
	Action game.Action
	Amount int
}

// Strategy decides an action from a seat's view of the table. Decide must
// be safe to call concurrently for different seats; the RNG is the
// caller's, one per seat, so runs replay deterministically.
type Strategy interface {
	Name() string
	Decide(rng *rand.Rand, v game.SeatView) Decision
}

var factories = map[string]func() Strategy{
	"conservative": func() Strategy { return conservative{} },
	"aggressive":   func() Strategy { return aggressive{} },
	"ev":           func() Strategy { return evWeighted{} },
	"bluffer":      func() Strategy { return bluffer{} },
}

// New returns the strategy registered under the given key.
func New(kind string) (Strategy, error) {
	f, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("ai: unknown strategy %q (known: %v)", kind, Kinds())
	}
	return f(), nil
}

// Kinds lists the registered strategy keys, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// handStrength estimates the seat's chance of holding the best hand as a
// value in [0,1]. With a complete board the exact evaluator rank is mapped
// through the shared category scale; before that, win probability is
// sampled by dealing out random completions. Every strategy goes through
// this one function so their thresholds stay on the same scale.
func handStrength(rng *rand.Rand, v game.SeatView) float64 {
	if len(v.Board) == 5 {
		return evaluator.Strength(evaluator.EvaluateHole(v.Hole, v.Board))
	}
	opponents := max(v.Opponents, 1)
	return evaluator.Equity(rng, v.Hole, v.Board, opponents, Trials)
}

// checkOrFold checks when free, folds otherwise.
func checkOrFold(v game.SeatView) Decision {
	if v.Allows(game.Check) {
		return Decision{Action: game.Check}
	}
	return Decision{Action: game.Fold}
}

// callOrCheck calls a pending bet, checking when there is nothing to call.
func callOrCheck(v game.SeatView) Decision {
	if v.Allows(game.Call) {
		return Decision{Action: game.Call}
	}
	return checkOrFold(v)
}

// raiseTo raises toward the target, clamped into the legal window. When
// raising is not available the decision degrades to a call or check, and
// a target at the stack ceiling becomes a shove.
func raiseTo(v game.SeatView, target int) Decision {
	if target >= v.MaxRaiseTo && v.Allows(game.AllIn) {
		return Decision{Action: game.AllIn}
	}
	if !v.Allows(game.Raise) {
		if v.Allows(game.AllIn) && target >= v.MaxRaiseTo {
			return Decision{Action: game.AllIn}
		}
		return callOrCheck(v)
	}
	if target < v.MinRaiseTo {
		target = v.MinRaiseTo
	}
	if target > v.MaxRaiseTo {
		target = v.MaxRaiseTo
	}
	return Decision{Action: game.Raise, Amount: target}
}

// potRaise sizes a raise as the current price plus a multiple of the pot.
func potRaise(v game.SeatView, mult float64) int {
	return v.CurrentBet + int(float64(v.Pot)*mult)
}

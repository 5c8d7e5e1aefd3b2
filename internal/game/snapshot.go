package game

import "github.com/handcoach/holdem/internal/deck"

// CompletedHand is the immutable record of a settled hand, emitted exactly
// once when the hand reaches terminal state. Persisting it is the caller's
// concern; the engine keeps only the most recent one.
type CompletedHand struct {
	HandNum int
	Dealer  int
	Board   []deck.Card
	Seats   []SeatResult
	Pots    []PotResult

	// WonByFold is set when every other seat folded and no cards were
	// revealed.
	WonByFold bool
}

// SeatResult captures one seat's outcome in a completed hand.
type SeatResult struct {
	Index    int
	Name     string
	Hole     []deck.Card // nil unless Revealed
	Revealed bool
	Folded   bool
	Stack    int // stack after settlement
	Won      int
}

// PotResult is one settled pot: its amount, who could win it, and who did.
type PotResult struct {
	Amount   int
	Eligible []int
	Winners  []int
}

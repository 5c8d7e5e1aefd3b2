package game

import "github.com/handcoach/holdem/internal/deck"

// Seat is the per-position mutable state at a table. Chips only move
// between Stack and Contributed through the betting round processor, so
// Stack+Contributed is constant for the duration of a hand.
type Seat struct {
	Index    int
	Name     string
	Strategy string // strategy key for scripted seats, "" for human-driven

	Stack       int
	Bet         int // chips wagered on the current street
	Contributed int // chips wagered across the whole hand

	Hole []deck.Card

	Folded bool
	AllIn  bool
	Acted  bool // set by voluntary actions only, never by blind posts
	Out    bool // eliminated before this hand; skipped for blinds and cards
}

// InHand reports whether the seat is still contesting the current hand.
func (s *Seat) InHand() bool {
	return !s.Out && !s.Folded && len(s.Hole) == 2
}

// CanAct reports whether the seat could take a betting action.
func (s *Seat) CanAct() bool {
	return s.InHand() && !s.AllIn
}

// needsAction reports whether the seat still owes a response at the given
// bet level. A seat that acted but no longer matches the bet (a raise
// happened) owes a call or fold; one that matches but has not acted (the
// big blind's option) owes a voluntary action.
func (s *Seat) needsAction(currentBet int) bool {
	return s.CanAct() && (!s.Acted || s.Bet != currentBet)
}

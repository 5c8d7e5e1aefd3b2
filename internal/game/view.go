package game

import (
	"fmt"

	"github.com/handcoach/holdem/internal/deck"
)

// CurrentTurn returns the seat on turn. ok is false between rounds, when
// no hand is running, or when nobody can act.
func (t *Table) CurrentTurn() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.inHand || !t.hasTurn {
		return 0, false
	}
	return t.turn, true
}

// LegalActions lists the actions the seat on turn may take right now.
func (t *Table) LegalActions(seatIdx int) ([]Action, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOnTurn(seatIdx); err != nil {
		return nil, err
	}
	return t.legalActionsLocked(t.seats[seatIdx]), nil
}

func (t *Table) checkOnTurn(seatIdx int) error {
	if t.corrupt {
		return ErrTableCorrupted
	}
	if !t.inHand || t.street == Showdown {
		return ErrNoHand
	}
	if seatIdx < 0 || seatIdx >= len(t.seats) {
		return fmt.Errorf("%w: no seat %d", ErrOutOfTurn, seatIdx)
	}
	if !t.hasTurn || t.turn != seatIdx {
		return fmt.Errorf("%w: seat %d", ErrOutOfTurn, seatIdx)
	}
	return nil
}

// legalActionsLocked mirrors ApplyAction's validation. A Raise is only
// advertised when the stack covers a full minimum raise; a shove below
// that is offered as AllIn.
func (t *Table) legalActionsLocked(s *Seat) []Action {
	actions := []Action{Fold}
	toCall := t.currentBet - s.Bet

	if toCall <= 0 {
		actions = append(actions, Check)
		if s.Stack > 0 && !s.Acted {
			if s.Bet+s.Stack >= t.currentBet+t.minRaise {
				actions = append(actions, Raise)
			}
			actions = append(actions, AllIn)
		}
		return actions
	}

	actions = append(actions, Call)
	if s.Acted {
		// A short all-in raised the price without reopening the betting.
		return actions
	}
	if s.Stack > toCall && s.Bet+s.Stack >= t.currentBet+t.minRaise {
		actions = append(actions, Raise)
	}
	actions = append(actions, AllIn)
	return actions
}

// SeatView is the immutable snapshot a decision-maker sees: its own cards
// and the public table state, never another seat's holding. Card slices
// are copies; mutating them does not touch the table.
type SeatView struct {
	Seat      int
	Street    Street
	Hole      []deck.Card
	Board     []deck.Card
	Opponents int // live seats still contesting the pot, besides this one

	Pot        int
	BigBlind   int
	Bet        int // this seat's chips already in on the street
	Stack      int
	CurrentBet int

	CallAmount int // chips needed to call, capped at the stack
	MinRaiseTo int // lowest legal raise target, capped at all-in
	MaxRaiseTo int // all-in target
	SPR        float64

	Legal []Action
}

// View builds the decision snapshot for the seat on turn.
func (t *Table) View(seatIdx int) (SeatView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOnTurn(seatIdx); err != nil {
		return SeatView{}, err
	}

	s := t.seats[seatIdx]
	maxTo := s.Bet + s.Stack
	minTo := min(t.currentBet+t.minRaise, maxTo)

	v := SeatView{
		Seat:       seatIdx,
		Street:     t.street,
		Hole:       append([]deck.Card(nil), s.Hole...),
		Board:      append([]deck.Card(nil), t.board...),
		Opponents:  t.liveSeats() - 1,
		Pot:        t.pot,
		BigBlind:   t.bigBlind,
		Bet:        s.Bet,
		Stack:      s.Stack,
		CurrentBet: t.currentBet,
		CallAmount: min(t.currentBet-s.Bet, s.Stack),
		MinRaiseTo: minTo,
		MaxRaiseTo: maxTo,
		SPR:        float64(s.Stack) / float64(t.pot),
		Legal:      t.legalActionsLocked(s),
	}
	return v, nil
}

// PotOdds is the fraction of the resulting pot the call amount represents,
// the break-even equity for a call. Zero when checking is free.
func (v SeatView) PotOdds() float64 {
	if v.CallAmount <= 0 {
		return 0
	}
	return float64(v.CallAmount) / float64(v.Pot+v.CallAmount)
}

// Allows reports whether the action is in the legal set.
func (v SeatView) Allows(a Action) bool {
	for _, l := range v.Legal {
		if l == a {
			return true
		}
	}
	return false
}

// SeatInfo is a public copy of one seat's standing.
type SeatInfo struct {
	Index       int
	Name        string
	Strategy    string
	Stack       int
	Bet         int
	Contributed int
	Folded      bool
	AllIn       bool
	Out         bool
}

// Seats returns a copy of every seat's public standing.
func (t *Table) Seats() []SeatInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	infos := make([]SeatInfo, len(t.seats))
	for i, s := range t.seats {
		infos[i] = SeatInfo{
			Index:       s.Index,
			Name:        s.Name,
			Strategy:    s.Strategy,
			Stack:       s.Stack,
			Bet:         s.Bet,
			Contributed: s.Contributed,
			Folded:      s.Folded,
			AllIn:       s.AllIn,
			Out:         s.Out,
		}
	}
	return infos
}

// Snapshot returns the record of the most recently completed hand, for
// the caller to persist or display.
func (t *Table) Snapshot() (*CompletedHand, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.result == nil {
		return nil, ErrNoHand
	}
	return t.result, nil
}

// LastAggressor returns the seat that made the last bet or raise of the
// current street. ok is false when the street has only checks and calls.
func (t *Table) LastAggressor() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.hasAggressor {
		return 0, false
	}
	return t.aggressor, true
}

// Street returns the current street of the running hand.
func (t *Table) Street() Street {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.street
}

// Board returns a copy of the community cards dealt so far.
func (t *Table) Board() []deck.Card {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]deck.Card(nil), t.board...)
}

// Pot returns the chips wagered so far in the running hand.
func (t *Table) Pot() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pot
}

// HandNumber returns how many hands have been started, counting the
// running one.
func (t *Table) HandNumber() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handNum
}

// Dealer returns the dealer button position for the current or most
// recent hand, or -1 before the first hand.
func (t *Table) Dealer() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dealer
}

// HandInProgress reports whether a hand is running.
func (t *Table) HandInProgress() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inHand
}

// Corrupted reports whether an invariant violation has frozen the table.
func (t *Table) Corrupted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.corrupt
}

// TotalChips returns the fixed number of chips on the table.
func (t *Table) TotalChips() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalChips
}

// FundedSeats counts seats that could be dealt into the next hand.
func (t *Table) FundedSeats() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	count := 0
	for _, s := range t.seats {
		if s.Stack > 0 {
			count++
		}
	}
	return count
}

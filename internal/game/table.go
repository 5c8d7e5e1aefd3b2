// Package game implements the hold'em hand engine: the betting round
// processor, the street state machine, and side-pot settlement. A Table is
// a pure simulation core: it owns no goroutines, performs no I/O, and all
// randomness comes from the injected RNG. Each table guards its own state
// with a mutex, so independent tables run concurrently without sharing.
package game

import (
	"fmt"
	rand "math/rand/v2"
	"sync"

	"github.com/handcoach/holdem/internal/deck"
)

// Config describes a table at creation time.
type Config struct {
	Seats      []SeatConfig
	SmallBlind int
	BigBlind   int
}

// SeatConfig describes one seat: a display name, an optional strategy key
// for scripted seats, and a starting stack.
type SeatConfig struct {
	Name     string
	Strategy string
	Stack    int
}

// Table holds one game session. Seats persist across hands; a seat whose
// stack reaches zero is eliminated but keeps its position for history.
type Table struct {
	mu  sync.Mutex
	rng *rand.Rand

	seats      []*Seat
	smallBlind int
	bigBlind   int
	totalChips int

	handNum int
	dealer  int
	inHand  bool
	corrupt bool

	street     Street
	deck       *deck.Deck
	board      []deck.Card
	pot        int
	currentBet int
	minRaise   int

	aggressor    int
	hasAggressor bool
	turn         int
	hasTurn      bool
	lastActor    int
	hasLastActor bool

	result *CompletedHand
}

// New creates a table. The RNG drives every shuffle for the table's
// lifetime, so a seed reproduces the whole session.
func New(rng *rand.Rand, cfg Config) (*Table, error) {
	if rng == nil {
		return nil, fmt.Errorf("game: rng is required")
	}
	if len(cfg.Seats) < 2 {
		return nil, fmt.Errorf("game: need at least 2 seats, got %d", len(cfg.Seats))
	}
	if cfg.SmallBlind <= 0 || cfg.BigBlind <= cfg.SmallBlind {
		return nil, fmt.Errorf("game: invalid blinds %d/%d", cfg.SmallBlind, cfg.BigBlind)
	}
	t := &Table{
		rng:        rng,
		smallBlind: cfg.SmallBlind,
		bigBlind:   cfg.BigBlind,
		dealer:     -1,
	}
	for i, sc := range cfg.Seats {
		if sc.Stack <= 0 {
			return nil, fmt.Errorf("game: seat %d (%s) needs a positive stack", i, sc.Name)
		}
		t.seats = append(t.seats, &Seat{
			Index:    i,
			Name:     sc.Name,
			Strategy: sc.Strategy,
			Stack:    sc.Stack,
		})
		t.totalChips += sc.Stack
	}
	return t, nil
}

// HandOption configures a single hand at StartHand time.
type HandOption func(*handConfig)

type handConfig struct {
	deck *deck.Deck
}

// WithDeck makes the next hand deal from a prepared deck instead of
// shuffling, for deterministic tests.
func WithDeck(d *deck.Deck) HandOption {
	return func(c *handConfig) { c.deck = d }
}

// StartHand resets hand state, rotates the dealer to the next funded seat,
// posts blinds and deals hole cards. Blind posts deliberately do not set
// the acted flag: the blinds' right to act (the big blind's option) falls
// out of the round-completion rule instead of being special-cased.
func (t *Table) StartHand(opts ...HandOption) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.corrupt {
		return ErrTableCorrupted
	}
	if t.inHand {
		return ErrHandInProgress
	}
	funded := 0
	for _, s := range t.seats {
		if s.Stack > 0 {
			funded++
		}
	}
	if funded < 2 {
		return ErrTooFewPlayers
	}

	var cfg handConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	t.handNum++
	for _, s := range t.seats {
		s.Bet = 0
		s.Contributed = 0
		s.Folded = false
		s.AllIn = false
		s.Acted = false
		s.Hole = nil
		s.Out = s.Stack == 0
	}
	t.dealer = t.nextFunded(t.dealer + 1)
	t.street = PreFlop
	t.board = t.board[:0]
	t.pot = 0
	t.currentBet = 0
	t.minRaise = t.bigBlind
	t.hasAggressor = false
	t.hasLastActor = false
	t.result = nil

	if cfg.deck != nil {
		t.deck = cfg.deck
	} else {
		t.deck = deck.New(t.rng)
	}
	for _, s := range t.seats {
		if !s.Out {
			s.Hole = append([]deck.Card(nil), t.deck.Deal(2)...)
		}
	}

	// Heads-up the dealer posts the small blind and acts first pre-flop;
	// multi-way the blinds sit left of the dealer and UTG opens.
	var sb, bb int
	if funded == 2 {
		sb = t.dealer
		bb = t.nextFunded(sb + 1)
	} else {
		sb = t.nextFunded(t.dealer + 1)
		bb = t.nextFunded(sb + 1)
	}
	t.post(sb, t.smallBlind)
	t.post(bb, t.bigBlind)
	t.currentBet = t.bigBlind

	t.inHand = true
	if funded == 2 {
		t.setTurnFrom(sb)
	} else {
		t.setTurnFrom(bb + 1)
	}
	return nil
}

// post moves a forced blind into the pot, short if the stack cannot cover it.
func (t *Table) post(idx, blind int) {
	s := t.seats[idx]
	amt := min(blind, s.Stack)
	s.Stack -= amt
	s.Bet += amt
	s.Contributed += amt
	t.pot += amt
	if s.Stack == 0 {
		s.AllIn = true
	}
}

// ApplyAction validates and applies one action for the seat on turn. On
// any failure the table is untouched; the caller may retry with a legal
// action. Raise amounts are the seat's new total bet for the street.
func (t *Table) ApplyAction(seatIdx int, action Action, amount int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

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

	s := t.seats[seatIdx]
	toCall := t.currentBet - s.Bet

	// Validate everything before touching state.
	switch action {
	case Fold:
	case Check:
		if toCall != 0 {
			return fmt.Errorf("%w: cannot check facing a bet of %d", ErrIllegalAction, toCall)
		}
	case Call:
		if toCall <= 0 {
			return fmt.Errorf("%w: nothing to call", ErrIllegalAction)
		}
	case Raise:
		if s.Acted {
			// A short all-in raise put the seat here; it may call or fold
			// but the betting is not reopened for it.
			return fmt.Errorf("%w: betting not reopened", ErrIllegalAction)
		}
		maxTo := s.Bet + s.Stack
		if amount <= t.currentBet {
			return fmt.Errorf("%w: raise to %d is not above the bet of %d", ErrBadAmount, amount, t.currentBet)
		}
		if amount > maxTo {
			return fmt.Errorf("%w: raise to %d exceeds stack", ErrBadAmount, amount)
		}
		if amount < t.currentBet+t.minRaise && amount != maxTo {
			return fmt.Errorf("%w: raise to %d below minimum %d", ErrBadAmount, amount, t.currentBet+t.minRaise)
		}
	case AllIn:
		if s.Stack == 0 {
			return fmt.Errorf("%w: already all-in", ErrIllegalAction)
		}
		if s.Acted && s.Bet+s.Stack > t.currentBet {
			return fmt.Errorf("%w: betting not reopened", ErrIllegalAction)
		}
	default:
		return fmt.Errorf("%w: unknown action %d", ErrIllegalAction, action)
	}

	t.lastActor = seatIdx
	t.hasLastActor = true

	switch action {
	case Fold:
		s.Folded = true
		s.Acted = true
	case Check:
		s.Acted = true
	case Call:
		t.move(s, min(toCall, s.Stack))
		s.Acted = true
	case Raise:
		t.applyRaise(s, amount)
	case AllIn:
		t.applyRaise(s, s.Bet+s.Stack)
	}

	t.setTurnFrom(seatIdx + 1)
	return nil
}

// move shifts chips from the seat's stack into its street bet and hand
// contribution, keeping the pot in lockstep.
func (t *Table) move(s *Seat, chips int) {
	s.Stack -= chips
	s.Bet += chips
	s.Contributed += chips
	t.pot += chips
	if s.Stack == 0 {
		s.AllIn = true
	}
}

// applyRaise raises the seat's street bet to target. A full raise (at
// least the previous raise size) reopens the action for everyone else; an
// all-in for less raises the price without reopening. A target at or
// below the current bet is a call for the rest of the stack.
func (t *Table) applyRaise(s *Seat, target int) {
	if target <= t.currentBet {
		t.move(s, s.Stack)
		s.Acted = true
		return
	}
	full := target >= t.currentBet+t.minRaise
	t.move(s, target-s.Bet)
	if full {
		t.minRaise = target - t.currentBet
		for _, o := range t.seats {
			if o != s {
				o.Acted = false
			}
		}
	}
	t.currentBet = target
	t.aggressor = s.Index
	t.hasAggressor = true
	s.Acted = true
}

// StateChange reports what AdvanceIfRoundComplete did: the street
// transition, any community cards dealt, and the hand result at terminal
// state.
type StateChange struct {
	From, To     Street
	Dealt        []deck.Card
	HandComplete bool
	Result       *CompletedHand
}

// AdvanceIfRoundComplete moves the hand forward when the current betting
// round is finished, dealing community cards, fast-forwarding when no
// further betting is possible, and settling at terminal state. It is
// idempotent: with an open round (or no hand) it does nothing and returns
// nil. Chip invariants are checked at every transition; a violation marks
// the table corrupted and fails this and all later calls.
func (t *Table) AdvanceIfRoundComplete() (*StateChange, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.corrupt {
		return nil, ErrTableCorrupted
	}
	if !t.inHand {
		return nil, nil
	}
	if t.hasTurn {
		return nil, nil
	}

	if err := t.checkChipInvariants(); err != nil {
		t.corrupt = true
		return nil, err
	}

	change := &StateChange{From: t.street, To: t.street}

	if t.liveSeats() <= 1 {
		if err := t.settle(change); err != nil {
			return nil, err
		}
		return change, nil
	}

	for _, s := range t.seats {
		s.Bet = 0
		s.Acted = false
	}
	t.currentBet = 0
	t.minRaise = t.bigBlind
	t.hasAggressor = false

	if t.street == River {
		t.street = Showdown
		change.To = Showdown
		if err := t.settle(change); err != nil {
			return nil, err
		}
		return change, nil
	}

	t.street++
	dealt := t.deck.Deal(t.street.communityCards())
	t.board = append(t.board, dealt...)
	change.Dealt = append(change.Dealt, dealt...)

	if t.actable() < 2 {
		// All-in fast-forward: run the remaining streets out in one step
		// and go straight to showdown.
		for t.street != River {
			t.street++
			d := t.deck.Deal(t.street.communityCards())
			t.board = append(t.board, d...)
			change.Dealt = append(change.Dealt, d...)
		}
		t.street = Showdown
		change.To = Showdown
		if err := t.settle(change); err != nil {
			return nil, err
		}
		return change, nil
	}

	t.setTurnFrom(t.dealer + 1)
	change.To = t.street
	return change, nil
}

// settle distributes the pot and freezes the hand into a CompletedHand.
// Callers hold the lock and have already verified chip invariants.
func (t *Table) settle(change *StateChange) error {
	var live []int
	for _, s := range t.seats {
		if s.InHand() {
			live = append(live, s.Index)
		}
	}

	ch := &CompletedHand{
		HandNum: t.handNum,
		Dealer:  t.dealer,
		Board:   append([]deck.Card(nil), t.board...),
	}
	won := make(map[int]int)

	switch {
	case len(live) == 1:
		// Everyone else folded; the pot is awarded without a showdown.
		w := live[0]
		won[w] = t.pot
		ch.Pots = []PotResult{{Amount: t.pot, Eligible: []int{w}, Winners: []int{w}}}
		ch.WonByFold = true
	case len(live) == 0:
		// Cannot happen under correct fold logic; pay the most recent
		// actor rather than discard chips.
		w := 0
		if t.hasLastActor {
			w = t.lastActor
		}
		won[w] = t.pot
		ch.Pots = []PotResult{{Amount: t.pot, Eligible: []int{w}, Winners: []int{w}}}
		ch.WonByFold = true
	default:
		if refund := refundUncalled(t.seats); refund > 0 {
			t.pot -= refund
		}
		pots := buildPots(t.seats)
		sum := 0
		for _, p := range pots {
			sum += p.Amount
		}
		if sum != t.pot {
			t.corrupt = true
			return fmt.Errorf("%w: side pots sum to %d, pot is %d", ErrTableCorrupted, sum, t.pot)
		}
		for _, p := range pots {
			winners := potWinners(p, t.seats, t.board)
			if len(winners) == 0 {
				t.corrupt = true
				return fmt.Errorf("%w: pot of %d has no winner", ErrTableCorrupted, p.Amount)
			}
			for w, amt := range splitPot(p.Amount, winners, t.dealer, len(t.seats)) {
				won[w] += amt
			}
			ch.Pots = append(ch.Pots, PotResult{Amount: p.Amount, Eligible: p.Eligible, Winners: winners})
		}
	}

	for idx, amt := range won {
		t.seats[idx].Stack += amt
	}
	t.pot = 0

	for _, s := range t.seats {
		res := SeatResult{
			Index:  s.Index,
			Name:   s.Name,
			Folded: s.Folded,
			Stack:  s.Stack,
			Won:    won[s.Index],
		}
		if !ch.WonByFold && s.InHand() {
			res.Hole = append([]deck.Card(nil), s.Hole...)
			res.Revealed = true
		}
		ch.Seats = append(ch.Seats, res)
	}

	sumStacks := 0
	for _, s := range t.seats {
		sumStacks += s.Stack
	}
	if sumStacks != t.totalChips {
		t.corrupt = true
		return fmt.Errorf("%w: stacks sum to %d after settlement, table holds %d", ErrTableCorrupted, sumStacks, t.totalChips)
	}

	t.street = Showdown
	t.inHand = false
	t.hasTurn = false
	t.result = ch
	change.To = Showdown
	change.HandComplete = true
	change.Result = ch
	return nil
}

// checkChipInvariants verifies the pot matches contributions and no chips
// have appeared or vanished.
func (t *Table) checkChipInvariants() error {
	sumContrib, sumStacks := 0, 0
	for _, s := range t.seats {
		sumContrib += s.Contributed
		sumStacks += s.Stack
	}
	if t.pot != sumContrib {
		return fmt.Errorf("%w: pot %d does not match contributions %d", ErrTableCorrupted, t.pot, sumContrib)
	}
	if sumStacks+t.pot != t.totalChips {
		return fmt.Errorf("%w: %d chips in play, table holds %d", ErrTableCorrupted, sumStacks+t.pot, t.totalChips)
	}
	return nil
}

func (t *Table) nextFunded(from int) int {
	n := len(t.seats)
	for i := 0; i < n; i++ {
		idx := ((from+i)%n + n) % n
		if t.seats[idx].Stack > 0 && !t.seats[idx].Out {
			return idx
		}
	}
	return ((from % n) + n) % n
}

func (t *Table) setTurnFrom(from int) {
	n := len(t.seats)
	if t.liveSeats() <= 1 {
		t.hasTurn = false
		return
	}
	for i := 0; i < n; i++ {
		idx := ((from+i)%n + n) % n
		if t.seats[idx].needsAction(t.currentBet) {
			t.turn = idx
			t.hasTurn = true
			return
		}
	}
	t.hasTurn = false
}

func (t *Table) liveSeats() int {
	count := 0
	for _, s := range t.seats {
		if s.InHand() {
			count++
		}
	}
	return count
}

func (t *Table) actable() int {
	count := 0
	for _, s := range t.seats {
		if s.CanAct() {
			count++
		}
	}
	return count
}

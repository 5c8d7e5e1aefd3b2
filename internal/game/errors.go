package game

import "errors"

// Validation errors: the action was rejected before any state changed.
// Callers can surface these to a user or re-derive a legal move.
var (
	ErrOutOfTurn     = errors.New("not this seat's turn")
	ErrIllegalAction = errors.New("illegal action")
	ErrBadAmount     = errors.New("bad amount")
)

// Lifecycle errors.
var (
	ErrNoHand         = errors.New("no hand in progress")
	ErrHandInProgress = errors.New("hand already in progress")
	ErrTooFewPlayers  = errors.New("not enough seats with chips")
)

// ErrTableCorrupted means an engine invariant was violated. The table
// refuses all further play rather than continuing with wrong chip counts.
var ErrTableCorrupted = errors.New("table corrupted: invariant violation")

package model

import "errors"

var (
	ErrInvalidNotation    = errors.New("invalid square notation")
	ErrGameOver           = errors.New("game is over")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrIllegalMove        = errors.New("illegal move")
	ErrFairyUnavailable   = errors.New("fairy piece unavailable")
	ErrNotHomeRank        = errors.New("destination is not on a home rank")
	ErrSquareOccupied     = errors.New("destination square is occupied")
	ErrFairyNotEligible   = errors.New("fairy piece entry not allowed")
	ErrGameFull           = errors.New("game is full")
	ErrNotSeated          = errors.New("player is not seated in this game")
	ErrAlreadyQueued      = errors.New("player already in queue")
	ErrConnectionRejected = errors.New("not authorized to join this game")
)

// RejectionError reports why the engine refused an action. The game state is
// unchanged whenever one is returned.
type RejectionError struct {
	Action string
	Reason error
}

func (e *RejectionError) Error() string {
	return e.Action + " rejected: " + e.Reason.Error()
}

func (e *RejectionError) Unwrap() error { return e.Reason }

func reject(action string, reason error) error {
	return &RejectionError{Action: action, Reason: reason}
}

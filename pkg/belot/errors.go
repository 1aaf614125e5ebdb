package belot

import "errors"

// Every rejected action leaves the table in its prior state; none of these
// errors is fatal and the caller may retry with a corrected action.
var (
	// Turn violations.
	ErrNotYourTurn = errors.New("not your turn")

	// Rule violations.
	ErrIllegalCard    = errors.New("illegal card")
	ErrSuitRejected   = errors.New("suit was already rejected in round 1")
	ErrSuitRequired   = errors.New("a suit must be chosen in round 2")
	ErrInvalidDiscard = errors.New("must discard exactly two distinct cards")
	ErrNotInHand      = errors.New("card is not in hand")

	// Phase violations.
	ErrWrongPhase       = errors.New("action not allowed in current phase")
	ErrAlreadySubmitted = errors.New("declarations already submitted")

	// Seating.
	ErrTableFull     = errors.New("table is full")
	ErrAlreadySeated = errors.New("player already seated")
	ErrUnknownPlayer = errors.New("player not at this table")
)

// ViolationKind classifies a rejection for the front end.
type ViolationKind uint8

const (
	ViolationNone ViolationKind = iota
	ViolationTurn
	ViolationRule
	ViolationPhase
)

// Kind maps an engine error onto the violation taxonomy.
func Kind(err error) ViolationKind {
	switch {
	case err == nil:
		return ViolationNone
	case errors.Is(err, ErrNotYourTurn):
		return ViolationTurn
	case errors.Is(err, ErrIllegalCard),
		errors.Is(err, ErrSuitRejected),
		errors.Is(err, ErrSuitRequired),
		errors.Is(err, ErrInvalidDiscard),
		errors.Is(err, ErrNotInHand):
		return ViolationRule
	case errors.Is(err, ErrWrongPhase),
		errors.Is(err, ErrAlreadySubmitted):
		return ViolationPhase
	}
	return ViolationNone
}

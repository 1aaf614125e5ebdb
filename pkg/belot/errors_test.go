package belot

import (
	"fmt"
	"testing"
)

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		kind ViolationKind
	}{
		{nil, ViolationNone},
		{ErrNotYourTurn, ViolationTurn},
		{ErrIllegalCard, ViolationRule},
		{ErrSuitRejected, ViolationRule},
		{ErrSuitRequired, ViolationRule},
		{ErrInvalidDiscard, ViolationRule},
		{ErrNotInHand, ViolationRule},
		{ErrWrongPhase, ViolationPhase},
		{ErrAlreadySubmitted, ViolationPhase},
		{fmt.Errorf("table: %w", ErrNotYourTurn), ViolationTurn},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.kind {
			t.Errorf("Kind(%v) = %v, want %v", tt.err, got, tt.kind)
		}
	}
}

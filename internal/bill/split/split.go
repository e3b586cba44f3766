package split

import (
	"errors"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CENT-EXACT EQUAL SPLIT
// Divides an amount among participants without ever losing or gaining a cent
// =============================================================================

var (
	ErrNoParticipants = errors.New("at least one participant is required")
	ErrNegativeAmount = errors.New("amounts cannot be negative")
	ErrUnbalanced     = errors.New("split totals do not sum to zero")
)

// cent is the smallest representable share (0.01).
var cent = decimal.New(1, -2)

// SplitEqually divides total among participants so that the shares sum
// exactly to total rounded to the nearest cent. Each participant gets the
// truncated equal share; the leftover cents go one-by-one to the first
// positions in the caller's ordering, so callers that need reproducible
// results must pass a stable ordering.
func SplitEqually(total decimal.Decimal, participants int) ([]decimal.Decimal, error) {
	if participants <= 0 {
		return nil, ErrNoParticipants
	}
	if total.IsNegative() {
		return nil, ErrNegativeAmount
	}

	// Work in integer cents. Round is half away from zero, which is
	// round-half-up for the non-negative totals allowed here.
	totalCents := total.Shift(2).Round(0).IntPart()
	base := totalCents / int64(participants)
	remainder := totalCents % int64(participants)

	shares := make([]decimal.Decimal, participants)
	for i := range shares {
		cents := base
		if int64(i) < remainder {
			cents++
		}
		shares[i] = decimal.New(cents, -2)
	}

	return shares, nil
}

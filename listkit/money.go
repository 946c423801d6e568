package listkit

import (
	"errors"
	"math"
)

// ErrOverpayment is returned by Allocate when the payment exceeds the sum of
// the remaining balances; callers reject the input instead of dropping the
// excess.
var ErrOverpayment = errors.New("payment exceeds total remaining balance")

// Line is a price/quantity pair; every entity with line items (sale items,
// borrow items) reduces to it for totalling.
type Line struct {
	Price    float64
	Quantity float64
}

// LineTotal is price times quantity, unrounded. Rounding happens at display
// time only so sums do not accumulate rounding error.
func LineTotal(l Line) float64 {
	return l.Price * l.Quantity
}

// GrandTotal sums the line totals of the collection.
func GrandTotal(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += LineTotal(l)
	}
	return sum
}

// Round2 rounds to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Remaining returns the outstanding balance clamped to zero for display,
// plus the raw unclamped value so overpayment stays visible to integrity
// checks.
func Remaining(total, paid float64) (display, raw float64) {
	raw = total - paid
	if raw < 0 {
		return 0, raw
	}
	return raw, raw
}

// NetSalary is base amount plus bonus minus deductions. A negative result is
// valid and reported as-is.
func NetSalary(amount, bonus, deductions float64) float64 {
	return amount + bonus - deductions
}

// Allocate distributes payment across the remaining balances in list order:
// each entry absorbs min(what is left of the payment, its own balance) until
// the payment is exhausted. The allocation is deliberately sequential rather
// than proportional.
func Allocate(payment float64, remaining []float64) ([]float64, error) {
	var totalRemaining float64
	for _, r := range remaining {
		totalRemaining += r
	}
	if payment > totalRemaining {
		return nil, ErrOverpayment
	}

	out := make([]float64, len(remaining))
	left := payment
	for i, r := range remaining {
		p := math.Min(left, r)
		out[i] = p
		left -= p
		if left <= 0 {
			break
		}
	}
	return out, nil
}

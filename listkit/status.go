package listkit

// PaymentStatus is derived from paid vs total, never stored. Cancellation
// and return flags live on the records themselves, orthogonal to this.
type PaymentStatus string

const (
	Unpaid        PaymentStatus = "unpaid"
	PartiallyPaid PaymentStatus = "partially_paid"
	Paid          PaymentStatus = "paid"
)

// StatusOf derives the payment state of a record from its paid amount and
// total. Zero-total records count as paid.
func StatusOf(paid, total float64) PaymentStatus {
	switch {
	case paid >= total:
		return Paid
	case paid > 0:
		return PartiallyPaid
	default:
		return Unpaid
	}
}

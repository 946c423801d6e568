package listkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/listkit"
)

func TestGrandTotal(t *testing.T) {
	lines := []listkit.Line{
		{Price: 10, Quantity: 2},
		{Price: 5, Quantity: 3},
	}
	assert.Equal(t, 35.0, listkit.GrandTotal(lines))
	assert.Equal(t, 0.0, listkit.GrandTotal(nil))
}

func TestRemaining(t *testing.T) {
	display, raw := listkit.Remaining(100, 40)
	assert.Equal(t, 60.0, display)
	assert.Equal(t, 60.0, raw)

	// overpayment clamps to zero for display but the raw value stays visible
	display, raw = listkit.Remaining(100, 150)
	assert.Equal(t, 0.0, display)
	assert.Equal(t, -50.0, raw)
}

func TestNetSalary(t *testing.T) {
	assert.Equal(t, 1100.0, listkit.NetSalary(1000, 200, 100))
	// deductions can push the result negative; it is reported, not clamped
	assert.Equal(t, -50.0, listkit.NetSalary(100, 0, 150))
}

func TestAllocateSequential(t *testing.T) {
	got, err := listkit.Allocate(60, []float64{30, 20, 50})
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 20, 10}, got)
}

func TestAllocateExactAndZero(t *testing.T) {
	got, err := listkit.Allocate(100, []float64{30, 20, 50})
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 20, 50}, got)

	got, err = listkit.Allocate(0, []float64{30, 20})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, got)
}

func TestAllocateRejectsOverpayment(t *testing.T) {
	_, err := listkit.Allocate(101, []float64{30, 20, 50})
	assert.ErrorIs(t, err, listkit.ErrOverpayment)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, listkit.Round2(10.556))
	assert.Equal(t, 10.55, listkit.Round2(10.554))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, listkit.Unpaid, listkit.StatusOf(0, 100))
	assert.Equal(t, listkit.PartiallyPaid, listkit.StatusOf(40, 100))
	assert.Equal(t, listkit.Paid, listkit.StatusOf(100, 100))
	assert.Equal(t, listkit.Paid, listkit.StatusOf(150, 100))
}

// A two-item cash sale paid in full: total 25, nothing outstanding, resolves
// as paid.
func TestFullCashSale(t *testing.T) {
	items := []listkit.Line{
		{Price: 10, Quantity: 2},
		{Price: 5, Quantity: 1},
	}
	total := listkit.GrandTotal(items)
	require.Equal(t, 25.0, total)

	display, raw := listkit.Remaining(total, total)
	assert.Equal(t, 0.0, display)
	assert.Equal(t, 0.0, raw)
	assert.Equal(t, listkit.Paid, listkit.StatusOf(total, total))
}

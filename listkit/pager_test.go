package listkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/listkit"
)

func TestPagesAllVisible(t *testing.T) {
	for total := 0; total <= 5; total++ {
		pages := listkit.Pages(1, total, 5)
		require.Len(t, pages, total, "total=%d", total)
		for i, p := range pages {
			assert.Equal(t, i+1, p)
			assert.NotEqual(t, listkit.Gap, p)
		}
	}
}

func TestPagesCenteredWindow(t *testing.T) {
	pages := listkit.Pages(10, 20, 5)
	assert.Equal(t, []int{1, listkit.Gap, 8, 9, 10, 11, 12, listkit.Gap, 20}, pages)
}

func TestPagesEdges(t *testing.T) {
	tests := []struct {
		name    string
		current int
		want    []int
	}{
		{"first", 1, []int{1, 2, 3, 4, 5, listkit.Gap, 20}},
		{"near left edge", 3, []int{1, 2, 3, 4, 5, listkit.Gap, 20}},
		{"no gap needed on left", 4, []int{1, 2, 3, 4, 5, 6, listkit.Gap, 20}},
		{"last", 20, []int{1, listkit.Gap, 18, 19, 20}},
		{"near right edge", 18, []int{1, listkit.Gap, 16, 17, 18, 19, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listkit.Pages(tt.current, 20, 5))
		})
	}
}

func TestPagesAlwaysBracketed(t *testing.T) {
	for current := 1; current <= 50; current++ {
		pages := listkit.Pages(current, 50, 5)
		require.NotEmpty(t, pages)
		assert.Equal(t, 1, pages[0], "current=%d", current)
		assert.Equal(t, 50, pages[len(pages)-1], "current=%d", current)
	}
}

func TestPagesDefaultMaxVisible(t *testing.T) {
	assert.Equal(t, listkit.Pages(10, 20, listkit.DefaultMaxVisible), listkit.Pages(10, 20, 0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, listkit.Clamp(0, 10))
	assert.Equal(t, 1, listkit.Clamp(-3, 10))
	assert.Equal(t, 10, listkit.Clamp(11, 10))
	assert.Equal(t, 7, listkit.Clamp(7, 10))
	assert.Equal(t, 1, listkit.Clamp(4, 0))
}

func TestPageCountAndSlice(t *testing.T) {
	assert.Equal(t, 3, listkit.PageCount(25, 10))
	assert.Equal(t, 1, listkit.PageCount(1, 10))
	assert.Equal(t, 0, listkit.PageCount(0, 10))

	from, to := listkit.Slice(3, 10, 25)
	assert.Equal(t, 20, from)
	assert.Equal(t, 25, to)

	// out-of-range pages clamp instead of going out of bounds
	from, to = listkit.Slice(9, 10, 25)
	assert.Equal(t, 20, from)
	assert.Equal(t, 25, to)
}

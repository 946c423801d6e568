package console

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/listkit"
)

func staticFetch(records []string) FetchFunc[string] {
	return func(ctx context.Context, query string) ([]string, error) {
		return records, nil
	}
}

func selfField() listkit.Accessor[string] {
	return listkit.Field(func(s string) string { return s })
}

func TestRefreshLoadsRecords(t *testing.T) {
	v := NewListView(staticFetch([]string{"hammer", "nails"}), 5, selfField())
	require.NoError(t, v.Refresh(context.Background()))
	assert.Equal(t, []string{"hammer", "nails"}, v.Visible())
	assert.Equal(t, 1, v.Page())
}

func TestStaleRefreshDiscarded(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	fetch := func(ctx context.Context, query string) ([]string, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-releaseFirst
			return []string{"stale"}, nil
		}
		return []string{"fresh"}, nil
	}

	v := NewListView(fetch, 5, selfField())

	done := make(chan error, 1)
	go func() { done <- v.Refresh(context.Background()) }()
	<-firstStarted

	// The second refresh is issued later but completes first.
	require.NoError(t, v.Refresh(context.Background()))
	assert.Equal(t, []string{"fresh"}, v.Visible())

	close(releaseFirst)
	require.NoError(t, <-done)

	// The first refresh finished last but must not overwrite the newer data.
	assert.Equal(t, []string{"fresh"}, v.Visible())
}

func TestSetQueryResetsPage(t *testing.T) {
	records := make([]string, 30)
	for i := range records {
		records[i] = "item"
	}
	v := NewListView(staticFetch(records), 5, selfField())
	require.NoError(t, v.Refresh(context.Background()))

	v.SetPage(4)
	require.Equal(t, 4, v.Page())

	v.SetQuery("it")
	assert.Equal(t, 1, v.Page())

	// Same query again leaves the page alone.
	v.SetPage(3)
	v.SetQuery("it")
	assert.Equal(t, 3, v.Page())
}

func TestSetPageClamps(t *testing.T) {
	v := NewListView(staticFetch([]string{"a", "b", "c"}), 2, selfField())
	require.NoError(t, v.Refresh(context.Background()))
	require.Equal(t, 2, v.PageCount())

	v.SetPage(99)
	assert.Equal(t, 2, v.Page())
	v.SetPage(0)
	assert.Equal(t, 1, v.Page())
}

func TestLocalFilterAndPaging(t *testing.T) {
	v := NewListView(staticFetch([]string{"hammer", "screwdriver", "hand saw", "tape"}), 2, selfField())
	require.NoError(t, v.Refresh(context.Background()))

	v.SetQuery("ha")
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, []string{"hammer", "hand saw"}, v.Visible())
}

func TestSelectionStates(t *testing.T) {
	v := NewListView(staticFetch([]string{"a", "b"}), 5, selfField())
	require.NoError(t, v.Refresh(context.Background()))

	assert.Equal(t, ModeIdle, v.Mode())
	assert.False(t, v.Edit(), "cannot edit with nothing selected")
	assert.False(t, v.ConfirmDelete(), "cannot delete with nothing selected")

	require.True(t, v.Select(1))
	assert.Equal(t, ModeViewing, v.Mode())
	selected, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", selected)

	require.True(t, v.Edit())
	assert.Equal(t, ModeEditing, v.Mode())
	assert.False(t, v.ConfirmDelete(), "cannot confirm delete while editing")

	v.Cancel()
	assert.Equal(t, ModeViewing, v.Mode())

	require.True(t, v.ConfirmDelete())
	assert.Equal(t, ModeConfirmingDelete, v.Mode())

	v.Cancel()
	assert.Equal(t, ModeViewing, v.Mode())
	v.Cancel()
	assert.Equal(t, ModeIdle, v.Mode())
	_, ok = v.Selected()
	assert.False(t, ok)
}

func TestSelectOutOfRange(t *testing.T) {
	v := NewListView(staticFetch([]string{"a"}), 5, selfField())
	require.NoError(t, v.Refresh(context.Background()))
	assert.False(t, v.Select(-1))
	assert.False(t, v.Select(1))
	assert.Equal(t, ModeIdle, v.Mode())
}

func TestRemoveSelected(t *testing.T) {
	v := NewListView(staticFetch([]string{"a", "b", "c"}), 2, selfField())
	require.NoError(t, v.Refresh(context.Background()))
	v.SetPage(2)

	require.True(t, v.Select(2))
	require.True(t, v.ConfirmDelete())
	require.True(t, v.RemoveSelected())

	assert.Equal(t, ModeIdle, v.Mode())
	assert.Equal(t, 2, v.Len())
	// Removing the only record on the last page pulls the view back.
	assert.Equal(t, 1, v.Page())
	assert.Equal(t, []string{"a", "b"}, v.Visible())
}

func TestRemoveSelectedRequiresConfirmation(t *testing.T) {
	v := NewListView(staticFetch([]string{"a", "b"}), 5, selfField())
	require.NoError(t, v.Refresh(context.Background()))
	require.True(t, v.Select(0))
	assert.False(t, v.RemoveSelected(), "viewing is not enough to remove")
	assert.Equal(t, 2, v.Len())
}

func TestPageNumbers(t *testing.T) {
	records := make([]string, 100)
	for i := range records {
		records[i] = "row"
	}
	v := NewListView(staticFetch(records), 5, selfField())
	require.NoError(t, v.Refresh(context.Background()))

	v.SetPage(10)
	assert.Equal(t, []int{1, listkit.Gap, 8, 9, 10, 11, 12, listkit.Gap, 20}, v.PageNumbers())
}

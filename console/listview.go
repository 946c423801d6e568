package console

import (
	"context"
	"sync"

	"inventory/listkit"
)

// Mode is the selection state of a list view. A record is either not
// selected, being viewed, being edited, or pending delete confirmation;
// the single enum rules out impossible combinations.
type Mode int

const (
	ModeIdle Mode = iota
	ModeViewing
	ModeEditing
	ModeConfirmingDelete
)

// FetchFunc loads the records matching a query.
type FetchFunc[T any] func(ctx context.Context, query string) ([]T, error)

// ListView holds the presentation state for one paged, searchable list:
// the fetched records, the active query, the current page and the selection.
// Concurrent refreshes are sequence-numbered so that the latest-issued fetch
// always wins, regardless of the order the responses arrive in.
type ListView[T any] struct {
	fetch     FetchFunc[T]
	accessors []listkit.Accessor[T]
	pageSize  int

	mu       sync.Mutex
	seq      uint64
	records  []T
	query    string
	page     int
	mode     Mode
	selected int
}

func NewListView[T any](fetch FetchFunc[T], pageSize int, accessors ...listkit.Accessor[T]) *ListView[T] {
	return &ListView[T]{
		fetch:     fetch,
		accessors: accessors,
		pageSize:  pageSize,
		page:      1,
		selected:  -1,
	}
}

// Refresh fetches the records for the current query. If another refresh was
// issued after this one, the result is discarded.
func (v *ListView[T]) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.seq++
	seq := v.seq
	query := v.query
	v.mu.Unlock()

	records, err := v.fetch(ctx, query)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.seq {
		return nil
	}
	v.records = records
	v.page = listkit.Clamp(v.page, v.pageCountLocked())
	if v.selected >= len(v.records) {
		v.selected = -1
		v.mode = ModeIdle
	}
	return nil
}

// SetQuery changes the search query and resets to the first page. The caller
// follows up with Refresh.
func (v *ListView[T]) SetQuery(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if query == v.query {
		return
	}
	v.query = query
	v.page = 1
}

func (v *ListView[T]) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

func (v *ListView[T]) filteredLocked() []T {
	return listkit.Filter(v.records, v.query, v.accessors...)
}

func (v *ListView[T]) pageCountLocked() int {
	return listkit.PageCount(len(v.filteredLocked()), v.pageSize)
}

func (v *ListView[T]) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

func (v *ListView[T]) PageCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageCountLocked()
}

// SetPage clamps out-of-range pages instead of failing.
func (v *ListView[T]) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = listkit.Clamp(page, v.pageCountLocked())
}

// PageNumbers returns the pager cells for rendering, listkit.Gap marking an
// ellipsis.
func (v *ListView[T]) PageNumbers() []int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return listkit.Pages(v.page, v.pageCountLocked(), listkit.DefaultMaxVisible)
}

// Visible returns the records on the current page after filtering.
func (v *ListView[T]) Visible() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	filtered := v.filteredLocked()
	from, to := listkit.Slice(v.page, v.pageSize, len(filtered))
	return filtered[from:to]
}

func (v *ListView[T]) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.filteredLocked())
}

func (v *ListView[T]) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// Selected returns the selected record, if any.
func (v *ListView[T]) Selected() (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	var zero T
	if v.selected < 0 || v.selected >= len(v.records) {
		return zero, false
	}
	return v.records[v.selected], true
}

// Select moves idle → viewing. The index refers to the raw record slice.
func (v *ListView[T]) Select(index int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if index < 0 || index >= len(v.records) {
		return false
	}
	v.selected = index
	v.mode = ModeViewing
	return true
}

// Edit moves viewing → editing.
func (v *ListView[T]) Edit() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mode != ModeViewing {
		return false
	}
	v.mode = ModeEditing
	return true
}

// ConfirmDelete moves viewing → confirmingDelete.
func (v *ListView[T]) ConfirmDelete() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mode != ModeViewing {
		return false
	}
	v.mode = ModeConfirmingDelete
	return true
}

// Cancel backs out of editing or delete confirmation to viewing, or clears
// the selection entirely when only viewing.
func (v *ListView[T]) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch v.mode {
	case ModeEditing, ModeConfirmingDelete:
		v.mode = ModeViewing
	case ModeViewing:
		v.mode = ModeIdle
		v.selected = -1
	}
}

// RemoveSelected splices the selected record out of the local slice. Called
// only after the server confirmed the delete; there is no optimistic removal.
func (v *ListView[T]) RemoveSelected() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mode != ModeConfirmingDelete || v.selected < 0 || v.selected >= len(v.records) {
		return false
	}
	v.records = append(v.records[:v.selected], v.records[v.selected+1:]...)
	v.selected = -1
	v.mode = ModeIdle
	v.page = listkit.Clamp(v.page, v.pageCountLocked())
	return true
}

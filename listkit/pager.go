// Package listkit holds the list-presentation helpers shared by every entity
// screen: page-window computation, free-text filtering and the money
// aggregations used by sales, borrows and payroll. Everything in here is a
// pure function of its inputs.
package listkit

// Gap marks an elided run of pages inside a Pages result.
const Gap = -1

// DefaultMaxVisible is the page-window width used when the caller passes a
// non-positive maxVisible.
const DefaultMaxVisible = 5

// Pages returns the sequence of page tokens to render for a pager: page
// numbers, with Gap standing in for elided runs. When total fits inside
// maxVisible every page is listed. Otherwise the window is centered on
// current and the first and last pages are always present, with a Gap
// inserted whenever at least one page is skipped between them and the
// window.
func Pages(current, total, maxVisible int) []int {
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}
	if total <= 0 {
		return nil
	}
	current = Clamp(current, total)

	if total <= maxVisible {
		pages := make([]int, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	left := current - maxVisible/2
	if left < 1 {
		left = 1
	}
	right := left + maxVisible - 1
	if right > total {
		right = total
	}

	var pages []int
	if left > 1 {
		pages = append(pages, 1)
		if left > 2 {
			pages = append(pages, Gap)
		}
	}
	for i := left; i <= right; i++ {
		pages = append(pages, i)
	}
	if right < total {
		if right < total-1 {
			pages = append(pages, Gap)
		}
		pages = append(pages, total)
	}
	return pages
}

// Clamp bounds a navigation request to [1, total]. Requests against an empty
// list land on page 1.
func Clamp(page, total int) int {
	if page < 1 || total < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// PageCount returns the number of pages needed for n records at the given
// page size.
func PageCount(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Slice returns the half-open [from, to) bounds of a page over n records.
func Slice(page, pageSize, n int) (from, to int) {
	if pageSize <= 0 || n <= 0 {
		return 0, 0
	}
	page = Clamp(page, PageCount(n, pageSize))
	from = (page - 1) * pageSize
	to = from + pageSize
	if to > n {
		to = n
	}
	return from, to
}

// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows shown in paged lists.
const PageSize = 25

// ModalPageSize is a smaller page size for lists shown inside modals.
const ModalPageSize = 10

// ParseStart extracts the human-friendly "start" query parameter (1-based index).
// Returns 1 if not present or invalid.
func ParseStart(r *http.Request) int {
	s := query.Get(r, "start")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Range holds computed display range values for a paginated list.
type Range struct {
	Start     int // 1-based start index (0 if no results)
	End       int // 1-based end index (0 if no results)
	Total     int // rows available across all pages
	PrevStart int // start value for previous page link
	NextStart int // start value for next page link
	HasPrev   bool
	HasNext   bool
}

// Slice returns the page of rows beginning at the 1-based start index,
// together with its display range. A start past the end snaps back to
// the last full page so a shrinking result set never shows an empty page.
func Slice[T any](rows []T, start int) ([]T, Range) {
	return sliceWithSize(rows, start, PageSize)
}

// SliceModal is like Slice but uses ModalPageSize.
func SliceModal[T any](rows []T, start int) ([]T, Range) {
	return sliceWithSize(rows, start, ModalPageSize)
}

func sliceWithSize[T any](rows []T, start, pageSize int) ([]T, Range) {
	total := len(rows)
	if start < 1 {
		start = 1
	}
	if total > 0 && start > total {
		start = ((total-1)/pageSize)*pageSize + 1
	}
	lo := start - 1
	hi := lo + pageSize
	if hi > total {
		hi = total
	}
	var page []T
	if lo < hi {
		page = rows[lo:hi]
	}
	rg := computeRangeWithSize(start, len(page), pageSize)
	rg.Total = total
	rg.HasPrev = len(page) > 0 && start > 1
	rg.HasNext = hi < total
	return page, rg
}

// ComputeRange calculates display range values given the current start index
// and number of items shown.
func ComputeRange(start, shown int) Range {
	return computeRangeWithSize(start, shown, PageSize)
}

// ComputeRangeModal is like ComputeRange but uses ModalPageSize.
func ComputeRangeModal(start, shown int) Range {
	return computeRangeWithSize(start, shown, ModalPageSize)
}

// computeRangeWithSize is the internal implementation that accepts a custom page size.
func computeRangeWithSize(start, shown, pageSize int) Range {
	if shown == 0 {
		return Range{Start: 0, End: 0, PrevStart: 1, NextStart: 1}
	}

	prevStart := start - pageSize
	if prevStart < 1 {
		prevStart = 1
	}

	return Range{
		Start:     start,
		End:       start + shown - 1,
		PrevStart: prevStart,
		NextStart: start + shown,
	}
}

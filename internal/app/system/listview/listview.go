// internal/app/system/listview/listview.go

// Package listview derives the visible page of a remote collection from the
// full collection as last fetched: search, categorical filters, date range,
// sort, and paging all happen here, in memory, without side effects.
package listview

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/paging"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/text"
)

// Dir is a sort direction.
type Dir string

const (
	Asc  Dir = "asc"
	Desc Dir = "desc"
)

// FilterAll is the filter value that matches every row.
const FilterAll = "all"

// dateLayout is the form layout of the from/to query params.
const dateLayout = "2006-01-02"

// Filter is a categorical filter (status, role, payment...).
type Filter[T any] struct {
	Name    string
	Label   string
	Options []string
	Value   func(T) string
}

// Sort is one sortable column. Exactly one of Text, Number, or Time is set.
type Sort[T any] struct {
	Key    string
	Label  string
	Text   func(T) string
	Number func(T) float64
	Time   func(T) time.Time
}

// Spec describes how a collection of T is searched, filtered, and sorted.
type Spec[T any] struct {
	ID          func(T) string
	Search      []func(T) string
	Filters     []Filter[T]
	Date        func(T) time.Time
	Sorts       []Sort[T]
	DefaultSort string
	DefaultDir  Dir
}

// Query is the user's current list state.
type Query struct {
	Search  string
	Filters map[string]string
	From    time.Time
	To      time.Time
	Sort    string
	Dir     Dir
	Start   int
}

// View is the derived page.
type View[T any] struct {
	Rows    []T
	Matched int
	Total   int
	Range   paging.Range
	Query   Query
}

// ParseQuery reads the list state from the request's URL query.
// Unknown sort keys fall back to DefaultSort; filter values outside
// a filter's options are ignored.
func ParseQuery[T any](r *http.Request, spec Spec[T]) Query {
	q := Query{
		Search:  strings.TrimSpace(query.Get(r, "search")),
		Filters: map[string]string{},
		Sort:    query.Get(r, "sort"),
		Dir:     Dir(query.Get(r, "dir")),
		Start:   paging.ParseStart(r),
	}

	for _, f := range spec.Filters {
		v := query.Get(r, f.Name)
		if v == "" || v == FilterAll {
			continue
		}
		if len(f.Options) == 0 || contains(f.Options, v) {
			q.Filters[f.Name] = v
		}
	}

	if spec.Date != nil {
		if t, err := time.Parse(dateLayout, query.Get(r, "from")); err == nil {
			q.From = t
		}
		if t, err := time.Parse(dateLayout, query.Get(r, "to")); err == nil {
			q.To = t
		}
	}

	if _, ok := spec.sortFor(q.Sort); !ok {
		q.Sort = spec.DefaultSort
		q.Dir = ""
	}
	if q.Dir != Asc && q.Dir != Desc {
		q.Dir = spec.DefaultDir
		if q.Dir == "" {
			q.Dir = Asc
		}
	}
	return q
}

// Derive filters, sorts, and pages rows according to q. The input slice is
// not modified.
func Derive[T any](rows []T, q Query, spec Spec[T]) View[T] {
	matched := Filtered(rows, q, spec)
	SortRows(matched, q, spec)
	page, rg := paging.Slice(matched, q.Start)
	return View[T]{
		Rows:    page,
		Matched: len(matched),
		Total:   len(rows),
		Range:   rg,
		Query:   q,
	}
}

// Filtered returns a new slice with the rows that satisfy every active
// criterion in q, in input order.
func Filtered[T any](rows []T, q Query, spec Spec[T]) []T {
	needle := text.Fold(q.Search)
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if matches(row, needle, q, spec) {
			out = append(out, row)
		}
	}
	return out
}

func matches[T any](row T, needle string, q Query, spec Spec[T]) bool {
	if needle != "" {
		hit := false
		for _, field := range spec.Search {
			if strings.Contains(text.Fold(field(row)), needle) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	for _, f := range spec.Filters {
		want, ok := q.Filters[f.Name]
		if !ok || want == "" || want == FilterAll {
			continue
		}
		if f.Value(row) != want {
			return false
		}
	}

	if spec.Date != nil && (!q.From.IsZero() || !q.To.IsZero()) {
		day := truncateDay(spec.Date(row))
		if !q.From.IsZero() && day.Before(truncateDay(q.From)) {
			return false
		}
		if !q.To.IsZero() && day.After(truncateDay(q.To)) {
			return false
		}
	}
	return true
}

// truncateDay returns midnight of t's calendar day in UTC.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (spec Spec[T]) sortFor(key string) (Sort[T], bool) {
	for _, s := range spec.Sorts {
		if s.Key == key {
			return s, true
		}
	}
	return Sort[T]{}, false
}

// Active reports whether any search, filter, or date criterion is set.
func (q Query) Active() bool {
	if q.Search != "" || !q.From.IsZero() || !q.To.IsZero() {
		return true
	}
	for _, v := range q.Filters {
		if v != "" && v != FilterAll {
			return true
		}
	}
	return false
}

// Filter returns the active value of the named filter, or FilterAll.
func (q Query) Filter(name string) string {
	if v := q.Filters[name]; v != "" {
		return v
	}
	return FilterAll
}

// FromValue formats From for a date input.
func (q Query) FromValue() string { return dateValue(q.From) }

// ToValue formats To for a date input.
func (q Query) ToValue() string { return dateValue(q.To) }

func dateValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// Values encodes q back into URL query values. Start is omitted when it is
// the first row.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for k, val := range q.Filters {
		if val != "" && val != FilterAll {
			v.Set(k, val)
		}
	}
	if !q.From.IsZero() {
		v.Set("from", q.FromValue())
	}
	if !q.To.IsZero() {
		v.Set("to", q.ToValue())
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Dir != "" {
		v.Set("dir", string(q.Dir))
	}
	if q.Start > 1 {
		v.Set("start", strconv.Itoa(q.Start))
	}
	return v
}

// Encode is Values().Encode().
func (q Query) Encode() string { return q.Values().Encode() }

// PageLink returns the query string for the page starting at start.
func (q Query) PageLink(start int) string {
	q.Start = start
	return q.Encode()
}

// SortLink returns the query string for a column header link. Clicking the
// active column toggles direction; a new column starts ascending. Paging
// resets to the first row.
func (q Query) SortLink(key string) string {
	next := q
	next.Start = 1
	if q.Sort == key {
		next.Dir = q.Dir.Toggle()
	} else {
		next.Sort = key
		next.Dir = Asc
	}
	return next.Encode()
}

// SortIndicator returns an arrow for the active column, or "".
func (q Query) SortIndicator(key string) string {
	if q.Sort != key {
		return ""
	}
	if q.Dir == Desc {
		return "▼"
	}
	return "▲"
}

// Toggle flips the direction.
func (d Dir) Toggle() Dir {
	if d == Desc {
		return Asc
	}
	return Desc
}

// internal/app/system/listview/sort.go
package listview

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Language is the collation locale for text columns.
var Language = language.English

// SortRows sorts rows in place by q.Sort and q.Dir. Rows that compare equal
// on the column are ordered by ID, so the order is total and Desc is the
// exact reverse of Asc.
func SortRows[T any](rows []T, q Query, spec Spec[T]) {
	s, ok := spec.sortFor(q.Sort)
	if !ok {
		s, ok = spec.sortFor(spec.DefaultSort)
	}
	cmp := comparator(s, ok, spec.ID)
	desc := q.Dir == Desc
	sort.SliceStable(rows, func(i, j int) bool {
		c := cmp(rows[i], rows[j])
		if desc {
			c = -c
		}
		return c < 0
	})
}

// comparator builds the full column-then-ID comparison. A collator is not
// safe for concurrent use, so each call gets its own.
func comparator[T any](s Sort[T], ok bool, id func(T) string) func(a, b T) int {
	var col *collate.Collator
	if ok && s.Text != nil {
		col = collate.New(Language, collate.IgnoreCase, collate.IgnoreWidth)
	}

	return func(a, b T) int {
		if ok {
			var c int
			switch {
			case s.Text != nil:
				c = col.CompareString(s.Text(a), s.Text(b))
			case s.Number != nil:
				c = compareFloat(s.Number(a), s.Number(b))
			case s.Time != nil:
				c = s.Time(a).Compare(s.Time(b))
			}
			if c != 0 {
				return c
			}
		}
		if id == nil {
			return 0
		}
		return strings.Compare(id(a), id(b))
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

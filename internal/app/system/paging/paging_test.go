package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParseStart(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?start=26", 26},
		{"?start=0", 1},
		{"?start=-3", 1},
		{"?start=abc", 1},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/users"+tt.query, nil)
		if got := ParseStart(r); got != tt.want {
			t.Errorf("ParseStart(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestSlice(t *testing.T) {
	rows := make([]int, PageSize*2+3)
	for i := range rows {
		rows[i] = i + 1
	}

	tests := []struct {
		name     string
		start    int
		wantLen  int
		wantHead int
		wantPrev bool
		wantNext bool
	}{
		{"first page", 1, PageSize, 1, false, true},
		{"second page", PageSize + 1, PageSize, PageSize + 1, true, true},
		{"last partial page", PageSize*2 + 1, 3, PageSize*2 + 1, true, false},
		{"start past end snaps to last page", 999, 3, PageSize*2 + 1, true, false},
		{"zero start", 0, PageSize, 1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, rg := Slice(rows, tt.start)
			if len(page) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(page), tt.wantLen)
			}
			if page[0] != tt.wantHead {
				t.Errorf("first row = %d, want %d", page[0], tt.wantHead)
			}
			if rg.HasPrev != tt.wantPrev || rg.HasNext != tt.wantNext {
				t.Errorf("HasPrev=%v HasNext=%v, want %v %v", rg.HasPrev, rg.HasNext, tt.wantPrev, tt.wantNext)
			}
			if rg.Total != len(rows) {
				t.Errorf("Total = %d, want %d", rg.Total, len(rows))
			}
			if rg.End-rg.Start+1 != len(page) {
				t.Errorf("range %d..%d does not match %d rows", rg.Start, rg.End, len(page))
			}
		})
	}
}

func TestSlice_Empty(t *testing.T) {
	page, rg := Slice([]string{}, 1)
	if len(page) != 0 {
		t.Errorf("len = %d, want 0", len(page))
	}
	if rg.Start != 0 || rg.End != 0 || rg.HasNext || rg.HasPrev {
		t.Errorf("range = %+v", rg)
	}
}

func TestComputeRange(t *testing.T) {
	tests := []struct {
		name  string
		start int
		shown int
		want  Range
	}{
		{
			name:  "no results",
			start: 1,
			shown: 0,
			want:  Range{Start: 0, End: 0, PrevStart: 1, NextStart: 1},
		},
		{
			name:  "first page full",
			start: 1,
			shown: PageSize,
			want:  Range{Start: 1, End: PageSize, PrevStart: 1, NextStart: PageSize + 1},
		},
		{
			name:  "first page partial",
			start: 1,
			shown: 10,
			want:  Range{Start: 1, End: 10, PrevStart: 1, NextStart: 11},
		},
		{
			name:  "second page",
			start: PageSize + 1,
			shown: PageSize,
			want:  Range{Start: PageSize + 1, End: PageSize * 2, PrevStart: 1, NextStart: PageSize*2 + 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRange(tt.start, tt.shown)
			if got != tt.want {
				t.Errorf("ComputeRange(%d, %d) = %+v, want %+v", tt.start, tt.shown, got, tt.want)
			}
		})
	}
}

func TestComputeRangeModal(t *testing.T) {
	got := ComputeRangeModal(ModalPageSize+1, 4)
	want := Range{Start: ModalPageSize + 1, End: ModalPageSize + 4, PrevStart: 1, NextStart: ModalPageSize + 5}
	if got != want {
		t.Errorf("ComputeRangeModal = %+v, want %+v", got, want)
	}
}

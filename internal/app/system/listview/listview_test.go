package listview_test

import (
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/listview"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

func bookingSpec() listview.Spec[models.Booking] {
	return listview.Spec[models.Booking]{
		ID: func(b models.Booking) string { return b.ID },
		Search: []func(models.Booking) string{
			func(b models.Booking) string { return b.Student.Name },
			func(b models.Booking) string { return b.Student.Email },
			func(b models.Booking) string { return b.Course.Title },
		},
		Filters: []listview.Filter[models.Booking]{
			{Name: "status", Options: models.BookingStatuses, Value: func(b models.Booking) string { return b.Status }},
			{Name: "payment", Options: models.PaymentStatuses, Value: func(b models.Booking) string { return b.PaymentStatus }},
		},
		Date: func(b models.Booking) time.Time { return b.CreatedAt },
		Sorts: []listview.Sort[models.Booking]{
			{Key: "date", Time: func(b models.Booking) time.Time { return b.CreatedAt }},
			{Key: "amount", Number: func(b models.Booking) float64 { return b.Amount }},
			{Key: "student", Text: func(b models.Booking) string { return b.Student.Name }},
		},
		DefaultSort: "date",
		DefaultDir:  listview.Desc,
	}
}

func day(d int) time.Time { return time.Date(2026, 3, d, 15, 30, 0, 0, time.UTC) }

func sampleBookings() []models.Booking {
	return []models.Booking{
		{ID: "b1", Status: "confirmed", Student: models.Person{Name: "Anna Field"}, Amount: 40, CreatedAt: day(1)},
		{ID: "b2", Status: "pending", Student: models.Person{Name: "Joanne Park"}, Amount: 25, CreatedAt: day(2)},
		{ID: "b3", Status: "pending", Student: models.Person{Name: "Bob Stone"}, Amount: 25, CreatedAt: day(3)},
		{ID: "b4", Status: "refunded", Student: models.Person{Name: "Hannah Lee"}, Amount: 60, CreatedAt: day(4)},
	}
}

func ids(rows []models.Booking) []string {
	out := make([]string, len(rows))
	for i, b := range rows {
		out[i] = b.ID
	}
	return out
}

func TestDerive_StatusAndSearch(t *testing.T) {
	q := listview.Query{
		Search:  "ann",
		Filters: map[string]string{"status": "pending"},
		Sort:    "date",
		Dir:     listview.Asc,
		Start:   1,
	}
	v := listview.Derive(sampleBookings(), q, bookingSpec())

	if got := ids(v.Rows); !reflect.DeepEqual(got, []string{"b2"}) {
		t.Errorf("rows = %v, want [b2]", got)
	}
	if v.Matched != 1 || v.Total != 4 {
		t.Errorf("Matched=%d Total=%d", v.Matched, v.Total)
	}
}

func TestDerive_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	type course struct{ ID, Title string }
	spec := listview.Spec[course]{
		ID:          func(c course) string { return c.ID },
		Search:      []func(course) string{func(c course) string { return c.Title }},
		Sorts:       []listview.Sort[course]{{Key: "title", Text: func(c course) string { return c.Title }}},
		DefaultSort: "title",
	}
	rows := []course{{"1", "Math 101"}, {"2", "History"}}
	v := listview.Derive(rows, listview.Query{Search: "math", Start: 1}, spec)
	if len(v.Rows) != 1 || v.Rows[0].Title != "Math 101" {
		t.Errorf("rows = %v", v.Rows)
	}
}

func TestDerive_EmptyQueryKeepsEverything(t *testing.T) {
	v := listview.Derive(sampleBookings(), listview.Query{Start: 1}, bookingSpec())
	if v.Matched != 4 {
		t.Errorf("Matched = %d, want 4", v.Matched)
	}
}

func TestDerive_AllFilterIsInactive(t *testing.T) {
	q := listview.Query{Filters: map[string]string{"status": listview.FilterAll}, Start: 1}
	if v := listview.Derive(sampleBookings(), q, bookingSpec()); v.Matched != 4 {
		t.Errorf("Matched = %d, want 4", v.Matched)
	}
}

func TestDerive_DateRangeIsInclusiveByDay(t *testing.T) {
	q := listview.Query{
		From:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		To:    time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		Sort:  "date",
		Dir:   listview.Asc,
		Start: 1,
	}
	east := time.FixedZone("UTC+5", 5*3600)
	west := time.FixedZone("UTC-5", -5*3600)
	rows := append(sampleBookings(),
		// 2026-03-02T04:00Z
		models.Booking{ID: "b5", Status: "pending", CreatedAt: time.Date(2026, 3, 1, 23, 0, 0, 0, west)},
		// 2026-03-03T20:00Z
		models.Booking{ID: "b6", Status: "pending", CreatedAt: time.Date(2026, 3, 4, 1, 0, 0, 0, east)},
		// 2026-03-01T22:00Z
		models.Booking{ID: "b7", Status: "pending", CreatedAt: time.Date(2026, 3, 2, 3, 0, 0, 0, east)},
	)
	v := listview.Derive(rows, q, bookingSpec())
	if got := ids(v.Rows); !reflect.DeepEqual(got, []string{"b5", "b2", "b3", "b6"}) {
		t.Errorf("rows = %v, want [b5 b2 b3 b6]", got)
	}
}

func TestDerive_DoesNotModifyInput(t *testing.T) {
	rows := sampleBookings()
	before := ids(rows)
	listview.Derive(rows, listview.Query{Sort: "amount", Dir: listview.Desc, Start: 1}, bookingSpec())
	if !reflect.DeepEqual(ids(rows), before) {
		t.Errorf("input reordered: %v", ids(rows))
	}
}

func TestSort_TiesBrokenByIDAndReversible(t *testing.T) {
	spec := bookingSpec()
	asc := listview.Derive(sampleBookings(), listview.Query{Sort: "amount", Dir: listview.Asc, Start: 1}, spec)
	desc := listview.Derive(sampleBookings(), listview.Query{Sort: "amount", Dir: listview.Desc, Start: 1}, spec)

	if got := ids(asc.Rows); !reflect.DeepEqual(got, []string{"b2", "b3", "b1", "b4"}) {
		t.Errorf("asc = %v", got)
	}
	want := ids(asc.Rows)
	for i, j := 0, len(want)-1; i < j; i, j = i+1, j-1 {
		want[i], want[j] = want[j], want[i]
	}
	if got := ids(desc.Rows); !reflect.DeepEqual(got, want) {
		t.Errorf("desc = %v, want exact reverse %v", got, want)
	}
}

func TestSort_Idempotent(t *testing.T) {
	spec := bookingSpec()
	q := listview.Query{Sort: "student", Dir: listview.Asc, Start: 1}
	once := listview.Derive(sampleBookings(), q, spec)
	twice := listview.Derive(once.Rows, q, spec)
	if !reflect.DeepEqual(ids(once.Rows), ids(twice.Rows)) {
		t.Errorf("sorting twice changed order: %v vs %v", ids(once.Rows), ids(twice.Rows))
	}
	if got := ids(once.Rows); !reflect.DeepEqual(got, []string{"b1", "b3", "b4", "b2"}) {
		t.Errorf("student order = %v", got)
	}
}

func TestSort_MissingTextSortsFirst(t *testing.T) {
	rows := append(sampleBookings(), models.Booking{ID: "b0"})
	v := listview.Derive(rows, listview.Query{Sort: "student", Dir: listview.Asc, Start: 1}, bookingSpec())
	if v.Rows[0].ID != "b0" {
		t.Errorf("first row = %s, want b0 (empty name)", v.Rows[0].ID)
	}
}

func TestParseQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/bookings?search=+ann+&status=pending&payment=bogus&from=2026-03-01&to=nope&sort=amount&dir=desc&start=26", nil)
	q := listview.ParseQuery(r, bookingSpec())

	if q.Search != "ann" {
		t.Errorf("Search = %q", q.Search)
	}
	if q.Filter("status") != "pending" {
		t.Errorf("status = %q", q.Filter("status"))
	}
	if q.Filter("payment") != listview.FilterAll {
		t.Errorf("unknown payment value should be ignored, got %q", q.Filter("payment"))
	}
	if q.FromValue() != "2026-03-01" || !q.To.IsZero() {
		t.Errorf("From=%v To=%v", q.From, q.To)
	}
	if q.Sort != "amount" || q.Dir != listview.Desc || q.Start != 26 {
		t.Errorf("Sort=%q Dir=%q Start=%d", q.Sort, q.Dir, q.Start)
	}
}

func TestParseQuery_UnknownSortFallsBack(t *testing.T) {
	r := httptest.NewRequest("GET", "/bookings?sort=secret&dir=asc", nil)
	q := listview.ParseQuery(r, bookingSpec())
	if q.Sort != "date" || q.Dir != listview.Desc {
		t.Errorf("Sort=%q Dir=%q, want date desc", q.Sort, q.Dir)
	}
}

func TestSortLink(t *testing.T) {
	q := listview.Query{Sort: "date", Dir: listview.Desc, Start: 51, Filters: map[string]string{"status": "pending"}}

	if got := q.SortLink("date"); got != "dir=asc&sort=date&status=pending" {
		t.Errorf("same column = %q", got)
	}
	if got := q.SortLink("amount"); got != "dir=asc&sort=amount&status=pending" {
		t.Errorf("new column = %q", got)
	}
	if q.SortIndicator("date") != "▼" || q.SortIndicator("amount") != "" {
		t.Error("unexpected indicator")
	}
}

func TestQueryActive(t *testing.T) {
	if (listview.Query{}).Active() {
		t.Error("empty query reported active")
	}
	if !(listview.Query{Filters: map[string]string{"role": "admin"}}).Active() {
		t.Error("role filter not reported active")
	}
}

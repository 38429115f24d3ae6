package coursesessions

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/coursehub/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Harness) {
	t.Helper()
	h := testutil.NewHarness(t)
	h.API.Handle("GET /instructor/courses", testutil.OK(testutil.Courses()))
	h.API.Handle("GET /instructor/courses/c1/sessions", testutil.OK(testutil.Sessions()))
	return NewHandler(h.Base), h
}

func withCourse(r *http.Request) *http.Request {
	return testutil.WithChiURLParam(r, "courseID", "c1")
}

func sessionForm() url.Values {
	return url.Values{
		"title":     {"Derivatives"},
		"date":      {"2026-04-15"},
		"startTime": {"09:00"},
		"endTime":   {"10:30"},
		"location":  {"Room 4"},
	}
}

func TestStartsAt(t *testing.T) {
	s := models.Session{Date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), StartTime: "13:45"}
	if got := startsAt(s); got.Hour() != 13 || got.Minute() != 45 || got.Day() != 1 {
		t.Errorf("startsAt = %v", got)
	}
	s.StartTime = ""
	if got := startsAt(s); !got.Equal(s.Date) {
		t.Errorf("missing start time: %v", got)
	}
}

func TestServeList_EarliestFirstWithCourseTitle(t *testing.T) {
	handler, h := newTestHandler(t)

	h.Do(handler.ServeList, withCourse(testutil.NewAuthenticatedRequest("GET", "/instructor/courses/c1/sessions", testutil.InstructorUser())))

	data, ok := testutil.LastData[listData](h.Render)
	if !ok {
		t.Fatal("expected listData")
	}
	if data.CourseTitle != "Math 101" {
		t.Errorf("CourseTitle = %q", data.CourseTitle)
	}
	if len(data.View.Rows) != 2 || data.View.Rows[0].ID != "s1" {
		t.Errorf("rows = %+v", data.View.Rows)
	}
}

func TestServeList_DateRange(t *testing.T) {
	handler, h := newTestHandler(t)

	h.Do(handler.ServeList, withCourse(testutil.NewAuthenticatedRequest("GET", "/instructor/courses/c1/sessions?from=2026-04-05", testutil.InstructorUser())))

	data, _ := testutil.LastData[listData](h.Render)
	if data.View.Matched != 1 || data.View.Rows[0].ID != "s2" {
		t.Errorf("rows = %+v", data.View.Rows)
	}
}

func TestHandleCreate_EndBeforeStart(t *testing.T) {
	handler, h := newTestHandler(t)
	form := sessionForm()
	form.Set("endTime", "08:00")

	rec := h.Do(handler.HandleCreate, withCourse(testutil.NewFormRequest("/instructor/courses/c1/sessions", form.Encode(), testutil.InstructorUser())))

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	data, _ := testutil.LastData[formData](h.Render)
	if data.FieldErrors["endTime"] == "" {
		t.Errorf("FieldErrors = %v", data.FieldErrors)
	}
	if h.API.Hits("POST /instructor/courses/c1/sessions") != 0 {
		t.Error("API must not be called")
	}
}

func TestHandleCreate_NeedsLocationOrLink(t *testing.T) {
	handler, h := newTestHandler(t)
	form := sessionForm()
	form.Del("location")

	h.Do(handler.HandleCreate, withCourse(testutil.NewFormRequest("/instructor/courses/c1/sessions", form.Encode(), testutil.InstructorUser())))

	data, _ := testutil.LastData[formData](h.Render)
	if data.FieldErrors["location"] == "" {
		t.Errorf("FieldErrors = %v", data.FieldErrors)
	}
}

func TestHandleCreate_SuccessInvalidatesSessions(t *testing.T) {
	handler, h := newTestHandler(t)
	h.API.Handle("POST /instructor/courses/c1/sessions", testutil.OK(models.Session{ID: "s9"}))
	instructor := testutil.InstructorUser()
	h.Do(handler.ServeList, withCourse(testutil.NewAuthenticatedRequest("GET", "/instructor/courses/c1/sessions", instructor)))

	rec := h.Do(handler.HandleCreate, withCourse(testutil.NewFormRequest("/instructor/courses/c1/sessions", sessionForm().Encode(), instructor)))

	rec.AssertRedirect(t, "/instructor/courses/c1/sessions")
	if h.Cached(instructor.ID, querycache.K(shared.Sessions, "c1")) {
		t.Error("sessions should be invalidated")
	}
	if !h.Cached(instructor.ID, querycache.K(shared.MyCourses)) {
		t.Error("course list is not affected by a new session")
	}
	call, _ := h.API.Last("POST /instructor/courses/c1/sessions")
	if !strings.Contains(string(call.Body), `"date":"2026-04-15"`) {
		t.Errorf("body = %s", call.Body)
	}
}

func TestServeEdit_Prefills(t *testing.T) {
	handler, h := newTestHandler(t)

	req := testutil.WithChiURLParam(withCourse(testutil.NewAuthenticatedRequest("GET", "/instructor/courses/c1/sessions/s2/edit", testutil.InstructorUser())), "id", "s2")
	h.Do(handler.ServeEdit, req)

	data, _ := testutil.LastData[formData](h.Render)
	if data.Input.Date != "2026-04-08" || data.Input.MeetingURL == "" || !data.IsEdit {
		t.Errorf("form = %+v", data)
	}
}

func TestHandleDelete_ReturnOutsideCourseFallsBack(t *testing.T) {
	handler, h := newTestHandler(t)
	h.API.Handle("DELETE /instructor/sessions/s1", testutil.OK(nil))

	req := testutil.WithChiURLParam(withCourse(testutil.NewFormRequest("/instructor/courses/c1/sessions/s1/delete", "return=%2Finstructor%2Fcourses%2Fc2%2Fsessions", testutil.InstructorUser())), "id", "s1")
	rec := h.Do(handler.HandleDelete, req)

	rec.AssertRedirect(t, "/instructor/courses/c1/sessions")
}

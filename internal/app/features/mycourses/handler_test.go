package mycourses

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/coursehub/internal/app/features/shared"
	"github.com/dalemusser/coursehub/internal/app/system/notify"
	"github.com/dalemusser/coursehub/internal/app/system/querycache"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/coursehub/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Harness) {
	t.Helper()
	h := testutil.NewHarness(t)
	h.API.Handle("GET /instructor/courses", testutil.OK(testutil.Courses()))
	return NewHandler(h.Base), h
}

func validForm() url.Values {
	return url.Values{
		"title":       {"Calculus"},
		"category":    {"Math"},
		"price":       {"45.50"},
		"capacity":    {"30"},
		"description": {"Limits and derivatives."},
		"return":      {"/instructor/courses?status=draft"},
	}
}

func TestServeList_FilterDraft(t *testing.T) {
	handler, h := newTestHandler(t)

	h.Do(handler.ServeList, testutil.NewAuthenticatedRequest("GET", "/instructor/courses?status=draft", testutil.InstructorUser()))

	data, ok := testutil.LastData[listData](h.Render)
	if !ok {
		t.Fatal("expected listData")
	}
	if data.View.Matched != 1 || data.View.Rows[0].ID != "c3" {
		t.Errorf("rows = %+v", data.View.Rows)
	}
	if data.ReturnURL != "/instructor/courses?status=draft" {
		t.Errorf("ReturnURL = %q", data.ReturnURL)
	}
}

func TestHandleCreate_MissingTitleMakesNoCall(t *testing.T) {
	handler, h := newTestHandler(t)
	form := validForm()
	form.Set("title", " ")

	rec := h.Do(handler.HandleCreate, testutil.NewFormRequest("/instructor/courses", form.Encode(), testutil.InstructorUser()))

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	if h.API.Hits("POST /instructor/courses") != 0 {
		t.Error("API must not be called")
	}
	data, _ := testutil.LastData[formData](h.Render)
	if data.FieldErrors["title"] == "" {
		t.Errorf("FieldErrors = %v", data.FieldErrors)
	}
}

func TestHandleCreate_BadNumbers(t *testing.T) {
	handler, h := newTestHandler(t)
	form := validForm()
	form.Set("price", "free")
	form.Set("capacity", "2.5")

	h.Do(handler.HandleCreate, testutil.NewFormRequest("/instructor/courses", form.Encode(), testutil.InstructorUser()))

	data, _ := testutil.LastData[formData](h.Render)
	if data.FieldErrors["price"] == "" || data.FieldErrors["capacity"] == "" {
		t.Errorf("FieldErrors = %v", data.FieldErrors)
	}
	if data.Price != "free" {
		t.Errorf("typed price lost: %q", data.Price)
	}
}

func TestHandleCreate_Success(t *testing.T) {
	handler, h := newTestHandler(t)
	h.API.Handle("POST /instructor/courses", testutil.OK(models.Course{ID: "c9"}))
	instructor := testutil.InstructorUser()
	h.Do(handler.ServeList, testutil.NewAuthenticatedRequest("GET", "/instructor/courses", instructor))

	rec := h.Do(handler.HandleCreate, testutil.NewFormRequest("/instructor/courses", validForm().Encode(), instructor))

	rec.AssertRedirect(t, "/instructor/courses?status=draft")
	if h.Cached(instructor.ID, querycache.K(shared.MyCourses)) {
		t.Error("my-courses should be invalidated")
	}
	call, _ := h.API.Last("POST /instructor/courses")
	body := string(call.Body)
	if !strings.Contains(body, `"category":"math"`) || !strings.Contains(body, `"price":45.5`) || !strings.Contains(body, `"capacity":30`) {
		t.Errorf("body = %s", body)
	}
}

func TestServeEdit_UnknownCourse(t *testing.T) {
	handler, h := newTestHandler(t)

	req := testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("GET", "/instructor/courses/zz/edit", testutil.InstructorUser()), "id", "zz")
	h.Do(handler.ServeEdit, req).AssertStatus(t, http.StatusNotFound)
}

func TestServeEdit_PrefillsFromCache(t *testing.T) {
	handler, h := newTestHandler(t)

	req := testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("GET", "/instructor/courses/c2/edit", testutil.InstructorUser()), "id", "c2")
	h.Do(handler.ServeEdit, req)

	data, _ := testutil.LastData[formData](h.Render)
	if !data.IsEdit || data.Input.Title != "History" || data.Price != "30" || data.Capacity != "10" {
		t.Errorf("form = %+v", data)
	}
}

func TestHandleEdit_ServerErrorKeepsInput(t *testing.T) {
	handler, h := newTestHandler(t)
	h.API.Handle("PUT /instructor/courses/c3", testutil.Fail(http.StatusInternalServerError, ""))

	req := testutil.WithChiURLParam(testutil.NewFormRequest("/instructor/courses/c3/edit", validForm().Encode(), testutil.InstructorUser()), "id", "c3")
	rec := h.Do(handler.HandleEdit, req)

	rec.AssertStatus(t, http.StatusBadGateway)
	data, _ := testutil.LastData[formData](h.Render)
	if data.Input.Title != "Calculus" {
		t.Errorf("input lost: %+v", data.Input)
	}
	if n := h.Notices(); len(n) != 1 || n[0].Kind != notify.Error || n[0].Text != "Could not update the course." {
		t.Errorf("notices = %+v", n)
	}
}

func TestHandleSubmit(t *testing.T) {
	handler, h := newTestHandler(t)
	h.API.Handle("POST /instructor/courses/c3/submit", testutil.OK(nil))

	req := testutil.WithChiURLParam(testutil.NewFormRequest("/instructor/courses/c3/submit", "", testutil.InstructorUser()), "id", "c3")
	rec := h.Do(handler.HandleSubmit, req)

	rec.AssertRedirect(t, "/instructor/courses")
	if h.API.Hits("POST /instructor/courses/c3/submit") != 1 {
		t.Error("submit not sent")
	}
}

func TestHandleDelete_ExpiredSession(t *testing.T) {
	handler, h := newTestHandler(t)
	h.API.Handle("DELETE /instructor/courses/c3", testutil.Fail(http.StatusUnauthorized, "jwt expired"))

	req := testutil.WithChiURLParam(testutil.NewFormRequest("/instructor/courses/c3/delete", "", testutil.InstructorUser()), "id", "c3")
	rec := h.Do(handler.HandleDelete, req)

	rec.AssertRedirect(t, "/login")
	if h.Expired() != 1 {
		t.Errorf("expired = %d", h.Expired())
	}
}

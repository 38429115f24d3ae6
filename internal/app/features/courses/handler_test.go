package courses

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
	h.API.Handle("GET /admin/courses", testutil.OK(testutil.Courses()))
	return NewHandler(h.Base), h
}

func adminReq(method, target string) *http.Request {
	return testutil.NewAuthenticatedRequest(method, target, testutil.AdminUser())
}

func TestServeList_SearchMath(t *testing.T) {
	handler, h := newTestHandler(t)

	h.Do(handler.ServeList, adminReq("GET", "/courses?search=math"))

	data, ok := testutil.LastData[listData](h.Render)
	if !ok {
		t.Fatal("expected listData")
	}
	if data.View.Matched != 1 || data.View.Rows[0].Title != "Math 101" {
		t.Errorf("rows = %+v", data.View.Rows)
	}
	if strings.Join(data.Categories, ",") != "humanities,math,science" {
		t.Errorf("categories = %v", data.Categories)
	}
}

func TestServeList_DefaultNewestFirst(t *testing.T) {
	handler, h := newTestHandler(t)

	h.Do(handler.ServeList, adminReq("GET", "/courses"))

	data, _ := testutil.LastData[listData](h.Render)
	var ids []string
	for _, c := range data.View.Rows {
		ids = append(ids, c.ID)
	}
	if strings.Join(ids, ",") != "c4,c3,c2,c1" {
		t.Errorf("order = %v", ids)
	}
}

func TestServeList_FilterStatusAndCategory(t *testing.T) {
	handler, h := newTestHandler(t)

	h.Do(handler.ServeList, adminReq("GET", "/courses?status=rejected&category=science"))

	data, _ := testutil.LastData[listData](h.Render)
	if data.View.Matched != 1 || data.View.Rows[0].ID != "c4" {
		t.Errorf("rows = %+v", data.View.Rows)
	}
}

func TestServeView_RendersSanitisedMarkdown(t *testing.T) {
	handler, h := newTestHandler(t)
	h.API.Handle("GET /courses/c1", testutil.OK(models.Course{
		ID: "c1", Title: "Math 101", Status: models.CoursePending,
		Description: "## Syllabus\n\n<script>alert(1)</script>**Limits**",
	}))

	req := testutil.WithChiURLParam(adminReq("GET", "/courses/c1"), "id", "c1")
	h.Do(handler.ServeView, req).AssertStatus(t, http.StatusOK)

	data, ok := testutil.LastData[viewData](h.Render)
	if !ok {
		t.Fatal("expected viewData")
	}
	html := string(data.Description)
	if !strings.Contains(html, "<h2") || !strings.Contains(html, "<strong>Limits</strong>") {
		t.Errorf("markdown not rendered: %s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("script survived: %s", html)
	}
}

func TestServeView_NotFound(t *testing.T) {
	handler, h := newTestHandler(t)
	h.API.Handle("GET /courses/zz", testutil.Fail(http.StatusNotFound, "Course not found"))

	req := testutil.WithChiURLParam(adminReq("GET", "/courses/zz"), "id", "zz")
	h.Do(handler.ServeView, req).AssertStatus(t, http.StatusNotFound)
}

func TestHandleApprove_InvalidatesCoursesAndStats(t *testing.T) {
	handler, h := newTestHandler(t)
	h.API.Handle("PATCH /admin/courses/c1/approve", testutil.OK(nil))
	h.API.Handle("GET /admin/dashboard/stats", testutil.OK(models.AdminStats{}))
	admin := testutil.AdminUser()

	h.Do(handler.ServeList, adminReq("GET", "/courses"))

	req := testutil.WithChiURLParam(testutil.NewFormRequest("/courses/c1/approve", "return=%2Fcourses%3Fstatus%3Dpending", admin), "id", "c1")
	rec := h.Do(handler.HandleApprove, req)

	rec.AssertRedirect(t, "/courses?status=pending")
	if h.Cached(admin.ID, querycache.K(shared.Courses)) {
		t.Error("courses should be invalidated")
	}
	if n := h.Notices(); len(n) != 1 || n[0].Kind != notify.Success {
		t.Errorf("notices = %+v", n)
	}
}

func TestHandleApprove_FailureKeepsCache(t *testing.T) {
	handler, h := newTestHandler(t)
	h.API.Handle("PATCH /admin/courses/c2/approve", testutil.Fail(http.StatusBadRequest, "Course is not pending"))
	admin := testutil.AdminUser()
	h.Do(handler.ServeList, adminReq("GET", "/courses"))

	req := testutil.WithChiURLParam(testutil.NewFormRequest("/courses/c2/approve", "", admin), "id", "c2")
	rec := h.Do(handler.HandleApprove, req)

	rec.AssertRedirect(t, "/courses")
	if !h.Cached(admin.ID, querycache.K(shared.Courses)) {
		t.Error("failed approve must not invalidate")
	}
	if n := h.Notices(); len(n) != 1 || n[0].Kind != notify.Error || n[0].Text != "Course is not pending" {
		t.Errorf("notices = %+v", n)
	}
}

func TestHandleReject_ReasonRequired(t *testing.T) {
	handler, h := newTestHandler(t)

	req := testutil.WithChiURLParam(testutil.NewFormRequest("/courses/c1/reject", "reason=++", testutil.AdminUser()), "id", "c1")
	req.Header.Set("HX-Request", "true")
	h.Do(handler.HandleReject, req)

	if h.API.Hits("PATCH /admin/courses/c1/reject") != 0 {
		t.Error("API must not be called without a reason")
	}
	c, _ := h.Render.Last()
	data, ok := c.Data.(rejectModalData)
	if c.Name != "course_reject_modal" || !ok {
		t.Fatalf("rendered %q", c.Name)
	}
	if data.FieldErrors["reason"] == "" || data.Course.Title != "Math 101" {
		t.Errorf("modal = %+v", data)
	}
}

func TestHandleReject_Success(t *testing.T) {
	handler, h := newTestHandler(t)
	h.API.Handle("PATCH /admin/courses/c1/reject", testutil.OK(nil))

	form := url.Values{"reason": {"Needs a syllabus"}}
	req := testutil.WithChiURLParam(testutil.NewFormRequest("/courses/c1/reject", form.Encode(), testutil.AdminUser()), "id", "c1")
	req.Header.Set("HX-Request", "true")
	rec := h.Do(handler.HandleReject, req)

	rec.AssertHXRedirect(t, "/courses")
	call, _ := h.API.Last("PATCH /admin/courses/c1/reject")
	if !strings.Contains(string(call.Body), `"reason":"Needs a syllabus"`) {
		t.Errorf("body = %s", call.Body)
	}
}

func TestHandleDelete_FromViewPageReturnsToList(t *testing.T) {
	handler, h := newTestHandler(t)
	h.API.Handle("DELETE /admin/courses/c3", testutil.OK(nil))

	req := testutil.WithChiURLParam(testutil.NewFormRequest("/courses/c3/delete", "return=%2Fcourses%2Fc3", testutil.AdminUser()), "id", "c3")
	rec := h.Do(handler.HandleDelete, req)

	rec.AssertRedirect(t, "/courses")
}

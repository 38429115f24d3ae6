package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/coursehub/internal/app/api"
	"github.com/dalemusser/coursehub/internal/app/system/metrics"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

func newClient(t *testing.T, h http.HandlerFunc) (*api.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := api.New(api.Config{BaseURL: srv.URL + "/api/"}, zap.NewNop(), metrics.New())
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	return c, srv
}

func withToken(c *api.Client, tok string) *api.Client {
	return c.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok}))
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:3000", "ftp://x", "://"} {
		if _, err := api.New(api.Config{BaseURL: raw}, nil, nil); err == nil {
			t.Errorf("api.New(%q) succeeded, want error", raw)
		}
	}
}

func TestListCourses_AttachesBearerAndUnwrapsEnvelope(t *testing.T) {
	var gotAuth, gotPath, gotReqID string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotReqID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"data":[{"id":"c1","title":"Math 101","status":"pending","instructor":{"id":"i1","name":"Ann"}}]}`)
	})

	courses, err := withToken(c, "tok-123").ListAllCourses(context.Background())
	if err != nil {
		t.Fatalf("ListAllCourses: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
	if gotPath != "/api/admin/courses" {
		t.Errorf("path = %q", gotPath)
	}
	if gotReqID == "" {
		t.Error("expected X-Request-ID header")
	}
	if len(courses) != 1 || courses[0].Title != "Math 101" || courses[0].Instructor.Name != "Ann" {
		t.Errorf("courses = %+v", courses)
	}
}

func TestDecode_BareBody(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"totalUsers":7,"totalRevenue":120.5}`)
	})
	stats, err := withToken(c, "t").AdminStats(context.Background())
	if err != nil {
		t.Fatalf("AdminStats: %v", err)
	}
	if stats.TotalUsers != 7 || stats.TotalRevenue != 120.5 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestServerError_CarriesServerMessage(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"success":false,"message":"Course is not pending"}`)
	})

	err := withToken(c, "t").ApproveCourse(context.Background(), "c1")
	var ae *api.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *api.Error, got %T (%v)", err, err)
	}
	if ae.StatusCode != http.StatusConflict {
		t.Errorf("StatusCode = %d", ae.StatusCode)
	}
	if got := api.Message(err, "generic"); got != "Course is not pending" {
		t.Errorf("Message = %q", got)
	}
}

func TestServerError_NoBodyFallsBack(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	err := withToken(c, "t").DeleteUser(context.Background(), "u1")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := api.Message(err, "Could not delete user."); got != "Could not delete user." {
		t.Errorf("Message = %q", got)
	}
	if api.StatusCode(err) != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", api.StatusCode(err))
	}
}

func TestTransportError_HasZeroStatus(t *testing.T) {
	c, srv := newClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := withToken(c, "t").ListUsers(context.Background())
	var ae *api.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if ae.StatusCode != 0 || ae.Err == nil {
		t.Errorf("got %+v, want status 0 with wrapped transport error", ae)
	}
}

type failingSource struct{}

func (failingSource) Token() (*oauth2.Token, error) { return nil, api.ErrNoToken }

func TestMissingToken_IsUnauthorizedWithoutRequest(t *testing.T) {
	hits := 0
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) { hits++ })

	_, err := c.WithTokenSource(failingSource{}).ListBookings(context.Background())
	if !api.IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false", err)
	}
	if hits != 0 {
		t.Errorf("server saw %d requests, want 0", hits)
	}
}

func TestUnauthorizedStatus(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"token expired"}`)
	})
	_, err := withToken(c, "t").Me(context.Background())
	if !api.IsUnauthorized(err) {
		t.Error("expected IsUnauthorized")
	}
	if api.Message(err, "") != "token expired" {
		t.Errorf("Message = %q", api.Message(err, ""))
	}
}

func TestInvalidShapeIsRejected(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":[{"id":"b1","status":"lost"}]}`)
	})
	_, err := withToken(c, "t").ListBookings(context.Background())
	if !errors.Is(err, api.ErrInvalidResponse) {
		t.Errorf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestRejectCourse_SendsReason(t *testing.T) {
	var body, method string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body, method = string(b), r.Method
		w.WriteHeader(http.StatusNoContent)
	})
	err := withToken(c, "t").RejectCourse(context.Background(), "c 1", models.RejectInput{Reason: "Missing syllabus"})
	if err != nil {
		t.Fatalf("RejectCourse: %v", err)
	}
	if method != http.MethodPatch || !strings.Contains(body, `"reason":"Missing syllabus"`) {
		t.Errorf("method=%s body=%s", method, body)
	}
}

func TestExportBookings_StreamsBlob(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("status") != "pending" {
			t.Errorf("status query = %q", r.URL.Query().Get("status"))
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="server.csv"`)
		io.WriteString(w, "id,status\nb1,pending\n")
	})
	blob, err := withToken(c, "t").ExportBookings(context.Background(), "pending")
	if err != nil {
		t.Fatalf("ExportBookings: %v", err)
	}
	defer blob.Close()
	data, _ := io.ReadAll(blob.Body)
	if string(data) != "id,status\nb1,pending\n" {
		t.Errorf("body = %q", data)
	}
	if blob.ContentType != "text/csv" || blob.Filename != "server.csv" {
		t.Errorf("blob = %+v", blob)
	}
}

func TestRestoreBackup_Multipart(t *testing.T) {
	var gotName, gotContent string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		gotName, gotContent = hdr.Filename, string(b)
	})
	err := withToken(c, "t").RestoreBackup(context.Background(), "backup.zip", strings.NewReader("PK..."))
	if err != nil {
		t.Fatalf("RestoreBackup: %v", err)
	}
	if gotName != "backup.zip" || gotContent != "PK..." {
		t.Errorf("name=%q content=%q", gotName, gotContent)
	}
}

// gatedArchive hands out its first gate bytes at once and holds the rest
// until the server has seen the start of the upload.
type gatedArchive struct {
	size, gate, sent int
	seen             <-chan struct{}
}

func (g *gatedArchive) Read(p []byte) (int, error) {
	if g.sent == g.size {
		return 0, io.EOF
	}
	limit := g.size
	if g.sent < g.gate {
		limit = g.gate
	} else if g.sent == g.gate {
		select {
		case <-g.seen:
		case <-time.After(2 * time.Second):
			return 0, errors.New("server saw nothing before the archive was fully read")
		}
	}
	n := min(len(p), limit-g.sent)
	clear(p[:n])
	g.sent += n
	return n, nil
}

func TestRestoreBackup_StreamsLargeArchive(t *testing.T) {
	const size = 512 << 10
	seen := make(chan struct{})
	var got int64
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		mr, err := r.MultipartReader()
		if err != nil {
			t.Errorf("MultipartReader: %v", err)
			return
		}
		part, err := mr.NextPart()
		if err != nil {
			t.Errorf("NextPart: %v", err)
			return
		}
		n, _ := io.CopyN(io.Discard, part, 1024)
		close(seen)
		rest, _ := io.Copy(io.Discard, part)
		got = n + rest
	})

	archive := &gatedArchive{size: size, gate: 64 << 10, seen: seen}
	if err := withToken(c, "t").RestoreBackup(context.Background(), "big.zip", archive); err != nil {
		t.Fatalf("RestoreBackup: %v", err)
	}
	if got != size {
		t.Errorf("server received %d bytes, want %d", got, size)
	}
}

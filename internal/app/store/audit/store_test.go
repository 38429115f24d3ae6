package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/coursehub/internal/app/store/audit"
	"github.com/dalemusser/coursehub/internal/testutil"
)

func TestStore_Log(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: "course.approve",
		ActorID:   "admin-1",
		Target:    "courses",
		TargetID:  "c-9",
		Success:   true,
	})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := store.GetByActor(ctx, "admin-1", 10)
	if err != nil {
		t.Fatalf("GetByActor failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID.IsZero() {
		t.Error("expected ID to be auto-generated")
	}
	if events[0].TargetID != "c-9" {
		t.Errorf("TargetID = %q", events[0].TargetID)
	}
}

func TestStore_Log_AutoSetsTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before := time.Now().Add(-time.Second)
	if err := store.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Success: true}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	after := time.Now().Add(time.Second)

	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Timestamp.Before(before) || events[0].Timestamp.After(after) {
		t.Errorf("timestamp %v outside [%v, %v]", events[0].Timestamp, before, after)
	}
}

func TestStore_QueryAndCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	for _, e := range []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Success: true},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailed},
		{Category: audit.CategoryAdmin, EventType: "booking.refund", Success: true},
	} {
		if err := store.Log(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	n, err := store.CountByFilter(ctx, audit.QueryFilter{Category: audit.CategoryAuth})
	if err != nil || n != 2 {
		t.Errorf("CountByFilter(auth) = %d, %v; want 2", n, err)
	}
	events, err := store.Query(ctx, audit.QueryFilter{EventType: "booking.refund"})
	if err != nil || len(events) != 1 {
		t.Errorf("Query(booking.refund) = %d events, %v", len(events), err)
	}
}

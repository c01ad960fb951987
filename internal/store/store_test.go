package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "raids.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRaid(id string) (RaidRecord, []SeatResult) {
	rec := RaidRecord{
		ID:        id,
		Seed:      42,
		Foxes:     4,
		Rounds:    9,
		CreatedAt: time.Date(2026, time.August, 30, 21, 0, 0, 0, time.UTC),
	}
	seats := []SeatResult{
		{RaidID: id, AgentID: 0, Den: "red", Escaped: true, Loot: 7, BurrowUsed: true},
		{RaidID: id, AgentID: 1, Den: "amber", Caught: true},
	}
	return rec, seats
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
	if _, err := Open("   "); err == nil {
		t.Fatal("expected blank path error")
	}
}

func TestSaveGetRaidRoundTrip(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()
	rec, seats := sampleRaid("raid-1")

	if err := s.SaveRaid(ctx, rec, seats); err != nil {
		t.Fatalf("save raid: %v", err)
	}

	got, err := s.GetRaid(ctx, "raid-1")
	if err != nil {
		t.Fatalf("get raid: %v", err)
	}
	if got.Seed != rec.Seed || got.Foxes != rec.Foxes || got.Rounds != rec.Rounds {
		t.Fatalf("raid header mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}

	gotSeats, err := s.SeatResults(ctx, "raid-1")
	if err != nil {
		t.Fatalf("seat results: %v", err)
	}
	if len(gotSeats) != 2 {
		t.Fatalf("expected 2 seats, got %d", len(gotSeats))
	}
	if !gotSeats[0].Escaped || gotSeats[0].Loot != 7 || !gotSeats[0].BurrowUsed {
		t.Fatalf("seat 0 mismatch: %+v", gotSeats[0])
	}
	if !gotSeats[1].Caught || gotSeats[1].Escaped {
		t.Fatalf("seat 1 mismatch: %+v", gotSeats[1])
	}
}

func TestSaveRaidRejectsDuplicateID(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()
	rec, seats := sampleRaid("raid-dup")

	if err := s.SaveRaid(ctx, rec, seats); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.SaveRaid(ctx, rec, seats); err == nil {
		t.Fatal("expected duplicate id error")
	}
	// The failed transaction must not leave partial seat rows behind.
	gotSeats, err := s.SeatResults(ctx, "raid-dup")
	if err != nil {
		t.Fatalf("seat results: %v", err)
	}
	if len(gotSeats) != 2 {
		t.Fatalf("expected the original 2 seats, got %d", len(gotSeats))
	}
}

func TestSaveRaidRequiresID(t *testing.T) {
	s := openTempStore(t)
	rec, seats := sampleRaid("")
	if err := s.SaveRaid(context.Background(), rec, seats); err == nil {
		t.Fatal("expected missing id error")
	}
}

func TestListRaidsNewestFirst(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()

	for i, id := range []string{"raid-a", "raid-b", "raid-c"} {
		rec, seats := sampleRaid(id)
		rec.CreatedAt = rec.CreatedAt.Add(time.Duration(i) * time.Minute)
		if err := s.SaveRaid(ctx, rec, seats); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	raids, err := s.ListRaids(ctx, 2)
	if err != nil {
		t.Fatalf("list raids: %v", err)
	}
	if len(raids) != 2 {
		t.Fatalf("expected 2 raids, got %d", len(raids))
	}
	if raids[0].ID != "raid-c" || raids[1].ID != "raid-b" {
		t.Fatalf("wrong order: %s, %s", raids[0].ID, raids[1].ID)
	}
}

func TestEscapeRate(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()

	rate, err := s.EscapeRate(ctx)
	if err != nil {
		t.Fatalf("empty escape rate: %v", err)
	}
	if rate != 0 {
		t.Fatalf("empty store rate = %v, want 0", rate)
	}

	rec, seats := sampleRaid("raid-rate")
	if err := s.SaveRaid(ctx, rec, seats); err != nil {
		t.Fatalf("save raid: %v", err)
	}
	rate, err = s.EscapeRate(ctx)
	if err != nil {
		t.Fatalf("escape rate: %v", err)
	}
	if rate != 0.5 {
		t.Fatalf("rate = %v, want 0.5", rate)
	}
}

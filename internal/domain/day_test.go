package domain_test

import (
	"testing"
	"time"

	"promptpic/internal/domain"
)

func TestLocalDay(t *testing.T) {
	ts := time.Date(2026, 3, 15, 23, 59, 59, 0, time.Local)
	if got := domain.LocalDay(ts); got != "2026-03-15" {
		t.Fatalf("LocalDay = %s, want 2026-03-15", got)
	}

	// One second later is the next calendar day, however close the clocks.
	if got := domain.LocalDay(ts.Add(time.Second)); got != "2026-03-16" {
		t.Fatalf("LocalDay = %s, want 2026-03-16", got)
	}
}

func TestLocalDayNumber_SameDay(t *testing.T) {
	morning := time.Date(2026, 3, 15, 0, 0, 1, 0, time.Local)
	night := time.Date(2026, 3, 15, 23, 59, 59, 0, time.Local)
	if domain.LocalDayNumber(morning) != domain.LocalDayNumber(night) {
		t.Fatal("every moment of a local day must map to one day number")
	}
	if domain.LocalDayNumber(night)+1 != domain.LocalDayNumber(night.Add(time.Second)) {
		t.Fatal("consecutive days must have consecutive numbers")
	}
}

func TestDayForNumber_Roundtrip(t *testing.T) {
	ts := time.Date(2026, 3, 15, 14, 30, 0, 0, time.Local)
	n := domain.LocalDayNumber(ts)
	if got := domain.DayForNumber(n); got != domain.LocalDay(ts) {
		t.Fatalf("roundtrip: %s != %s", got, domain.LocalDay(ts))
	}
}

func TestNormalizeUsername(t *testing.T) {
	if got := domain.NormalizeUsername("  Alice_99 "); got != "alice_99" {
		t.Fatalf("normalize = %q", got)
	}
}

func TestHasLike(t *testing.T) {
	p := domain.Post{LikedBy: []string{"alice", "bob"}}
	if !p.HasLike("alice") || p.HasLike("carol") {
		t.Fatalf("HasLike wrong for %v", p.LikedBy)
	}
}

package timeline

import (
	"testing"
	"time"
)

func TestGroupByDay_Labels(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)

	events := []Event{
		{ID: "e1", Timestamp: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)},  // hoy
		{ID: "e2", Timestamp: time.Date(2024, 1, 9, 23, 0, 0, 0, time.UTC)},  // ayer
		{ID: "e3", Timestamp: time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)},  // última semana
		{ID: "e4", Timestamp: time.Date(2023, 12, 20, 8, 0, 0, 0, time.UTC)}, // fecha calendario
	}

	groups := GroupByDay(events, now)
	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(groups))
	}

	wantLabels := []string{labelToday, labelYesterday, labelLastWeek, "December 20, 2023"}
	for i, want := range wantLabels {
		if groups[i].Label != want {
			t.Fatalf("group %d: expected label %q, got %q", i, want, groups[i].Label)
		}
	}
}

func TestGroupByDay_MidnightBoundary(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)
	midnight := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	events := []Event{
		{ID: "at-midnight", Timestamp: midnight},
		{ID: "just-before", Timestamp: midnight.Add(-time.Millisecond)},
	}

	groups := GroupByDay(events, now)

	byID := map[string]string{}
	for _, g := range groups {
		for _, e := range g.Events {
			byID[e.ID] = g.Label
		}
	}

	if byID["at-midnight"] != labelToday {
		t.Fatalf("exact midnight should be Today, got %q", byID["at-midnight"])
	}
	if byID["just-before"] != labelYesterday {
		t.Fatalf("1ms before midnight should be Yesterday, got %q", byID["just-before"])
	}
}

func TestGroupByDay_Coverage(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	events := []Event{
		{ID: "e1", Timestamp: now.Add(-time.Hour)},
		{ID: "e2", Timestamp: now.Add(-26 * time.Hour)},
		{ID: "e3", Timestamp: now.Add(-4 * 24 * time.Hour)},
		{ID: "e4", Timestamp: now.Add(-40 * 24 * time.Hour)},
		{ID: "e5", Timestamp: now.Add(-41 * 24 * time.Hour)},
	}

	groups := GroupByDay(events, now)

	seen := map[string]int{}
	total := 0
	for _, g := range groups {
		for _, e := range g.Events {
			seen[e.ID]++
			total++
		}
	}

	if total != len(events) {
		t.Fatalf("union of buckets should equal input: expected %d, got %d", len(events), total)
	}
	for _, e := range events {
		if seen[e.ID] != 1 {
			t.Fatalf("event %s appears %d times across buckets", e.ID, seen[e.ID])
		}
	}
}

func TestGroupByDay_ReclassifiesWhenNowAdvances(t *testing.T) {
	ts := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	events := []Event{{ID: "e1", Timestamp: ts}}

	sameDay := GroupByDay(events, time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC))
	if sameDay[0].Label != labelToday {
		t.Fatalf("same calendar day should be Today, got %q", sameDay[0].Label)
	}

	// mismo input, now corrido un día: los límites se recalculan de now,
	// no quedan cacheados
	nextDay := GroupByDay(events, time.Date(2024, 1, 11, 18, 0, 0, 0, time.UTC))
	if nextDay[0].Label != labelYesterday {
		t.Fatalf("one day later should be Yesterday, got %q", nextDay[0].Label)
	}
}

func TestGroupByDay_ResortsWithinBucket(t *testing.T) {
	now := time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC)

	// input desordenado a propósito: el bucket debe garantizar su
	// propio orden descendente
	events := []Event{
		{ID: "older", Timestamp: time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)},
		{ID: "newer", Timestamp: time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC)},
	}

	groups := GroupByDay(events, now)
	if len(groups) != 1 {
		t.Fatalf("expected single Today bucket, got %d", len(groups))
	}
	if groups[0].Events[0].ID != "newer" || groups[0].Events[1].ID != "older" {
		t.Fatalf("bucket should be re-sorted desc, got %s then %s",
			groups[0].Events[0].ID, groups[0].Events[1].ID)
	}
}

func TestGroupByDay_Deterministic(t *testing.T) {
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	events := []Event{
		{ID: "e1", Timestamp: now.Add(-time.Hour)},
		{ID: "e2", Timestamp: now.Add(-30 * time.Hour)},
	}

	a := GroupByDay(events, now)
	b := GroupByDay(events, now)

	if len(a) != len(b) {
		t.Fatalf("group counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Label != b[i].Label || len(a[i].Events) != len(b[i].Events) {
			t.Fatalf("group %d differs between identical calls", i)
		}
		for j := range a[i].Events {
			if a[i].Events[j].ID != b[i].Events[j].ID {
				t.Fatalf("event order differs between identical calls")
			}
		}
	}
}

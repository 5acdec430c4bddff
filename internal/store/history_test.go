package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "history.db"), nil)
	if err != nil {
		t.Fatalf("Failed to open history store: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryRecordAndList(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	entries := []Entry{
		{Operation: OperationMatch, Score: 75, MatchedCount: 3, MissingCount: 1, Source: "cli"},
		{Operation: OperationScore, Score: 40, MatchedCount: 8, MissingCount: 12, Source: "api"},
		{Operation: OperationMatch, Score: 90, MatchedCount: 9, MissingCount: 1, Source: "api"},
	}
	for _, e := range entries {
		if _, err := h.Record(ctx, e); err != nil {
			t.Fatalf("Failed to record entry: %v", err)
		}
	}

	all, err := h.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("Failed to list entries: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(all))
	}
	// Most recent first.
	if all[0].Score != 90 || all[0].Operation != OperationMatch {
		t.Errorf("Expected newest entry score 90, got %+v", all[0])
	}
	if all[0].CreatedAt.IsZero() {
		t.Errorf("Expected created_at to be set")
	}
	if since := time.Since(all[0].CreatedAt); since < 0 || since > time.Minute {
		t.Errorf("Expected a recent created_at, got %v", all[0].CreatedAt)
	}

	matches, err := h.List(ctx, OperationMatch, 10)
	if err != nil {
		t.Fatalf("Failed to list match entries: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected 2 match entries, got %d", len(matches))
	}
}

func TestHistoryRecordInvalidOperation(t *testing.T) {
	h := openTestHistory(t)

	if _, err := h.Record(context.Background(), Entry{Operation: "tailor", Score: 10}); err == nil {
		t.Errorf("Expected error for unknown operation")
	}
}

func TestHistoryListInvalidOperation(t *testing.T) {
	h := openTestHistory(t)

	if _, err := h.List(context.Background(), "unknown", 10); err == nil {
		t.Errorf("Expected error for unknown operation filter")
	}
}

func TestHistoryListEmpty(t *testing.T) {
	h := openTestHistory(t)

	entries, err := h.List(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("Failed to list empty history: %v", err)
	}
	if entries == nil {
		t.Errorf("Expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestHistoryStats(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	for _, e := range []Entry{
		{Operation: OperationMatch, Score: 60},
		{Operation: OperationMatch, Score: 80},
		{Operation: OperationDiff, Score: 0},
	} {
		if _, err := h.Record(ctx, e); err != nil {
			t.Fatalf("Failed to record entry: %v", err)
		}
	}

	stats, err := h.Stats(ctx)
	if err != nil {
		t.Fatalf("Failed to compute stats: %v", err)
	}
	if stats.TotalAnalyses != 3 {
		t.Errorf("Expected 3 total analyses, got %d", stats.TotalAnalyses)
	}
	if stats.AverageScore < 46.6 || stats.AverageScore > 46.7 {
		t.Errorf("Expected average score ~46.67, got %f", stats.AverageScore)
	}
	if stats.ByOperation[OperationMatch] != 2 || stats.ByOperation[OperationDiff] != 1 {
		t.Errorf("Unexpected per-operation counts: %v", stats.ByOperation)
	}
}

package cli

import (
	"strings"
	"testing"
	"time"

	"resumatch/internal/store"
)

func TestFormatHistoryRow(t *testing.T) {
	created := time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC)
	entry := store.Entry{
		ID:           42,
		Operation:    store.OperationMatch,
		Score:        75,
		MatchedCount: 3,
		MissingCount: 1,
		Source:       "cli",
		CreatedAt:    created,
	}

	row := formatHistoryRow(entry)

	for _, want := range []string{"42", "match", "75", "cli", "2026-08-30 14:05:09"} {
		if !strings.Contains(row, want) {
			t.Errorf("Expected row to contain %q, got %q", want, row)
		}
	}
}

func TestFormatHistoryRowZeroEntry(t *testing.T) {
	row := formatHistoryRow(store.Entry{Operation: store.OperationDiff})

	if !strings.Contains(row, "diff") {
		t.Errorf("Expected row to contain the operation, got %q", row)
	}
	if !strings.HasSuffix(row, time.Time{}.Format("2006-01-02 15:04:05")) {
		t.Errorf("Expected zero timestamp rendering, got %q", row)
	}
}

package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"mvvideos/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close returned error: %v", err)
		}
	})
	return store
}

func sampleRun(failed int) history.Run {
	now := time.Now().UTC()
	return history.Run{
		ID:          uuid.NewString(),
		StartedAt:   now.Add(-time.Minute),
		FinishedAt:  now,
		Sources:     []string{"/mnt/a", "/mnt/b"},
		Destination: "/flat",
		Planned:     2,
		Moved:       2 - failed,
		Failed:      failed,
	}
}

func TestRecordRunRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run := sampleRun(1)
	moves := []history.MoveRecord{
		{RunID: run.ID, Source: "/mnt/a/x.mkv", Destination: "/flat/x.mkv", Status: "moved"},
		{RunID: run.ID, Source: "/mnt/b/y.mkv", Destination: "/flat/y.mkv", Status: "failed", Error: "permission denied"},
	}
	if err := store.RecordRun(ctx, run, moves); err != nil {
		t.Fatalf("RecordRun returned error: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10, false)
	if err != nil {
		t.Fatalf("RecentRuns returned error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != run.ID || got.Destination != "/flat" || got.Planned != 2 || got.Failed != 1 {
		t.Fatalf("run mismatch: %+v", got)
	}
	if len(got.Sources) != 2 || got.Sources[0] != "/mnt/a" {
		t.Fatalf("sources mismatch: %v", got.Sources)
	}
	if !got.StartedAt.Equal(run.StartedAt) {
		t.Fatalf("started_at mismatch: %v vs %v", got.StartedAt, run.StartedAt)
	}

	stored, err := store.Moves(ctx, run.ID)
	if err != nil {
		t.Fatalf("Moves returned error: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected two move records, got %d", len(stored))
	}
	if stored[0].Status != "moved" || stored[0].Error != "" {
		t.Fatalf("first move mismatch: %+v", stored[0])
	}
	if stored[1].Status != "failed" || stored[1].Error != "permission denied" {
		t.Fatalf("second move mismatch: %+v", stored[1])
	}
}

func TestRecentRunsOrdersNewestFirstAndFilters(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	older := sampleRun(0)
	older.StartedAt = older.StartedAt.Add(-time.Hour)
	older.FinishedAt = older.FinishedAt.Add(-time.Hour)
	newer := sampleRun(1)

	if err := store.RecordRun(ctx, older, nil); err != nil {
		t.Fatalf("RecordRun(older): %v", err)
	}
	if err := store.RecordRun(ctx, newer, nil); err != nil {
		t.Fatalf("RecordRun(newer): %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10, false)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != newer.ID {
		t.Fatalf("expected newest first, got %+v", runs)
	}

	failedRuns, err := store.RecentRuns(ctx, 10, true)
	if err != nil {
		t.Fatalf("RecentRuns(failed): %v", err)
	}
	if len(failedRuns) != 1 || failedRuns[0].ID != newer.ID {
		t.Fatalf("failed filter mismatch: %+v", failedRuns)
	}
}

func TestRecentRunsOrdersRunsWithinTheSameSecond(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	// A whole-second timestamp and one half a second later stress the TEXT
	// ordering: with a variable-width fraction "...:00Z" sorts after
	// "...:00.5Z" even though it is older.
	base := time.Now().UTC().Truncate(time.Second)
	older := sampleRun(0)
	older.StartedAt = base
	older.FinishedAt = base.Add(time.Second)
	newer := sampleRun(0)
	newer.StartedAt = base.Add(500 * time.Millisecond)
	newer.FinishedAt = base.Add(time.Second)

	if err := store.RecordRun(ctx, older, nil); err != nil {
		t.Fatalf("RecordRun(older): %v", err)
	}
	if err := store.RecordRun(ctx, newer, nil); err != nil {
		t.Fatalf("RecordRun(newer): %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10, false)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != newer.ID || runs[1].ID != older.ID {
		t.Fatalf("expected newest first within the second, got %+v", runs)
	}
}

func TestOpenIsIdempotentAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.RecentRuns(context.Background(), 5, false)
	if err != nil {
		t.Fatalf("RecentRuns after reopen: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected empty history, got %d runs", len(runs))
	}
}

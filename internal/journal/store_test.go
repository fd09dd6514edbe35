package journal_test

import (
	"context"
	"path/filepath"
	"testing"

	"bookvert/internal/journal"
)

func openStore(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "state", "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunLifecycle(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	id, err := store.BeginRun(ctx, "run-abc", "/scans", "Title")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	records := []journal.Record{
		{Book: "Title - 1", Archive: "/out/Title1.cbz", Pages: 12, Bytes: 4096, Status: journal.RecordStatusConverted},
		{Book: "Title - 2", Archive: "/out/Title2.cbz", Status: journal.RecordStatusFailed, Detail: "archive already exists"},
	}
	for _, rec := range records {
		if err := store.AddRecord(ctx, id, rec); err != nil {
			t.Fatalf("AddRecord: %v", err)
		}
	}
	if err := store.FinishRun(ctx, id, journal.RunStatusCompleted, 1, 2, nil); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs", len(runs))
	}
	run := runs[0]
	if run.RunID != "run-abc" || run.Status != journal.RunStatusCompleted {
		t.Fatalf("run = %+v", run)
	}
	if run.Converted != 1 || run.Total != 2 {
		t.Fatalf("counts = %d/%d", run.Converted, run.Total)
	}
	if run.StartedAt.IsZero() || run.FinishedAt.IsZero() {
		t.Fatalf("timestamps = %+v", run)
	}

	got, err := store.RunRecords(ctx, run.ID)
	if err != nil {
		t.Fatalf("RunRecords: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records", len(got))
	}
	if got[0].Book != "Title - 1" || got[0].Status != journal.RecordStatusConverted {
		t.Fatalf("record 0 = %+v", got[0])
	}
	if got[1].Detail != "archive already exists" {
		t.Fatalf("record 1 detail = %q", got[1].Detail)
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, runID := range []string{"one", "two", "three"} {
		id, err := store.BeginRun(ctx, runID, "/scans", "")
		if err != nil {
			t.Fatalf("BeginRun: %v", err)
		}
		if err := store.FinishRun(ctx, id, journal.RunStatusCompleted, 0, 0, nil); err != nil {
			t.Fatalf("FinishRun: %v", err)
		}
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != "three" || runs[1].RunID != "two" {
		t.Fatalf("runs = %+v", runs)
	}
}

func TestFinishRunStoresError(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	id, err := store.BeginRun(ctx, "run-err", "/scans", "")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if err := store.FinishRun(ctx, id, journal.RunStatusFailed, 0, 3, context.Canceled); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 1)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if runs[0].Status != journal.RunStatusFailed || runs[0].Error != context.Canceled.Error() {
		t.Fatalf("run = %+v", runs[0])
	}
}

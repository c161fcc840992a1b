package jobstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "job-1", "promo", "/out/promo.mp4")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != StatusRunning {
		t.Fatalf("expected running status, got %q", created.Status)
	}
	if created.Phase != "preparing" {
		t.Fatalf("expected preparing phase, got %q", created.Phase)
	}
	if created.LastBatch != -1 {
		t.Fatalf("expected last batch -1, got %d", created.LastBatch)
	}

	got, err := store.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Project != "promo" || got.OutputPath != "/out/promo.mp4" {
		t.Fatalf("unexpected job fields: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to round-trip")
	}
}

func TestGetMissingJob(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := store.Create(ctx, id, "p", "/out/"+id+".mp4"); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	jobs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}
	if jobs[0].ID != "c" || jobs[2].ID != "a" {
		t.Fatalf("expected newest first, got %s..%s", jobs[0].ID, jobs[2].ID)
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(limited))
	}
}

func TestUpdateProgressAndMarkBatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "job-1", "p", "/out/p.mp4"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.UpdateProgress(ctx, "job-1", "rendering", 42.5, 120, 300); err != nil {
		t.Fatalf("update progress: %v", err)
	}
	if err := store.MarkBatch(ctx, "job-1", 3); err != nil {
		t.Fatalf("mark batch: %v", err)
	}

	job, err := store.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if job.Phase != "rendering" || job.Progress != 42.5 {
		t.Fatalf("unexpected phase/progress: %s %.1f", job.Phase, job.Progress)
	}
	if job.CurrentFrame != 120 || job.TotalFrames != 300 {
		t.Fatalf("unexpected frame counts: %d/%d", job.CurrentFrame, job.TotalFrames)
	}
	if job.LastBatch != 3 {
		t.Fatalf("expected last batch 3, got %d", job.LastBatch)
	}
}

func TestAppendWarningAccumulates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "job-1", "p", "/out/p.mp4"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.AppendWarning(ctx, "job-1", "clip intro: source unreadable"); err != nil {
		t.Fatalf("append first warning: %v", err)
	}
	if err := store.AppendWarning(ctx, "job-1", "clip outro: seek timed out"); err != nil {
		t.Fatalf("append second warning: %v", err)
	}

	job, err := store.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(job.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(job.Warnings), job.Warnings)
	}
	if job.Warnings[1] != "clip outro: seek timed out" {
		t.Fatalf("unexpected second warning: %q", job.Warnings[1])
	}
}

func TestFinishComplete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "job-1", "p", "/out/p.mp4"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Finish(ctx, "job-1", StatusComplete, ""); err != nil {
		t.Fatalf("finish: %v", err)
	}

	job, err := store.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if job.Status != StatusComplete || job.Phase != "complete" || job.Progress != 100 {
		t.Fatalf("unexpected terminal state: %+v", job)
	}
}

func TestFinishFailedStoresMessage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "job-1", "p", "/out/p.mp4"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Finish(ctx, "job-1", StatusFailed, "encoder exited with code 1"); err != nil {
		t.Fatalf("finish: %v", err)
	}

	job, err := store.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if job.Status != StatusFailed || job.Phase != "error" {
		t.Fatalf("unexpected failed state: %+v", job)
	}
	if job.ErrorMessage != "encoder exited with code 1" {
		t.Fatalf("unexpected error message: %q", job.ErrorMessage)
	}
}

func TestFinishRejectsNonTerminal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "job-1", "p", "/out/p.mp4"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Finish(ctx, "job-1", StatusRunning, ""); err == nil {
		t.Fatal("expected error for non-terminal status")
	}
	if err := store.Finish(ctx, "missing", StatusComplete, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPruneRemovesOldTerminalJobs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"done", "active"} {
		if _, err := store.Create(ctx, id, "p", "/out/"+id+".mp4"); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	if err := store.Finish(ctx, "done", StatusComplete, ""); err != nil {
		t.Fatalf("finish: %v", err)
	}

	removed, err := store.Prune(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 pruned job, got %d", removed)
	}
	if _, err := store.Get(ctx, "done"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected pruned job gone, got %v", err)
	}
	if _, err := store.Get(ctx, "active"); err != nil {
		t.Fatalf("expected running job kept: %v", err)
	}
}

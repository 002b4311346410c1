package pipeline

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "j1", Status: StatusQueued, UpdatedAt: time.Now()}
	store.Put(job)

	if got := store.Get("j1"); got != job {
		t.Errorf("expected stored job, got %v", got)
	}
	if got := store.Get("missing"); got != nil {
		t.Errorf("expected nil for unknown id, got %v", got)
	}
}

func TestJobStore_CleanupEvictsExpired(t *testing.T) {
	store := NewJobStore(time.Minute)
	stale := &Job{ID: "stale", UpdatedAt: time.Now().Add(-2 * time.Minute)}
	fresh := &Job{ID: "fresh", UpdatedAt: time.Now()}
	store.Put(stale)
	store.Put(fresh)

	store.Cleanup()

	if store.Get("stale") != nil {
		t.Error("expected stale job to be evicted")
	}
	if store.Get("fresh") == nil {
		t.Error("expected fresh job to survive")
	}
}

func TestJob_SetStatusUpdatesTimestamp(t *testing.T) {
	job := &Job{ID: "j1", Status: StatusQueued}
	before := job.UpdatedAt

	job.SetStatus(StatusStructuring, "detecting sections")

	if job.Status != StatusStructuring || job.Phase != "detecting sections" {
		t.Errorf("unexpected state: %s / %s", job.Status, job.Phase)
	}
	if !job.UpdatedAt.After(before) {
		t.Error("expected UpdatedAt to advance")
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "j1"}
	job.AddError("first")
	job.AddError("second")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 || snap.Progress.Errors[1] != "second" {
		t.Errorf("unexpected errors: %v", snap.Progress.Errors)
	}
}

func TestJob_SnapshotMarshalsWithEmptyErrors(t *testing.T) {
	job := &Job{ID: "j1", Filename: "doc.pdf", Status: StatusCompleted}
	job.SetResult(9, 2, 7, 1, "parsed/platinum_card.json")

	data, err := json.Marshal(job.Snapshot())
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"errors":[]`) {
		t.Errorf("expected empty errors array, got %s", s)
	}
	if !strings.Contains(s, `"sections":9`) || !strings.Contains(s, `"missing":7`) {
		t.Errorf("expected result counts in snapshot, got %s", s)
	}
}

func TestJob_FileDataRoundTrip(t *testing.T) {
	job := &Job{ID: "j1"}
	job.SetFileData([]byte("payload"))
	if string(job.FileData()) != "payload" {
		t.Errorf("unexpected file data: %q", job.FileData())
	}

	data, err := json.Marshal(job.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "payload") {
		t.Error("raw file bytes must not leak into the snapshot")
	}
}

package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/foxseedlab/jimaku/internal/repository"
)

func TestMemoryRepository_RunLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	startedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	run, err := repo.CreateRun(ctx, repository.CreateRunInput{
		ID:          "run-1",
		InputVideo:  "audio.mp4",
		OutputVideo: "out.mp4",
		StartedAt:   startedAt,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if run.ID != "run-1" || run.Status != repository.RunStatusRunning || !run.StartedAt.Equal(startedAt) {
		t.Fatalf("unexpected run: %+v", run)
	}
	if _, err := repo.CreateRun(ctx, repository.CreateRunInput{ID: "run-1"}); err == nil {
		t.Fatal("expected error for duplicate run id")
	}

	cues := []repository.SubtitleCue{
		{RunID: "run-1", CueIndex: 1, Transcript: "a b", StartSeconds: 0, EndSeconds: 5.4},
		{RunID: "run-1", CueIndex: 2, Transcript: "c", StartSeconds: 5, EndSeconds: 10},
	}
	if err := repo.InsertCues(ctx, "run-1", cues); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cues[0].Transcript = "mutated"
	stored, err := repo.ListCuesByRunID(ctx, "run-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(stored) != 2 || stored[0].Transcript != "a b" || stored[1].CueIndex != 2 {
		t.Fatalf("unexpected stored cues: %+v", stored)
	}

	if err := repo.CompleteRun(ctx, repository.CompleteRunInput{RunID: "run-1", CueCount: 2, EndedAt: startedAt.Add(time.Minute)}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	mem := repo.(*MemoryRepository)
	if got := mem.runs["run-1"]; got.Status != repository.RunStatusCompleted || got.CueCount != 2 || got.EndedAt == nil {
		t.Fatalf("unexpected completed run: %+v", got)
	}
}

func TestMemoryRepository_UnknownRun(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	if err := repo.InsertCues(ctx, "missing", nil); err == nil {
		t.Fatal("expected error inserting cues for unknown run")
	}
	if err := repo.FailRun(ctx, repository.FailRunInput{RunID: "missing"}); err == nil {
		t.Fatal("expected error failing unknown run")
	}
	cues, err := repo.ListCuesByRunID(ctx, "missing")
	if err != nil || len(cues) != 0 {
		t.Fatalf("expected no cues, got %+v %v", cues, err)
	}
}

func TestMigrationStatements_AreIdempotent(t *testing.T) {
	for _, s := range migrationStatements {
		if !strings.Contains(s, "IF NOT EXISTS") && !strings.Contains(s, "duplicate_object") {
			t.Fatalf("migration statement is not idempotent: %s", s)
		}
	}
}

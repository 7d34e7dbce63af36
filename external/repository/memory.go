package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/foxseedlab/jimaku/internal/repository"
)

// MemoryRepository keeps run history for the lifetime of the process. It is
// used when no database is configured.
type MemoryRepository struct {
	mu   sync.Mutex
	runs map[string]*repository.Run
	cues map[string][]repository.SubtitleCue
}

func NewMemoryRepository() repository.Repository {
	return &MemoryRepository{
		runs: make(map[string]*repository.Run),
		cues: make(map[string][]repository.SubtitleCue),
	}
}

func (r *MemoryRepository) CreateRun(_ context.Context, input repository.CreateRunInput) (*repository.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.runs[input.ID]; exists {
		return nil, fmt.Errorf("run %s already exists", input.ID)
	}
	run := &repository.Run{
		ID:          input.ID,
		InputVideo:  input.InputVideo,
		OutputVideo: input.OutputVideo,
		Status:      repository.RunStatusRunning,
		StartedAt:   input.StartedAt,
	}
	r.runs[input.ID] = run
	copied := *run
	return &copied, nil
}

func (r *MemoryRepository) CompleteRun(_ context.Context, input repository.CompleteRunInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[input.RunID]
	if !ok {
		return fmt.Errorf("run %s not found", input.RunID)
	}
	endedAt := input.EndedAt
	run.Status = repository.RunStatusCompleted
	run.AudioURI = input.AudioURI
	run.CueCount = input.CueCount
	run.EndedAt = &endedAt
	return nil
}

func (r *MemoryRepository) FailRun(_ context.Context, input repository.FailRunInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[input.RunID]
	if !ok {
		return fmt.Errorf("run %s not found", input.RunID)
	}
	endedAt := input.EndedAt
	run.Status = repository.RunStatusFailed
	run.ErrorMessage = input.ErrorMessage
	run.EndedAt = &endedAt
	return nil
}

func (r *MemoryRepository) InsertCues(_ context.Context, runID string, cues []repository.SubtitleCue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[runID]; !ok {
		return fmt.Errorf("run %s not found", runID)
	}
	r.cues[runID] = append([]repository.SubtitleCue(nil), cues...)
	return nil
}

func (r *MemoryRepository) ListCuesByRunID(_ context.Context, runID string) ([]repository.SubtitleCue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]repository.SubtitleCue(nil), r.cues[runID]...), nil
}

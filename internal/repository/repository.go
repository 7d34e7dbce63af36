package repository

import (
	"context"
	"time"
)

type CreateRunInput struct {
	ID          string
	InputVideo  string
	OutputVideo string
	StartedAt   time.Time
}

type CompleteRunInput struct {
	RunID    string
	AudioURI string
	CueCount int
	EndedAt  time.Time
}

type FailRunInput struct {
	RunID        string
	ErrorMessage string
	EndedAt      time.Time
}

type RunRepository interface {
	CreateRun(ctx context.Context, input CreateRunInput) (*Run, error)
	CompleteRun(ctx context.Context, input CompleteRunInput) error
	FailRun(ctx context.Context, input FailRunInput) error
}

type CueRepository interface {
	InsertCues(ctx context.Context, runID string, cues []SubtitleCue) error
	ListCuesByRunID(ctx context.Context, runID string) ([]SubtitleCue, error)
}

type Repository interface {
	RunRepository
	CueRepository
}

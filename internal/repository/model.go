package repository

import "time"

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

type Run struct {
	ID           string
	InputVideo   string
	OutputVideo  string
	AudioURI     string
	Status       RunStatus
	CueCount     int
	ErrorMessage string
	StartedAt    time.Time
	EndedAt      *time.Time
}

type SubtitleCue struct {
	RunID        string
	CueIndex     int
	Transcript   string
	StartSeconds float64
	EndSeconds   float64
}

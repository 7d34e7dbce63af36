package pipeline

import (
	"errors"
	"time"

	"github.com/foxseedlab/jimaku/internal/repository"
	"github.com/foxseedlab/jimaku/internal/webhook"
)

func buildRunWebhookPayload(runID string, job Job, result *Result, runErr error, startedAt, endedAt time.Time) webhook.RunWebhookPayload {
	durationSeconds := int64(endedAt.Sub(startedAt).Seconds())
	if durationSeconds < 0 {
		durationSeconds = 0
	}

	payload := webhook.RunWebhookPayload{
		SchemaVersion:   webhook.RunWebhookSchemaVersion,
		RunID:           runID,
		Status:          string(repository.RunStatusCompleted),
		InputVideo:      job.InputVideo,
		OutputVideo:     job.OutputVideo,
		SubtitlePath:    job.SubtitlePath,
		StartAt:         startedAt.UTC().Format(time.RFC3339),
		EndAt:           endedAt.UTC().Format(time.RFC3339),
		DurationSeconds: durationSeconds,
	}
	if runErr != nil {
		payload.Status = string(repository.RunStatusFailed)
		payload.Error = runErr.Error()
		// the subtitle file only exists once the burn step has been reached
		var stepErr *StepError
		if !errors.As(runErr, &stepErr) || stepErr.Step != stepBurn {
			payload.SubtitlePath = ""
		}
		return payload
	}
	if result != nil {
		payload.AudioURI = result.AudioURI
		payload.CueCount = len(result.Cues)
		payload.Subtitles = result.Subtitles
	}
	return payload
}

package webhook

import "context"

const RunWebhookSchemaVersion = "2026-10-18"

type RunWebhookPayload struct {
	SchemaVersion   string `json:"schema_version"`
	RunID           string `json:"run_id"`
	Status          string `json:"status"`
	InputVideo      string `json:"input_video"`
	OutputVideo     string `json:"output_video"`
	SubtitlePath    string `json:"subtitle_path"`
	AudioURI        string `json:"audio_uri,omitempty"`
	CueCount        int    `json:"cue_count"`
	Error           string `json:"error,omitempty"`
	StartAt         string `json:"start_at"`
	EndAt           string `json:"end_at"`
	DurationSeconds int64  `json:"duration_seconds"`
	Subtitles       string `json:"subtitles,omitempty"`
}

type Sender interface {
	SendRunResult(ctx context.Context, payload RunWebhookPayload) error
}

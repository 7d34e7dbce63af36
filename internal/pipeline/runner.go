package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/foxseedlab/jimaku/internal/config"
	"github.com/foxseedlab/jimaku/internal/media"
	"github.com/foxseedlab/jimaku/internal/repository"
	"github.com/foxseedlab/jimaku/internal/storage"
	"github.com/foxseedlab/jimaku/internal/subtitle"
	"github.com/foxseedlab/jimaku/internal/transcriber"
	"github.com/foxseedlab/jimaku/internal/webhook"
	"github.com/google/uuid"
)

const subtitleFileMode = 0o644

const (
	stepDenoise    = "denoise"
	stepUpload     = "upload"
	stepTranscribe = "transcribe"
	stepSegment    = "segment"
	stepWrite      = "write_subtitles"
	stepBurn       = "burn_subtitles"
)

type Job struct {
	InputVideo    string
	DenoisedAudio string
	SubtitlePath  string
	OutputVideo   string
	// ObjectName defaults to "<run id>/<denoised audio file name>".
	ObjectName string
}

func JobFromConfig(cfg *config.Config) Job {
	return Job{
		InputVideo:    cfg.InputVideoPath,
		DenoisedAudio: cfg.DenoisedAudioPath,
		SubtitlePath:  cfg.SubtitlePath,
		OutputVideo:   cfg.OutputVideoPath,
	}
}

func (j Job) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"input video", j.InputVideo},
		{"denoised audio", j.DenoisedAudio},
		{"subtitle path", j.SubtitlePath},
		{"output video", j.OutputVideo},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("job %s is required", f.name)
		}
	}
	return nil
}

type Result struct {
	RunID     string
	AudioURI  string
	Cues      []subtitle.Cue
	Subtitles string
}

// StepError reports which pipeline step failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type Runner struct {
	audio       media.AudioProcessor
	uploader    storage.Uploader
	transcriber transcriber.Transcriber
	burner      media.VideoBurner
	repo        repository.Repository
	webhook     webhook.Sender
	segmentOpts subtitle.SegmentOptions
	conversion  subtitle.TimeConversion

	newRunID  func() string
	now       func() time.Time
	writeFile func(name string, data []byte, perm os.FileMode) error
}

func NewRunner(cfg *config.Config, audio media.AudioProcessor, uploader storage.Uploader, stt transcriber.Transcriber, burner media.VideoBurner, repo repository.Repository, wh webhook.Sender) *Runner {
	return &Runner{
		audio:       audio,
		uploader:    uploader,
		transcriber: stt,
		burner:      burner,
		repo:        repo,
		webhook:     wh,
		segmentOpts: cfg.SegmentOptions(),
		conversion:  cfg.TimeConversion(),
		newRunID:    uuid.NewString,
		now:         time.Now,
		writeFile:   os.WriteFile,
	}
}

// Run executes the pipeline steps in order and stops at the first failure.
// The subtitle file is only written once every cue has been built.
func (r *Runner) Run(ctx context.Context, job Job) (*Result, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	runID := r.newRunID()
	startedAt := r.now()
	logger := slog.With("run_id", runID)
	logger.Info("pipeline run started", "input", job.InputVideo, "output", job.OutputVideo)

	if _, err := r.repo.CreateRun(ctx, repository.CreateRunInput{
		ID:          runID,
		InputVideo:  job.InputVideo,
		OutputVideo: job.OutputVideo,
		StartedAt:   startedAt,
	}); err != nil {
		logger.Error("failed to record run start", "error", err)
	}

	result, err := r.execute(ctx, logger, runID, job)
	endedAt := r.now()
	if err != nil {
		logger.Error("pipeline run failed", "error", err)
		r.recordFailure(ctx, logger, runID, err, endedAt)
		r.notify(ctx, logger, buildRunWebhookPayload(runID, job, nil, err, startedAt, endedAt))
		return nil, err
	}

	r.recordSuccess(ctx, logger, result, endedAt)
	r.notify(ctx, logger, buildRunWebhookPayload(runID, job, result, nil, startedAt, endedAt))
	logger.Info("pipeline run completed", "cues", len(result.Cues), "output", job.OutputVideo, "elapsed", endedAt.Sub(startedAt).String())
	return result, nil
}

func (r *Runner) execute(ctx context.Context, logger *slog.Logger, runID string, job Job) (*Result, error) {
	logger.Info("pipeline step started", "step", stepDenoise)
	if err := r.audio.Denoise(ctx, job.InputVideo, job.DenoisedAudio); err != nil {
		return nil, &StepError{Step: stepDenoise, Err: err}
	}

	objectName := job.ObjectName
	if objectName == "" {
		objectName = path.Join(runID, filepath.Base(job.DenoisedAudio))
	}
	logger.Info("pipeline step started", "step", stepUpload, "object", objectName)
	uri, err := r.uploader.Upload(ctx, job.DenoisedAudio, objectName)
	if err != nil {
		return nil, &StepError{Step: stepUpload, Err: err}
	}

	logger.Info("pipeline step started", "step", stepTranscribe, "audio_uri", uri)
	timed, err := r.transcriber.Transcribe(ctx, uri)
	if err != nil {
		return nil, &StepError{Step: stepTranscribe, Err: err}
	}

	logger.Info("pipeline step started", "step", stepSegment, "words", len(timed), "window_seconds", r.segmentOpts.WindowSeconds, "gap_policy", r.segmentOpts.GapPolicy)
	cues, srt, err := BuildSubtitles(timed, r.conversion, r.segmentOpts)
	if err != nil {
		return nil, &StepError{Step: stepSegment, Err: err}
	}

	logger.Info("pipeline step started", "step", stepWrite, "path", job.SubtitlePath, "cues", len(cues))
	if err := r.writeFile(job.SubtitlePath, []byte(srt), subtitleFileMode); err != nil {
		return nil, &StepError{Step: stepWrite, Err: err}
	}

	logger.Info("pipeline step started", "step", stepBurn)
	if err := r.burner.BurnSubtitles(ctx, job.InputVideo, job.SubtitlePath, job.OutputVideo); err != nil {
		return nil, &StepError{Step: stepBurn, Err: err}
	}

	return &Result{RunID: runID, AudioURI: uri, Cues: cues, Subtitles: srt}, nil
}

// BuildSubtitles converts recognized words into cues and their SRT text.
func BuildSubtitles(timed []subtitle.TimedWord, conv subtitle.TimeConversion, opts subtitle.SegmentOptions) ([]subtitle.Cue, string, error) {
	words, err := subtitle.WordsFromTimed(timed, conv)
	if err != nil {
		return nil, "", err
	}
	cues, err := subtitle.Segment(words, opts)
	if err != nil {
		return nil, "", err
	}
	return cues, subtitle.FormatSRT(cues), nil
}

func (r *Runner) recordSuccess(ctx context.Context, logger *slog.Logger, result *Result, endedAt time.Time) {
	if err := r.repo.InsertCues(ctx, result.RunID, toRepositoryCues(result.RunID, result.Cues)); err != nil {
		logger.Error("failed to record cues", "error", err)
	}
	// the run row reflects what was actually stored
	cueCount := len(result.Cues)
	stored, err := r.repo.ListCuesByRunID(ctx, result.RunID)
	if err != nil {
		logger.Error("failed to read back stored cues", "error", err)
	} else if len(stored) != cueCount {
		logger.Error("stored cue count does not match built cues", "stored", len(stored), "built", cueCount)
		cueCount = len(stored)
	}
	if err := r.repo.CompleteRun(ctx, repository.CompleteRunInput{
		RunID:    result.RunID,
		AudioURI: result.AudioURI,
		CueCount: cueCount,
		EndedAt:  endedAt,
	}); err != nil {
		logger.Error("failed to record run completion", "error", err)
	}
}

func (r *Runner) recordFailure(ctx context.Context, logger *slog.Logger, runID string, runErr error, endedAt time.Time) {
	if err := r.repo.FailRun(ctx, repository.FailRunInput{
		RunID:        runID,
		ErrorMessage: runErr.Error(),
		EndedAt:      endedAt,
	}); err != nil {
		logger.Error("failed to record run failure", "error", err)
	}
}

func (r *Runner) notify(ctx context.Context, logger *slog.Logger, payload webhook.RunWebhookPayload) {
	if err := r.webhook.SendRunResult(ctx, payload); err != nil {
		logger.Error("failed to send run webhook", "error", err)
	}
}

func toRepositoryCues(runID string, cues []subtitle.Cue) []repository.SubtitleCue {
	out := make([]repository.SubtitleCue, 0, len(cues))
	for i, c := range cues {
		out = append(out, repository.SubtitleCue{
			RunID:        runID,
			CueIndex:     i + 1,
			Transcript:   c.Transcript,
			StartSeconds: c.StartTime,
			EndSeconds:   c.EndTime,
		})
	}
	return out
}

package config

import (
	"fmt"
	"math"

	"github.com/foxseedlab/jimaku/internal/subtitle"
)

type Config struct {
	Env                          string
	InputVideoPath               string
	DenoisedAudioPath            string
	SubtitlePath                 string
	OutputVideoPath              string
	FFmpegBinary                 string
	SubtitleForceStyle           string
	GoogleCloudProjectID         string
	GoogleCloudCredentialsJSON   string
	GoogleCloudStorageBucketName string
	GoogleCloudSpeechLocation    string
	TranscribeLanguage           string
	SpeechSampleRateHertz        int
	SegmentDurationSec           float64
	SegmentGapPolicy             string
	WordTimeConversion           string
	DatabaseURL                  string
	RunWebhookURL                string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.SpeechSampleRateHertz <= 0 {
		return fmt.Errorf("SPEECH_SAMPLE_RATE_HERTZ must be positive, got %d", c.SpeechSampleRateHertz)
	}
	if math.IsNaN(c.SegmentDurationSec) || math.IsInf(c.SegmentDurationSec, 0) || c.SegmentDurationSec <= 0 {
		return fmt.Errorf("SEGMENT_DURATION_SEC must be a positive finite number, got %v", c.SegmentDurationSec)
	}
	if _, err := subtitle.ParseGapPolicy(c.SegmentGapPolicy); err != nil {
		return fmt.Errorf("SEGMENT_GAP_POLICY is invalid: %w", err)
	}
	if _, err := subtitle.ParseTimeConversion(c.WordTimeConversion); err != nil {
		return fmt.Errorf("WORD_TIME_CONVERSION is invalid: %w", err)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "INPUT_VIDEO_PATH", value: c.InputVideoPath},
		{name: "DENOISED_AUDIO_PATH", value: c.DenoisedAudioPath},
		{name: "SUBTITLE_PATH", value: c.SubtitlePath},
		{name: "OUTPUT_VIDEO_PATH", value: c.OutputVideoPath},
		{name: "FFMPEG_BINARY", value: c.FFmpegBinary},
		{name: "GOOGLE_CLOUD_PROJECT_ID", value: c.GoogleCloudProjectID},
		{name: "GOOGLE_CLOUD_CREDENTIALS_JSON", value: c.GoogleCloudCredentialsJSON},
		{name: "GOOGLE_CLOUD_STORAGE_BUCKET_NAME", value: c.GoogleCloudStorageBucketName},
		{name: "TRANSCRIBE_LANGUAGE", value: c.TranscribeLanguage},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// SegmentOptions assumes Validate has passed.
func (c *Config) SegmentOptions() subtitle.SegmentOptions {
	policy, _ := subtitle.ParseGapPolicy(c.SegmentGapPolicy)
	return subtitle.SegmentOptions{
		WindowSeconds: c.SegmentDurationSec,
		GapPolicy:     policy,
	}
}

// TimeConversion assumes Validate has passed.
func (c *Config) TimeConversion() subtitle.TimeConversion {
	conv, err := subtitle.ParseTimeConversion(c.WordTimeConversion)
	if err != nil {
		return subtitle.ConvertConcat
	}
	return conv
}

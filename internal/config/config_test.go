package config

import (
	"math"
	"testing"

	"github.com/foxseedlab/jimaku/internal/subtitle"
)

func validConfig() *Config {
	return &Config{
		Env:                          "development",
		InputVideoPath:               "audio.mp4",
		DenoisedAudioPath:            "audio.mp3",
		SubtitlePath:                 "subtitles.srt",
		OutputVideoPath:              "output_video_with_audio.mp4",
		FFmpegBinary:                 "ffmpeg",
		GoogleCloudProjectID:         "project-id",
		GoogleCloudCredentialsJSON:   `{"type":"service_account"}`,
		GoogleCloudStorageBucketName: "bucket",
		GoogleCloudSpeechLocation:    "global",
		TranscribeLanguage:           "en-US",
		SpeechSampleRateHertz:        16000,
		SegmentDurationSec:           5.0,
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_InvalidSegmentDuration(t *testing.T) {
	for _, d := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		cfg := validConfig()
		cfg.SegmentDurationSec = d
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error for segment duration %v", d)
		}
	}
}

func TestValidate_InvalidSampleRate(t *testing.T) {
	cfg := validConfig()
	cfg.SpeechSampleRateHertz = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive sample rate")
	}
}

func TestValidate_InvalidEnums(t *testing.T) {
	cfg := validConfig()
	cfg.SegmentGapPolicy = "leap"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown gap policy")
	}
	cfg = validConfig()
	cfg.WordTimeConversion = "divide"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown time conversion")
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when required fields are missing")
	}
}

func TestSegmentOptions(t *testing.T) {
	cfg := validConfig()
	cfg.SegmentDurationSec = 3
	cfg.SegmentGapPolicy = "fill"
	opts := cfg.SegmentOptions()
	if opts.WindowSeconds != 3 || opts.GapPolicy != subtitle.GapPolicyFill {
		t.Fatalf("unexpected segment options: %+v", opts)
	}
}

func TestTimeConversion(t *testing.T) {
	cfg := validConfig()
	cfg.WordTimeConversion = "scaled"
	got, err := cfg.TimeConversion()(subtitle.Offset{Seconds: 1, Nanos: 500000000})
	if err != nil || got != 1.5 {
		t.Fatalf("unexpected conversion result %v %v", got, err)
	}
}

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{Env: "development"}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development mode")
	}
	cfg.Env = "production"
	if cfg.IsDevelopment() {
		t.Fatal("expected non-development mode")
	}
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/jimaku/internal/config"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

type envConfig struct {
	Env                          string  `env:"ENV" envDefault:"production"`
	InputVideoPath               string  `env:"INPUT_VIDEO_PATH" envDefault:"audio.mp4"`
	DenoisedAudioPath            string  `env:"DENOISED_AUDIO_PATH" envDefault:"audio.mp3"`
	SubtitlePath                 string  `env:"SUBTITLE_PATH" envDefault:"subtitles.srt"`
	OutputVideoPath              string  `env:"OUTPUT_VIDEO_PATH" envDefault:"output_video_with_audio.mp4"`
	FFmpegBinary                 string  `env:"FFMPEG_BINARY" envDefault:"ffmpeg"`
	SubtitleForceStyle           string  `env:"SUBTITLE_FORCE_STYLE" envDefault:"Alignment=2,FontSize=24"`
	GoogleCloudProjectID         string  `env:"GOOGLE_CLOUD_PROJECT_ID,required"`
	GoogleCloudCredentialsJSON   string  `env:"GOOGLE_CLOUD_CREDENTIALS_JSON,required"`
	GoogleCloudStorageBucketName string  `env:"GOOGLE_CLOUD_STORAGE_BUCKET_NAME,required"`
	GoogleCloudSpeechLocation    string  `env:"GOOGLE_CLOUD_SPEECH_LOCATION" envDefault:"global"`
	TranscribeLanguage           string  `env:"TRANSCRIBE_LANGUAGE" envDefault:"en-US"`
	SpeechSampleRateHertz        int     `env:"SPEECH_SAMPLE_RATE_HERTZ" envDefault:"16000"`
	SegmentDurationSec           float64 `env:"SEGMENT_DURATION_SEC" envDefault:"5.0"`
	SegmentGapPolicy             string  `env:"SEGMENT_GAP_POLICY" envDefault:"single-step"`
	WordTimeConversion           string  `env:"WORD_TIME_CONVERSION" envDefault:"concat"`
	DatabaseURL                  string  `env:"DATABASE_URL"`
	RunWebhookURL                string  `env:"RUN_WEBHOOK_URL"`
}

// Load reads the dotenv file named by ENV_FILE (default .env) if present, then
// parses the process environment. Variables already set take precedence.
func Load() (*internalconfig.Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}

	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                          raw.Env,
		InputVideoPath:               raw.InputVideoPath,
		DenoisedAudioPath:            raw.DenoisedAudioPath,
		SubtitlePath:                 raw.SubtitlePath,
		OutputVideoPath:              raw.OutputVideoPath,
		FFmpegBinary:                 raw.FFmpegBinary,
		SubtitleForceStyle:           raw.SubtitleForceStyle,
		GoogleCloudProjectID:         raw.GoogleCloudProjectID,
		GoogleCloudCredentialsJSON:   raw.GoogleCloudCredentialsJSON,
		GoogleCloudStorageBucketName: raw.GoogleCloudStorageBucketName,
		GoogleCloudSpeechLocation:    raw.GoogleCloudSpeechLocation,
		TranscribeLanguage:           raw.TranscribeLanguage,
		SpeechSampleRateHertz:        raw.SpeechSampleRateHertz,
		SegmentDurationSec:           raw.SegmentDurationSec,
		SegmentGapPolicy:             raw.SegmentGapPolicy,
		WordTimeConversion:           raw.WordTimeConversion,
		DatabaseURL:                  raw.DatabaseURL,
		RunWebhookURL:                raw.RunWebhookURL,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotenv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("dotenv file not found; using process environment only", "path", path)
			return nil
		}
		return fmt.Errorf("failed to load dotenv file %s: %w", path, err)
	}
	slog.Info("dotenv file loaded", "path", path)
	return nil
}

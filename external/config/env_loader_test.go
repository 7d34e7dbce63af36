package config

import (
	"os"
	"path/filepath"
	"testing"
)

var dotenvKeys = []string{
	"GOOGLE_CLOUD_PROJECT_ID",
	"GOOGLE_CLOUD_CREDENTIALS_JSON",
	"GOOGLE_CLOUD_STORAGE_BUCKET_NAME",
	"SEGMENT_GAP_POLICY",
}

func writeDotenv(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write dotenv: %v", err)
	}
	t.Cleanup(func() {
		for _, k := range dotenvKeys {
			_ = os.Unsetenv(k)
		}
	})
	return path
}

func TestLoad_FromDotenvWithDefaults(t *testing.T) {
	path := writeDotenv(t, "GOOGLE_CLOUD_PROJECT_ID=project\n"+
		"GOOGLE_CLOUD_CREDENTIALS_JSON={}\n"+
		"GOOGLE_CLOUD_STORAGE_BUCKET_NAME=bucket\n"+
		"SEGMENT_GAP_POLICY=fill\n")
	t.Setenv("ENV_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.GoogleCloudStorageBucketName != "bucket" {
		t.Fatalf("unexpected bucket: %s", cfg.GoogleCloudStorageBucketName)
	}
	if cfg.SegmentGapPolicy != "fill" {
		t.Fatalf("unexpected gap policy: %s", cfg.SegmentGapPolicy)
	}
	if cfg.SubtitlePath != "subtitles.srt" || cfg.DenoisedAudioPath != "audio.mp3" {
		t.Fatalf("unexpected default paths: %s %s", cfg.SubtitlePath, cfg.DenoisedAudioPath)
	}
	if cfg.SegmentDurationSec != 5.0 || cfg.SpeechSampleRateHertz != 16000 {
		t.Fatalf("unexpected defaults: %v %d", cfg.SegmentDurationSec, cfg.SpeechSampleRateHertz)
	}
}

func TestLoad_ProcessEnvWinsOverDotenv(t *testing.T) {
	path := writeDotenv(t, "GOOGLE_CLOUD_PROJECT_ID=from-file\n"+
		"GOOGLE_CLOUD_CREDENTIALS_JSON={}\n"+
		"GOOGLE_CLOUD_STORAGE_BUCKET_NAME=bucket\n")
	t.Setenv("ENV_FILE", path)
	t.Setenv("GOOGLE_CLOUD_PROJECT_ID", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.GoogleCloudProjectID != "from-env" {
		t.Fatalf("expected process env to win, got %s", cfg.GoogleCloudProjectID)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("GOOGLE_CLOUD_PROJECT_ID", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when required variables are missing")
	}
}

package media

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/foxseedlab/jimaku/internal/media"
)

const DefaultSubtitleForceStyle = "Alignment=2,FontSize=24"

// speechAudioFilters keep the vocal band, reduce broadband noise and level
// the result.
var speechAudioFilters = []string{
	"highpass=f=300",
	"lowpass=f=3000",
	"afftdn=nf=-25",
	"equalizer=f=1000:width_type=h:width=200:g=10",
	"dynaudnorm",
}

type commandRunner func(ctx context.Context, name string, args ...string) error

type FFmpegConfig struct {
	Binary          string
	SampleRateHertz int
	ForceStyle      string
}

type FFmpeg struct {
	binary          string
	sampleRateHertz int
	forceStyle      string
	run             commandRunner
}

func NewFFmpeg(cfg FFmpegConfig) *FFmpeg {
	binary := strings.TrimSpace(cfg.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	style := strings.TrimSpace(cfg.ForceStyle)
	if style == "" {
		style = DefaultSubtitleForceStyle
	}
	return &FFmpeg{
		binary:          binary,
		sampleRateHertz: cfg.SampleRateHertz,
		forceStyle:      style,
		run:             defaultCommandRunner,
	}
}

var (
	_ media.AudioProcessor = (*FFmpeg)(nil)
	_ media.VideoBurner    = (*FFmpeg)(nil)
)

func (f *FFmpeg) Denoise(ctx context.Context, inputVideo, outputAudio string) error {
	slog.Info("preprocessing audio", "input", inputVideo, "output", outputAudio)
	if err := f.run(ctx, f.binary, f.denoiseArgs(inputVideo, outputAudio)...); err != nil {
		return fmt.Errorf("ffmpeg denoise: %w", err)
	}
	slog.Info("audio preprocessing and conversion to mp3 completed", "output", outputAudio)
	return nil
}

func (f *FFmpeg) BurnSubtitles(ctx context.Context, inputVideo, subtitlePath, outputVideo string) error {
	slog.Info("burning subtitles into video", "input", inputVideo, "subtitles", subtitlePath, "output", outputVideo)
	if err := f.run(ctx, f.binary, f.burnArgs(inputVideo, subtitlePath, outputVideo)...); err != nil {
		return fmt.Errorf("ffmpeg burn subtitles: %w", err)
	}
	slog.Info("subtitles added to video", "output", outputVideo)
	return nil
}

func (f *FFmpeg) denoiseArgs(inputVideo, outputAudio string) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputVideo,
		"-vn",
		"-sn",
		"-dn",
		"-af", strings.Join(speechAudioFilters, ","),
		"-ac", "1",
	}
	if f.sampleRateHertz > 0 {
		args = append(args, "-ar", strconv.Itoa(f.sampleRateHertz))
	}
	return append(args, "-f", "mp3", outputAudio)
}

func (f *FFmpeg) burnArgs(inputVideo, subtitlePath, outputVideo string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputVideo,
		"-vf", subtitlesFilter(subtitlePath, f.forceStyle),
		"-c:a", "copy",
		outputVideo,
	}
}

func subtitlesFilter(subtitlePath, forceStyle string) string {
	return fmt.Sprintf("subtitles=%s:force_style='%s'", escapeFilterValue(subtitlePath), forceStyle)
}

var filterValueEscaper = strings.NewReplacer(`\`, `\\`, `:`, `\:`, `'`, `\'`)

func escapeFilterValue(v string) string {
	return filterValueEscaper.Replace(v)
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

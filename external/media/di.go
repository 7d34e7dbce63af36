package media

import (
	"github.com/foxseedlab/jimaku/internal/config"
	"github.com/foxseedlab/jimaku/internal/media"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*FFmpeg, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewFFmpeg(FFmpegConfig{
			Binary:          c.FFmpegBinary,
			SampleRateHertz: c.SpeechSampleRateHertz,
			ForceStyle:      c.SubtitleForceStyle,
		}), nil
	})
	do.Provide(injector, func(i do.Injector) (media.AudioProcessor, error) {
		return do.MustInvoke[*FFmpeg](i), nil
	})
	do.Provide(injector, func(i do.Injector) (media.VideoBurner, error) {
		return do.MustInvoke[*FFmpeg](i), nil
	})
}

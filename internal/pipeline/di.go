package pipeline

import (
	"github.com/foxseedlab/jimaku/internal/config"
	"github.com/foxseedlab/jimaku/internal/media"
	"github.com/foxseedlab/jimaku/internal/repository"
	"github.com/foxseedlab/jimaku/internal/storage"
	"github.com/foxseedlab/jimaku/internal/transcriber"
	"github.com/foxseedlab/jimaku/internal/webhook"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Runner, error) {
		cfg := do.MustInvoke[*config.Config](i)
		audio := do.MustInvoke[media.AudioProcessor](i)
		uploader := do.MustInvoke[storage.Uploader](i)
		stt := do.MustInvoke[transcriber.Transcriber](i)
		burner := do.MustInvoke[media.VideoBurner](i)
		repo := do.MustInvoke[repository.Repository](i)
		wh := do.MustInvoke[webhook.Sender](i)
		return NewRunner(cfg, audio, uploader, stt, burner, repo, wh), nil
	})
}

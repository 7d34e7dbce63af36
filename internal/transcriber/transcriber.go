package transcriber

import (
	"context"

	"github.com/foxseedlab/jimaku/internal/subtitle"
)

// Transcriber recognizes speech in an uploaded audio object and returns the
// recognized words with their time offsets, in spoken order.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURI string) ([]subtitle.TimedWord, error)
}

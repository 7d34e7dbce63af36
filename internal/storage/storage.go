package storage

import "context"

// Uploader copies a local file to object storage and returns a URI the
// transcription service can read it from.
type Uploader interface {
	Upload(ctx context.Context, localPath, objectName string) (string, error)
}

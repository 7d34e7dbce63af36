package storage

import (
	"github.com/foxseedlab/jimaku/internal/config"
	"github.com/foxseedlab/jimaku/internal/storage"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (storage.Uploader, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewGCSUploader(GCSConfig{
			ProjectID:       c.GoogleCloudProjectID,
			CredentialsJSON: c.GoogleCloudCredentialsJSON,
			BucketName:      c.GoogleCloudStorageBucketName,
		}), nil
	})
}

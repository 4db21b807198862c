package container

import (
	"time"

	"github.com/samber/do"
	"github.com/serroba/sharelink-go/internal/storage"
)

// StoragePackage provides the S3 object storage collaborator.
func StoragePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*storage.S3Store, error) {
		options := do.MustInvoke[*Options](i)

		return storage.NewS3Store(storage.Config{
			Endpoint:        options.S3Endpoint,
			Bucket:          options.S3Bucket,
			Region:          options.S3Region,
			AccessKeyID:     options.S3AccessKey,
			SecretAccessKey: options.S3SecretKey,
			UsePathStyle:    options.S3PathStyle,
			PresignValidity: time.Duration(options.PresignMins) * time.Minute,
		})
	})
}

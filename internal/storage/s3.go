// Package storage integrates the object storage collaborator: presigned
// download URLs and file metadata lookups.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/serroba/sharelink-go/internal/sharelink"
)

// DefaultPresignValidity bounds how long a minted download URL works.
// Deliberately minutes, not hours; independent of the link's own expiry.
const DefaultPresignValidity = 10 * time.Minute

// Config holds S3 connection settings.
type Config struct {
	Endpoint        string
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	PresignValidity time.Duration
}

// S3Store implements sharelink.DownloadURLIssuer and
// sharelink.MetadataFetcher against S3-compatible storage.
type S3Store struct {
	client   *s3.Client
	presign  *s3.PresignClient
	bucket   string
	validity time.Duration
}

// NewS3Store creates a new S3 storage collaborator.
func NewS3Store(cfg Config) (*S3Store, error) {
	customResolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			if cfg.Endpoint != "" {
				return aws.Endpoint{
					URL:               cfg.Endpoint,
					HostnameImmutable: true,
					Source:            aws.EndpointSourceCustom,
				}, nil
			}

			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		},
	)

	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		EndpointResolverWithOptions: customResolver,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	validity := cfg.PresignValidity
	if validity <= 0 {
		validity = DefaultPresignValidity
	}

	return &S3Store{
		client:   client,
		presign:  s3.NewPresignClient(client),
		bucket:   cfg.Bucket,
		validity: validity,
	}, nil
}

// PresignDownload mints a signed URL scoped to the single object behind
// the file reference, valid for the configured window.
func (s *S3Store) PresignDownload(ctx context.Context, ref sharelink.FileRef) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(ref)),
	}, func(o *s3.PresignOptions) {
		o.Expires = s.validity
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}

	return req.URL, nil
}

// FetchMeta resolves the file reference via HeadObject. A missing object
// maps to sharelink.ErrFileNotFound.
func (s *S3Store) FetchMeta(ctx context.Context, ref sharelink.FileRef) (sharelink.FileMeta, error) {
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(ref)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return sharelink.FileMeta{}, sharelink.ErrFileNotFound
		}

		return sharelink.FileMeta{}, fmt.Errorf("failed to head object: %w", err)
	}

	meta := sharelink.FileMeta{
		Name: path.Base(ref.FileID),
	}

	if name, ok := head.Metadata["original-name"]; ok && name != "" {
		meta.Name = name
	}

	if head.ContentLength != nil {
		meta.Size = *head.ContentLength
	}

	return meta, nil
}

// objectKey maps a file reference to its bucket key. Temporary uploads
// and library files live under separate prefixes.
func objectKey(ref sharelink.FileRef) string {
	prefix := "library"
	if ref.Kind == sharelink.FileKindTemporary {
		prefix = "tmp"
	}

	return prefix + "/" + ref.FileID
}

package storage

import (
	"context"
	"io"
	"log/slog"

	"plaza/config"
	"plaza/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

const defaultBucketURL = "mem://"

// Module provides the media bucket.
var Module = fx.Module("storage",
	fx.Provide(NewMediaStorage),
)

type StorageParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// bucketStorage stores media objects in any gocloud.dev bucket.
type bucketStorage struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// NewMediaStorage opens the configured bucket and closes it on shutdown.
func NewMediaStorage(params StorageParams) (service.MediaStorage, error) {
	bucketURL := defaultBucketURL
	if params.Config.Media != nil && params.Config.Media.BucketURL != "" {
		bucketURL = params.Config.Media.BucketURL
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open media bucket %s", bucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Media bucket opened", slog.String("url", bucketURL))

	return NewBucketStorage(bucket, params.Logger), nil
}

// NewBucketStorage wraps an already opened bucket.
func NewBucketStorage(bucket *blob.Bucket, logger *slog.Logger) service.MediaStorage {
	return &bucketStorage{bucket: bucket, logger: logger}
}

func (s *bucketStorage) Save(ctx context.Context, key, contentType string, body io.Reader) error {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrapf(err, "failed to open writer for %s", key)
	}

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()

		return errors.Wrapf(err, "failed to write %s", key)
	}

	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "failed to commit %s", key)
	}

	return nil
}

func (s *bucketStorage) Open(ctx context.Context, key string) (*service.MediaObject, error) {
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, service.ErrMediaNotFound
		}

		return nil, errors.Wrapf(err, "failed to open %s", key)
	}

	return &service.MediaObject{
		Body:        r,
		ContentType: r.ContentType(),
		Size:        r.Size(),
	}, nil
}

// Delete is idempotent: a missing key is not an error.
func (s *bucketStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			s.logger.Debug("Media already gone", slog.String("key", key))

			return nil
		}

		return errors.Wrapf(err, "failed to delete %s", key)
	}

	return nil
}

package service

import (
	"context"
	"errors"
	"io"
)

// ErrMediaNotFound is returned when a key is absent from the bucket.
var ErrMediaNotFound = errors.New("media object not found")

// MediaObject is an opened stored file. Callers must close Body.
type MediaObject struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// MediaStorage keeps uploaded files outside the relational store.
type MediaStorage interface {
	Save(ctx context.Context, key, contentType string, body io.Reader) error
	Open(ctx context.Context, key string) (*MediaObject, error)
	Delete(ctx context.Context, key string) error
}

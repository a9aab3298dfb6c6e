// Package storage provides the blob store collaborator for medical report
// uploads. The scheduling core never touches file bytes itself: it hands a
// stream to Save and records the opaque reference that comes back.
package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrBlobNotFound    = errors.New("blob not found")
	ErrMissingFileName = errors.New("file name is required")
)

// Store persists raw report bytes and hands back an opaque reference that
// is sufficient to retrieve them later.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (ref string, err error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

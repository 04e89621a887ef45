package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	// Save stores r under a random name in the owner's namespace.
	Save(ctx context.Context, owner string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	// SaveWithKey stores r at an exact key, replacing any previous object.
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

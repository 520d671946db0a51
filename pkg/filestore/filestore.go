package filestore

import (
	"context"
	"io"
)

// ObjectInfo describes a stored document file.
type ObjectInfo struct {
	ObjectID    string
	Name        string
	ContentType string
	Size        int64
}

// Store abstracts where uploaded application documents live. Implementations
// are expected to be safe for concurrent use.
type Store interface {
	// Upload stores the content under a new object ID and returns it.
	Upload(ctx context.Context, objectID string, name string, contentType string, content io.Reader) (ObjectInfo, error)

	// Download returns a reader for the stored object. The caller must
	// close the returned reader.
	Download(ctx context.Context, objectID string) (io.ReadCloser, ObjectInfo, error)

	// Delete removes the stored object. Deleting a missing object is not
	// an error, the cleanup jobs may retry deletes.
	Delete(ctx context.Context, objectID string) error
}

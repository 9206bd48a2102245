// Package artifact stores rendered QR images.
//
// Keys are flat names such as "qr_desk-0001.png". Unlike a general blob store,
// Put always overwrites: regenerating an artifact replaces the previous image
// in place so the path recorded on the asset stays valid.
package artifact

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifies a concrete storage backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local directory (default)
	DriverMinIO      Driver = "minio"  // MinIO via minio-go
	DriverS3         Driver = "s3"     // AWS S3 or compatible via aws-sdk-go-v2
	DriverMemory     Driver = "memory" // in-memory (tests)
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("artifact not found")

// PutOptions define optional parameters for writing an artifact.
// Size should be the exact number of bytes if known, -1 otherwise.
type PutOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// Info describes a stored artifact.
type Info struct {
	Key string
	// Path is the reference persisted on the asset record: a filesystem path
	// for the fs driver, an s3://bucket/key style URI for object stores.
	Path         string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// Store is the artifact storage abstraction used by the QR generator and the
// report builders.
type Store interface {
	// Put writes r under key, replacing any existing content.
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (Info, error)
	// Get returns the content of key. Missing keys yield ErrNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, Info, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Driver returns the backend identifier.
	Driver() Driver
}

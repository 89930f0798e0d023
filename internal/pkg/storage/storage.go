package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrMissingSigner indicates signed URL support is not configured.
var ErrMissingSigner = errors.New("storage: signed url signer not configured")

// Storage is the object store contract shared by the S3, GCS and MinIO
// drivers. Attachment uploads and presigned download links go through it.
type Storage interface {
	io.Closer

	PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	GetObject(ctx context.Context, bucket, key string, opts GetOptions) (io.ReadCloser, ObjectInfo, error)
	StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	ListObjects(ctx context.Context, bucket, prefix string, opts ListOptions) ([]ObjectInfo, error)

	// PresignGet and PresignPut return time-limited URLs so clients can
	// transfer objects without going through the API server.
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	PresignPut(ctx context.Context, bucket, key string, opts PutOptions, expiry time.Duration) (string, error)
}

// PutOptions configures an upload.
type PutOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// GetOptions configures a download. A nil Range reads the whole object.
type GetOptions struct {
	Range *ByteRange
}

// ListOptions configures listing. Token continues a previous page.
type ListOptions struct {
	Limit int32
	Token string
}

// ByteRange is an inclusive byte range.
type ByteRange struct {
	Start int64
	End   int64
}

// ObjectInfo is the metadata common to all backends.
type ObjectInfo struct {
	Bucket      string
	Key         string
	Size        int64
	ETag        string
	ContentType string
	Metadata    map[string]string
	UpdatedAt   time.Time
}

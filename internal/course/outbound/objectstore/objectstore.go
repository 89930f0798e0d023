package objectstore

import (
	"context"
	"io"
	"time"

	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/storage"
	"go.opentelemetry.io/otel/codes"
)

const defaultPresignExpiry = 15 * time.Minute

// ObjectStore keeps submission attachments in object storage.
type ObjectStore struct {
	client storage.Storage
	ins    instrument.Instrumentation
	bucket string
	expiry time.Duration
}

func New(client storage.Storage, ins instrument.Instrumentation, bucket string, expiry time.Duration) *ObjectStore {
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}

	return &ObjectStore{
		client: client,
		ins:    ins,
		bucket: bucket,
		expiry: expiry,
	}
}

func (o *ObjectStore) PutAttachment(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	ctx, span := o.ins.Tracer("course.outbound.objectstore").Start(ctx, "PutAttachment")
	defer span.End()

	_, err := o.client.PutObject(ctx, o.bucket, key, r, storage.PutOptions{
		Size:        size,
		ContentType: contentType,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (o *ObjectStore) AttachmentURL(ctx context.Context, key string) (string, error) {
	ctx, span := o.ins.Tracer("course.outbound.objectstore").Start(ctx, "AttachmentURL")
	defer span.End()

	url, err := o.client.PresignGet(ctx, o.bucket, key, o.expiry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return url, nil
}

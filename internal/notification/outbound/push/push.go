package push

import (
	"context"
	"time"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/webpush"
	"go.opentelemetry.io/otel/codes"
)

const defaultSendTimeout = 5 * time.Second

type Push struct {
	client  webpush.WebPush
	ins     instrument.Instrumentation
	timeout time.Duration
}

func New(client webpush.WebPush, ins instrument.Instrumentation, timeout time.Duration) *Push {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	return &Push{client: client, ins: ins, timeout: timeout}
}

func (p *Push) Send(ctx context.Context, sub entity.PushSubscription, payload webpush.Payload) error {
	ctx, span := p.ins.Tracer("notification.outbound.push").Start(ctx, "Send")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.client.Send(ctx, webpush.Subscription{
		Endpoint: sub.Endpoint,
		P256dh:   sub.P256dh,
		Auth:     sub.Auth,
	}, payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (p *Push) PublicKey() string {
	return p.client.PublicKey()
}

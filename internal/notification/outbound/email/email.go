package email

import (
	"context"
	"time"

	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
)

const defaultSendTimeout = 10 * time.Second

type Mail struct {
	client  mail.Mail
	ins     instrument.Instrumentation
	timeout time.Duration
}

func New(client mail.Mail, ins instrument.Instrumentation, timeout time.Duration) *Mail {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	return &Mail{client: client, ins: ins, timeout: timeout}
}

func (m *Mail) Send(ctx context.Context, msg mail.Message) error {
	ctx, span := m.ins.Tracer("notification.outbound.email").Start(ctx, "Send")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.client.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

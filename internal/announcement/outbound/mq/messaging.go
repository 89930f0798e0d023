package mq

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/demirti/cverse-lms/internal/announcement/entity"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/messaging"
	"github.com/demirti/cverse-lms/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const (
	keyOfCorrelationID string = "cID"
	previewLength             = 160
)

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishAnnouncementPublished(ctx context.Context, a entity.Announcement) error {
	ctx, span := m.ins.Tracer("announcement.outbound.mq").Start(ctx, "PublishAnnouncementPublished")
	defer span.End()

	msg := event.AnnouncementPublishedMessage{
		AnnouncementID: a.ID,
		Title:          a.Title,
		Preview:        preview(a.Body),
		Scope:          a.Scope.String(),
		SendEmail:      a.SendEmail,
		ActorID:        a.CreatedBy,
	}
	if a.TrackID != nil {
		msg.TrackID = *a.TrackID
	}
	if a.CohortID != nil {
		msg.CohortID = *a.CohortID
	}

	body, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.AnnouncementPublishedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func preview(body string) string {
	flat := strings.Join(strings.Fields(body), " ")
	if utf8.RuneCountInString(flat) <= previewLength {
		return flat
	}

	runes := []rune(flat)

	return string(runes[:previewLength]) + "…"
}

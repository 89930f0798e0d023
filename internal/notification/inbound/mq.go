package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/demirti/cverse-lms/internal/pkg/config"
	"github.com/demirti/cverse-lms/internal/pkg/goroutine"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/messaging"
	"github.com/demirti/cverse-lms/internal/pkg/uid"
	"github.com/demirti/cverse-lms/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")

	var consumers = []struct {
		name    string
		topic   string // destination where publisher sent message
		handler messaging.Handler
	}{
		{
			name:    event.ChatMessageConsumerNotification,
			topic:   event.ChatMessageDestination,
			handler: mqHandler.ChatMessageNotification,
		},
		{
			name:    event.AnnouncementPublishedConsumerNotification,
			topic:   event.AnnouncementPublishedDestination,
			handler: mqHandler.AnnouncementNotification,
		},
		{
			name:    event.AssignmentPostedConsumerNotification,
			topic:   event.AssignmentPostedDestination,
			handler: mqHandler.AssignmentPostedNotification,
		},
		{
			name:    event.AssignmentDeadlineConsumerNotification,
			topic:   event.AssignmentDeadlineDestination,
			handler: mqHandler.AssignmentDeadlineNotification,
		},
		{
			name:    event.SubmissionGradedConsumerNotification,
			topic:   event.SubmissionGradedDestination,
			handler: mqHandler.SubmissionGradedNotification,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithChannel(consumer.name),
					messaging.WithQueueGroup(consumer.name),
					messaging.WithGroup(consumer.name),
					messaging.WithSubscription(consumer.name),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
					messaging.WithMaxInFlight(10),
				)
			})
		}
	}
}

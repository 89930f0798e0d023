package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/pkg/valueobject"
)

type ConsumeChatMessageInput struct {
	RoomID     int64  `validate:"required,gt=0"`
	RoomName   string `validate:"required"`
	MessageID  int64  `validate:"required,gt=0"`
	SenderID   int64  `validate:"required,gt=0"`
	SenderName string `validate:"required"`
	Preview    string
}

// ConsumeChatMessage fans a chat message out to everyone else in the room.
// It always returns nil: a notification failure must never nack the message
// back at the producer.
func (s *Usecase) ConsumeChatMessage(ctx context.Context, in ConsumeChatMessageInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeChatMessage")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid chat message event", "room_id", in.RoomID, "message_id", in.MessageID, "error", err)
		return nil
	}

	recipients, err := s.repoDB.ListChatRoomRecipients(ctx, in.RoomID, in.SenderID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list chat room recipients", "room_id", in.RoomID, "error", err)
		return nil
	}

	s.fanOut(ctx, fanOutInput{
		EventKey:      entity.EventKeyChatMessage,
		FallbackTitle: "New message from {{sender}}",
		FallbackBody:  "{{preview}}",
		Values: map[string]string{
			"sender":  in.SenderName,
			"room":    in.RoomName,
			"preview": in.Preview,
		},
		Link:       fmt.Sprintf("/chat/rooms/%d", in.RoomID),
		Data:       valueobject.JSONMap{"room_id": in.RoomID, "message_id": in.MessageID},
		Recipients: recipients,
		ActorID:    in.SenderID,
	})

	return nil
}

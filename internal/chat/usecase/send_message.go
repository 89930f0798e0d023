package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/demirti/cverse-lms/internal/chat/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

const previewLength = 120

type SendMessageInput struct {
	RoomID int64  `validate:"required,gt=0"`
	Body   string `validate:"required"`
}

func (s *Usecase) SendMessage(ctx context.Context, in SendMessageInput) (*entity.Message, error) {
	ctx, span := s.startSpan(ctx, "SendMessage")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	in.Body = strings.TrimSpace(in.Body)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if utf8.RuneCountInString(in.Body) > maxMessageBodyLength {
		return nil, goerror.NewBusiness(
			fmt.Sprintf("message body exceeds %d characters", maxMessageBodyLength),
			goerror.CodeInvalidInput,
		)
	}

	if _, err := s.requireMember(ctx, in.RoomID, clm.UserID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("chat:send:%d", clm.UserID)
	allowed, err := s.limiter.Allow(ctx, key, s.messageRateLimit, s.messageRateWindow)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check message rate limit", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !allowed {
		return nil, goerror.NewBusiness("too many messages, slow down", goerror.CodeTooManyRequest)
	}

	room, err := s.repoDB.GetRoom(ctx, in.RoomID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("room not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get room", "room_id", in.RoomID, "error", err)
		return nil, goerror.NewServer(err)
	}

	senderName, err := s.repoDB.GetUserName(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user name", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	msg := entity.CreateMessage{
		ID:       s.uid.Generate(),
		RoomID:   in.RoomID,
		SenderID: clm.UserID,
		Body:     in.Body,
	}

	if err := s.repoDB.CreateMessage(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to repo create message", "room_id", in.RoomID, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := entity.Message{
		ID:         msg.ID,
		RoomID:     msg.RoomID,
		SenderID:   msg.SenderID,
		SenderName: senderName,
		Body:       msg.Body,
		CreatedAt:  s.clock.Now(),
	}

	// The message is durable at this point. A broker outage must not fail
	// the send, so the publish error is only logged.
	if err := s.repoMsg.PublishChatMessage(ctx, out, room.Name, preview(in.Body)); err != nil {
		slog.ErrorContext(ctx, "failed to publish chat message event", "message_id", msg.ID, "error", err)
	}

	return &out, nil
}

// preview trims a message body down to a short single-line excerpt.
func preview(body string) string {
	flat := strings.Join(strings.Fields(body), " ")
	if utf8.RuneCountInString(flat) <= previewLength {
		return flat
	}

	runes := []rune(flat)

	return string(runes[:previewLength]) + "…"
}

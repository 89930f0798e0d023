package usecase

import (
	"context"
	"log/slog"

	"github.com/demirti/cverse-lms/internal/chat/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

type ListMessagesInput struct {
	RoomID int64 `validate:"required,gt=0"`
	Limit  int32 `validate:"omitempty,gte=1,lte=100"`
	Offset int32 `validate:"omitempty,gte=0"`
}

// ListMessages returns a page of room history and marks the room read for the
// caller, since fetching history is what reading the room means.
func (s *Usecase) ListMessages(ctx context.Context, in ListMessagesInput) ([]entity.Message, error) {
	ctx, span := s.startSpan(ctx, "ListMessages")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if in.Limit == 0 {
		in.Limit = 50
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.requireMember(ctx, in.RoomID, clm.UserID); err != nil {
		return nil, err
	}

	msgs, err := s.repoDB.ListMessages(ctx, in.RoomID, in.Limit, in.Offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list messages", "room_id", in.RoomID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if _, err := s.repoDB.MarkRoomRead(ctx, in.RoomID, clm.UserID, s.clock.Now()); err != nil {
		slog.WarnContext(ctx, "failed to repo mark room read", "room_id", in.RoomID, "user_id", clm.UserID, "error", err)
	}

	return msgs, nil
}

package usecase

import (
	"context"
	"log/slog"

	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

type MarkRoomReadInput struct {
	RoomID int64 `validate:"required,gt=0"`
}

func (s *Usecase) MarkRoomRead(ctx context.Context, in MarkRoomReadInput) error {
	ctx, span := s.startSpan(ctx, "MarkRoomRead")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	updated, err := s.repoDB.MarkRoomRead(ctx, in.RoomID, clm.UserID, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo mark room read", "room_id", in.RoomID, "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}
	if !updated {
		return goerror.NewBusiness("not a member of this room", goerror.CodeForbidden)
	}

	return nil
}

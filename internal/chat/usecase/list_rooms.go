package usecase

import (
	"context"
	"log/slog"

	"github.com/demirti/cverse-lms/internal/chat/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

func (s *Usecase) ListRooms(ctx context.Context) ([]entity.RoomListItem, error) {
	ctx, span := s.startSpan(ctx, "ListRooms")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	rooms, err := s.repoDB.ListRooms(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list rooms", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return rooms, nil
}

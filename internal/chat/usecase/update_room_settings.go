package usecase

import (
	"context"
	"log/slog"

	"github.com/demirti/cverse-lms/internal/chat/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

type UpdateRoomSettingsInput struct {
	RoomID     int64 `validate:"required,gt=0"`
	IsMuted    bool
	EmailMuted bool
}

// UpdateRoomSettings replaces the caller's per-room mute flags.
func (s *Usecase) UpdateRoomSettings(ctx context.Context, in UpdateRoomSettingsInput) (entity.MemberSettings, error) {
	ctx, span := s.startSpan(ctx, "UpdateRoomSettings")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return entity.MemberSettings{}, err
	}

	if err := s.validator.Validate(in); err != nil {
		return entity.MemberSettings{}, goerror.NewInvalidInput(err)
	}

	set := entity.MemberSettings{IsMuted: in.IsMuted, EmailMuted: in.EmailMuted}

	updated, err := s.repoDB.UpdateMemberSettings(ctx, in.RoomID, clm.UserID, set)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update member settings", "room_id", in.RoomID, "user_id", clm.UserID, "error", err)
		return entity.MemberSettings{}, goerror.NewServer(err)
	}
	if !updated {
		return entity.MemberSettings{}, goerror.NewBusiness("not a member of this room", goerror.CodeForbidden)
	}

	return set, nil
}

package inbound

import (
	"context"

	"github.com/demirti/cverse-lms/internal/chat/entity"
	"github.com/demirti/cverse-lms/internal/chat/usecase"
)

type uc interface {
	ListRooms(ctx context.Context) ([]entity.RoomListItem, error)
	ListMessages(ctx context.Context, in usecase.ListMessagesInput) ([]entity.Message, error)
	SendMessage(ctx context.Context, in usecase.SendMessageInput) (*entity.Message, error)
	MarkRoomRead(ctx context.Context, in usecase.MarkRoomReadInput) error
	UpdateRoomSettings(ctx context.Context, in usecase.UpdateRoomSettingsInput) (entity.MemberSettings, error)
}

package inbound

import (
	"context"

	"github.com/demirti/cverse-lms/internal/announcement/entity"
	"github.com/demirti/cverse-lms/internal/announcement/usecase"
)

type uc interface {
	ListAnnouncements(ctx context.Context, in usecase.ListAnnouncementsInput) ([]entity.Announcement, error)
	GetAnnouncement(ctx context.Context, in usecase.GetAnnouncementInput) (*entity.Announcement, error)

	CreateAnnouncement(ctx context.Context, in usecase.CreateAnnouncementInput) (*entity.Announcement, error)
	ListAllAnnouncements(ctx context.Context, in usecase.ListAnnouncementsInput) ([]entity.Announcement, error)

	PublishSweep(ctx context.Context, in usecase.PublishSweepInput) (*usecase.PublishSweepOutput, error)
}

package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/demirti/cverse-lms/internal/announcement/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

type ListAnnouncementsInput struct {
	Limit  int32 `validate:"omitempty,gte=1,lte=100"`
	Offset int32 `validate:"omitempty,gte=0"`
}

// ListAnnouncements returns published announcements visible to the caller:
// system-wide ones plus those scoped to the caller's track or cohort.
func (s *Usecase) ListAnnouncements(ctx context.Context, in ListAnnouncementsInput) ([]entity.Announcement, error) {
	ctx, span := s.startSpan(ctx, "ListAnnouncements")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if in.Limit == 0 {
		in.Limit = 20
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	items, err := s.repoDB.ListVisibleAnnouncements(ctx, clm.UserID, in.Limit, in.Offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list visible announcements", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return items, nil
}

// ListAllAnnouncements returns every announcement including drafts and
// scheduled ones, for the admin screen.
func (s *Usecase) ListAllAnnouncements(ctx context.Context, in ListAnnouncementsInput) ([]entity.Announcement, error) {
	ctx, span := s.startSpan(ctx, "ListAllAnnouncements")
	defer span.End()

	if _, err := s.requireAuth(ctx); err != nil {
		return nil, err
	}

	if in.Limit == 0 {
		in.Limit = 20
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	items, err := s.repoDB.ListAnnouncements(ctx, in.Limit, in.Offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list announcements", "error", err)
		return nil, goerror.NewServer(err)
	}

	return items, nil
}

type GetAnnouncementInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) GetAnnouncement(ctx context.Context, in GetAnnouncementInput) (*entity.Announcement, error) {
	ctx, span := s.startSpan(ctx, "GetAnnouncement")
	defer span.End()

	if _, err := s.requireAuth(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	a, err := s.repoDB.GetAnnouncement(ctx, in.ID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("announcement not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get announcement", "announcement_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return a, nil
}

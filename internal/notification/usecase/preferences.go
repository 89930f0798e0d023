package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

func (s *Usecase) GetPreferences(ctx context.Context) (_ entity.Preferences, err error) {
	ctx, span := s.startSpan(ctx, "GetPreferences")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return entity.Preferences{}, err
	}

	prefs, err := s.repoDB.GetPreferences(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return entity.DefaultPreferences(clm.UserID), nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get preferences", "user_id", clm.UserID, "error", err)
		return entity.Preferences{}, goerror.NewServer(err)
	}

	return *prefs, nil
}

type UpdatePreferencesInput struct {
	EmailEnabled bool
	InAppEnabled bool

	EmailAnnouncements bool
	InAppAnnouncements bool
	PushAnnouncements  bool

	EmailChat bool
	InAppChat bool
	PushChat  bool

	EmailAssignments bool
	InAppAssignments bool
	PushAssignments  bool

	EmailGrades bool
	InAppGrades bool
	PushGrades  bool

	EmailDeadlines bool
	InAppDeadlines bool
	PushDeadlines  bool
}

func (s *Usecase) UpdatePreferences(ctx context.Context, in UpdatePreferencesInput) (_ entity.Preferences, err error) {
	ctx, span := s.startSpan(ctx, "UpdatePreferences")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return entity.Preferences{}, err
	}

	prefs := entity.Preferences{
		UserID:             clm.UserID,
		EmailEnabled:       in.EmailEnabled,
		InAppEnabled:       in.InAppEnabled,
		EmailAnnouncements: in.EmailAnnouncements,
		InAppAnnouncements: in.InAppAnnouncements,
		PushAnnouncements:  in.PushAnnouncements,
		EmailChat:          in.EmailChat,
		InAppChat:          in.InAppChat,
		PushChat:           in.PushChat,
		EmailAssignments:   in.EmailAssignments,
		InAppAssignments:   in.InAppAssignments,
		PushAssignments:    in.PushAssignments,
		EmailGrades:        in.EmailGrades,
		InAppGrades:        in.InAppGrades,
		PushGrades:         in.PushGrades,
		EmailDeadlines:     in.EmailDeadlines,
		InAppDeadlines:     in.InAppDeadlines,
		PushDeadlines:      in.PushDeadlines,
	}

	if err := s.repoDB.UpsertPreferences(ctx, prefs); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert preferences", "user_id", clm.UserID, "error", err)
		return entity.Preferences{}, goerror.NewServer(err)
	}

	return prefs, nil
}

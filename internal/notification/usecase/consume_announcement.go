package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/pkg/valueobject"
)

type ConsumeAnnouncementInput struct {
	AnnouncementID int64  `validate:"required,gt=0"`
	Title          string `validate:"required"`
	Preview        string
	Scope          string `validate:"required,oneof=system track cohort"`
	TrackID        int64
	CohortID       int64
	SendEmail      bool
	ActorID        int64
}

// ConsumeAnnouncement fans an announcement out to the students in its scope.
// send_email=false empties the email channel no matter what recipients chose.
func (s *Usecase) ConsumeAnnouncement(ctx context.Context, in ConsumeAnnouncementInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeAnnouncement")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid announcement event", "announcement_id", in.AnnouncementID, "error", err)
		return nil
	}

	recipients, err := s.scopeRecipients(ctx, in.Scope, in.TrackID, in.CohortID, entity.CategoryAnnouncements)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list announcement recipients",
			"announcement_id", in.AnnouncementID, "scope", in.Scope, "error", err)
		return nil
	}

	s.fanOut(ctx, fanOutInput{
		EventKey:      entity.EventKeyAnnouncement,
		FallbackTitle: "{{title}}",
		FallbackBody:  "{{preview}}",
		Values: map[string]string{
			"title":   in.Title,
			"preview": in.Preview,
		},
		Link:         fmt.Sprintf("/announcements/%d", in.AnnouncementID),
		Data:         valueobject.JSONMap{"announcement_id": in.AnnouncementID},
		Recipients:   recipients,
		ActorID:      in.ActorID,
		DisableEmail: !in.SendEmail,
	})

	return nil
}

func (s *Usecase) scopeRecipients(ctx context.Context, scope string, trackID, cohortID int64, cat entity.Category) ([]entity.Recipient, error) {
	switch scope {
	case "track":
		return s.repoDB.ListTrackRecipients(ctx, trackID, cat)
	case "cohort":
		return s.repoDB.ListCohortRecipients(ctx, cohortID, cat)
	default:
		return s.repoDB.ListSystemRecipients(ctx, cat)
	}
}

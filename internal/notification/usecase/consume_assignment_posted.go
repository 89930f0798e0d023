package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/pkg/valueobject"
)

type ConsumeAssignmentPostedInput struct {
	AssignmentID int64  `validate:"required,gt=0"`
	CohortID     int64  `validate:"required,gt=0"`
	Title        string `validate:"required"`
	DueAt        time.Time
	ActorID      int64
}

func (s *Usecase) ConsumeAssignmentPosted(ctx context.Context, in ConsumeAssignmentPostedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeAssignmentPosted")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid assignment posted event", "assignment_id", in.AssignmentID, "error", err)
		return nil
	}

	recipients, err := s.repoDB.ListCohortRecipients(ctx, in.CohortID, entity.CategoryAssignments)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list cohort recipients", "cohort_id", in.CohortID, "error", err)
		return nil
	}

	s.fanOut(ctx, fanOutInput{
		EventKey:      entity.EventKeyAssignmentPosted,
		FallbackTitle: "New assignment: {{title}}",
		FallbackBody:  "A new assignment is available. Due {{due}}.",
		Values: map[string]string{
			"title": in.Title,
			"due":   in.DueAt.Format("Jan 2, 2006 15:04 MST"),
		},
		Link:       fmt.Sprintf("/assignments/%d", in.AssignmentID),
		Data:       valueobject.JSONMap{"assignment_id": in.AssignmentID, "cohort_id": in.CohortID},
		Recipients: recipients,
		ActorID:    in.ActorID,
	})

	return nil
}

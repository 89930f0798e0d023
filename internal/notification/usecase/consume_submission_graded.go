package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/valueobject"
)

type ConsumeSubmissionGradedInput struct {
	SubmissionID    int64  `validate:"required,gt=0"`
	AssignmentID    int64  `validate:"required,gt=0"`
	AssignmentTitle string `validate:"required"`
	StudentID       int64  `validate:"required,gt=0"`
	Score           int32
	MaxScore        int32
	GraderID        int64
}

// ConsumeSubmissionGraded notifies the one student whose submission was graded.
func (s *Usecase) ConsumeSubmissionGraded(ctx context.Context, in ConsumeSubmissionGradedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeSubmissionGraded")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid submission graded event", "submission_id", in.SubmissionID, "error", err)
		return nil
	}

	recipient, err := s.repoDB.GetUserRecipient(ctx, in.StudentID, entity.CategoryGrades)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "graded submission student not found", "student_id", in.StudentID)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user recipient", "student_id", in.StudentID, "error", err)
		return nil
	}

	s.fanOut(ctx, fanOutInput{
		EventKey:      entity.EventKeySubmissionGraded,
		FallbackTitle: "Your submission was graded",
		FallbackBody:  "{{title}}: {{score}}/{{max_score}}",
		Values: map[string]string{
			"title":     in.AssignmentTitle,
			"score":     strconv.FormatInt(int64(in.Score), 10),
			"max_score": strconv.FormatInt(int64(in.MaxScore), 10),
		},
		Link:       fmt.Sprintf("/assignments/%d", in.AssignmentID),
		Data:       valueobject.JSONMap{"assignment_id": in.AssignmentID, "submission_id": in.SubmissionID},
		Recipients: []entity.Recipient{*recipient},
		ActorID:    in.GraderID,
	})

	return nil
}

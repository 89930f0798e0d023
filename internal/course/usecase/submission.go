package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/demirti/cverse-lms/internal/course/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

type SubmitAssignmentInput struct {
	AssignmentID int64  `validate:"required,gt=0"`
	Body         string `validate:"required"`

	AttachmentName        string
	AttachmentContentType string
	AttachmentSize        int64
	Attachment            io.Reader
}

// SubmitAssignment records a student submission, optionally storing an
// attachment in object storage. One submission per student per assignment.
func (s *Usecase) SubmitAssignment(ctx context.Context, in SubmitAssignmentInput) (*entity.Submission, error) {
	ctx, span := s.startSpan(ctx, "SubmitAssignment")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	a, err := s.getAssignment(ctx, in.AssignmentID)
	if err != nil {
		return nil, err
	}
	if !a.Published() {
		return nil, goerror.NewBusiness("assignment not found", goerror.CodeNotFound)
	}

	member, err := s.repoDB.IsCohortMember(ctx, a.CohortID, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check cohort member", "cohort_id", a.CohortID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !member {
		return nil, goerror.NewBusiness("not a member of this cohort", goerror.CodeForbidden)
	}

	id := s.uid.Generate()

	var attachmentKey string
	if in.Attachment != nil {
		attachmentKey = fmt.Sprintf("submissions/%d/%d%s", in.AssignmentID, id, path.Ext(in.AttachmentName))
		err := s.repoStore.PutAttachment(ctx, attachmentKey, in.Attachment, in.AttachmentSize, in.AttachmentContentType)
		if err != nil {
			slog.ErrorContext(ctx, "failed to store submission attachment", "assignment_id", in.AssignmentID, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	data := entity.CreateSubmission{
		ID:            id,
		AssignmentID:  in.AssignmentID,
		StudentID:     clm.UserID,
		Body:          in.Body,
		AttachmentKey: attachmentKey,
	}

	if err := s.repoDB.CreateSubmission(ctx, data); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("assignment already submitted", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to repo create submission", "assignment_id", in.AssignmentID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &entity.Submission{
		ID:            data.ID,
		AssignmentID:  data.AssignmentID,
		StudentID:     data.StudentID,
		Body:          data.Body,
		AttachmentKey: data.AttachmentKey,
		SubmittedAt:   s.clock.Now(),
	}, nil
}

type MySubmissionInput struct {
	AssignmentID int64 `validate:"required,gt=0"`
}

// MySubmission returns the caller's own submission for an assignment,
// including the grade once one lands.
func (s *Usecase) MySubmission(ctx context.Context, in MySubmissionInput) (*entity.Submission, error) {
	ctx, span := s.startSpan(ctx, "MySubmission")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	sub, err := s.repoDB.GetSubmissionByStudent(ctx, in.AssignmentID, clm.UserID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("submission not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get submission by student", "assignment_id", in.AssignmentID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return sub, nil
}

type ListSubmissionsInput struct {
	AssignmentID int64 `validate:"required,gt=0"`
}

func (s *Usecase) ListSubmissions(ctx context.Context, in ListSubmissionsInput) ([]entity.Submission, error) {
	ctx, span := s.startSpan(ctx, "ListSubmissions")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	a, err := s.getAssignment(ctx, in.AssignmentID)
	if err != nil {
		return nil, err
	}

	if err := s.requireFacilitator(ctx, a.CohortID, clm.UserID); err != nil {
		return nil, err
	}

	subs, err := s.repoDB.ListSubmissions(ctx, in.AssignmentID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list submissions", "assignment_id", in.AssignmentID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return subs, nil
}

type GradeSubmissionInput struct {
	SubmissionID int64  `validate:"required,gt=0"`
	Score        int32  `validate:"gte=0"`
	Feedback     string `validate:"max=5000"`
}

// GradeSubmission records a grade and notifies the student. The grade write
// is durable first; the event publish only gets logged on failure.
func (s *Usecase) GradeSubmission(ctx context.Context, in GradeSubmissionInput) error {
	ctx, span := s.startSpan(ctx, "GradeSubmission")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	sub, err := s.repoDB.GetSubmission(ctx, in.SubmissionID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("submission not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get submission", "submission_id", in.SubmissionID, "error", err)
		return goerror.NewServer(err)
	}

	a, err := s.getAssignment(ctx, sub.AssignmentID)
	if err != nil {
		return err
	}

	if err := s.requireFacilitator(ctx, a.CohortID, clm.UserID); err != nil {
		return err
	}

	if in.Score > a.MaxScore {
		return goerror.NewBusiness(
			fmt.Sprintf("score exceeds maximum of %d", a.MaxScore),
			goerror.CodeInvalidInput,
		)
	}

	now := s.clock.Now()
	data := entity.GradeSubmission{
		SubmissionID: in.SubmissionID,
		Score:        in.Score,
		Feedback:     in.Feedback,
		GradedBy:     clm.UserID,
		GradedAt:     now,
	}

	updated, err := s.repoDB.GradeSubmission(ctx, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo grade submission", "submission_id", in.SubmissionID, "error", err)
		return goerror.NewServer(err)
	}
	if !updated {
		return goerror.NewBusiness("submission not found", goerror.CodeNotFound)
	}

	sub.Score = &in.Score
	sub.GradedBy = &clm.UserID
	sub.GradedAt = &now
	if err := s.repoMsg.PublishSubmissionGraded(ctx, *sub, a.Title, a.MaxScore); err != nil {
		slog.ErrorContext(ctx, "failed to publish submission graded event", "submission_id", sub.ID, "error", err)
	}

	return nil
}

type AttachmentURLInput struct {
	SubmissionID int64 `validate:"required,gt=0"`
}

// AttachmentURL returns a short-lived download link for a submission
// attachment. The student who owns the submission and cohort facilitators
// may fetch it.
func (s *Usecase) AttachmentURL(ctx context.Context, in AttachmentURLInput) (string, error) {
	ctx, span := s.startSpan(ctx, "AttachmentURL")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return "", err
	}

	if err := s.validator.Validate(in); err != nil {
		return "", goerror.NewInvalidInput(err)
	}

	sub, err := s.repoDB.GetSubmission(ctx, in.SubmissionID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return "", goerror.NewBusiness("submission not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get submission", "submission_id", in.SubmissionID, "error", err)
		return "", goerror.NewServer(err)
	}
	if sub.AttachmentKey == "" {
		return "", goerror.NewBusiness("submission has no attachment", goerror.CodeNotFound)
	}

	if sub.StudentID != clm.UserID {
		a, err := s.getAssignment(ctx, sub.AssignmentID)
		if err != nil {
			return "", err
		}
		if err := s.requireFacilitator(ctx, a.CohortID, clm.UserID); err != nil {
			return "", err
		}
	}

	url, err := s.repoStore.AttachmentURL(ctx, sub.AttachmentKey)
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign attachment url", "submission_id", in.SubmissionID, "error", err)
		return "", goerror.NewServer(err)
	}

	return url, nil
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/demirti/cverse-lms/internal/course/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

type CreateAssignmentInput struct {
	CohortID    int64     `validate:"required,gt=0"`
	Title       string    `validate:"required,max=200"`
	Description string    `validate:"required"`
	DueAt       time.Time `validate:"required"`
	MaxScore    int32     `validate:"required,gt=0,lte=1000"`
}

// CreateAssignment creates a draft assignment. Drafts are invisible to
// students until published.
func (s *Usecase) CreateAssignment(ctx context.Context, in CreateAssignmentInput) (*entity.Assignment, error) {
	ctx, span := s.startSpan(ctx, "CreateAssignment")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.requireFacilitator(ctx, in.CohortID, clm.UserID); err != nil {
		return nil, err
	}

	if !in.DueAt.After(s.clock.Now()) {
		return nil, goerror.NewBusiness("due date must be in the future", goerror.CodeInvalidInput)
	}

	data := entity.CreateAssignment{
		ID:          s.uid.Generate(),
		CohortID:    in.CohortID,
		Title:       in.Title,
		Description: in.Description,
		DueAt:       in.DueAt,
		MaxScore:    in.MaxScore,
		CreatedBy:   clm.UserID,
	}

	if err := s.repoDB.CreateAssignment(ctx, data); err != nil {
		slog.ErrorContext(ctx, "failed to repo create assignment", "cohort_id", in.CohortID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &entity.Assignment{
		ID:          data.ID,
		CohortID:    data.CohortID,
		Title:       data.Title,
		Description: data.Description,
		DueAt:       data.DueAt,
		MaxScore:    data.MaxScore,
		CreatedBy:   data.CreatedBy,
		CreatedAt:   s.clock.Now(),
	}, nil
}

type PublishAssignmentInput struct {
	AssignmentID int64 `validate:"required,gt=0"`
}

// PublishAssignment makes a draft visible to the cohort and announces it.
// The event publish happens after the durable update and never fails the call.
func (s *Usecase) PublishAssignment(ctx context.Context, in PublishAssignmentInput) error {
	ctx, span := s.startSpan(ctx, "PublishAssignment")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	a, err := s.getAssignment(ctx, in.AssignmentID)
	if err != nil {
		return err
	}

	if err := s.requireFacilitator(ctx, a.CohortID, clm.UserID); err != nil {
		return err
	}

	if a.Published() {
		return goerror.NewBusiness("assignment already published", goerror.CodeConflict)
	}

	now := s.clock.Now()
	updated, err := s.repoDB.PublishAssignment(ctx, a.ID, now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo publish assignment", "assignment_id", a.ID, "error", err)
		return goerror.NewServer(err)
	}
	if !updated {
		return goerror.NewBusiness("assignment already published", goerror.CodeConflict)
	}

	a.PublishedAt = &now
	if err := s.repoMsg.PublishAssignmentPosted(ctx, *a, clm.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to publish assignment posted event", "assignment_id", a.ID, "error", err)
	}

	return nil
}

type ListAssignmentsInput struct {
	CohortID int64 `validate:"required,gt=0"`
}

// ListAssignments returns cohort assignments. Facilitators see drafts too.
func (s *Usecase) ListAssignments(ctx context.Context, in ListAssignmentsInput) ([]entity.Assignment, error) {
	ctx, span := s.startSpan(ctx, "ListAssignments")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	facilitator, err := s.repoDB.IsCohortFacilitator(ctx, in.CohortID, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check facilitator", "cohort_id", in.CohortID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !facilitator {
		member, err := s.repoDB.IsCohortMember(ctx, in.CohortID, clm.UserID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo check cohort member", "cohort_id", in.CohortID, "error", err)
			return nil, goerror.NewServer(err)
		}
		if !member {
			return nil, goerror.NewBusiness("not a member of this cohort", goerror.CodeForbidden)
		}
	}

	assignments, err := s.repoDB.ListAssignments(ctx, in.CohortID, !facilitator)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list assignments", "cohort_id", in.CohortID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return assignments, nil
}

func (s *Usecase) getAssignment(ctx context.Context, id int64) (*entity.Assignment, error) {
	a, err := s.repoDB.GetAssignment(ctx, id)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("assignment not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get assignment", "assignment_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return a, nil
}

func (s *Usecase) requireFacilitator(ctx context.Context, cohortID, userID int64) error {
	ok, err := s.repoDB.IsCohortFacilitator(ctx, cohortID, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check facilitator", "cohort_id", cohortID, "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		return goerror.NewBusiness("not a facilitator of this cohort", goerror.CodeForbidden)
	}

	return nil
}

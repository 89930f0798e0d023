package inbound

import (
	"context"

	"github.com/demirti/cverse-lms/internal/course/entity"
	"github.com/demirti/cverse-lms/internal/course/usecase"
)

type uc interface {
	ListMyCohorts(ctx context.Context) ([]entity.Cohort, error)

	CreateAssignment(ctx context.Context, in usecase.CreateAssignmentInput) (*entity.Assignment, error)
	PublishAssignment(ctx context.Context, in usecase.PublishAssignmentInput) error
	ListAssignments(ctx context.Context, in usecase.ListAssignmentsInput) ([]entity.Assignment, error)

	SubmitAssignment(ctx context.Context, in usecase.SubmitAssignmentInput) (*entity.Submission, error)
	MySubmission(ctx context.Context, in usecase.MySubmissionInput) (*entity.Submission, error)
	ListSubmissions(ctx context.Context, in usecase.ListSubmissionsInput) ([]entity.Submission, error)
	GradeSubmission(ctx context.Context, in usecase.GradeSubmissionInput) error
	AttachmentURL(ctx context.Context, in usecase.AttachmentURLInput) (string, error)

	DeadlineSweep(ctx context.Context, in usecase.DeadlineSweepInput) (*usecase.DeadlineSweepOutput, error)
}

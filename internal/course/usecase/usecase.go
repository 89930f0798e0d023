package usecase

import (
	"context"
	"io"
	"time"

	"github.com/demirti/cverse-lms/internal/course/entity"
	"github.com/demirti/cverse-lms/internal/pkg/clock"
	"github.com/demirti/cverse-lms/internal/pkg/config"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/idempotency"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/jwt"
	"github.com/demirti/cverse-lms/internal/pkg/uid"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	ListCohortsByStudent(ctx context.Context, userID int64) ([]entity.Cohort, error)
	IsCohortMember(ctx context.Context, cohortID, userID int64) (bool, error)
	IsCohortFacilitator(ctx context.Context, cohortID, userID int64) (bool, error)

	CreateAssignment(ctx context.Context, data entity.CreateAssignment) error
	GetAssignment(ctx context.Context, id int64) (*entity.Assignment, error)
	ListAssignments(ctx context.Context, cohortID int64, publishedOnly bool) ([]entity.Assignment, error)
	PublishAssignment(ctx context.Context, id int64, at time.Time) (bool, error)
	ListDueAssignments(ctx context.Context, from, to time.Time) ([]entity.Assignment, error)
	MarkAssignmentReminded(ctx context.Context, id int64, at time.Time) (bool, error)

	CreateSubmission(ctx context.Context, data entity.CreateSubmission) error
	GetSubmission(ctx context.Context, id int64) (*entity.Submission, error)
	GetSubmissionByStudent(ctx context.Context, assignmentID, studentID int64) (*entity.Submission, error)
	ListSubmissions(ctx context.Context, assignmentID int64) ([]entity.Submission, error)
	GradeSubmission(ctx context.Context, data entity.GradeSubmission) (bool, error)
}

type repoMessaging interface {
	PublishAssignmentPosted(ctx context.Context, a entity.Assignment, actorID int64) error
	PublishAssignmentDeadline(ctx context.Context, a entity.Assignment) error
	PublishSubmissionGraded(ctx context.Context, sub entity.Submission, assignmentTitle string, maxScore int32) error
}

type repoStorage interface {
	PutAttachment(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	AttachmentURL(ctx context.Context, key string) (string, error)
}

type Usecase struct {
	repoDB     repoDB
	repoMsg    repoMessaging
	repoStore  repoStorage
	cfg        config.Config
	uid        uid.NumberID
	clock      clock.Clocker
	idem       idempotency.Idempotency
	validator  validator.Validator
	ins        instrument.Instrumentation
	cronSecret string

	reminderWindow time.Duration
}

type Dependency struct {
	RepoDB      repoDB
	RepoMsg     repoMessaging
	RepoStorage repoStorage
	Config      config.Config
	UID         uid.NumberID
	Clock       clock.Clocker
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Instrument  instrument.Instrumentation
}

func NewCourse(dep Dependency) *Usecase {
	s := &Usecase{
		repoDB:         dep.RepoDB,
		repoMsg:        dep.RepoMsg,
		repoStore:      dep.RepoStorage,
		cfg:            dep.Config,
		uid:            dep.UID,
		clock:          dep.Clock,
		idem:           dep.Idempotency,
		validator:      dep.Validator,
		ins:            dep.Instrument,
		reminderWindow: 24 * time.Hour,
	}

	if dep.Config != nil {
		s.cronSecret = dep.Config.GetString("modules.course.cron_secret")
		if h := dep.Config.GetHour("modules.course.reminder_window_hours"); h > 0 {
			s.reminderWindow = h
		}
	}

	return s
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("course.usecase").Start(ctx, name)
}

func (s *Usecase) requireAuth(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/demirti/cverse-lms/internal/course/entity"
	"github.com/demirti/cverse-lms/internal/pkg/config"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/idempotency"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/jwt"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
)

type fakeRepo struct {
	listCohortsFn        func(ctx context.Context, userID int64) ([]entity.Cohort, error)
	isMemberFn           func(ctx context.Context, cohortID, userID int64) (bool, error)
	isFacilitatorFn      func(ctx context.Context, cohortID, userID int64) (bool, error)
	createAssignmentFn   func(ctx context.Context, data entity.CreateAssignment) error
	getAssignmentFn      func(ctx context.Context, id int64) (*entity.Assignment, error)
	listAssignmentsFn    func(ctx context.Context, cohortID int64, publishedOnly bool) ([]entity.Assignment, error)
	publishAssignmentFn  func(ctx context.Context, id int64, at time.Time) (bool, error)
	listDueFn            func(ctx context.Context, from, to time.Time) ([]entity.Assignment, error)
	markRemindedFn       func(ctx context.Context, id int64, at time.Time) (bool, error)
	createSubmissionFn   func(ctx context.Context, data entity.CreateSubmission) error
	getSubmissionFn      func(ctx context.Context, id int64) (*entity.Submission, error)
	getSubByStudentFn    func(ctx context.Context, assignmentID, studentID int64) (*entity.Submission, error)
	listSubmissionsFn    func(ctx context.Context, assignmentID int64) ([]entity.Submission, error)
	gradeSubmissionFn    func(ctx context.Context, data entity.GradeSubmission) (bool, error)
}

func (f *fakeRepo) ListCohortsByStudent(ctx context.Context, userID int64) ([]entity.Cohort, error) {
	if f.listCohortsFn != nil {
		return f.listCohortsFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeRepo) IsCohortMember(ctx context.Context, cohortID, userID int64) (bool, error) {
	if f.isMemberFn != nil {
		return f.isMemberFn(ctx, cohortID, userID)
	}
	return true, nil
}

func (f *fakeRepo) IsCohortFacilitator(ctx context.Context, cohortID, userID int64) (bool, error) {
	if f.isFacilitatorFn != nil {
		return f.isFacilitatorFn(ctx, cohortID, userID)
	}
	return true, nil
}

func (f *fakeRepo) CreateAssignment(ctx context.Context, data entity.CreateAssignment) error {
	if f.createAssignmentFn != nil {
		return f.createAssignmentFn(ctx, data)
	}
	return nil
}

func (f *fakeRepo) GetAssignment(ctx context.Context, id int64) (*entity.Assignment, error) {
	if f.getAssignmentFn != nil {
		return f.getAssignmentFn(ctx, id)
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) ListAssignments(ctx context.Context, cohortID int64, publishedOnly bool) ([]entity.Assignment, error) {
	if f.listAssignmentsFn != nil {
		return f.listAssignmentsFn(ctx, cohortID, publishedOnly)
	}
	return nil, nil
}

func (f *fakeRepo) PublishAssignment(ctx context.Context, id int64, at time.Time) (bool, error) {
	if f.publishAssignmentFn != nil {
		return f.publishAssignmentFn(ctx, id, at)
	}
	return true, nil
}

func (f *fakeRepo) ListDueAssignments(ctx context.Context, from, to time.Time) ([]entity.Assignment, error) {
	if f.listDueFn != nil {
		return f.listDueFn(ctx, from, to)
	}
	return nil, nil
}

func (f *fakeRepo) MarkAssignmentReminded(ctx context.Context, id int64, at time.Time) (bool, error) {
	if f.markRemindedFn != nil {
		return f.markRemindedFn(ctx, id, at)
	}
	return true, nil
}

func (f *fakeRepo) CreateSubmission(ctx context.Context, data entity.CreateSubmission) error {
	if f.createSubmissionFn != nil {
		return f.createSubmissionFn(ctx, data)
	}
	return nil
}

func (f *fakeRepo) GetSubmission(ctx context.Context, id int64) (*entity.Submission, error) {
	if f.getSubmissionFn != nil {
		return f.getSubmissionFn(ctx, id)
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) GetSubmissionByStudent(ctx context.Context, assignmentID, studentID int64) (*entity.Submission, error) {
	if f.getSubByStudentFn != nil {
		return f.getSubByStudentFn(ctx, assignmentID, studentID)
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) ListSubmissions(ctx context.Context, assignmentID int64) ([]entity.Submission, error) {
	if f.listSubmissionsFn != nil {
		return f.listSubmissionsFn(ctx, assignmentID)
	}
	return nil, nil
}

func (f *fakeRepo) GradeSubmission(ctx context.Context, data entity.GradeSubmission) (bool, error) {
	if f.gradeSubmissionFn != nil {
		return f.gradeSubmissionFn(ctx, data)
	}
	return true, nil
}

type fakeMessaging struct {
	postedFn   func(ctx context.Context, a entity.Assignment, actorID int64) error
	deadlineFn func(ctx context.Context, a entity.Assignment) error
	gradedFn   func(ctx context.Context, sub entity.Submission, assignmentTitle string, maxScore int32) error

	posted    []entity.Assignment
	deadlines []entity.Assignment
	graded    []entity.Submission
}

func (f *fakeMessaging) PublishAssignmentPosted(ctx context.Context, a entity.Assignment, actorID int64) error {
	f.posted = append(f.posted, a)
	if f.postedFn != nil {
		return f.postedFn(ctx, a, actorID)
	}
	return nil
}

func (f *fakeMessaging) PublishAssignmentDeadline(ctx context.Context, a entity.Assignment) error {
	f.deadlines = append(f.deadlines, a)
	if f.deadlineFn != nil {
		return f.deadlineFn(ctx, a)
	}
	return nil
}

func (f *fakeMessaging) PublishSubmissionGraded(ctx context.Context, sub entity.Submission, assignmentTitle string, maxScore int32) error {
	f.graded = append(f.graded, sub)
	if f.gradedFn != nil {
		return f.gradedFn(ctx, sub, assignmentTitle, maxScore)
	}
	return nil
}

type fakeStorage struct {
	putFn  func(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	urlFn  func(ctx context.Context, key string) (string, error)
	stored []string
}

func (f *fakeStorage) PutAttachment(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	f.stored = append(f.stored, key)
	if f.putFn != nil {
		return f.putFn(ctx, key, r, size, contentType)
	}
	return nil
}

func (f *fakeStorage) AttachmentURL(ctx context.Context, key string) (string, error) {
	if f.urlFn != nil {
		return f.urlFn(ctx, key)
	}
	return "https://storage.test/" + key, nil
}

// fakeIdem runs the callback inline unless a sentinel is configured.
type fakeIdem struct {
	execErr error
	keys    []string
}

func (f *fakeIdem) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdem) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdem) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdem) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.keys = append(f.keys, key)
	if f.execErr != nil {
		return f.execErr
	}
	return fn(ctx)
}

var errBoom = errors.New("boom")

const testConfigYAML = `
modules:
  course:
    cron_secret: "sweep-secret"
    reminder_window_hours: 24
`

func newTestUsecase(t *testing.T, repo *fakeRepo, msg *fakeMessaging, store *fakeStorage, idem *fakeIdem) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("build config: %v", err)
	}

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	return NewCourse(Dependency{
		RepoDB:      repo,
		RepoMsg:     msg,
		RepoStorage: store,
		Config:      cfg,
		UID:         &seqUID{},
		Clock:       fixedClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
		Idempotency: idem,
		Validator:   v,
		Instrument:  instrument.NewNoop(),
	})
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqUID struct{ next int64 }

func (s *seqUID) Generate() int64 {
	s.next++
	return s.next
}

func authCtx(userID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID})
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("error = %v, want *goerror.Error", err)
	}
	if ge.Code() != want {
		t.Errorf("code = %v, want %v", ge.Code(), want)
	}
}

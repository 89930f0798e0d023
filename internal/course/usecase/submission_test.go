package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/demirti/cverse-lms/internal/course/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

func publishedAssignment() *entity.Assignment {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &entity.Assignment{
		ID:          7,
		CohortID:    2,
		Title:       "Lab 1",
		MaxScore:    100,
		DueAt:       time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		PublishedAt: &at,
	}
}

func TestSubmitAssignment(t *testing.T) {
	t.Run("draft assignment looks missing to students", func(t *testing.T) {
		repo := &fakeRepo{
			getAssignmentFn: func(context.Context, int64) (*entity.Assignment, error) {
				return &entity.Assignment{ID: 7, CohortID: 2}, nil
			},
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		_, err := uc.SubmitAssignment(authCtx(3), SubmitAssignmentInput{AssignmentID: 7, Body: "answer"})

		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		repo := &fakeRepo{
			getAssignmentFn: func(context.Context, int64) (*entity.Assignment, error) { return publishedAssignment(), nil },
			isMemberFn:      func(context.Context, int64, int64) (bool, error) { return false, nil },
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		_, err := uc.SubmitAssignment(authCtx(3), SubmitAssignmentInput{AssignmentID: 7, Body: "answer"})

		assertCode(t, err, goerror.CodeForbidden)
	})

	t.Run("duplicate submission is a conflict", func(t *testing.T) {
		repo := &fakeRepo{
			getAssignmentFn:    func(context.Context, int64) (*entity.Assignment, error) { return publishedAssignment(), nil },
			createSubmissionFn: func(context.Context, entity.CreateSubmission) error { return goerror.ErrConflict },
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		_, err := uc.SubmitAssignment(authCtx(3), SubmitAssignmentInput{AssignmentID: 7, Body: "answer"})

		assertCode(t, err, goerror.CodeConflict)
	})

	t.Run("attachment is stored under a derived key", func(t *testing.T) {
		repo := &fakeRepo{
			getAssignmentFn: func(context.Context, int64) (*entity.Assignment, error) { return publishedAssignment(), nil },
		}
		store := &fakeStorage{}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, store, &fakeIdem{})

		sub, err := uc.SubmitAssignment(authCtx(3), SubmitAssignmentInput{
			AssignmentID:          7,
			Body:                  "answer",
			AttachmentName:        "report.pdf",
			AttachmentContentType: "application/pdf",
			AttachmentSize:        64,
			Attachment:            strings.NewReader("pdf bytes"),
		})

		if err != nil {
			t.Fatalf("SubmitAssignment() = %v", err)
		}
		if len(store.stored) != 1 {
			t.Fatalf("stored objects = %d, want 1", len(store.stored))
		}
		if store.stored[0] != "submissions/7/1.pdf" {
			t.Errorf("key = %q, want submissions/7/1.pdf", store.stored[0])
		}
		if sub.AttachmentKey != store.stored[0] {
			t.Errorf("submission key = %q", sub.AttachmentKey)
		}
	})

	t.Run("no attachment skips storage", func(t *testing.T) {
		repo := &fakeRepo{
			getAssignmentFn: func(context.Context, int64) (*entity.Assignment, error) { return publishedAssignment(), nil },
		}
		store := &fakeStorage{}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, store, &fakeIdem{})

		sub, err := uc.SubmitAssignment(authCtx(3), SubmitAssignmentInput{AssignmentID: 7, Body: "answer"})

		if err != nil {
			t.Fatalf("SubmitAssignment() = %v", err)
		}
		if len(store.stored) != 0 {
			t.Errorf("stored objects = %d, want 0", len(store.stored))
		}
		if sub.AttachmentKey != "" {
			t.Errorf("attachment key = %q, want empty", sub.AttachmentKey)
		}
	})
}

func TestGradeSubmission(t *testing.T) {
	submission := func() *entity.Submission {
		return &entity.Submission{ID: 9, AssignmentID: 7, StudentID: 3}
	}

	t.Run("score above maximum", func(t *testing.T) {
		repo := &fakeRepo{
			getSubmissionFn: func(context.Context, int64) (*entity.Submission, error) { return submission(), nil },
			getAssignmentFn: func(context.Context, int64) (*entity.Assignment, error) { return publishedAssignment(), nil },
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		err := uc.GradeSubmission(authCtx(5), GradeSubmissionInput{SubmissionID: 9, Score: 101})

		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("non-facilitator is forbidden", func(t *testing.T) {
		repo := &fakeRepo{
			getSubmissionFn: func(context.Context, int64) (*entity.Submission, error) { return submission(), nil },
			getAssignmentFn: func(context.Context, int64) (*entity.Assignment, error) { return publishedAssignment(), nil },
			isFacilitatorFn: func(context.Context, int64, int64) (bool, error) { return false, nil },
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		err := uc.GradeSubmission(authCtx(5), GradeSubmissionInput{SubmissionID: 9, Score: 90})

		assertCode(t, err, goerror.CodeForbidden)
	})

	t.Run("event failure does not fail the grade", func(t *testing.T) {
		var graded entity.GradeSubmission
		repo := &fakeRepo{
			getSubmissionFn: func(context.Context, int64) (*entity.Submission, error) { return submission(), nil },
			getAssignmentFn: func(context.Context, int64) (*entity.Assignment, error) { return publishedAssignment(), nil },
			gradeSubmissionFn: func(_ context.Context, data entity.GradeSubmission) (bool, error) {
				graded = data
				return true, nil
			},
		}
		msg := &fakeMessaging{
			gradedFn: func(context.Context, entity.Submission, string, int32) error { return errBoom },
		}
		uc := newTestUsecase(t, repo, msg, &fakeStorage{}, &fakeIdem{})

		err := uc.GradeSubmission(authCtx(5), GradeSubmissionInput{SubmissionID: 9, Score: 90, Feedback: "good"})

		if err != nil {
			t.Fatalf("GradeSubmission() = %v, want nil once the grade is durable", err)
		}
		if graded.GradedBy != 5 || graded.Score != 90 {
			t.Errorf("grade = %+v", graded)
		}
		if len(msg.graded) != 1 {
			t.Errorf("publish attempts = %d, want 1", len(msg.graded))
		}
	})
}

func TestAttachmentURL(t *testing.T) {
	sub := &entity.Submission{ID: 9, AssignmentID: 7, StudentID: 3, AttachmentKey: "submissions/7/9.pdf"}

	t.Run("owner can fetch", func(t *testing.T) {
		repo := &fakeRepo{
			getSubmissionFn: func(context.Context, int64) (*entity.Submission, error) { return sub, nil },
			getAssignmentFn: func(context.Context, int64) (*entity.Assignment, error) { return publishedAssignment(), nil },
			isFacilitatorFn: func(context.Context, int64, int64) (bool, error) { return false, nil },
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		url, err := uc.AttachmentURL(authCtx(3), AttachmentURLInput{SubmissionID: 9})

		if err != nil {
			t.Fatalf("AttachmentURL() = %v", err)
		}
		if url != "https://storage.test/submissions/7/9.pdf" {
			t.Errorf("url = %q", url)
		}
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		repo := &fakeRepo{
			getSubmissionFn: func(context.Context, int64) (*entity.Submission, error) { return sub, nil },
			getAssignmentFn: func(context.Context, int64) (*entity.Assignment, error) { return publishedAssignment(), nil },
			isFacilitatorFn: func(context.Context, int64, int64) (bool, error) { return false, nil },
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		_, err := uc.AttachmentURL(authCtx(99), AttachmentURLInput{SubmissionID: 9})

		assertCode(t, err, goerror.CodeForbidden)
	})
}

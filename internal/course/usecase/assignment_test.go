package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/demirti/cverse-lms/internal/course/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

func TestCreateAssignment(t *testing.T) {
	future := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	t.Run("non-facilitator is forbidden", func(t *testing.T) {
		repo := &fakeRepo{
			isFacilitatorFn: func(context.Context, int64, int64) (bool, error) { return false, nil },
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		_, err := uc.CreateAssignment(authCtx(3), CreateAssignmentInput{
			CohortID: 1, Title: "Lab", Description: "desc", DueAt: future, MaxScore: 100,
		})

		assertCode(t, err, goerror.CodeForbidden)
	})

	t.Run("due date in the past", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		_, err := uc.CreateAssignment(authCtx(3), CreateAssignmentInput{
			CohortID: 1, Title: "Lab", Description: "desc",
			DueAt:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			MaxScore: 100,
		})

		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("creates a draft", func(t *testing.T) {
		var created entity.CreateAssignment
		repo := &fakeRepo{
			createAssignmentFn: func(_ context.Context, data entity.CreateAssignment) error {
				created = data
				return nil
			},
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		a, err := uc.CreateAssignment(authCtx(3), CreateAssignmentInput{
			CohortID: 1, Title: "Lab", Description: "desc", DueAt: future, MaxScore: 100,
		})

		if err != nil {
			t.Fatalf("CreateAssignment() = %v", err)
		}
		if created.CreatedBy != 3 {
			t.Errorf("created_by = %d, want 3", created.CreatedBy)
		}
		if a.Published() {
			t.Error("new assignment must start as a draft")
		}
	})
}

func TestPublishAssignment(t *testing.T) {
	draft := func() *entity.Assignment {
		return &entity.Assignment{ID: 1, CohortID: 2, Title: "Lab", DueAt: time.Now().Add(48 * time.Hour)}
	}

	t.Run("already published row is a conflict", func(t *testing.T) {
		at := time.Now()
		repo := &fakeRepo{
			getAssignmentFn: func(context.Context, int64) (*entity.Assignment, error) {
				a := draft()
				a.PublishedAt = &at
				return a, nil
			},
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		err := uc.PublishAssignment(authCtx(3), PublishAssignmentInput{AssignmentID: 1})

		assertCode(t, err, goerror.CodeConflict)
	})

	t.Run("lost publish race is a conflict", func(t *testing.T) {
		repo := &fakeRepo{
			getAssignmentFn: func(context.Context, int64) (*entity.Assignment, error) { return draft(), nil },
			publishAssignmentFn: func(context.Context, int64, time.Time) (bool, error) {
				return false, nil
			},
		}
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, repo, msg, &fakeStorage{}, &fakeIdem{})

		err := uc.PublishAssignment(authCtx(3), PublishAssignmentInput{AssignmentID: 1})

		assertCode(t, err, goerror.CodeConflict)
		if len(msg.posted) != 0 {
			t.Error("event published for a lost race")
		}
	})

	t.Run("event failure does not fail the publish", func(t *testing.T) {
		repo := &fakeRepo{
			getAssignmentFn: func(context.Context, int64) (*entity.Assignment, error) { return draft(), nil },
		}
		msg := &fakeMessaging{
			postedFn: func(context.Context, entity.Assignment, int64) error { return errBoom },
		}
		uc := newTestUsecase(t, repo, msg, &fakeStorage{}, &fakeIdem{})

		if err := uc.PublishAssignment(authCtx(3), PublishAssignmentInput{AssignmentID: 1}); err != nil {
			t.Errorf("PublishAssignment() = %v, want nil once the row is durable", err)
		}
		if len(msg.posted) != 1 {
			t.Errorf("publish attempts = %d, want 1", len(msg.posted))
		}
	})
}

func TestListAssignments(t *testing.T) {
	t.Run("students see published only", func(t *testing.T) {
		repo := &fakeRepo{
			isFacilitatorFn: func(context.Context, int64, int64) (bool, error) { return false, nil },
			listAssignmentsFn: func(_ context.Context, _ int64, publishedOnly bool) ([]entity.Assignment, error) {
				if !publishedOnly {
					t.Error("student listing must exclude drafts")
				}
				return nil, nil
			},
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		if _, err := uc.ListAssignments(authCtx(3), ListAssignmentsInput{CohortID: 1}); err != nil {
			t.Fatalf("ListAssignments() = %v", err)
		}
	})

	t.Run("facilitators see drafts", func(t *testing.T) {
		repo := &fakeRepo{
			listAssignmentsFn: func(_ context.Context, _ int64, publishedOnly bool) ([]entity.Assignment, error) {
				if publishedOnly {
					t.Error("facilitator listing must include drafts")
				}
				return nil, nil
			},
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		if _, err := uc.ListAssignments(authCtx(3), ListAssignmentsInput{CohortID: 1}); err != nil {
			t.Fatalf("ListAssignments() = %v", err)
		}
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		repo := &fakeRepo{
			isFacilitatorFn: func(context.Context, int64, int64) (bool, error) { return false, nil },
			isMemberFn:      func(context.Context, int64, int64) (bool, error) { return false, nil },
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		_, err := uc.ListAssignments(authCtx(3), ListAssignmentsInput{CohortID: 1})

		assertCode(t, err, goerror.CodeForbidden)
	})
}

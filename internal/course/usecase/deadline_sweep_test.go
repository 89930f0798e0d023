package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/demirti/cverse-lms/internal/course/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/idempotency"
)

func TestDeadlineSweep(t *testing.T) {
	t.Run("wrong secret is rejected", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{}, &fakeStorage{}, &fakeIdem{})

		_, err := uc.DeadlineSweep(context.Background(), DeadlineSweepInput{Secret: "wrong"})

		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("concurrent run short-circuits without error", func(t *testing.T) {
		idem := &fakeIdem{execErr: idempotency.ErrAlreadyInProgress}
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{}, &fakeStorage{}, idem)

		out, err := uc.DeadlineSweep(context.Background(), DeadlineSweepInput{Secret: "sweep-secret"})

		if err != nil {
			t.Fatalf("DeadlineSweep() = %v, want nil", err)
		}
		if out.Reminded != 0 {
			t.Errorf("reminded = %d, want 0", out.Reminded)
		}
	})

	t.Run("reminds due assignments once each", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		repo := &fakeRepo{
			listDueFn: func(_ context.Context, from, to time.Time) ([]entity.Assignment, error) {
				if !from.Equal(now) {
					t.Errorf("from = %v, want %v", from, now)
				}
				if !to.Equal(now.Add(24 * time.Hour)) {
					t.Errorf("to = %v, want now+24h", to)
				}
				return []entity.Assignment{
					{ID: 1, Title: "Lab 1"},
					{ID: 2, Title: "Lab 2"},
					{ID: 3, Title: "Lab 3"},
				}, nil
			},
			markRemindedFn: func(_ context.Context, id int64, _ time.Time) (bool, error) {
				// Assignment 2 was claimed by another run already.
				return id != 2, nil
			},
		}
		msg := &fakeMessaging{}
		idem := &fakeIdem{}
		uc := newTestUsecase(t, repo, msg, &fakeStorage{}, idem)

		out, err := uc.DeadlineSweep(context.Background(), DeadlineSweepInput{Secret: "sweep-secret"})

		if err != nil {
			t.Fatalf("DeadlineSweep() = %v", err)
		}
		if out.Reminded != 2 {
			t.Errorf("reminded = %d, want 2", out.Reminded)
		}
		if len(msg.deadlines) != 2 {
			t.Errorf("published events = %d, want 2", len(msg.deadlines))
		}
		for _, a := range msg.deadlines {
			if a.ID == 2 {
				t.Error("claimed assignment 2 was still reminded")
			}
		}
		if len(idem.keys) != 1 || idem.keys[0] != "course:deadline-sweep" {
			t.Errorf("idempotency keys = %v", idem.keys)
		}
	})

	t.Run("publish failure skips the count but continues", func(t *testing.T) {
		repo := &fakeRepo{
			listDueFn: func(context.Context, time.Time, time.Time) ([]entity.Assignment, error) {
				return []entity.Assignment{{ID: 1}, {ID: 2}}, nil
			},
		}
		msg := &fakeMessaging{
			deadlineFn: func(_ context.Context, a entity.Assignment) error {
				if a.ID == 1 {
					return errBoom
				}
				return nil
			},
		}
		uc := newTestUsecase(t, repo, msg, &fakeStorage{}, &fakeIdem{})

		out, err := uc.DeadlineSweep(context.Background(), DeadlineSweepInput{Secret: "sweep-secret"})

		if err != nil {
			t.Fatalf("DeadlineSweep() = %v", err)
		}
		if out.Reminded != 1 {
			t.Errorf("reminded = %d, want 1", out.Reminded)
		}
	})
}

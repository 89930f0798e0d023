package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/demirti/cverse-lms/internal/announcement/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/idempotency"
)

func TestPublishSweep(t *testing.T) {
	t.Run("wrong secret is rejected", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{}, &fakeIdem{})

		_, err := uc.PublishSweep(context.Background(), PublishSweepInput{Secret: "nope"})

		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("concurrent run short-circuits without error", func(t *testing.T) {
		idem := &fakeIdem{execErr: idempotency.ErrAlreadyInProgress}
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{}, idem)

		out, err := uc.PublishSweep(context.Background(), PublishSweepInput{Secret: "sweep-secret"})

		if err != nil {
			t.Fatalf("PublishSweep() = %v, want nil", err)
		}
		if out.Published != 0 {
			t.Errorf("published = %d, want 0", out.Published)
		}
	})

	t.Run("publishes due announcements", func(t *testing.T) {
		repo := &fakeRepo{
			listDueFn: func(_ context.Context, until time.Time) ([]entity.Announcement, error) {
				if !until.Equal(testNow) {
					t.Errorf("until = %v, want %v", until, testNow)
				}
				return []entity.Announcement{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}, nil
			},
		}
		msg := &fakeMessaging{}
		idem := &fakeIdem{}
		uc := newTestUsecase(t, repo, msg, idem)

		out, err := uc.PublishSweep(context.Background(), PublishSweepInput{Secret: "sweep-secret"})

		if err != nil {
			t.Fatalf("PublishSweep() = %v", err)
		}
		if out.Published != 2 {
			t.Errorf("published = %d, want 2", out.Published)
		}
		if len(msg.published) != 2 {
			t.Errorf("events = %d, want 2", len(msg.published))
		}
		if len(idem.keys) != 1 || idem.keys[0] != "announcement:publish-sweep" {
			t.Errorf("idempotency keys = %v", idem.keys)
		}
	})

	t.Run("row claimed elsewhere emits no event", func(t *testing.T) {
		repo := &fakeRepo{
			listDueFn: func(context.Context, time.Time) ([]entity.Announcement, error) {
				return []entity.Announcement{{ID: 1}}, nil
			},
			markPublishedFn: func(context.Context, int64, time.Time) (bool, error) {
				return false, nil
			},
		}
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, repo, msg, &fakeIdem{})

		if _, err := uc.PublishSweep(context.Background(), PublishSweepInput{Secret: "sweep-secret"}); err != nil {
			t.Fatalf("PublishSweep() = %v", err)
		}
		if len(msg.published) != 0 {
			t.Errorf("events = %d, want 0 when the claim was lost", len(msg.published))
		}
	})
}

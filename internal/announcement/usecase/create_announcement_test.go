package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/demirti/cverse-lms/internal/announcement/entity"
	"github.com/demirti/cverse-lms/internal/pkg/config"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/idempotency"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/jwt"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
)

type fakeRepo struct {
	createFn        func(ctx context.Context, data entity.CreateAnnouncement) error
	getFn           func(ctx context.Context, id int64) (*entity.Announcement, error)
	listFn          func(ctx context.Context, limit, offset int32) ([]entity.Announcement, error)
	listVisibleFn   func(ctx context.Context, userID int64, limit, offset int32) ([]entity.Announcement, error)
	markPublishedFn func(ctx context.Context, id int64, at time.Time) (bool, error)
	listDueFn       func(ctx context.Context, until time.Time) ([]entity.Announcement, error)
}

func (f *fakeRepo) CreateAnnouncement(ctx context.Context, data entity.CreateAnnouncement) error {
	if f.createFn != nil {
		return f.createFn(ctx, data)
	}
	return nil
}

func (f *fakeRepo) GetAnnouncement(ctx context.Context, id int64) (*entity.Announcement, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) ListAnnouncements(ctx context.Context, limit, offset int32) ([]entity.Announcement, error) {
	if f.listFn != nil {
		return f.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (f *fakeRepo) ListVisibleAnnouncements(ctx context.Context, userID int64, limit, offset int32) ([]entity.Announcement, error) {
	if f.listVisibleFn != nil {
		return f.listVisibleFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (f *fakeRepo) MarkAnnouncementPublished(ctx context.Context, id int64, at time.Time) (bool, error) {
	if f.markPublishedFn != nil {
		return f.markPublishedFn(ctx, id, at)
	}
	return true, nil
}

func (f *fakeRepo) ListDueAnnouncements(ctx context.Context, until time.Time) ([]entity.Announcement, error) {
	if f.listDueFn != nil {
		return f.listDueFn(ctx, until)
	}
	return nil, nil
}

type fakeMessaging struct {
	publishFn func(ctx context.Context, a entity.Announcement) error
	published []entity.Announcement
}

func (f *fakeMessaging) PublishAnnouncementPublished(ctx context.Context, a entity.Announcement) error {
	f.published = append(f.published, a)
	if f.publishFn != nil {
		return f.publishFn(ctx, a)
	}
	return nil
}

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

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqUID struct{ next int64 }

func (s *seqUID) Generate() int64 {
	s.next++
	return s.next
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestUsecase(t *testing.T, repo *fakeRepo, msg *fakeMessaging, idem *fakeIdem) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  announcement:\n    cron_secret: \"sweep-secret\"\n"))
	if err != nil {
		t.Fatalf("build config: %v", err)
	}

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	return NewAnnouncement(Dependency{
		RepoDB:      repo,
		RepoMsg:     msg,
		Config:      cfg,
		UID:         &seqUID{},
		Clock:       fixedClock{now: testNow},
		Idempotency: idem,
		Validator:   v,
		Instrument:  instrument.NewNoop(),
	})
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

func TestCreateAnnouncement(t *testing.T) {
	t.Run("track scope requires track_id", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{}, &fakeIdem{})

		_, err := uc.CreateAnnouncement(authCtx(1), CreateAnnouncementInput{
			Title: "t", Body: "b", Scope: "track",
		})

		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("cohort scope requires cohort_id", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{}, &fakeIdem{})

		_, err := uc.CreateAnnouncement(authCtx(1), CreateAnnouncementInput{
			Title: "t", Body: "b", Scope: "cohort",
		})

		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("immediate create publishes right away", func(t *testing.T) {
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, &fakeRepo{}, msg, &fakeIdem{})

		a, err := uc.CreateAnnouncement(authCtx(1), CreateAnnouncementInput{
			Title: "t", Body: "b", Scope: "system", SendEmail: true,
		})

		if err != nil {
			t.Fatalf("CreateAnnouncement() = %v", err)
		}
		if a.PublishedAt == nil {
			t.Error("announcement not marked published")
		}
		if len(msg.published) != 1 {
			t.Errorf("events = %d, want 1", len(msg.published))
		}
		if !msg.published[0].SendEmail {
			t.Error("send_email flag dropped from the event")
		}
	})

	t.Run("future publish_at defers to the sweep", func(t *testing.T) {
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, &fakeRepo{}, msg, &fakeIdem{})

		later := testNow.Add(2 * time.Hour)
		a, err := uc.CreateAnnouncement(authCtx(1), CreateAnnouncementInput{
			Title: "t", Body: "b", Scope: "system", PublishAt: &later,
		})

		if err != nil {
			t.Fatalf("CreateAnnouncement() = %v", err)
		}
		if a.PublishedAt != nil {
			t.Error("scheduled announcement must stay unpublished")
		}
		if len(msg.published) != 0 {
			t.Errorf("events = %d, want 0", len(msg.published))
		}
	})

	t.Run("past publish_at publishes immediately", func(t *testing.T) {
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, &fakeRepo{}, msg, &fakeIdem{})

		earlier := testNow.Add(-time.Hour)
		a, err := uc.CreateAnnouncement(authCtx(1), CreateAnnouncementInput{
			Title: "t", Body: "b", Scope: "system", PublishAt: &earlier,
		})

		if err != nil {
			t.Fatalf("CreateAnnouncement() = %v", err)
		}
		if a.PublishedAt == nil {
			t.Error("past-dated announcement should publish on create")
		}
	})

	t.Run("replayed idempotency key is a conflict", func(t *testing.T) {
		idem := &fakeIdem{execErr: idempotency.ErrAlreadyCompleted}
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{}, idem)

		_, err := uc.CreateAnnouncement(authCtx(1), CreateAnnouncementInput{
			IdempotencyKey: "req-1", Title: "t", Body: "b", Scope: "system",
		})

		assertCode(t, err, goerror.CodeConflict)
		if len(idem.keys) != 1 || idem.keys[0] != "announcement:create:req-1" {
			t.Errorf("idempotency keys = %v", idem.keys)
		}
	})

	t.Run("empty key bypasses idempotency", func(t *testing.T) {
		idem := &fakeIdem{execErr: idempotency.ErrAlreadyCompleted}
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{}, idem)

		if _, err := uc.CreateAnnouncement(authCtx(1), CreateAnnouncementInput{
			Title: "t", Body: "b", Scope: "system",
		}); err != nil {
			t.Fatalf("CreateAnnouncement() = %v", err)
		}
		if len(idem.keys) != 0 {
			t.Errorf("idempotency was consulted without a key: %v", idem.keys)
		}
	})

	t.Run("event failure does not fail the create", func(t *testing.T) {
		msg := &fakeMessaging{
			publishFn: func(context.Context, entity.Announcement) error { return errors.New("broker down") },
		}
		uc := newTestUsecase(t, &fakeRepo{}, msg, &fakeIdem{})

		if _, err := uc.CreateAnnouncement(authCtx(1), CreateAnnouncementInput{
			Title: "t", Body: "b", Scope: "system",
		}); err != nil {
			t.Errorf("CreateAnnouncement() = %v, want nil once the row is durable", err)
		}
	})
}

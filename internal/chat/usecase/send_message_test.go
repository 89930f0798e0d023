package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/demirti/cverse-lms/internal/chat/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/jwt"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
)

type fakeRepo struct {
	getRoomFn        func(ctx context.Context, roomID int64) (*entity.Room, error)
	listRoomsFn      func(ctx context.Context, userID int64) ([]entity.RoomListItem, error)
	getMemberFn      func(ctx context.Context, roomID, userID int64) (*entity.Member, error)
	updateSettingsFn func(ctx context.Context, roomID, userID int64, set entity.MemberSettings) (bool, error)
	markRoomReadFn   func(ctx context.Context, roomID, userID int64, at time.Time) (bool, error)
	createMessageFn  func(ctx context.Context, msg entity.CreateMessage) error
	listMessagesFn   func(ctx context.Context, roomID int64, limit, offset int32) ([]entity.Message, error)
	getUserNameFn    func(ctx context.Context, userID int64) (string, error)
}

func (f *fakeRepo) GetRoom(ctx context.Context, roomID int64) (*entity.Room, error) {
	if f.getRoomFn != nil {
		return f.getRoomFn(ctx, roomID)
	}
	return &entity.Room{ID: roomID, Name: "Cohort 12", Kind: entity.RoomKindCohort}, nil
}

func (f *fakeRepo) ListRooms(ctx context.Context, userID int64) ([]entity.RoomListItem, error) {
	if f.listRoomsFn != nil {
		return f.listRoomsFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeRepo) GetMember(ctx context.Context, roomID, userID int64) (*entity.Member, error) {
	if f.getMemberFn != nil {
		return f.getMemberFn(ctx, roomID, userID)
	}
	return &entity.Member{RoomID: roomID, UserID: userID}, nil
}

func (f *fakeRepo) UpdateMemberSettings(ctx context.Context, roomID, userID int64, set entity.MemberSettings) (bool, error) {
	if f.updateSettingsFn != nil {
		return f.updateSettingsFn(ctx, roomID, userID, set)
	}
	return true, nil
}

func (f *fakeRepo) MarkRoomRead(ctx context.Context, roomID, userID int64, at time.Time) (bool, error) {
	if f.markRoomReadFn != nil {
		return f.markRoomReadFn(ctx, roomID, userID, at)
	}
	return true, nil
}

func (f *fakeRepo) CreateMessage(ctx context.Context, msg entity.CreateMessage) error {
	if f.createMessageFn != nil {
		return f.createMessageFn(ctx, msg)
	}
	return nil
}

func (f *fakeRepo) ListMessages(ctx context.Context, roomID int64, limit, offset int32) ([]entity.Message, error) {
	if f.listMessagesFn != nil {
		return f.listMessagesFn(ctx, roomID, limit, offset)
	}
	return nil, nil
}

func (f *fakeRepo) GetUserName(ctx context.Context, userID int64) (string, error) {
	if f.getUserNameFn != nil {
		return f.getUserNameFn(ctx, userID)
	}
	return "Ana", nil
}

type fakeMessaging struct {
	publishFn func(ctx context.Context, msg entity.Message, roomName, preview string) error
	published []entity.Message
}

func (f *fakeMessaging) PublishChatMessage(ctx context.Context, msg entity.Message, roomName, preview string) error {
	f.published = append(f.published, msg)
	if f.publishFn != nil {
		return f.publishFn(ctx, msg, roomName, preview)
	}
	return nil
}

type fakeLimiter struct {
	allowFn func(ctx context.Context, key string, limit int64, window time.Duration) (bool, error)
}

func (f *fakeLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	if f.allowFn != nil {
		return f.allowFn(ctx, key, limit, window)
	}
	return true, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqUID struct{ next int64 }

func (s *seqUID) Generate() int64 {
	s.next++
	return s.next
}

func newTestUsecase(t *testing.T, repo *fakeRepo, msg *fakeMessaging, limiter *fakeLimiter) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	return NewChat(Dependency{
		RepoDB:     repo,
		RepoMsg:    msg,
		UID:        &seqUID{},
		Clock:      fixedClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
		Limiter:    limiter,
		Validator:  v,
		Instrument: instrument.NewNoop(),
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

func TestSendMessage(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{}, &fakeLimiter{})

		_, err := uc.SendMessage(context.Background(), SendMessageInput{RoomID: 1, Body: "hi"})

		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("blank body after trim", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{}, &fakeLimiter{})

		_, err := uc.SendMessage(authCtx(3), SendMessageInput{RoomID: 1, Body: "   \n  "})

		if err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("body over limit", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{}, &fakeLimiter{})

		_, err := uc.SendMessage(authCtx(3), SendMessageInput{RoomID: 1, Body: strings.Repeat("x", maxMessageBodyLength+1)})

		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		repo := &fakeRepo{
			getMemberFn: func(context.Context, int64, int64) (*entity.Member, error) {
				return nil, goerror.ErrNotFound
			},
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeLimiter{})

		_, err := uc.SendMessage(authCtx(3), SendMessageInput{RoomID: 1, Body: "hi"})

		assertCode(t, err, goerror.CodeForbidden)
	})

	t.Run("rate limited", func(t *testing.T) {
		limiter := &fakeLimiter{
			allowFn: func(_ context.Context, key string, limit int64, _ time.Duration) (bool, error) {
				if key != "chat:send:3" {
					t.Errorf("key = %q, want chat:send:3", key)
				}
				if limit != 40 {
					t.Errorf("limit = %d, want default 40", limit)
				}
				return false, nil
			},
		}
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{}, limiter)

		_, err := uc.SendMessage(authCtx(3), SendMessageInput{RoomID: 1, Body: "hi"})

		assertCode(t, err, goerror.CodeTooManyRequest)
	})

	t.Run("room not found", func(t *testing.T) {
		repo := &fakeRepo{
			getRoomFn: func(context.Context, int64) (*entity.Room, error) {
				return nil, goerror.ErrNotFound
			},
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeLimiter{})

		_, err := uc.SendMessage(authCtx(3), SendMessageInput{RoomID: 1, Body: "hi"})

		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("publish failure does not fail the send", func(t *testing.T) {
		msgRepo := &fakeMessaging{
			publishFn: func(context.Context, entity.Message, string, string) error {
				return errors.New("broker down")
			},
		}
		uc := newTestUsecase(t, &fakeRepo{}, msgRepo, &fakeLimiter{})

		got, err := uc.SendMessage(authCtx(3), SendMessageInput{RoomID: 1, Body: "  hello world  "})

		if err != nil {
			t.Fatalf("SendMessage() = %v, want nil once the row is durable", err)
		}
		if got.Body != "hello world" {
			t.Errorf("body = %q, want trimmed", got.Body)
		}
		if got.SenderName != "Ana" {
			t.Errorf("sender name = %q", got.SenderName)
		}
		if len(msgRepo.published) != 1 {
			t.Errorf("publish attempts = %d, want 1", len(msgRepo.published))
		}
	})
}

func TestPreview(t *testing.T) {
	t.Run("flattens whitespace", func(t *testing.T) {
		got := preview("line one\n\nline   two")
		if got != "line one line two" {
			t.Errorf("preview = %q", got)
		}
	})

	t.Run("truncates long bodies with ellipsis", func(t *testing.T) {
		got := preview(strings.Repeat("a", 500))
		if len([]rune(got)) != previewLength+1 {
			t.Errorf("preview length = %d runes, want %d", len([]rune(got)), previewLength+1)
		}
		if !strings.HasSuffix(got, "…") {
			t.Errorf("preview %q missing ellipsis", got)
		}
	})

	t.Run("short body untouched", func(t *testing.T) {
		if got := preview("hi"); got != "hi" {
			t.Errorf("preview = %q", got)
		}
	})
}

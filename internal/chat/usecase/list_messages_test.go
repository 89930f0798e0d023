package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/demirti/cverse-lms/internal/chat/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

func TestListMessages(t *testing.T) {
	t.Run("marks the room read after listing", func(t *testing.T) {
		var markedAt time.Time
		repo := &fakeRepo{
			listMessagesFn: func(_ context.Context, roomID int64, limit, offset int32) ([]entity.Message, error) {
				if limit != 50 {
					t.Errorf("limit = %d, want default 50", limit)
				}
				return []entity.Message{{ID: 1, RoomID: roomID}}, nil
			},
			markRoomReadFn: func(_ context.Context, _, _ int64, at time.Time) (bool, error) {
				markedAt = at
				return true, nil
			},
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeLimiter{})

		msgs, err := uc.ListMessages(authCtx(3), ListMessagesInput{RoomID: 5})

		if err != nil {
			t.Fatalf("ListMessages() = %v", err)
		}
		if len(msgs) != 1 {
			t.Errorf("messages = %d, want 1", len(msgs))
		}
		if markedAt.IsZero() {
			t.Error("room was not marked read")
		}
	})

	t.Run("mark read failure does not fail the listing", func(t *testing.T) {
		repo := &fakeRepo{
			markRoomReadFn: func(context.Context, int64, int64, time.Time) (bool, error) {
				return false, errors.New("deadlock")
			},
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeLimiter{})

		if _, err := uc.ListMessages(authCtx(3), ListMessagesInput{RoomID: 5}); err != nil {
			t.Errorf("ListMessages() = %v, want nil", err)
		}
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		repo := &fakeRepo{
			getMemberFn: func(context.Context, int64, int64) (*entity.Member, error) {
				return nil, goerror.ErrNotFound
			},
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeLimiter{})

		_, err := uc.ListMessages(authCtx(3), ListMessagesInput{RoomID: 5})

		assertCode(t, err, goerror.CodeForbidden)
	})
}

func TestMarkRoomRead(t *testing.T) {
	t.Run("no membership row is forbidden", func(t *testing.T) {
		repo := &fakeRepo{
			markRoomReadFn: func(context.Context, int64, int64, time.Time) (bool, error) {
				return false, nil
			},
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeLimiter{})

		err := uc.MarkRoomRead(authCtx(3), MarkRoomReadInput{RoomID: 5})

		assertCode(t, err, goerror.CodeForbidden)
	})

	t.Run("happy path", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{}, &fakeLimiter{})

		if err := uc.MarkRoomRead(authCtx(3), MarkRoomReadInput{RoomID: 5}); err != nil {
			t.Errorf("MarkRoomRead() = %v", err)
		}
	})
}

func TestUpdateRoomSettings(t *testing.T) {
	t.Run("persists both mute flags", func(t *testing.T) {
		var got entity.MemberSettings
		repo := &fakeRepo{
			updateSettingsFn: func(_ context.Context, _, _ int64, set entity.MemberSettings) (bool, error) {
				got = set
				return true, nil
			},
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeLimiter{})

		out, err := uc.UpdateRoomSettings(authCtx(3), UpdateRoomSettingsInput{RoomID: 5, IsMuted: true, EmailMuted: true})

		if err != nil {
			t.Fatalf("UpdateRoomSettings() = %v", err)
		}
		if !got.IsMuted || !got.EmailMuted {
			t.Errorf("persisted settings = %+v", got)
		}
		if out != got {
			t.Errorf("returned settings = %+v, want %+v", out, got)
		}
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		repo := &fakeRepo{
			updateSettingsFn: func(context.Context, int64, int64, entity.MemberSettings) (bool, error) {
				return false, nil
			},
		}
		uc := newTestUsecase(t, repo, &fakeMessaging{}, &fakeLimiter{})

		_, err := uc.UpdateRoomSettings(authCtx(3), UpdateRoomSettingsInput{RoomID: 5})

		assertCode(t, err, goerror.CodeForbidden)
	})
}

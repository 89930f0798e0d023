package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/demirti/cverse-lms/internal/notification/entity"
)

func TestStreamNotifications(t *testing.T) {
	uc := newTestUsecase(t, &fakeRepo{}, &fakeMail{}, &fakePush{})

	ctx, cancel := context.WithCancel(context.Background())
	ch := uc.StreamNotifications(ctx, 42)

	uc.publishStreamEvent(StreamEvent{ID: 1, UserID: 42, Title: "hello"})
	uc.publishStreamEvent(StreamEvent{ID: 2, UserID: 99, Title: "someone else"})

	select {
	case evt := <-ch:
		if evt.ID != 1 {
			t.Errorf("event ID = %d, want 1", evt.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	select {
	case evt := <-ch:
		t.Errorf("unexpected cross-user event: %+v", evt)
	default:
	}

	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after context cancel")
		}
	}
}

func TestPublishStreamEventDropsWhenBufferFull(t *testing.T) {
	uc := newTestUsecase(t, &fakeRepo{}, &fakeMail{}, &fakePush{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := uc.StreamNotifications(ctx, 7)

	// Channel buffer is 10; an unread subscriber must not block the publisher.
	for i := range 25 {
		uc.publishStreamEvent(StreamEvent{ID: int64(i), UserID: 7})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			if received != 10 {
				t.Errorf("buffered events = %d, want 10", received)
			}
			return
		}
	}
}

func TestBuildStreamEventCopiesInboxItem(t *testing.T) {
	uc := newTestUsecase(t, &fakeRepo{}, &fakeMail{}, &fakePush{})

	evt := uc.buildStreamEvent(entity.CreateInboxItem{
		ID:       3,
		UserID:   8,
		EventKey: entity.EventKeyAssignmentPosted,
		Title:    "New assignment",
		Body:     "body",
		Link:     "/assignments/3",
	})

	if evt.UserID != 8 || evt.EventKey != entity.EventKeyAssignmentPosted {
		t.Errorf("event = %+v", evt)
	}
	if evt.CreatedAt.IsZero() {
		t.Error("created_at not stamped")
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/pkg/mail"
	"github.com/demirti/cverse-lms/internal/pkg/webpush"
)

func fullRecipient(userID int64, email string) entity.Recipient {
	return entity.Recipient{
		UserID:        userID,
		Email:         email,
		FirstName:     "User",
		EmailEnabled:  true,
		InAppEnabled:  true,
		CategoryEmail: true,
		CategoryInApp: true,
		CategoryPush:  true,
	}
}

func TestFanOutExcludesActorAndDeduplicates(t *testing.T) {
	var created []entity.CreateInboxItem
	repo := &fakeRepo{
		createInboxBulkFn: func(_ context.Context, items []entity.CreateInboxItem) error {
			created = append(created, items...)
			return nil
		},
	}
	uc := newTestUsecase(t, repo, &fakeMail{}, &fakePush{})

	uc.fanOut(context.Background(), fanOutInput{
		EventKey:      entity.EventKeyAnnouncement,
		FallbackTitle: "title",
		FallbackBody:  "body",
		Recipients: []entity.Recipient{
			fullRecipient(1, "a@lms.test"),
			fullRecipient(1, "a@lms.test"),
			fullRecipient(2, "b@lms.test"),
			fullRecipient(7, "actor@lms.test"),
		},
		ActorID: 7,
	})

	if len(created) != 2 {
		t.Fatalf("inbox items = %d, want 2", len(created))
	}
	for _, item := range created {
		if item.UserID == 7 {
			t.Error("actor received a notification about their own action")
		}
	}
}

func TestFanOutInboxFailureDoesNotBlockOtherChannels(t *testing.T) {
	repo := &fakeRepo{
		createInboxBulkFn: func(context.Context, []entity.CreateInboxItem) error {
			return errors.New("insert failed")
		},
		listPushSubsFn: func(context.Context, []int64) ([]entity.PushSubscription, error) {
			return []entity.PushSubscription{{ID: 10, UserID: 1, Endpoint: "https://push.test/1"}}, nil
		},
	}
	ml := &fakeMail{}
	push := &fakePush{}
	uc := newTestUsecase(t, repo, ml, push)

	uc.fanOut(context.Background(), fanOutInput{
		EventKey:      entity.EventKeyAnnouncement,
		FallbackTitle: "title",
		FallbackBody:  "body",
		Recipients:    []entity.Recipient{fullRecipient(1, "a@lms.test")},
	})

	if len(push.sent) != 1 {
		t.Errorf("push sends = %d, want 1", len(push.sent))
	}
	if len(ml.sent) != 1 {
		t.Errorf("mail sends = %d, want 1", len(ml.sent))
	}
}

func TestDispatchPushCleansUpGoneSubscriptions(t *testing.T) {
	var deleted []int64
	repo := &fakeRepo{
		listPushSubsFn: func(context.Context, []int64) ([]entity.PushSubscription, error) {
			return []entity.PushSubscription{
				{ID: 10, UserID: 1, Endpoint: "https://push.test/gone"},
				{ID: 11, UserID: 1, Endpoint: "https://push.test/flaky"},
				{ID: 12, UserID: 1, Endpoint: "https://push.test/ok"},
			}, nil
		},
		deletePushSubFn: func(_ context.Context, id int64) error {
			deleted = append(deleted, id)
			return nil
		},
	}
	push := &fakePush{
		sendFn: func(_ context.Context, sub entity.PushSubscription, _ webpush.Payload) error {
			switch sub.ID {
			case 10:
				return webpush.ErrSubscriptionGone
			case 11:
				return errors.New("timeout")
			default:
				return nil
			}
		},
	}
	uc := newTestUsecase(t, repo, &fakeMail{}, push)

	uc.dispatchPush(context.Background(), fanOutInput{EventKey: entity.EventKeyChatMessage},
		entity.ResolvedTemplate{Title: "t", Body: "b", InAppEnabled: true},
		[]entity.Recipient{fullRecipient(1, "a@lms.test")})

	if len(deleted) != 1 || deleted[0] != 10 {
		t.Errorf("deleted subscriptions = %v, want [10]", deleted)
	}
	if len(push.sent) != 3 {
		t.Errorf("push attempts = %d, want 3", len(push.sent))
	}
}

func TestDispatchEmailRetriesOnRateLimit(t *testing.T) {
	ml := &fakeMail{}
	attempts := 0
	ml.sendFn = func(context.Context, mail.Message) error {
		attempts++
		if attempts == 1 {
			return mail.ErrRateLimited
		}
		return nil
	}
	uc := newTestUsecase(t, &fakeRepo{}, ml, &fakePush{})

	uc.dispatchEmail(context.Background(), fanOutInput{EventKey: entity.EventKeyAnnouncement},
		entity.ResolvedTemplate{Title: "t", Body: "b", EmailEnabled: true},
		[]entity.Recipient{fullRecipient(1, "a@lms.test")})

	if attempts != 2 {
		t.Errorf("send attempts = %d, want 2 (one retry)", attempts)
	}
}

func TestDispatchEmailGivesUpAfterBoundedRetries(t *testing.T) {
	ml := &fakeMail{
		sendFn: func(context.Context, mail.Message) error { return mail.ErrRateLimited },
	}
	uc := newTestUsecase(t, &fakeRepo{}, ml, &fakePush{})

	uc.dispatchEmail(context.Background(), fanOutInput{EventKey: entity.EventKeyAnnouncement},
		entity.ResolvedTemplate{Title: "t", Body: "b", EmailEnabled: true},
		[]entity.Recipient{
			fullRecipient(1, "a@lms.test"),
			fullRecipient(2, "b@lms.test"),
		})

	// max_retries is 2 in the test config, so 3 attempts per recipient.
	if len(ml.sent) != 6 {
		t.Errorf("send attempts = %d, want 6", len(ml.sent))
	}
}

func TestDispatchEmailPermanentErrorSkipsRetry(t *testing.T) {
	ml := &fakeMail{
		sendFn: func(context.Context, mail.Message) error { return errors.New("mailbox unavailable") },
	}
	uc := newTestUsecase(t, &fakeRepo{}, ml, &fakePush{})

	uc.dispatchEmail(context.Background(), fanOutInput{EventKey: entity.EventKeyAnnouncement},
		entity.ResolvedTemplate{Title: "t", Body: "b", EmailEnabled: true},
		[]entity.Recipient{fullRecipient(1, "a@lms.test"), fullRecipient(2, "b@lms.test")})

	if len(ml.sent) != 2 {
		t.Errorf("send attempts = %d, want 2 (no retries, both recipients tried)", len(ml.sent))
	}
}

func TestDispatchEmailPersonalizesEachMessage(t *testing.T) {
	ml := &fakeMail{}
	uc := newTestUsecase(t, &fakeRepo{}, ml, &fakePush{})

	r1 := fullRecipient(1, "a@lms.test")
	r1.FirstName = "Ana"
	r2 := fullRecipient(2, "b@lms.test")
	r2.FirstName = "Ben"

	uc.dispatchEmail(context.Background(), fanOutInput{EventKey: entity.EventKeyAnnouncement, Link: "/announcements/5"},
		entity.ResolvedTemplate{Title: "New announcement", Body: "body", EmailEnabled: true},
		[]entity.Recipient{r1, r2})

	if len(ml.sent) != 2 {
		t.Fatalf("send attempts = %d, want 2", len(ml.sent))
	}
	if ml.sent[0].To[0] != "a@lms.test" || ml.sent[1].To[0] != "b@lms.test" {
		t.Errorf("recipients out of order: %v then %v", ml.sent[0].To, ml.sent[1].To)
	}
	if ml.sent[0].Subject != "[CVERSE] New announcement" {
		t.Errorf("subject = %q", ml.sent[0].Subject)
	}
}

func TestAbsoluteLink(t *testing.T) {
	uc := newTestUsecase(t, &fakeRepo{}, &fakeMail{}, &fakePush{})

	if got := uc.absoluteLink("/assignments/3"); got != "https://lms.test/assignments/3" {
		t.Errorf("absoluteLink = %q", got)
	}
	if got := uc.absoluteLink(""); got != "https://lms.test" {
		t.Errorf("absoluteLink empty = %q", got)
	}
}

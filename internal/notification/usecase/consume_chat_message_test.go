package usecase

import (
	"context"
	"testing"

	"github.com/demirti/cverse-lms/internal/notification/entity"
)

func TestConsumeChatMessage(t *testing.T) {
	t.Run("invalid event is dropped without recipient lookup", func(t *testing.T) {
		lookups := 0
		repo := &fakeRepo{
			chatRecipientsFn: func(context.Context, int64, int64) ([]entity.Recipient, error) {
				lookups++
				return nil, nil
			},
		}
		uc := newTestUsecase(t, repo, &fakeMail{}, &fakePush{})

		err := uc.ConsumeChatMessage(context.Background(), ConsumeChatMessageInput{RoomID: 0})

		if err != nil {
			t.Errorf("ConsumeChatMessage() = %v, want nil so the message is not requeued", err)
		}
		if lookups != 0 {
			t.Error("recipients were looked up for an invalid event")
		}
	})

	t.Run("repo failure still returns nil", func(t *testing.T) {
		repo := &fakeRepo{
			chatRecipientsFn: func(context.Context, int64, int64) ([]entity.Recipient, error) {
				return nil, context.DeadlineExceeded
			},
		}
		uc := newTestUsecase(t, repo, &fakeMail{}, &fakePush{})

		err := uc.ConsumeChatMessage(context.Background(), ConsumeChatMessageInput{
			RoomID: 5, RoomName: "Cohort 12", MessageID: 9, SenderID: 3, SenderName: "Ana",
		})

		if err != nil {
			t.Errorf("ConsumeChatMessage() = %v, want nil", err)
		}
	})

	t.Run("fans out to room members with rendered preview", func(t *testing.T) {
		var created []entity.CreateInboxItem
		repo := &fakeRepo{
			chatRecipientsFn: func(_ context.Context, roomID, excludeUserID int64) ([]entity.Recipient, error) {
				if roomID != 5 {
					t.Errorf("roomID = %d, want 5", roomID)
				}
				if excludeUserID != 3 {
					t.Errorf("excludeUserID = %d, want 3", excludeUserID)
				}
				return []entity.Recipient{fullRecipient(1, "a@lms.test")}, nil
			},
			createInboxBulkFn: func(_ context.Context, items []entity.CreateInboxItem) error {
				created = append(created, items...)
				return nil
			},
		}
		uc := newTestUsecase(t, repo, &fakeMail{}, &fakePush{})

		err := uc.ConsumeChatMessage(context.Background(), ConsumeChatMessageInput{
			RoomID: 5, RoomName: "Cohort 12", MessageID: 9, SenderID: 3, SenderName: "Ana", Preview: "hey there",
		})

		if err != nil {
			t.Fatalf("ConsumeChatMessage() = %v", err)
		}
		if len(created) != 1 {
			t.Fatalf("inbox items = %d, want 1", len(created))
		}
		if created[0].Title != "New message from Ana" {
			t.Errorf("title = %q", created[0].Title)
		}
		if created[0].Body != "hey there" {
			t.Errorf("body = %q", created[0].Body)
		}
		if created[0].Link != "/chat/rooms/5" {
			t.Errorf("link = %q", created[0].Link)
		}
		if got := created[0].Data["room_id"]; got != int64(5) {
			t.Errorf("data room_id = %v, want 5", got)
		}
	})
}

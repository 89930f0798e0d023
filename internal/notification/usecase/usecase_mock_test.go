package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/pkg/config"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/mail"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
	"github.com/demirti/cverse-lms/internal/pkg/webpush"
)

type fakeRepo struct {
	getTemplateFn       func(ctx context.Context, key entity.EventKey) (*entity.Template, error)
	listTemplatesFn     func(ctx context.Context) ([]entity.Template, error)
	createTemplateFn    func(ctx context.Context, data entity.UpsertTemplate) error
	updateTemplateFn    func(ctx context.Context, data entity.UpsertTemplate) (bool, error)
	deleteTemplateFn    func(ctx context.Context, id int64) (bool, error)
	chatRecipientsFn    func(ctx context.Context, roomID, excludeUserID int64) ([]entity.Recipient, error)
	cohortRecipientsFn  func(ctx context.Context, cohortID int64, cat entity.Category) ([]entity.Recipient, error)
	trackRecipientsFn   func(ctx context.Context, trackID int64, cat entity.Category) ([]entity.Recipient, error)
	systemRecipientsFn  func(ctx context.Context, cat entity.Category) ([]entity.Recipient, error)
	userRecipientFn     func(ctx context.Context, userID int64, cat entity.Category) (*entity.Recipient, error)
	createInboxBulkFn   func(ctx context.Context, items []entity.CreateInboxItem) error
	listInboxFn         func(ctx context.Context, userID int64, status entity.InboxStatus, limit, offset int32) ([]entity.InboxItem, error)
	countUnreadFn       func(ctx context.Context, userID int64) (int64, error)
	markInboxReadFn     func(ctx context.Context, userID, notificationID int64) (bool, error)
	markAllInboxReadFn  func(ctx context.Context, userID int64) (int64, error)
	deleteInboxFn       func(ctx context.Context, userID, notificationID int64) (bool, error)
	clearInboxFn        func(ctx context.Context, userID int64) (int64, error)
	getPreferencesFn    func(ctx context.Context, userID int64) (*entity.Preferences, error)
	upsertPreferencesFn func(ctx context.Context, prefs entity.Preferences) error
	upsertPushSubFn     func(ctx context.Context, sub entity.PushSubscription) error
	deletePushByEndFn   func(ctx context.Context, userID int64, endpoint string) (bool, error)
	deletePushSubFn     func(ctx context.Context, id int64) error
	listPushSubsFn      func(ctx context.Context, userIDs []int64) ([]entity.PushSubscription, error)
}

func (f *fakeRepo) GetTemplateByEventKey(ctx context.Context, key entity.EventKey) (*entity.Template, error) {
	if f.getTemplateFn != nil {
		return f.getTemplateFn(ctx, key)
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) ListTemplates(ctx context.Context) ([]entity.Template, error) {
	if f.listTemplatesFn != nil {
		return f.listTemplatesFn(ctx)
	}
	return nil, nil
}

func (f *fakeRepo) CreateTemplate(ctx context.Context, data entity.UpsertTemplate) error {
	if f.createTemplateFn != nil {
		return f.createTemplateFn(ctx, data)
	}
	return nil
}

func (f *fakeRepo) UpdateTemplate(ctx context.Context, data entity.UpsertTemplate) (bool, error) {
	if f.updateTemplateFn != nil {
		return f.updateTemplateFn(ctx, data)
	}
	return true, nil
}

func (f *fakeRepo) DeleteTemplate(ctx context.Context, id int64) (bool, error) {
	if f.deleteTemplateFn != nil {
		return f.deleteTemplateFn(ctx, id)
	}
	return true, nil
}

func (f *fakeRepo) ListChatRoomRecipients(ctx context.Context, roomID, excludeUserID int64) ([]entity.Recipient, error) {
	if f.chatRecipientsFn != nil {
		return f.chatRecipientsFn(ctx, roomID, excludeUserID)
	}
	return nil, nil
}

func (f *fakeRepo) ListCohortRecipients(ctx context.Context, cohortID int64, cat entity.Category) ([]entity.Recipient, error) {
	if f.cohortRecipientsFn != nil {
		return f.cohortRecipientsFn(ctx, cohortID, cat)
	}
	return nil, nil
}

func (f *fakeRepo) ListTrackRecipients(ctx context.Context, trackID int64, cat entity.Category) ([]entity.Recipient, error) {
	if f.trackRecipientsFn != nil {
		return f.trackRecipientsFn(ctx, trackID, cat)
	}
	return nil, nil
}

func (f *fakeRepo) ListSystemRecipients(ctx context.Context, cat entity.Category) ([]entity.Recipient, error) {
	if f.systemRecipientsFn != nil {
		return f.systemRecipientsFn(ctx, cat)
	}
	return nil, nil
}

func (f *fakeRepo) GetUserRecipient(ctx context.Context, userID int64, cat entity.Category) (*entity.Recipient, error) {
	if f.userRecipientFn != nil {
		return f.userRecipientFn(ctx, userID, cat)
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) CreateInboxBulk(ctx context.Context, items []entity.CreateInboxItem) error {
	if f.createInboxBulkFn != nil {
		return f.createInboxBulkFn(ctx, items)
	}
	return nil
}

func (f *fakeRepo) ListInbox(ctx context.Context, userID int64, status entity.InboxStatus, limit, offset int32) ([]entity.InboxItem, error) {
	if f.listInboxFn != nil {
		return f.listInboxFn(ctx, userID, status, limit, offset)
	}
	return nil, nil
}

func (f *fakeRepo) CountUnreadInbox(ctx context.Context, userID int64) (int64, error) {
	if f.countUnreadFn != nil {
		return f.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (f *fakeRepo) MarkInboxRead(ctx context.Context, userID, notificationID int64) (bool, error) {
	if f.markInboxReadFn != nil {
		return f.markInboxReadFn(ctx, userID, notificationID)
	}
	return true, nil
}

func (f *fakeRepo) MarkAllInboxRead(ctx context.Context, userID int64) (int64, error) {
	if f.markAllInboxReadFn != nil {
		return f.markAllInboxReadFn(ctx, userID)
	}
	return 0, nil
}

func (f *fakeRepo) DeleteInbox(ctx context.Context, userID, notificationID int64) (bool, error) {
	if f.deleteInboxFn != nil {
		return f.deleteInboxFn(ctx, userID, notificationID)
	}
	return true, nil
}

func (f *fakeRepo) ClearInbox(ctx context.Context, userID int64) (int64, error) {
	if f.clearInboxFn != nil {
		return f.clearInboxFn(ctx, userID)
	}
	return 0, nil
}

func (f *fakeRepo) GetPreferences(ctx context.Context, userID int64) (*entity.Preferences, error) {
	if f.getPreferencesFn != nil {
		return f.getPreferencesFn(ctx, userID)
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) UpsertPreferences(ctx context.Context, prefs entity.Preferences) error {
	if f.upsertPreferencesFn != nil {
		return f.upsertPreferencesFn(ctx, prefs)
	}
	return nil
}

func (f *fakeRepo) UpsertPushSubscription(ctx context.Context, sub entity.PushSubscription) error {
	if f.upsertPushSubFn != nil {
		return f.upsertPushSubFn(ctx, sub)
	}
	return nil
}

func (f *fakeRepo) DeletePushSubscriptionByEndpoint(ctx context.Context, userID int64, endpoint string) (bool, error) {
	if f.deletePushByEndFn != nil {
		return f.deletePushByEndFn(ctx, userID, endpoint)
	}
	return true, nil
}

func (f *fakeRepo) DeletePushSubscription(ctx context.Context, id int64) error {
	if f.deletePushSubFn != nil {
		return f.deletePushSubFn(ctx, id)
	}
	return nil
}

func (f *fakeRepo) ListPushSubscriptionsByUsers(ctx context.Context, userIDs []int64) ([]entity.PushSubscription, error) {
	if f.listPushSubsFn != nil {
		return f.listPushSubsFn(ctx, userIDs)
	}
	return nil, nil
}

type fakeMail struct {
	sendFn func(ctx context.Context, msg mail.Message) error
	sent   []mail.Message
}

func (f *fakeMail) Send(ctx context.Context, msg mail.Message) error {
	f.sent = append(f.sent, msg)
	if f.sendFn != nil {
		return f.sendFn(ctx, msg)
	}
	return nil
}

type fakePush struct {
	sendFn func(ctx context.Context, sub entity.PushSubscription, payload webpush.Payload) error
	sent   []entity.PushSubscription
}

func (f *fakePush) Send(ctx context.Context, sub entity.PushSubscription, payload webpush.Payload) error {
	f.sent = append(f.sent, sub)
	if f.sendFn != nil {
		return f.sendFn(ctx, sub, payload)
	}
	return nil
}

func (f *fakePush) PublicKey() string { return "test-public-key" }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqUID struct{ next int64 }

func (s *seqUID) Generate() int64 {
	s.next++
	return s.next
}

const testConfigYAML = `
app:
  web: "https://lms.test"
mail:
  from: "LMS <no-reply@lms.test>"
modules:
  notification:
    email_send_delay_ms: 1
    email_retry_delay_ms: 1
    email_max_retries: 2
`

func newTestUsecase(t *testing.T, repo *fakeRepo, ml *fakeMail, push *fakePush) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("build config: %v", err)
	}

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	return NewNotification(Dependency{
		RepoDB:     repo,
		RepoMail:   ml,
		RepoPush:   push,
		Config:     cfg,
		UID:        &seqUID{},
		Clock:      fixedClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})
}

package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/pkg/clock"
	"github.com/demirti/cverse-lms/internal/pkg/config"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/mail"
	"github.com/demirti/cverse-lms/internal/pkg/uid"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
	"github.com/demirti/cverse-lms/internal/pkg/webpush"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetTemplateByEventKey(ctx context.Context, key entity.EventKey) (*entity.Template, error)
	ListTemplates(ctx context.Context) ([]entity.Template, error)
	CreateTemplate(ctx context.Context, data entity.UpsertTemplate) error
	UpdateTemplate(ctx context.Context, data entity.UpsertTemplate) (bool, error)
	DeleteTemplate(ctx context.Context, id int64) (bool, error)

	ListChatRoomRecipients(ctx context.Context, roomID, excludeUserID int64) ([]entity.Recipient, error)
	ListCohortRecipients(ctx context.Context, cohortID int64, cat entity.Category) ([]entity.Recipient, error)
	ListTrackRecipients(ctx context.Context, trackID int64, cat entity.Category) ([]entity.Recipient, error)
	ListSystemRecipients(ctx context.Context, cat entity.Category) ([]entity.Recipient, error)
	GetUserRecipient(ctx context.Context, userID int64, cat entity.Category) (*entity.Recipient, error)

	CreateInboxBulk(ctx context.Context, items []entity.CreateInboxItem) error
	ListInbox(ctx context.Context, userID int64, status entity.InboxStatus, limit, offset int32) ([]entity.InboxItem, error)
	CountUnreadInbox(ctx context.Context, userID int64) (int64, error)
	MarkInboxRead(ctx context.Context, userID, notificationID int64) (bool, error)
	MarkAllInboxRead(ctx context.Context, userID int64) (int64, error)
	DeleteInbox(ctx context.Context, userID, notificationID int64) (bool, error)
	ClearInbox(ctx context.Context, userID int64) (int64, error)

	GetPreferences(ctx context.Context, userID int64) (*entity.Preferences, error)
	UpsertPreferences(ctx context.Context, prefs entity.Preferences) error

	UpsertPushSubscription(ctx context.Context, sub entity.PushSubscription) error
	DeletePushSubscriptionByEndpoint(ctx context.Context, userID int64, endpoint string) (bool, error)
	DeletePushSubscription(ctx context.Context, id int64) error
	ListPushSubscriptionsByUsers(ctx context.Context, userIDs []int64) ([]entity.PushSubscription, error)
}

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type repoPush interface {
	Send(ctx context.Context, sub entity.PushSubscription, payload webpush.Payload) error
	PublicKey() string
}

type Usecase struct {
	repoDB    repoDB
	repoMail  repoMail
	repoPush  repoPush
	cfg       config.Config
	uid       uid.NumberID
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation

	webBaseURL      string
	emailFrom       string
	emailSendDelay  time.Duration
	emailRetryDelay time.Duration
	emailMaxRetries uint64

	streamMu sync.RWMutex
	streams  map[int64]map[*subscriber]struct{}
}

type Dependency struct {
	RepoDB     repoDB
	RepoMail   repoMail
	RepoPush   repoPush
	Config     config.Config
	UID        uid.NumberID
	Clock      clock.Clocker
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func NewNotification(dep Dependency) *Usecase {
	s := &Usecase{
		repoDB:          dep.RepoDB,
		repoMail:        dep.RepoMail,
		repoPush:        dep.RepoPush,
		cfg:             dep.Config,
		uid:             dep.UID,
		clock:           dep.Clock,
		validator:       dep.Validator,
		ins:             dep.Instrument,
		emailSendDelay:  500 * time.Millisecond,
		emailRetryDelay: 2 * time.Second,
		emailMaxRetries: 3,
		streams:         make(map[int64]map[*subscriber]struct{}),
	}

	if dep.Config != nil {
		s.webBaseURL = dep.Config.GetString("app.web")
		s.emailFrom = dep.Config.GetString("mail.from")
		if ms := dep.Config.GetInt("modules.notification.email_send_delay_ms"); ms > 0 {
			s.emailSendDelay = time.Duration(ms) * time.Millisecond
		}
		if ms := dep.Config.GetInt("modules.notification.email_retry_delay_ms"); ms > 0 {
			s.emailRetryDelay = time.Duration(ms) * time.Millisecond
		}
		if n := dep.Config.GetInt("modules.notification.email_max_retries"); n > 0 {
			s.emailMaxRetries = uint64(n)
		}
	}

	return s
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

// renderTokens substitutes {{token}} placeholders from values. Tokens without
// a value stay literal so a half-filled template is still readable.
func renderTokens(tpl string, values map[string]string) string {
	if len(values) == 0 {
		return tpl
	}

	out := tpl
	for k, v := range values {
		out = strings.ReplaceAll(out, "{{"+k+"}}", v)
	}

	return out
}

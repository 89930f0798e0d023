package usecase

import (
	"context"
	"time"

	"github.com/demirti/cverse-lms/internal/announcement/entity"
	"github.com/demirti/cverse-lms/internal/pkg/clock"
	"github.com/demirti/cverse-lms/internal/pkg/config"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/idempotency"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/jwt"
	"github.com/demirti/cverse-lms/internal/pkg/uid"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreateAnnouncement(ctx context.Context, data entity.CreateAnnouncement) error
	GetAnnouncement(ctx context.Context, id int64) (*entity.Announcement, error)
	ListAnnouncements(ctx context.Context, limit, offset int32) ([]entity.Announcement, error)
	ListVisibleAnnouncements(ctx context.Context, userID int64, limit, offset int32) ([]entity.Announcement, error)
	MarkAnnouncementPublished(ctx context.Context, id int64, at time.Time) (bool, error)
	ListDueAnnouncements(ctx context.Context, until time.Time) ([]entity.Announcement, error)
}

type repoMessaging interface {
	PublishAnnouncementPublished(ctx context.Context, a entity.Announcement) error
}

type Usecase struct {
	repoDB     repoDB
	repoMsg    repoMessaging
	cfg        config.Config
	uid        uid.NumberID
	clock      clock.Clocker
	idem       idempotency.Idempotency
	validator  validator.Validator
	ins        instrument.Instrumentation
	cronSecret string
}

type Dependency struct {
	RepoDB      repoDB
	RepoMsg     repoMessaging
	Config      config.Config
	UID         uid.NumberID
	Clock       clock.Clocker
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Instrument  instrument.Instrumentation
}

func NewAnnouncement(dep Dependency) *Usecase {
	s := &Usecase{
		repoDB:    dep.RepoDB,
		repoMsg:   dep.RepoMsg,
		cfg:       dep.Config,
		uid:       dep.UID,
		clock:     dep.Clock,
		idem:      dep.Idempotency,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}

	if dep.Config != nil {
		s.cronSecret = dep.Config.GetString("modules.announcement.cron_secret")
	}

	return s
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("announcement.usecase").Start(ctx, name)
}

func (s *Usecase) requireAuth(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

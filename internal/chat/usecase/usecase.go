package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/demirti/cverse-lms/internal/chat/entity"
	"github.com/demirti/cverse-lms/internal/pkg/clock"
	"github.com/demirti/cverse-lms/internal/pkg/config"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/jwt"
	"github.com/demirti/cverse-lms/internal/pkg/ratelimit"
	"github.com/demirti/cverse-lms/internal/pkg/uid"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const maxMessageBodyLength = 2000

type repoDB interface {
	GetRoom(ctx context.Context, roomID int64) (*entity.Room, error)
	ListRooms(ctx context.Context, userID int64) ([]entity.RoomListItem, error)
	GetMember(ctx context.Context, roomID, userID int64) (*entity.Member, error)
	UpdateMemberSettings(ctx context.Context, roomID, userID int64, set entity.MemberSettings) (bool, error)
	MarkRoomRead(ctx context.Context, roomID, userID int64, at time.Time) (bool, error)

	CreateMessage(ctx context.Context, msg entity.CreateMessage) error
	ListMessages(ctx context.Context, roomID int64, limit, offset int32) ([]entity.Message, error)
	GetUserName(ctx context.Context, userID int64) (string, error)
}

type repoMessaging interface {
	PublishChatMessage(ctx context.Context, msg entity.Message, roomName, preview string) error
}

type Usecase struct {
	repoDB    repoDB
	repoMsg   repoMessaging
	cfg       config.Config
	uid       uid.NumberID
	clock     clock.Clocker
	limiter   ratelimit.Limiter
	validator validator.Validator
	ins       instrument.Instrumentation

	messageRateLimit  int64
	messageRateWindow time.Duration
}

type Dependency struct {
	RepoDB     repoDB
	RepoMsg    repoMessaging
	Config     config.Config
	UID        uid.NumberID
	Clock      clock.Clocker
	Limiter    ratelimit.Limiter
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func NewChat(dep Dependency) *Usecase {
	s := &Usecase{
		repoDB:            dep.RepoDB,
		repoMsg:           dep.RepoMsg,
		cfg:               dep.Config,
		uid:               dep.UID,
		clock:             dep.Clock,
		limiter:           dep.Limiter,
		validator:         dep.Validator,
		ins:               dep.Instrument,
		messageRateLimit:  40,
		messageRateWindow: time.Minute,
	}

	if dep.Config != nil {
		if n := dep.Config.GetInt("modules.chat.message_rate_limit"); n > 0 {
			s.messageRateLimit = int64(n)
		}
		if w := dep.Config.GetSecond("modules.chat.message_rate_window_seconds"); w > 0 {
			s.messageRateWindow = w
		}
	}

	return s
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("chat.usecase").Start(ctx, name)
}

func (s *Usecase) requireAuth(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

// requireMember loads the caller's membership row. A missing row means the
// caller must not see the room at all, so it surfaces as forbidden.
func (s *Usecase) requireMember(ctx context.Context, roomID, userID int64) (*entity.Member, error) {
	member, err := s.repoDB.GetMember(ctx, roomID, userID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("not a member of this room", goerror.CodeForbidden)
		}

		return nil, goerror.NewServer(err)
	}

	return member, nil
}

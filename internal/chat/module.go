package chat

import (
	"github.com/demirti/cverse-lms/internal/chat/inbound"
	"github.com/demirti/cverse-lms/internal/chat/outbound/db"
	"github.com/demirti/cverse-lms/internal/chat/outbound/mq"
	"github.com/demirti/cverse-lms/internal/chat/usecase"
	"github.com/demirti/cverse-lms/internal/pkg/clock"
	"github.com/demirti/cverse-lms/internal/pkg/config"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/messaging"
	"github.com/demirti/cverse-lms/internal/pkg/ratelimit"
	"github.com/demirti/cverse-lms/internal/pkg/router"
	"github.com/demirti/cverse-lms/internal/pkg/uid"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn     *pgxpool.Pool
	Messaging  messaging.Messaging
	Config     config.Config
	Instrument instrument.Instrumentation
	UID        uid.NumberID
	Clock      clock.Clocker
	Limiter    ratelimit.Limiter
	Validator  validator.Validator
	Router     *router.Router
}

func New(dep Dependency) error {
	dbChat := db.NewDB(dep.DBConn, dep.Instrument)
	msgChat := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.NewChat(usecase.Dependency{
		RepoDB:     dbChat,
		RepoMsg:    msgChat,
		Config:     dep.Config,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Limiter:    dep.Limiter,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

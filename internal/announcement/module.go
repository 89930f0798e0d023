package announcement

import (
	"github.com/demirti/cverse-lms/internal/announcement/inbound"
	"github.com/demirti/cverse-lms/internal/announcement/outbound/db"
	"github.com/demirti/cverse-lms/internal/announcement/outbound/mq"
	"github.com/demirti/cverse-lms/internal/announcement/usecase"
	"github.com/demirti/cverse-lms/internal/pkg/clock"
	"github.com/demirti/cverse-lms/internal/pkg/config"
	"github.com/demirti/cverse-lms/internal/pkg/idempotency"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/messaging"
	"github.com/demirti/cverse-lms/internal/pkg/router"
	"github.com/demirti/cverse-lms/internal/pkg/uid"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn      *pgxpool.Pool
	Messaging   messaging.Messaging
	Config      config.Config
	Instrument  instrument.Instrumentation
	UID         uid.NumberID
	Clock       clock.Clocker
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Router      *router.Router
}

func New(dep Dependency) error {
	dbAnn := db.NewDB(dep.DBConn, dep.Instrument)
	msgAnn := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.NewAnnouncement(usecase.Dependency{
		RepoDB:      dbAnn,
		RepoMsg:     msgAnn,
		Config:      dep.Config,
		UID:         dep.UID,
		Clock:       dep.Clock,
		Idempotency: dep.Idempotency,
		Validator:   dep.Validator,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

package course

import (
	"github.com/demirti/cverse-lms/internal/course/inbound"
	"github.com/demirti/cverse-lms/internal/course/outbound/db"
	"github.com/demirti/cverse-lms/internal/course/outbound/mq"
	"github.com/demirti/cverse-lms/internal/course/outbound/objectstore"
	"github.com/demirti/cverse-lms/internal/course/usecase"
	"github.com/demirti/cverse-lms/internal/pkg/clock"
	"github.com/demirti/cverse-lms/internal/pkg/config"
	"github.com/demirti/cverse-lms/internal/pkg/idempotency"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/messaging"
	"github.com/demirti/cverse-lms/internal/pkg/router"
	"github.com/demirti/cverse-lms/internal/pkg/storage"
	"github.com/demirti/cverse-lms/internal/pkg/uid"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn      *pgxpool.Pool
	Messaging   messaging.Messaging
	Storage     storage.Storage
	Config      config.Config
	Instrument  instrument.Instrumentation
	UID         uid.NumberID
	Clock       clock.Clocker
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Router      *router.Router
}

func New(dep Dependency) error {
	dbCourse := db.NewDB(dep.DBConn, dep.Instrument)
	msgCourse := mq.NewMessaging(dep.Messaging, dep.Instrument)
	store := objectstore.New(
		dep.Storage,
		dep.Instrument,
		dep.Config.GetString("storage.bucket"),
		dep.Config.GetMinute("storage.presign_expiry_minutes"),
	)

	uc := usecase.NewCourse(usecase.Dependency{
		RepoDB:      dbCourse,
		RepoMsg:     msgCourse,
		RepoStorage: store,
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

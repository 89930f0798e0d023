package account

import (
	"github.com/casbin/casbin/v3"
	"github.com/demirti/cverse-lms/internal/account/inbound"
	"github.com/demirti/cverse-lms/internal/account/outbound/db"
	"github.com/demirti/cverse-lms/internal/account/usecase"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/router"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn     *pgxpool.Pool
	Enforcer   *casbin.Enforcer
	Instrument instrument.Instrumentation
	Validator  validator.Validator
	Router     *router.Router
}

func New(dep Dependency) error {
	dbAccount := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.NewAccount(usecase.Dependency{
		RepoDB:     dbAccount,
		Enforcer:   dep.Enforcer,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

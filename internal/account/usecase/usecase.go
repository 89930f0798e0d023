package usecase

import (
	"context"
	"log/slog"

	"github.com/casbin/casbin/v3"
	"github.com/demirti/cverse-lms/internal/account/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/jwt"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	ListUsers(ctx context.Context, filter entity.UserListFilter) ([]entity.User, int64, error)
	UpdateUserRole(ctx context.Context, id int64, role entity.Role) (bool, error)
}

type Usecase struct {
	repoDB    repoDB
	enforcer  *casbin.Enforcer
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	Enforcer   *casbin.Enforcer
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func NewAccount(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		enforcer:  dep.Enforcer,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}

func (s *Usecase) requireAuth(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	ok, err := s.enforcer.Enforce(clm.Subject, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}

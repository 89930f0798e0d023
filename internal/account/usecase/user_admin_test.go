package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/demirti/cverse-lms/internal/account/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/jwt"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
)

const testModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

type fakeRepo struct {
	getUserFn    func(ctx context.Context, id int64) (*entity.User, error)
	listUsersFn  func(ctx context.Context, filter entity.UserListFilter) ([]entity.User, int64, error)
	updateRoleFn func(ctx context.Context, id int64, role entity.Role) (bool, error)
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	if f.getUserFn != nil {
		return f.getUserFn(ctx, id)
	}
	return &entity.User{ID: id, Email: "a@lms.test", Role: entity.RoleStudent}, nil
}

func (f *fakeRepo) ListUsers(ctx context.Context, filter entity.UserListFilter) ([]entity.User, int64, error) {
	if f.listUsersFn != nil {
		return f.listUsersFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakeRepo) UpdateUserRole(ctx context.Context, id int64, role entity.Role) (bool, error) {
	if f.updateRoleFn != nil {
		return f.updateRoleFn(ctx, id, role)
	}
	return true, nil
}

func newEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	m, err := model.NewModelFromString(testModel)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("build enforcer: %v", err)
	}

	if _, err := e.AddPolicy("role:admin", "account:mgmt:users", "*"); err != nil {
		t.Fatalf("add policy: %v", err)
	}
	if _, err := e.AddGroupingPolicy("1", "role:admin"); err != nil {
		t.Fatalf("add grouping: %v", err)
	}

	return e
}

func newTestUsecase(t *testing.T, repo *fakeRepo, e *casbin.Enforcer) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	return NewAccount(Dependency{
		RepoDB:     repo,
		Enforcer:   e,
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})
}

func authCtx(userID int64, sub string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: sub},
		UserID:           userID,
	})
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("error = %v, want *goerror.Error", err)
	}
	if ge.Code() != want {
		t.Errorf("code = %v, want %v", ge.Code(), want)
	}
}

func TestListUsers(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeRepo{}, newEnforcer(t))

		_, err := uc.ListUsers(context.Background(), ListUsersInput{})

		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeRepo{}, newEnforcer(t))

		_, err := uc.ListUsers(authCtx(2, "2"), ListUsersInput{})

		assertCode(t, err, goerror.CodeForbidden)
	})

	t.Run("defaults the page size", func(t *testing.T) {
		repo := &fakeRepo{
			listUsersFn: func(_ context.Context, filter entity.UserListFilter) ([]entity.User, int64, error) {
				if filter.Limit != 20 {
					t.Errorf("limit = %d, want default 20", filter.Limit)
				}
				return []entity.User{{ID: 5}}, 1, nil
			},
		}
		uc := newTestUsecase(t, repo, newEnforcer(t))

		out, err := uc.ListUsers(authCtx(1, "1"), ListUsersInput{})

		if err != nil {
			t.Fatalf("ListUsers() = %v", err)
		}
		if out.Total != 1 || len(out.Users) != 1 {
			t.Errorf("output = %+v", out)
		}
	})
}

func TestUpdateUserRole(t *testing.T) {
	t.Run("cannot change own role", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeRepo{}, newEnforcer(t))

		err := uc.UpdateUserRole(authCtx(1, "1"), UpdateUserRoleInput{UserID: 1, Role: "admin"})

		assertCode(t, err, goerror.CodeForbidden)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &fakeRepo{
			updateRoleFn: func(context.Context, int64, entity.Role) (bool, error) { return false, nil },
		}
		uc := newTestUsecase(t, repo, newEnforcer(t))

		err := uc.UpdateUserRole(authCtx(1, "1"), UpdateUserRoleInput{UserID: 9, Role: "facilitator"})

		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("syncs the casbin role grouping", func(t *testing.T) {
		e := newEnforcer(t)
		if _, err := e.AddGroupingPolicy("9", "role:student"); err != nil {
			t.Fatalf("seed grouping: %v", err)
		}
		uc := newTestUsecase(t, &fakeRepo{}, e)

		if err := uc.UpdateUserRole(authCtx(1, "1"), UpdateUserRoleInput{UserID: 9, Role: "facilitator"}); err != nil {
			t.Fatalf("UpdateUserRole() = %v", err)
		}

		roles, err := e.GetRolesForUser("9")
		if err != nil {
			t.Fatalf("get roles: %v", err)
		}
		if len(roles) != 1 || roles[0] != "role:facilitator" {
			t.Errorf("roles = %v, want [role:facilitator]", roles)
		}
	})
}

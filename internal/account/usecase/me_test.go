package usecase

import (
	"context"
	"testing"

	"github.com/demirti/cverse-lms/internal/account/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

func TestMe(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeRepo{}, newEnforcer(t))

		_, err := uc.Me(context.Background())

		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("missing account maps to unauthorized", func(t *testing.T) {
		repo := &fakeRepo{
			getUserFn: func(context.Context, int64) (*entity.User, error) {
				return nil, goerror.ErrNotFound
			},
		}
		uc := newTestUsecase(t, repo, newEnforcer(t))

		_, err := uc.Me(authCtx(7, "7"))

		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("returns the current account", func(t *testing.T) {
		repo := &fakeRepo{
			getUserFn: func(_ context.Context, id int64) (*entity.User, error) {
				return &entity.User{ID: id, Email: "ana@lms.test", Role: entity.RoleFacilitator}, nil
			},
		}
		uc := newTestUsecase(t, repo, newEnforcer(t))

		user, err := uc.Me(authCtx(7, "7"))

		if err != nil {
			t.Fatalf("Me() = %v", err)
		}
		if user.ID != 7 || user.Email != "ana@lms.test" || user.Role != entity.RoleFacilitator {
			t.Errorf("user = %+v", user)
		}
	})
}

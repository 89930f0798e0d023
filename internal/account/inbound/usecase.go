package inbound

import (
	"context"

	"github.com/demirti/cverse-lms/internal/account/entity"
	"github.com/demirti/cverse-lms/internal/account/usecase"
)

type uc interface {
	Me(ctx context.Context) (*entity.User, error)
	ListUsers(ctx context.Context, in usecase.ListUsersInput) (*usecase.ListUsersOutput, error)
	UpdateUserRole(ctx context.Context, in usecase.UpdateUserRoleInput) error
}

package usecase

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/demirti/cverse-lms/internal/account/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/shared/constant"
)

type ListUsersInput struct {
	Search string `validate:"omitempty,max=100"`
	Role   string `validate:"omitempty,oneof=student alumni facilitator admin"`
	Limit  int32  `validate:"omitempty,gte=1,lte=100"`
	Offset int32  `validate:"omitempty,gte=0"`
}

type ListUsersOutput struct {
	Total int64
	Users []entity.User
}

func (s *Usecase) ListUsers(ctx context.Context, in ListUsersInput) (*ListUsersOutput, error) {
	ctx, span := s.startSpan(ctx, "ListUsers")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermAccountMgmtUsers, constant.PermActRead); err != nil {
		return nil, err
	}

	if in.Limit == 0 {
		in.Limit = 20
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	users, total, err := s.repoDB.ListUsers(ctx, entity.UserListFilter{
		Search: in.Search,
		Role:   entity.RoleFromString(in.Role),
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list users", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListUsersOutput{Total: total, Users: users}, nil
}

type UpdateUserRoleInput struct {
	UserID int64  `validate:"required,gt=0"`
	Role   string `validate:"required,oneof=student alumni facilitator admin"`
}

// UpdateUserRole changes a user's role and syncs the casbin role grouping so
// route-level authorization follows the stored role.
func (s *Usecase) UpdateUserRole(ctx context.Context, in UpdateUserRoleInput) error {
	ctx, span := s.startSpan(ctx, "UpdateUserRole")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermAccountMgmtUsers, constant.PermActUpdate)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if clm.UserID == in.UserID {
		return goerror.NewBusiness("cannot change own role", goerror.CodeForbidden)
	}

	role := entity.RoleFromString(in.Role)
	updated, err := s.repoDB.UpdateUserRole(ctx, in.UserID, role)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update user role", "user_id", in.UserID, "error", err)
		return goerror.NewServer(err)
	}
	if !updated {
		return goerror.NewBusiness("user not found", goerror.CodeNotFound)
	}

	sub := strconv.FormatInt(in.UserID, 10)
	if _, err := s.enforcer.DeleteRolesForUser(sub); err != nil {
		slog.ErrorContext(ctx, "failed to clear casbin roles", "user_id", in.UserID, "error", err)
		return goerror.NewServer(err)
	}
	if _, err := s.enforcer.AddRoleForUser(sub, "role:"+role.String()); err != nil {
		slog.ErrorContext(ctx, "failed to add casbin role", "user_id", in.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

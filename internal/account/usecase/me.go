package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/demirti/cverse-lms/internal/account/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

func (s *Usecase) Me(ctx context.Context) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "Me")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "user account not found", "user_id", clm.UserID)
			return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
		}

		slog.ErrorContext(ctx, "failed to repo get user", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}

package usecase

import (
	"context"
	"log/slog"

	"github.com/demirti/cverse-lms/internal/course/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

func (s *Usecase) ListMyCohorts(ctx context.Context) ([]entity.Cohort, error) {
	ctx, span := s.startSpan(ctx, "ListMyCohorts")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	cohorts, err := s.repoDB.ListCohortsByStudent(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list cohorts", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return cohorts, nil
}

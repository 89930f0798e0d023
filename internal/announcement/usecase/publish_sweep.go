package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/idempotency"
)

type PublishSweepInput struct {
	Secret string
}

type PublishSweepOutput struct {
	Published int
}

// PublishSweep publishes announcements whose scheduled publish time has
// arrived. Driven by the external cron, locked against overlapping ticks.
func (s *Usecase) PublishSweep(ctx context.Context, in PublishSweepInput) (*PublishSweepOutput, error) {
	ctx, span := s.startSpan(ctx, "PublishSweep")
	defer span.End()

	if s.cronSecret == "" || subtle.ConstantTimeCompare([]byte(in.Secret), []byte(s.cronSecret)) != 1 {
		return nil, goerror.NewBusiness("invalid cron secret", goerror.CodeUnauthorized)
	}

	out := &PublishSweepOutput{}
	err := s.idem.Exec(ctx, "announcement:publish-sweep", func(ctx context.Context) error {
		now := s.clock.Now()

		due, err := s.repoDB.ListDueAnnouncements(ctx, now)
		if err != nil {
			return err
		}

		for _, a := range due {
			if err := s.publishAnnouncement(ctx, &a, now); err != nil {
				slog.ErrorContext(ctx, "failed to publish due announcement", "announcement_id", a.ID, "error", err)
				continue
			}
			out.Published++
		}

		return nil
	}, idempotency.WithLockDuration(5*time.Minute), idempotency.WithStateTTL(time.Minute))

	if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
		slog.InfoContext(ctx, "announcement sweep skipped, another run is active or just finished")
		return out, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to run announcement sweep", "error", err)
		return nil, goerror.NewServer(err)
	}

	return out, nil
}

package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/idempotency"
)

type DeadlineSweepInput struct {
	Secret string
}

type DeadlineSweepOutput struct {
	Reminded int
}

// DeadlineSweep finds published assignments falling due within the reminder
// window and sends one deadline reminder each. The caller is an external cron
// hitting the endpoint with a shared secret. A redis lock keeps overlapping
// cron ticks from double-sending, and the per-assignment reminder mark keeps
// later ticks from re-reminding.
func (s *Usecase) DeadlineSweep(ctx context.Context, in DeadlineSweepInput) (*DeadlineSweepOutput, error) {
	ctx, span := s.startSpan(ctx, "DeadlineSweep")
	defer span.End()

	if s.cronSecret == "" || subtle.ConstantTimeCompare([]byte(in.Secret), []byte(s.cronSecret)) != 1 {
		return nil, goerror.NewBusiness("invalid cron secret", goerror.CodeUnauthorized)
	}

	out := &DeadlineSweepOutput{}
	err := s.idem.Exec(ctx, "course:deadline-sweep", func(ctx context.Context) error {
		n, err := s.sweepDeadlines(ctx)
		out.Reminded = n
		return err
	}, idempotency.WithLockDuration(5*time.Minute), idempotency.WithStateTTL(time.Minute))

	if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
		slog.InfoContext(ctx, "deadline sweep skipped, another run is active or just finished")
		return out, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to run deadline sweep", "error", err)
		return nil, goerror.NewServer(err)
	}

	return out, nil
}

func (s *Usecase) sweepDeadlines(ctx context.Context) (int, error) {
	now := s.clock.Now()

	due, err := s.repoDB.ListDueAssignments(ctx, now, now.Add(s.reminderWindow))
	if err != nil {
		return 0, fmt.Errorf("list due assignments: %w", err)
	}

	reminded := 0
	for _, a := range due {
		marked, err := s.repoDB.MarkAssignmentReminded(ctx, a.ID, now)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo mark assignment reminded", "assignment_id", a.ID, "error", err)
			continue
		}
		if !marked {
			continue
		}

		if err := s.repoMsg.PublishAssignmentDeadline(ctx, a); err != nil {
			slog.ErrorContext(ctx, "failed to publish assignment deadline event", "assignment_id", a.ID, "error", err)
			continue
		}
		reminded++
	}

	return reminded, nil
}

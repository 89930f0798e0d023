package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/demirti/cverse-lms/internal/announcement/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/idempotency"
)

type CreateAnnouncementInput struct {
	IdempotencyKey string `validate:"omitempty,max=128"`

	Title     string `validate:"required,max=200"`
	Body      string `validate:"required"`
	Scope     string `validate:"required,oneof=system track cohort"`
	TrackID   int64  `validate:"omitempty,gt=0"`
	CohortID  int64  `validate:"omitempty,gt=0"`
	SendEmail bool
	PublishAt *time.Time
}

// CreateAnnouncement stores an announcement and publishes it right away
// unless publish_at points to the future, in which case the cron sweep picks
// it up later. An Idempotency-Key header makes retried posts a no-op.
func (s *Usecase) CreateAnnouncement(ctx context.Context, in CreateAnnouncementInput) (*entity.Announcement, error) {
	ctx, span := s.startSpan(ctx, "CreateAnnouncement")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	scope := entity.ScopeFromString(in.Scope)
	if scope == entity.ScopeTrack && in.TrackID == 0 {
		return nil, goerror.NewBusiness("track_id is required for track scope", goerror.CodeInvalidInput)
	}
	if scope == entity.ScopeCohort && in.CohortID == 0 {
		return nil, goerror.NewBusiness("cohort_id is required for cohort scope", goerror.CodeInvalidInput)
	}

	var out *entity.Announcement
	create := func(ctx context.Context) error {
		a, err := s.createAndMaybePublish(ctx, in, scope, clm.UserID)
		out = a
		return err
	}

	if in.IdempotencyKey == "" {
		if err := create(ctx); err != nil {
			return nil, err
		}
		return out, nil
	}

	err = s.idem.Exec(ctx, "announcement:create:"+in.IdempotencyKey, create,
		idempotency.WithStateTTL(24*time.Hour))
	if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
		return nil, goerror.NewBusiness("announcement already created", goerror.CodeConflict)
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Usecase) createAndMaybePublish(ctx context.Context, in CreateAnnouncementInput, scope entity.Scope, creatorID int64) (*entity.Announcement, error) {
	now := s.clock.Now()

	data := entity.CreateAnnouncement{
		ID:        s.uid.Generate(),
		Title:     in.Title,
		Body:      in.Body,
		Scope:     scope,
		SendEmail: in.SendEmail,
		PublishAt: in.PublishAt,
		CreatedBy: creatorID,
	}
	if scope == entity.ScopeTrack {
		data.TrackID = &in.TrackID
	}
	if scope == entity.ScopeCohort {
		data.CohortID = &in.CohortID
	}

	if err := s.repoDB.CreateAnnouncement(ctx, data); err != nil {
		slog.ErrorContext(ctx, "failed to repo create announcement", "error", err)
		return nil, goerror.NewServer(err)
	}

	a := &entity.Announcement{
		ID:        data.ID,
		Title:     data.Title,
		Body:      data.Body,
		Scope:     data.Scope,
		TrackID:   data.TrackID,
		CohortID:  data.CohortID,
		SendEmail: data.SendEmail,
		PublishAt: data.PublishAt,
		CreatedBy: data.CreatedBy,
		CreatedAt: now,
	}

	if in.PublishAt != nil && in.PublishAt.After(now) {
		return a, nil
	}

	if err := s.publishAnnouncement(ctx, a, now); err != nil {
		return nil, err
	}

	return a, nil
}

// publishAnnouncement marks the row published and emits the event. The mark
// is first-writer-wins so the cron sweep and an immediate publish cannot
// both announce the same row.
func (s *Usecase) publishAnnouncement(ctx context.Context, a *entity.Announcement, at time.Time) error {
	marked, err := s.repoDB.MarkAnnouncementPublished(ctx, a.ID, at)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo mark announcement published", "announcement_id", a.ID, "error", err)
		return goerror.NewServer(err)
	}
	if !marked {
		return nil
	}

	a.PublishedAt = &at
	if err := s.repoMsg.PublishAnnouncementPublished(ctx, *a); err != nil {
		slog.ErrorContext(ctx, "failed to publish announcement event", "announcement_id", a.ID, "error", err)
	}

	return nil
}

package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

type SubscribePushInput struct {
	Endpoint string `validate:"required,url"`
	P256dh   string `validate:"required"`
	Auth     string `validate:"required"`
}

func (s *Usecase) SubscribePush(ctx context.Context, in SubscribePushInput) error {
	ctx, span := s.startSpan(ctx, "SubscribePush")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}

	in.Endpoint = strings.TrimSpace(in.Endpoint)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	sub := entity.PushSubscription{
		ID:       s.uid.Generate(),
		UserID:   clm.UserID,
		Endpoint: in.Endpoint,
		P256dh:   in.P256dh,
		Auth:     in.Auth,
	}
	if err := s.repoDB.UpsertPushSubscription(ctx, sub); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert push subscription", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type UnsubscribePushInput struct {
	Endpoint string `validate:"required,url"`
}

func (s *Usecase) UnsubscribePush(ctx context.Context, in UnsubscribePushInput) error {
	ctx, span := s.startSpan(ctx, "UnsubscribePush")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}

	in.Endpoint = strings.TrimSpace(in.Endpoint)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	deleted, err := s.repoDB.DeletePushSubscriptionByEndpoint(ctx, clm.UserID, in.Endpoint)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete push subscription", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}
	if !deleted {
		return goerror.NewBusiness("push subscription not found", goerror.CodeNotFound)
	}

	return nil
}

func (s *Usecase) VAPIDPublicKey(ctx context.Context) (string, error) {
	_, span := s.startSpan(ctx, "VAPIDPublicKey")
	defer span.End()

	return s.repoPush.PublicKey(), nil
}

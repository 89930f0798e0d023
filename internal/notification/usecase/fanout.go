package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/sethvargo/go-retry"
	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/pkg/mail"
	"github.com/demirti/cverse-lms/internal/pkg/valueobject"
	"github.com/demirti/cverse-lms/internal/pkg/webpush"
)

type fanOutInput struct {
	EventKey      entity.EventKey
	FallbackTitle string
	FallbackBody  string
	Values        map[string]string
	Link          string
	Data          valueobject.JSONMap
	Recipients    []entity.Recipient
	ActorID       int64
	DisableEmail  bool
}

// fanOut resolves the template for an event and pushes it through the three
// delivery channels. Transport failures are logged per recipient and never
// surface to the caller; a broken channel must not take down the others.
func (s *Usecase) fanOut(ctx context.Context, in fanOutInput) {
	recipients := lo.UniqBy(in.Recipients, func(r entity.Recipient) int64 { return r.UserID })
	recipients = lo.Filter(recipients, func(r entity.Recipient, _ int) bool {
		return r.UserID != in.ActorID
	})
	if len(recipients) == 0 {
		return
	}

	tpl := s.resolveTemplate(ctx, in.EventKey, in.FallbackTitle, in.FallbackBody, in.Values)
	buckets := partitionByChannel(recipients, tpl, in.EventKey.Category(), !in.DisableEmail, s.clock.Now())

	s.dispatchInApp(ctx, in, tpl, buckets.inApp)
	s.dispatchPush(ctx, in, tpl, buckets.push)
	s.dispatchEmail(ctx, in, tpl, buckets.email)
}

func (s *Usecase) dispatchInApp(ctx context.Context, in fanOutInput, tpl entity.ResolvedTemplate, recipients []entity.Recipient) {
	if len(recipients) == 0 {
		return
	}

	items := make([]entity.CreateInboxItem, 0, len(recipients))
	for _, r := range recipients {
		items = append(items, entity.CreateInboxItem{
			ID:       s.uid.Generate(),
			UserID:   r.UserID,
			EventKey: in.EventKey,
			Title:    tpl.Title,
			Body:     tpl.Body,
			Link:     in.Link,
			Data:     in.Data,
		})
	}

	if err := s.repoDB.CreateInboxBulk(ctx, items); err != nil {
		slog.ErrorContext(ctx, "failed to repo create inbox notifications",
			"event_key", in.EventKey.String(), "channel", entity.ChannelInApp.String(), "count", len(items), "error", err)
		return
	}

	for _, item := range items {
		s.publishStreamEvent(s.buildStreamEvent(item))
	}
}

func (s *Usecase) dispatchPush(ctx context.Context, in fanOutInput, tpl entity.ResolvedTemplate, recipients []entity.Recipient) {
	if len(recipients) == 0 {
		return
	}

	userIDs := lo.Map(recipients, func(r entity.Recipient, _ int) int64 { return r.UserID })
	subs, err := s.repoDB.ListPushSubscriptionsByUsers(ctx, userIDs)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list push subscriptions",
			"event_key", in.EventKey.String(), "channel", entity.ChannelPush.String(), "error", err)
		return
	}
	if len(subs) == 0 {
		return
	}

	payload := webpush.Payload{
		Title: tpl.Title,
		Body:  tpl.Body,
		URL:   s.absoluteLink(in.Link),
	}

	for _, sub := range subs {
		err := s.repoPush.Send(ctx, sub, payload)
		if err == nil {
			continue
		}

		if errors.Is(err, webpush.ErrSubscriptionGone) {
			if dErr := s.repoDB.DeletePushSubscription(ctx, sub.ID); dErr != nil {
				slog.WarnContext(ctx, "failed to repo delete gone push subscription",
					"user_id", sub.UserID, "subscription_id", sub.ID, "error", dErr)
			}
			continue
		}

		slog.ErrorContext(ctx, "failed to send push notification",
			"user_id", sub.UserID, "event_key", in.EventKey.String(), "channel", entity.ChannelPush.String(), "error", err)
	}
}

// dispatchEmail sends one personalized message per recipient, sequentially.
// A small delay spaces the sends, and throttling replies are retried a fixed
// number of times before the recipient is given up on.
func (s *Usecase) dispatchEmail(ctx context.Context, in fanOutInput, tpl entity.ResolvedTemplate, recipients []entity.Recipient) {
	for i, r := range recipients {
		if i > 0 {
			select {
			case <-ctx.Done():
				slog.WarnContext(ctx, "email dispatch interrupted",
					"event_key", in.EventKey.String(), "sent", i, "total", len(recipients))
				return
			case <-time.After(s.emailSendDelay):
			}
		}

		msg := mail.Message{
			From:     s.emailFrom,
			To:       []string{r.Email},
			Subject:  "[CVERSE] " + tpl.Title,
			TextBody: fmt.Sprintf("Hi %s,\n\n%s\n\n%s", r.FirstName, tpl.Body, s.absoluteLink(in.Link)),
		}

		backoff := retry.WithMaxRetries(s.emailMaxRetries, retry.NewConstant(s.emailRetryDelay))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			if sErr := s.repoMail.Send(ctx, msg); sErr != nil {
				if errors.Is(sErr, mail.ErrRateLimited) {
					return retry.RetryableError(sErr)
				}
				return sErr
			}
			return nil
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to send notification email",
				"user_id", r.UserID, "event_key", in.EventKey.String(), "channel", entity.ChannelEmail.String(), "error", err)
		}
	}
}

func (s *Usecase) absoluteLink(link string) string {
	if link == "" {
		return s.webBaseURL
	}

	return s.webBaseURL + link
}

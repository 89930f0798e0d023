package db

import (
	"context"

	"github.com/demirti/cverse-lms/internal/notification/entity"
)

func (s *DB) UpsertPushSubscription(ctx context.Context, sub entity.PushSubscription) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertPushSubscription")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh, auth)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (endpoint) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			p256dh = EXCLUDED.p256dh,
			auth = EXCLUDED.auth`

	_, err = s.conn.Exec(ctx, query, sub.ID, sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth)
	return s.mapError(err)
}

func (s *DB) DeletePushSubscriptionByEndpoint(ctx context.Context, userID int64, endpoint string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "DeletePushSubscriptionByEndpoint")
	defer func() { s.endSpan(span, err) }()

	const query = `DELETE FROM push_subscriptions WHERE user_id = $1 AND endpoint = $2`

	tag, err := s.conn.Exec(ctx, query, userID, endpoint)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *DB) DeletePushSubscription(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeletePushSubscription")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM push_subscriptions WHERE id = $1`, id)
	return s.mapError(err)
}

func (s *DB) ListPushSubscriptionsByUsers(ctx context.Context, userIDs []int64) (_ []entity.PushSubscription, err error) {
	ctx, span := s.startSpan(ctx, "ListPushSubscriptionsByUsers")
	defer func() { s.endSpan(span, err) }()

	if len(userIDs) == 0 {
		return nil, nil
	}

	const query = `
		SELECT id, user_id, endpoint, p256dh, auth
		FROM push_subscriptions
		WHERE user_id = ANY($1)`

	rows, err := s.conn.Query(ctx, query, userIDs)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var subs []entity.PushSubscription
	for rows.Next() {
		var sub entity.PushSubscription
		if err = rows.Scan(&sub.ID, &sub.UserID, &sub.Endpoint, &sub.P256dh, &sub.Auth); err != nil {
			return nil, s.mapError(err)
		}
		subs = append(subs, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return subs, nil
}

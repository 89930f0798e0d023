package db

import (
	"context"
	"fmt"

	"github.com/demirti/cverse-lms/internal/notification/entity"
)

// prefColumns returns the preference column names for a category. Category is
// a closed enum, so interpolating its String into SQL is safe.
func prefColumns(cat entity.Category) (email, inApp, push string) {
	suffix := cat.String()
	if cat == entity.CategoryUnknown {
		suffix = "announcements"
	}

	return "email_" + suffix, "in_app_" + suffix, "push_" + suffix
}

// recipientSelect builds the projection shared by every recipient query:
// identity, global flags, and the flags of the event's category. A user
// without a preference row gets the all-enabled defaults.
func recipientSelect(cat entity.Category) string {
	emailCol, inAppCol, pushCol := prefColumns(cat)

	return fmt.Sprintf(`
		u.id, u.email, u.first_name,
		COALESCE(p.email_enabled, TRUE), COALESCE(p.in_app_enabled, TRUE),
		COALESCE(p.%s, TRUE), COALESCE(p.%s, TRUE), COALESCE(p.%s, TRUE)`,
		emailCol, inAppCol, pushCol)
}

func (s *DB) ListChatRoomRecipients(ctx context.Context, roomID, excludeUserID int64) (_ []entity.Recipient, err error) {
	ctx, span := s.startSpan(ctx, "ListChatRoomRecipients")
	defer func() { s.endSpan(span, err) }()

	query := fmt.Sprintf(`
		SELECT %s, m.is_muted, m.email_muted, m.last_read_at
		FROM chat_room_members m
		JOIN users u ON u.id = m.user_id AND u.status = 'active'
		LEFT JOIN notification_preferences p ON p.user_id = u.id
		WHERE m.room_id = $1 AND m.user_id <> $2`,
		recipientSelect(entity.CategoryChat))

	rows, err := s.conn.Query(ctx, query, roomID, excludeUserID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var items []entity.Recipient
	for rows.Next() {
		var r entity.Recipient
		if err = rows.Scan(
			&r.UserID, &r.Email, &r.FirstName,
			&r.EmailEnabled, &r.InAppEnabled,
			&r.CategoryEmail, &r.CategoryInApp, &r.CategoryPush,
			&r.IsMuted, &r.EmailMuted, &r.LastReadAt,
		); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, r)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) ListCohortRecipients(ctx context.Context, cohortID int64, cat entity.Category) (_ []entity.Recipient, err error) {
	ctx, span := s.startSpan(ctx, "ListCohortRecipients")
	defer func() { s.endSpan(span, err) }()

	query := fmt.Sprintf(`
		SELECT %s
		FROM cohort_members cm
		JOIN users u ON u.id = cm.user_id AND u.status = 'active' AND u.role IN ('student', 'alumni')
		LEFT JOIN notification_preferences p ON p.user_id = u.id
		WHERE cm.cohort_id = $1`,
		recipientSelect(cat))

	return s.queryRecipients(ctx, query, cohortID)
}

func (s *DB) ListTrackRecipients(ctx context.Context, trackID int64, cat entity.Category) (_ []entity.Recipient, err error) {
	ctx, span := s.startSpan(ctx, "ListTrackRecipients")
	defer func() { s.endSpan(span, err) }()

	query := fmt.Sprintf(`
		SELECT DISTINCT %s
		FROM cohort_members cm
		JOIN cohorts c ON c.id = cm.cohort_id AND c.track_id = $1
		JOIN users u ON u.id = cm.user_id AND u.status = 'active' AND u.role IN ('student', 'alumni')
		LEFT JOIN notification_preferences p ON p.user_id = u.id`,
		recipientSelect(cat))

	return s.queryRecipients(ctx, query, trackID)
}

func (s *DB) ListSystemRecipients(ctx context.Context, cat entity.Category) (_ []entity.Recipient, err error) {
	ctx, span := s.startSpan(ctx, "ListSystemRecipients")
	defer func() { s.endSpan(span, err) }()

	query := fmt.Sprintf(`
		SELECT %s
		FROM users u
		LEFT JOIN notification_preferences p ON p.user_id = u.id
		WHERE u.status = 'active' AND u.role IN ('student', 'alumni')`,
		recipientSelect(cat))

	return s.queryRecipients(ctx, query)
}

func (s *DB) GetUserRecipient(ctx context.Context, userID int64, cat entity.Category) (_ *entity.Recipient, err error) {
	ctx, span := s.startSpan(ctx, "GetUserRecipient")
	defer func() { s.endSpan(span, err) }()

	query := fmt.Sprintf(`
		SELECT %s
		FROM users u
		LEFT JOIN notification_preferences p ON p.user_id = u.id
		WHERE u.id = $1 AND u.status = 'active'`,
		recipientSelect(cat))

	var r entity.Recipient
	err = s.conn.QueryRow(ctx, query, userID).Scan(
		&r.UserID, &r.Email, &r.FirstName,
		&r.EmailEnabled, &r.InAppEnabled,
		&r.CategoryEmail, &r.CategoryInApp, &r.CategoryPush,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &r, nil
}

func (s *DB) queryRecipients(ctx context.Context, query string, args ...any) ([]entity.Recipient, error) {
	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var items []entity.Recipient
	for rows.Next() {
		var r entity.Recipient
		if err = rows.Scan(
			&r.UserID, &r.Email, &r.FirstName,
			&r.EmailEnabled, &r.InAppEnabled,
			&r.CategoryEmail, &r.CategoryInApp, &r.CategoryPush,
		); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

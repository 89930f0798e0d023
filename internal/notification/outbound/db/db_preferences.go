package db

import (
	"context"

	"github.com/demirti/cverse-lms/internal/notification/entity"
)

func (s *DB) GetPreferences(ctx context.Context, userID int64) (_ *entity.Preferences, err error) {
	ctx, span := s.startSpan(ctx, "GetPreferences")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT user_id, email_enabled, in_app_enabled,
			email_announcements, in_app_announcements, push_announcements,
			email_chat, in_app_chat, push_chat,
			email_assignments, in_app_assignments, push_assignments,
			email_grades, in_app_grades, push_grades,
			email_deadlines, in_app_deadlines, push_deadlines
		FROM notification_preferences
		WHERE user_id = $1`

	var p entity.Preferences
	err = s.conn.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.EmailEnabled, &p.InAppEnabled,
		&p.EmailAnnouncements, &p.InAppAnnouncements, &p.PushAnnouncements,
		&p.EmailChat, &p.InAppChat, &p.PushChat,
		&p.EmailAssignments, &p.InAppAssignments, &p.PushAssignments,
		&p.EmailGrades, &p.InAppGrades, &p.PushGrades,
		&p.EmailDeadlines, &p.InAppDeadlines, &p.PushDeadlines,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &p, nil
}

func (s *DB) UpsertPreferences(ctx context.Context, p entity.Preferences) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertPreferences")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO notification_preferences (user_id, email_enabled, in_app_enabled,
			email_announcements, in_app_announcements, push_announcements,
			email_chat, in_app_chat, push_chat,
			email_assignments, in_app_assignments, push_assignments,
			email_grades, in_app_grades, push_grades,
			email_deadlines, in_app_deadlines, push_deadlines)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (user_id) DO UPDATE SET
			email_enabled = EXCLUDED.email_enabled,
			in_app_enabled = EXCLUDED.in_app_enabled,
			email_announcements = EXCLUDED.email_announcements,
			in_app_announcements = EXCLUDED.in_app_announcements,
			push_announcements = EXCLUDED.push_announcements,
			email_chat = EXCLUDED.email_chat,
			in_app_chat = EXCLUDED.in_app_chat,
			push_chat = EXCLUDED.push_chat,
			email_assignments = EXCLUDED.email_assignments,
			in_app_assignments = EXCLUDED.in_app_assignments,
			push_assignments = EXCLUDED.push_assignments,
			email_grades = EXCLUDED.email_grades,
			in_app_grades = EXCLUDED.in_app_grades,
			push_grades = EXCLUDED.push_grades,
			email_deadlines = EXCLUDED.email_deadlines,
			in_app_deadlines = EXCLUDED.in_app_deadlines,
			push_deadlines = EXCLUDED.push_deadlines,
			updated_at = now()`

	_, err = s.conn.Exec(ctx, query,
		p.UserID, p.EmailEnabled, p.InAppEnabled,
		p.EmailAnnouncements, p.InAppAnnouncements, p.PushAnnouncements,
		p.EmailChat, p.InAppChat, p.PushChat,
		p.EmailAssignments, p.InAppAssignments, p.PushAssignments,
		p.EmailGrades, p.InAppGrades, p.PushGrades,
		p.EmailDeadlines, p.InAppDeadlines, p.PushDeadlines,
	)
	return s.mapError(err)
}

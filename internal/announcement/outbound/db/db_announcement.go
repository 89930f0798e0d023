package db

import (
	"context"
	"time"

	"github.com/demirti/cverse-lms/internal/announcement/entity"
	"github.com/jackc/pgx/v5"
)

const announcementColumns = `id, title, body, scope, track_id, cohort_id, send_email,
	publish_at, published_at, created_by, created_at`

func scanAnnouncement(row pgx.Row) (*entity.Announcement, error) {
	var (
		a     entity.Announcement
		scope string
	)
	err := row.Scan(
		&a.ID, &a.Title, &a.Body, &scope, &a.TrackID, &a.CohortID, &a.SendEmail,
		&a.PublishAt, &a.PublishedAt, &a.CreatedBy, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Scope = entity.ScopeFromString(scope)

	return &a, nil
}

func (s *DB) CreateAnnouncement(ctx context.Context, data entity.CreateAnnouncement) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAnnouncement")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO announcements (id, title, body, scope, track_id, cohort_id, send_email, publish_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = s.conn.Exec(ctx, query,
		data.ID, data.Title, data.Body, data.Scope.String(), data.TrackID, data.CohortID,
		data.SendEmail, data.PublishAt, data.CreatedBy)
	return s.mapError(err)
}

func (s *DB) GetAnnouncement(ctx context.Context, id int64) (_ *entity.Announcement, err error) {
	ctx, span := s.startSpan(ctx, "GetAnnouncement")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`

	a, err := scanAnnouncement(s.conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return a, nil
}

func (s *DB) ListAnnouncements(ctx context.Context, limit, offset int32) (_ []entity.Announcement, err error) {
	ctx, span := s.startSpan(ctx, "ListAnnouncements")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + announcementColumns + `
		FROM announcements
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	return s.queryAnnouncements(ctx, query, limit, offset)
}

func (s *DB) ListVisibleAnnouncements(ctx context.Context, userID int64, limit, offset int32) (_ []entity.Announcement, err error) {
	ctx, span := s.startSpan(ctx, "ListVisibleAnnouncements")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + announcementColumns + `
		FROM announcements a
		WHERE a.published_at IS NOT NULL
			AND (
				a.scope = 'system'
				OR (a.scope = 'cohort' AND a.cohort_id IN (
					SELECT cohort_id FROM cohort_members WHERE user_id = $1
				))
				OR (a.scope = 'track' AND a.track_id IN (
					SELECT c.track_id FROM cohorts c
					JOIN cohort_members m ON m.cohort_id = c.id
					WHERE m.user_id = $1
				))
			)
		ORDER BY a.published_at DESC
		LIMIT $2 OFFSET $3`

	return s.queryAnnouncements(ctx, query, userID, limit, offset)
}

func (s *DB) MarkAnnouncementPublished(ctx context.Context, id int64, at time.Time) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "MarkAnnouncementPublished")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE announcements
		SET published_at = $2
		WHERE id = $1 AND published_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, at)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *DB) ListDueAnnouncements(ctx context.Context, until time.Time) (_ []entity.Announcement, err error) {
	ctx, span := s.startSpan(ctx, "ListDueAnnouncements")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + announcementColumns + `
		FROM announcements
		WHERE published_at IS NULL
			AND publish_at IS NOT NULL
			AND publish_at <= $1
		ORDER BY publish_at`

	return s.queryAnnouncements(ctx, query, until)
}

func (s *DB) queryAnnouncements(ctx context.Context, query string, args ...any) ([]entity.Announcement, error) {
	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var items []entity.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

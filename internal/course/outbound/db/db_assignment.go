package db

import (
	"context"
	"time"

	"github.com/demirti/cverse-lms/internal/course/entity"
)

const assignmentColumns = `id, cohort_id, title, description, due_at, max_score, published_at, reminder_at, created_by, created_at`

func (s *DB) CreateAssignment(ctx context.Context, data entity.CreateAssignment) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAssignment")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO assignments (id, cohort_id, title, description, due_at, max_score, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.conn.Exec(ctx, query,
		data.ID, data.CohortID, data.Title, data.Description, data.DueAt, data.MaxScore, data.CreatedBy)
	return s.mapError(err)
}

func (s *DB) GetAssignment(ctx context.Context, id int64) (_ *entity.Assignment, err error) {
	ctx, span := s.startSpan(ctx, "GetAssignment")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`

	var a entity.Assignment
	err = s.conn.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.CohortID, &a.Title, &a.Description, &a.DueAt, &a.MaxScore,
		&a.PublishedAt, &a.ReminderAt, &a.CreatedBy, &a.CreatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &a, nil
}

func (s *DB) ListAssignments(ctx context.Context, cohortID int64, publishedOnly bool) (_ []entity.Assignment, err error) {
	ctx, span := s.startSpan(ctx, "ListAssignments")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE cohort_id = $1`
	if publishedOnly {
		query += ` AND published_at IS NOT NULL`
	}
	query += ` ORDER BY due_at`

	rows, err := s.conn.Query(ctx, query, cohortID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var assignments []entity.Assignment
	for rows.Next() {
		var a entity.Assignment
		err = rows.Scan(
			&a.ID, &a.CohortID, &a.Title, &a.Description, &a.DueAt, &a.MaxScore,
			&a.PublishedAt, &a.ReminderAt, &a.CreatedBy, &a.CreatedAt,
		)
		if err != nil {
			return nil, s.mapError(err)
		}
		assignments = append(assignments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return assignments, nil
}

func (s *DB) PublishAssignment(ctx context.Context, id int64, at time.Time) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "PublishAssignment")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE assignments
		SET published_at = $2
		WHERE id = $1 AND published_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, at)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *DB) ListDueAssignments(ctx context.Context, from, to time.Time) (_ []entity.Assignment, err error) {
	ctx, span := s.startSpan(ctx, "ListDueAssignments")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + assignmentColumns + ` FROM assignments
		WHERE published_at IS NOT NULL
			AND reminder_at IS NULL
			AND due_at > $1 AND due_at <= $2
		ORDER BY due_at`

	rows, err := s.conn.Query(ctx, query, from, to)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var assignments []entity.Assignment
	for rows.Next() {
		var a entity.Assignment
		err = rows.Scan(
			&a.ID, &a.CohortID, &a.Title, &a.Description, &a.DueAt, &a.MaxScore,
			&a.PublishedAt, &a.ReminderAt, &a.CreatedBy, &a.CreatedAt,
		)
		if err != nil {
			return nil, s.mapError(err)
		}
		assignments = append(assignments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return assignments, nil
}

// MarkAssignmentReminded claims the reminder for one assignment. The
// reminder_at IS NULL guard makes the claim first-writer-wins.
func (s *DB) MarkAssignmentReminded(ctx context.Context, id int64, at time.Time) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "MarkAssignmentReminded")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE assignments
		SET reminder_at = $2
		WHERE id = $1 AND reminder_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, at)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

package db

import (
	"context"

	"github.com/demirti/cverse-lms/internal/course/entity"
)

func (s *DB) ListCohortsByStudent(ctx context.Context, userID int64) (_ []entity.Cohort, err error) {
	ctx, span := s.startSpan(ctx, "ListCohortsByStudent")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT c.id, c.track_id, c.name, c.start_at, c.end_at
		FROM cohorts c
		JOIN cohort_members m ON m.cohort_id = c.id
		WHERE m.user_id = $1
		ORDER BY c.start_at DESC`

	rows, err := s.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var cohorts []entity.Cohort
	for rows.Next() {
		var c entity.Cohort
		if err = rows.Scan(&c.ID, &c.TrackID, &c.Name, &c.StartAt, &c.EndAt); err != nil {
			return nil, s.mapError(err)
		}
		cohorts = append(cohorts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return cohorts, nil
}

func (s *DB) IsCohortMember(ctx context.Context, cohortID, userID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "IsCohortMember")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT EXISTS (
			SELECT 1 FROM cohort_members
			WHERE cohort_id = $1 AND user_id = $2
		)`

	var ok bool
	if err = s.conn.QueryRow(ctx, query, cohortID, userID).Scan(&ok); err != nil {
		return false, s.mapError(err)
	}

	return ok, nil
}

func (s *DB) IsCohortFacilitator(ctx context.Context, cohortID, userID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "IsCohortFacilitator")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT EXISTS (
			SELECT 1 FROM cohort_facilitators
			WHERE cohort_id = $1 AND user_id = $2
		)`

	var ok bool
	if err = s.conn.QueryRow(ctx, query, cohortID, userID).Scan(&ok); err != nil {
		return false, s.mapError(err)
	}

	return ok, nil
}

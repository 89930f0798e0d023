package db

import (
	"context"

	"github.com/demirti/cverse-lms/internal/course/entity"
)

const submissionColumns = `s.id, s.assignment_id, s.student_id, u.first_name, s.body, s.attachment_key,
	s.score, s.feedback, s.graded_by, s.graded_at, s.submitted_at`

func (s *DB) CreateSubmission(ctx context.Context, data entity.CreateSubmission) (err error) {
	ctx, span := s.startSpan(ctx, "CreateSubmission")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO submissions (id, assignment_id, student_id, body, attachment_key)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = s.conn.Exec(ctx, query, data.ID, data.AssignmentID, data.StudentID, data.Body, data.AttachmentKey)
	return s.mapError(err)
}

func (s *DB) GetSubmission(ctx context.Context, id int64) (_ *entity.Submission, err error) {
	ctx, span := s.startSpan(ctx, "GetSubmission")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + submissionColumns + `
		FROM submissions s
		JOIN users u ON u.id = s.student_id
		WHERE s.id = $1`

	var sub entity.Submission
	err = s.conn.QueryRow(ctx, query, id).Scan(
		&sub.ID, &sub.AssignmentID, &sub.StudentID, &sub.StudentName, &sub.Body, &sub.AttachmentKey,
		&sub.Score, &sub.Feedback, &sub.GradedBy, &sub.GradedAt, &sub.SubmittedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &sub, nil
}

func (s *DB) GetSubmissionByStudent(ctx context.Context, assignmentID, studentID int64) (_ *entity.Submission, err error) {
	ctx, span := s.startSpan(ctx, "GetSubmissionByStudent")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + submissionColumns + `
		FROM submissions s
		JOIN users u ON u.id = s.student_id
		WHERE s.assignment_id = $1 AND s.student_id = $2`

	var sub entity.Submission
	err = s.conn.QueryRow(ctx, query, assignmentID, studentID).Scan(
		&sub.ID, &sub.AssignmentID, &sub.StudentID, &sub.StudentName, &sub.Body, &sub.AttachmentKey,
		&sub.Score, &sub.Feedback, &sub.GradedBy, &sub.GradedAt, &sub.SubmittedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &sub, nil
}

func (s *DB) ListSubmissions(ctx context.Context, assignmentID int64) (_ []entity.Submission, err error) {
	ctx, span := s.startSpan(ctx, "ListSubmissions")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + submissionColumns + `
		FROM submissions s
		JOIN users u ON u.id = s.student_id
		WHERE s.assignment_id = $1
		ORDER BY s.submitted_at`

	rows, err := s.conn.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var subs []entity.Submission
	for rows.Next() {
		var sub entity.Submission
		err = rows.Scan(
			&sub.ID, &sub.AssignmentID, &sub.StudentID, &sub.StudentName, &sub.Body, &sub.AttachmentKey,
			&sub.Score, &sub.Feedback, &sub.GradedBy, &sub.GradedAt, &sub.SubmittedAt,
		)
		if err != nil {
			return nil, s.mapError(err)
		}
		subs = append(subs, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return subs, nil
}

func (s *DB) GradeSubmission(ctx context.Context, data entity.GradeSubmission) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "GradeSubmission")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE submissions
		SET score = $2, feedback = $3, graded_by = $4, graded_at = $5
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, data.SubmissionID, data.Score, data.Feedback, data.GradedBy, data.GradedAt)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

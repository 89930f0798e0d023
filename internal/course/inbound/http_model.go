package inbound

import "time"

type CohortResponse struct {
	ID      int64     `json:"id,string"`
	TrackID int64     `json:"track_id,string"`
	Name    string    `json:"name"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type CohortsResponse struct {
	Cohorts []CohortResponse `json:"cohorts"`
}

type CreateAssignmentRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueAt       time.Time `json:"due_at"`
	MaxScore    int32     `json:"max_score"`
}

type AssignmentResponse struct {
	ID          int64      `json:"id,string"`
	CohortID    int64      `json:"cohort_id,string"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueAt       time.Time  `json:"due_at"`
	MaxScore    int32      `json:"max_score"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AssignmentsResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
}

type SubmissionResponse struct {
	ID            int64      `json:"id,string"`
	AssignmentID  int64      `json:"assignment_id,string"`
	StudentID     int64      `json:"student_id,string"`
	StudentName   string     `json:"student_name,omitempty"`
	Body          string     `json:"body"`
	HasAttachment bool       `json:"has_attachment"`
	Score         *int32     `json:"score,omitempty"`
	Feedback      string     `json:"feedback,omitempty"`
	GradedAt      *time.Time `json:"graded_at,omitempty"`
	SubmittedAt   time.Time  `json:"submitted_at"`
}

type SubmissionsResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
}

type GradeSubmissionRequest struct {
	Score    int32  `json:"score"`
	Feedback string `json:"feedback"`
}

type AttachmentURLResponse struct {
	URL string `json:"url"`
}

type DeadlineSweepResponse struct {
	Reminded int `json:"reminded"`
}

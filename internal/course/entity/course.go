package entity

import "time"

type Cohort struct {
	ID      int64
	TrackID int64
	Name    string
	StartAt time.Time
	EndAt   time.Time
}

type Assignment struct {
	ID          int64
	CohortID    int64
	Title       string
	Description string
	DueAt       time.Time
	MaxScore    int32
	PublishedAt *time.Time
	ReminderAt  *time.Time
	CreatedBy   int64
	CreatedAt   time.Time
}

func (a Assignment) Published() bool {
	return a.PublishedAt != nil
}

type CreateAssignment struct {
	ID          int64
	CohortID    int64
	Title       string
	Description string
	DueAt       time.Time
	MaxScore    int32
	CreatedBy   int64
}

type Submission struct {
	ID            int64
	AssignmentID  int64
	StudentID     int64
	StudentName   string
	Body          string
	AttachmentKey string
	Score         *int32
	Feedback      string
	GradedBy      *int64
	GradedAt      *time.Time
	SubmittedAt   time.Time
}

func (s Submission) Graded() bool {
	return s.GradedAt != nil
}

type CreateSubmission struct {
	ID            int64
	AssignmentID  int64
	StudentID     int64
	Body          string
	AttachmentKey string
}

type GradeSubmission struct {
	SubmissionID int64
	Score        int32
	Feedback     string
	GradedBy     int64
	GradedAt     time.Time
}

package event

import "time"

const AssignmentDeadlineDestination string = "assignment_deadline"
const AssignmentDeadlineConsumerNotification string = "assignment_deadline_notification"

type AssignmentDeadlineMessage struct {
	AssignmentID int64     `json:"assignment_id"`
	CohortID     int64     `json:"cohort_id"`
	Title        string    `json:"title"`
	DueAt        time.Time `json:"due_at"`
}

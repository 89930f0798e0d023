package event

import "time"

const AssignmentPostedDestination string = "assignment_posted"
const AssignmentPostedConsumerNotification string = "assignment_posted_notification"

type AssignmentPostedMessage struct {
	AssignmentID int64     `json:"assignment_id"`
	CohortID     int64     `json:"cohort_id"`
	Title        string    `json:"title"`
	DueAt        time.Time `json:"due_at"`
	ActorID      int64     `json:"actor_id"`
}

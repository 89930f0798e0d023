package event

const SubmissionGradedDestination string = "submission_graded"
const SubmissionGradedConsumerNotification string = "submission_graded_notification"

type SubmissionGradedMessage struct {
	SubmissionID    int64  `json:"submission_id"`
	AssignmentID    int64  `json:"assignment_id"`
	AssignmentTitle string `json:"assignment_title"`
	StudentID       int64  `json:"student_id"`
	Score           int32  `json:"score"`
	MaxScore        int32  `json:"max_score"`
	GraderID        int64  `json:"grader_id"`
}

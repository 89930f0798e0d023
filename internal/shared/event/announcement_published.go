package event

const AnnouncementPublishedDestination string = "announcement_published"
const AnnouncementPublishedConsumerNotification string = "announcement_published_notification"

type AnnouncementPublishedMessage struct {
	AnnouncementID int64  `json:"announcement_id"`
	Title          string `json:"title"`
	Preview        string `json:"preview"`
	Scope          string `json:"scope"`
	TrackID        int64  `json:"track_id,omitempty"`
	CohortID       int64  `json:"cohort_id,omitempty"`
	SendEmail      bool   `json:"send_email"`
	ActorID        int64  `json:"actor_id"`
}

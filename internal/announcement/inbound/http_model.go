package inbound

import "time"

type AnnouncementResponse struct {
	ID          int64      `json:"id,string"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Scope       string     `json:"scope"`
	TrackID     *int64     `json:"track_id,omitempty,string"`
	CohortID    *int64     `json:"cohort_id,omitempty,string"`
	SendEmail   bool       `json:"send_email"`
	PublishAt   *time.Time `json:"publish_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AnnouncementsResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
}

type CreateAnnouncementRequest struct {
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Scope     string     `json:"scope"`
	TrackID   int64      `json:"track_id,omitempty,string"`
	CohortID  int64      `json:"cohort_id,omitempty,string"`
	SendEmail bool       `json:"send_email"`
	PublishAt *time.Time `json:"publish_at,omitempty"`
}

type PublishSweepResponse struct {
	Published int `json:"published"`
}

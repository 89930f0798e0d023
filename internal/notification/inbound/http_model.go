package inbound

import (
	"time"

	"github.com/demirti/cverse-lms/internal/pkg/valueobject"
)

type NotificationResponse struct {
	ID        int64               `json:"id,string"`
	EventKey  string              `json:"event_key"`
	Title     string              `json:"title"`
	Body      string              `json:"body"`
	Link      string              `json:"link,omitempty"`
	Data      valueobject.JSONMap `json:"data,omitempty"`
	ReadAt    *time.Time          `json:"read_at,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

type NotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type PreferencesPayload struct {
	EmailEnabled bool `json:"email_enabled"`
	InAppEnabled bool `json:"in_app_enabled"`

	EmailAnnouncements bool `json:"email_announcements"`
	InAppAnnouncements bool `json:"in_app_announcements"`
	PushAnnouncements  bool `json:"push_announcements"`

	EmailChat bool `json:"email_chat"`
	InAppChat bool `json:"in_app_chat"`
	PushChat  bool `json:"push_chat"`

	EmailAssignments bool `json:"email_assignments"`
	InAppAssignments bool `json:"in_app_assignments"`
	PushAssignments  bool `json:"push_assignments"`

	EmailGrades bool `json:"email_grades"`
	InAppGrades bool `json:"in_app_grades"`
	PushGrades  bool `json:"push_grades"`

	EmailDeadlines bool `json:"email_deadlines"`
	InAppDeadlines bool `json:"in_app_deadlines"`
	PushDeadlines  bool `json:"push_deadlines"`
}

type SubscribePushRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

type UnsubscribePushRequest struct {
	Endpoint string `json:"endpoint"`
}

type VAPIDKeyResponse struct {
	PublicKey string `json:"public_key"`
}

type TemplateResponse struct {
	ID            int64  `json:"id,string"`
	EventKey      string `json:"event_key"`
	TitleTemplate string `json:"title_template"`
	BodyTemplate  string `json:"body_template"`
	InAppEnabled  bool   `json:"in_app_enabled"`
	EmailEnabled  bool   `json:"email_enabled"`
}

type TemplatesResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

type UpsertTemplateRequest struct {
	EventKey      string `json:"event_key"`
	TitleTemplate string `json:"title_template"`
	BodyTemplate  string `json:"body_template"`
	InAppEnabled  *bool  `json:"in_app_enabled"`
	EmailEnabled  *bool  `json:"email_enabled"`
}

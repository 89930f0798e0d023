package entity

import (
	"time"

	"github.com/demirti/cverse-lms/internal/pkg/valueobject"
)

// Template is a notification template row keyed by event.
// The channel flags default to enabled for rows created before the flags
// existed, so readers treat a missing row value as true.
type Template struct {
	ID            int64
	EventKey      EventKey
	TitleTemplate string
	BodyTemplate  string
	InAppEnabled  bool
	EmailEnabled  bool
}

// ResolvedTemplate is the rendered output of template resolution. It always
// carries a usable title and body, falling back to event defaults when no
// template row exists.
type ResolvedTemplate struct {
	Title        string
	Body         string
	InAppEnabled bool
	EmailEnabled bool
}

// Recipient is a delivery candidate for one event, annotated with the
// preference flags relevant to the event's category. It is computed per
// event and never persisted.
type Recipient struct {
	UserID    int64
	Email     string
	FirstName string

	EmailEnabled bool
	InAppEnabled bool

	CategoryEmail bool
	CategoryInApp bool
	CategoryPush  bool

	IsMuted    bool
	EmailMuted bool
	LastReadAt *time.Time
}

// Preferences is a user's full notification preference matrix.
type Preferences struct {
	UserID       int64
	EmailEnabled bool
	InAppEnabled bool

	EmailAnnouncements bool
	InAppAnnouncements bool
	PushAnnouncements  bool

	EmailChat bool
	InAppChat bool
	PushChat  bool

	EmailAssignments bool
	InAppAssignments bool
	PushAssignments  bool

	EmailGrades bool
	InAppGrades bool
	PushGrades  bool

	EmailDeadlines bool
	InAppDeadlines bool
	PushDeadlines  bool
}

// DefaultPreferences returns the all-enabled matrix used when a user has no
// stored preference row.
func DefaultPreferences(userID int64) Preferences {
	return Preferences{
		UserID:             userID,
		EmailEnabled:       true,
		InAppEnabled:       true,
		EmailAnnouncements: true,
		InAppAnnouncements: true,
		PushAnnouncements:  true,
		EmailChat:          true,
		InAppChat:          true,
		PushChat:           true,
		EmailAssignments:   true,
		InAppAssignments:   true,
		PushAssignments:    true,
		EmailGrades:        true,
		InAppGrades:        true,
		PushGrades:         true,
		EmailDeadlines:     true,
		InAppDeadlines:     true,
		PushDeadlines:      true,
	}
}

// CategoryFlags returns the email/in-app/push flags for one category.
func (p Preferences) CategoryFlags(cat Category) (email, inApp, push bool) {
	switch cat {
	case CategoryAnnouncements:
		return p.EmailAnnouncements, p.InAppAnnouncements, p.PushAnnouncements
	case CategoryChat:
		return p.EmailChat, p.InAppChat, p.PushChat
	case CategoryAssignments:
		return p.EmailAssignments, p.InAppAssignments, p.PushAssignments
	case CategoryGrades:
		return p.EmailGrades, p.InAppGrades, p.PushGrades
	case CategoryDeadlines:
		return p.EmailDeadlines, p.InAppDeadlines, p.PushDeadlines
	default:
		return true, true, true
	}
}

type CreateInboxItem struct {
	ID       int64
	UserID   int64
	EventKey EventKey
	Title    string
	Body     string
	Link     string
	Data     valueobject.JSONMap
}

type InboxItem struct {
	ID        int64
	EventKey  EventKey
	Title     string
	Body      string
	Link      string
	Data      valueobject.JSONMap
	ReadAt    *time.Time
	CreatedAt time.Time
}

type PushSubscription struct {
	ID       int64
	UserID   int64
	Endpoint string
	P256dh   string
	Auth     string
}

type UpsertTemplate struct {
	ID            int64
	EventKey      EventKey
	TitleTemplate string
	BodyTemplate  string
	InAppEnabled  bool
	EmailEnabled  bool
}

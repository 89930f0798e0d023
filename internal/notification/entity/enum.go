package entity

import (
	"strings"
)

type Channel int16

const (
	ChannelUnknown Channel = 0
	ChannelInApp   Channel = 1
	ChannelEmail   Channel = 2
	ChannelPush    Channel = 3
)

func ChannelFromString(raw string) Channel {
	switch strings.TrimSpace(raw) {
	case "in_app":
		return ChannelInApp
	case "email":
		return ChannelEmail
	case "push":
		return ChannelPush
	default:
		return ChannelUnknown
	}
}

func (c Channel) String() string {
	switch c {
	case ChannelInApp:
		return "in_app"
	case ChannelEmail:
		return "email"
	case ChannelPush:
		return "push"
	default:
		return "unknown"
	}
}

type Category int16

const (
	CategoryUnknown       Category = 0
	CategoryAnnouncements Category = 1
	CategoryChat          Category = 2
	CategoryAssignments   Category = 3
	CategoryGrades        Category = 4
	CategoryDeadlines     Category = 5
)

func CategoryFromString(raw string) Category {
	switch strings.TrimSpace(raw) {
	case "announcements":
		return CategoryAnnouncements
	case "chat":
		return CategoryChat
	case "assignments":
		return CategoryAssignments
	case "grades":
		return CategoryGrades
	case "deadlines":
		return CategoryDeadlines
	default:
		return CategoryUnknown
	}
}

func (c Category) String() string {
	switch c {
	case CategoryAnnouncements:
		return "announcements"
	case CategoryChat:
		return "chat"
	case CategoryAssignments:
		return "assignments"
	case CategoryGrades:
		return "grades"
	case CategoryDeadlines:
		return "deadlines"
	default:
		return "unknown"
	}
}

type EventKey string

const (
	EventKeyChatMessage        EventKey = "chat_message"
	EventKeyAssignmentPosted   EventKey = "assignment_posted"
	EventKeyAssignmentDeadline EventKey = "assignment_deadline"
	EventKeySubmissionGraded   EventKey = "submission_graded"
	EventKeyAnnouncement       EventKey = "announcement_published"
)

func (ek EventKey) String() string {
	return string(ek)
}

// Category maps an event to the preference category its recipients are
// filtered by.
func (ek EventKey) Category() Category {
	switch ek {
	case EventKeyChatMessage:
		return CategoryChat
	case EventKeyAssignmentPosted:
		return CategoryAssignments
	case EventKeyAssignmentDeadline:
		return CategoryDeadlines
	case EventKeySubmissionGraded:
		return CategoryGrades
	case EventKeyAnnouncement:
		return CategoryAnnouncements
	default:
		return CategoryUnknown
	}
}

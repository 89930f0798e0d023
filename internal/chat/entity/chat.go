package entity

import (
	"strings"
	"time"
)

type RoomKind int16

const (
	RoomKindUnknown RoomKind = 0
	RoomKindCohort  RoomKind = 1
	RoomKindGroup   RoomKind = 2
	RoomKindDirect  RoomKind = 3
)

func RoomKindFromString(raw string) RoomKind {
	switch strings.TrimSpace(raw) {
	case "cohort":
		return RoomKindCohort
	case "group":
		return RoomKindGroup
	case "direct":
		return RoomKindDirect
	default:
		return RoomKindUnknown
	}
}

func (k RoomKind) String() string {
	switch k {
	case RoomKindCohort:
		return "cohort"
	case RoomKindGroup:
		return "group"
	case RoomKindDirect:
		return "direct"
	default:
		return "unknown"
	}
}

type Room struct {
	ID        int64
	Name      string
	Kind      RoomKind
	CohortID  *int64
	CreatedAt time.Time
}

// RoomListItem is a room plus the caller's membership view of it.
type RoomListItem struct {
	Room
	IsMuted     bool
	EmailMuted  bool
	LastReadAt  *time.Time
	UnreadCount int64
}

type Member struct {
	RoomID     int64
	UserID     int64
	IsMuted    bool
	EmailMuted bool
	LastReadAt *time.Time
}

type Message struct {
	ID         int64
	RoomID     int64
	SenderID   int64
	SenderName string
	Body       string
	CreatedAt  time.Time
}

type CreateMessage struct {
	ID       int64
	RoomID   int64
	SenderID int64
	Body     string
}

type MemberSettings struct {
	IsMuted    bool
	EmailMuted bool
}

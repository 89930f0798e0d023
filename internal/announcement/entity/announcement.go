package entity

import (
	"strings"
	"time"
)

type Scope int16

const (
	ScopeUnknown Scope = 0
	ScopeSystem  Scope = 1
	ScopeTrack   Scope = 2
	ScopeCohort  Scope = 3
)

func ScopeFromString(raw string) Scope {
	switch strings.TrimSpace(raw) {
	case "system":
		return ScopeSystem
	case "track":
		return ScopeTrack
	case "cohort":
		return ScopeCohort
	default:
		return ScopeUnknown
	}
}

func (s Scope) String() string {
	switch s {
	case ScopeSystem:
		return "system"
	case ScopeTrack:
		return "track"
	case ScopeCohort:
		return "cohort"
	default:
		return "unknown"
	}
}

type Announcement struct {
	ID          int64
	Title       string
	Body        string
	Scope       Scope
	TrackID     *int64
	CohortID    *int64
	SendEmail   bool
	PublishAt   *time.Time
	PublishedAt *time.Time
	CreatedBy   int64
	CreatedAt   time.Time
}

func (a Announcement) Published() bool {
	return a.PublishedAt != nil
}

type CreateAnnouncement struct {
	ID        int64
	Title     string
	Body      string
	Scope     Scope
	TrackID   *int64
	CohortID  *int64
	SendEmail bool
	PublishAt *time.Time
	CreatedBy int64
}

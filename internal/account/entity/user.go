package entity

import (
	"strings"
	"time"
)

type Role int16

const (
	RoleUnknown     Role = 0
	RoleStudent     Role = 1
	RoleAlumni      Role = 2
	RoleFacilitator Role = 3
	RoleAdmin       Role = 4
)

func RoleFromString(raw string) Role {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "student":
		return RoleStudent
	case "alumni":
		return RoleAlumni
	case "facilitator":
		return RoleFacilitator
	case "admin":
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleAlumni:
		return "alumni"
	case RoleFacilitator:
		return "facilitator"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Role      Role
	Status    string
	CreatedAt time.Time
}

type UserListFilter struct {
	Search string
	Role   Role
	Limit  int32
	Offset int32
}

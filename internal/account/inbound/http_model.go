package inbound

import "time"

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type UsersResponse struct {
	Total int64          `json:"total"`
	Users []UserResponse `json:"users"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}

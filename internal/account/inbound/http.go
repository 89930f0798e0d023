package inbound

import (
	"github.com/demirti/cverse-lms/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/me", end.Me)

	r.GET("/api/v1/admin/users", end.ListUsers)
	r.PUT("/api/v1/admin/users/:id/role", end.UpdateUserRole)
}

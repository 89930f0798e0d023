package inbound

import (
	"github.com/demirti/cverse-lms/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/announcements", end.ListAnnouncements)
	r.GET("/api/v1/announcements/:id", end.GetAnnouncement)

	r.GET("/api/v1/admin/announcements", end.ListAllAnnouncements)
	r.POST("/api/v1/admin/announcements", end.CreateAnnouncement)

	r.POST("/api/v1/internal/cron/announcement-sweep", end.PublishSweep)
}

package inbound

import (
	"net/http"

	"github.com/demirti/cverse-lms/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/notifications", end.ListInbox)
	r.GET("/api/v1/notifications/unread-count", end.CountUnread)
	r.PATCH("/api/v1/notifications/:id/read", end.MarkInboxRead)
	r.PUT("/api/v1/notifications/read-all", end.MarkAllInboxRead)
	r.DELETE("/api/v1/notifications/:id", end.DeleteInbox)
	r.DELETE("/api/v1/notifications", end.ClearInbox)

	r.GET("/api/v1/notifications/preferences", end.GetPreferences)
	r.PUT("/api/v1/notifications/preferences", end.UpdatePreferences)

	r.POST("/api/v1/push/subscription", end.SubscribePush)
	r.DELETE("/api/v1/push/subscription", end.UnsubscribePush)
	r.GET("/api/v1/push/vapid-key", end.VAPIDPublicKey)

	r.GET("/api/v1/admin/notification-templates", end.ListTemplates)
	r.POST("/api/v1/admin/notification-templates", end.CreateTemplate)
	r.PUT("/api/v1/admin/notification-templates/:id", end.UpdateTemplate)
	r.DELETE("/api/v1/admin/notification-templates/:id", end.DeleteTemplate)

	r.GETRaw("/api/v1/notifications/stream", http.HandlerFunc(end.StreamNotifications))
}

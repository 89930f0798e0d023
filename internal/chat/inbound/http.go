package inbound

import (
	"github.com/demirti/cverse-lms/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/chat/rooms", end.ListRooms)
	r.GET("/api/v1/chat/rooms/:id/messages", end.ListMessages)
	r.POST("/api/v1/chat/rooms/:id/messages", end.SendMessage)
	r.PUT("/api/v1/chat/rooms/:id/read", end.MarkRoomRead)
	r.PUT("/api/v1/chat/rooms/:id/settings", end.UpdateRoomSettings)
}

package inbound

import "time"

type RoomResponse struct {
	ID          int64      `json:"id,string"`
	Name        string     `json:"name"`
	Kind        string     `json:"kind"`
	IsMuted     bool       `json:"is_muted"`
	EmailMuted  bool       `json:"email_muted"`
	LastReadAt  *time.Time `json:"last_read_at"`
	UnreadCount int64      `json:"unread_count"`
}

type RoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

type MessageResponse struct {
	ID         int64     `json:"id,string"`
	RoomID     int64     `json:"room_id,string"`
	SenderID   int64     `json:"sender_id,string"`
	SenderName string    `json:"sender_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

type MessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
}

type SendMessageRequest struct {
	Body string `json:"body"`
}

type RoomSettingsRequest struct {
	IsMuted    bool `json:"is_muted"`
	EmailMuted bool `json:"email_muted"`
}

type RoomSettingsResponse struct {
	IsMuted    bool `json:"is_muted"`
	EmailMuted bool `json:"email_muted"`
}

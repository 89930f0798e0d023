package event

const ChatMessageDestination string = "chat_message"
const ChatMessageConsumerNotification string = "chat_message_notification"

type ChatMessageMessage struct {
	RoomID     int64  `json:"room_id"`
	RoomName   string `json:"room_name"`
	MessageID  int64  `json:"message_id"`
	SenderID   int64  `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Preview    string `json:"preview"`
}

package inbound

import (
	"encoding/json"
	"strconv"

	"github.com/demirti/cverse-lms/internal/chat/usecase"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// ListRooms returns the caller's chat rooms.
// @Summary List chat rooms
// @Description Returns the rooms the authenticated user belongs to, with unread counts.
// @Tags Chat
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=RoomsResponse} "Room list"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/chat/rooms [get]
func (h *HTTPEndpoint) ListRooms(r *router.Request) (any, error) {
	rooms, err := h.uc.ListRooms(r.Context())
	if err != nil {
		return nil, err
	}

	resp := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		resp = append(resp, RoomResponse{
			ID:          room.ID,
			Name:        room.Name,
			Kind:        room.Kind.String(),
			IsMuted:     room.IsMuted,
			EmailMuted:  room.EmailMuted,
			LastReadAt:  room.LastReadAt,
			UnreadCount: room.UnreadCount,
		})
	}

	return RoomsResponse{Rooms: resp}, nil
}

// ListMessages returns a page of room history.
// @Summary List room messages
// @Description Returns messages in a room, newest first, and marks the room read.
// @Tags Chat
// @Security BearerAuth
// @Produce json
// @Param id path int true "Room ID"
// @Param limit query int false "Pagination limit"
// @Param offset query int false "Pagination offset"
// @Success 200 {object} router.successResponse{data=MessagesResponse} "Message list"
// @Failure 400 {object} router.errorResponse "Invalid parameters"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not a room member"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/chat/rooms/{id}/messages [get]
func (h *HTTPEndpoint) ListMessages(r *router.Request) (any, error) {
	roomID, err := strconv.ParseInt(r.GetParam("id"), 10, 64)
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	query := r.URL.Query()
	limit, err := parseInt32(query.Get("limit"))
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}
	offset, err := parseInt32(query.Get("offset"))
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	msgs, err := h.uc.ListMessages(r.Context(), usecase.ListMessagesInput{
		RoomID: roomID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]MessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		resp = append(resp, MessageResponse{
			ID:         msg.ID,
			RoomID:     msg.RoomID,
			SenderID:   msg.SenderID,
			SenderName: msg.SenderName,
			Body:       msg.Body,
			CreatedAt:  msg.CreatedAt,
		})
	}

	return MessagesResponse{Messages: resp}, nil
}

// SendMessage posts a message into a room.
// @Summary Send chat message
// @Description Posts a message into a room the authenticated user belongs to.
// @Tags Chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param request body SendMessageRequest true "Message body"
// @Success 200 {object} router.successResponse{data=MessageResponse} "Created message"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not a room member"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Rate limit exceeded"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/chat/rooms/{id}/messages [post]
func (h *HTTPEndpoint) SendMessage(r *router.Request) (any, error) {
	roomID, err := strconv.ParseInt(r.GetParam("id"), 10, 64)
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	msg, err := h.uc.SendMessage(r.Context(), usecase.SendMessageInput{
		RoomID: roomID,
		Body:   req.Body,
	})
	if err != nil {
		return nil, err
	}

	return MessageResponse{
		ID:         msg.ID,
		RoomID:     msg.RoomID,
		SenderID:   msg.SenderID,
		SenderName: msg.SenderName,
		Body:       msg.Body,
		CreatedAt:  msg.CreatedAt,
	}, nil
}

// MarkRoomRead marks the room read for the caller.
// @Summary Mark room read
// @Description Updates the caller's last read timestamp for the room.
// @Tags Chat
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid room id"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not a room member"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/chat/rooms/{id}/read [put]
func (h *HTTPEndpoint) MarkRoomRead(r *router.Request) (any, error) {
	roomID, err := strconv.ParseInt(r.GetParam("id"), 10, 64)
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	return nil, h.uc.MarkRoomRead(r.Context(), usecase.MarkRoomReadInput{RoomID: roomID})
}

// UpdateRoomSettings replaces the caller's mute flags for the room.
// @Summary Update room settings
// @Description Replaces the caller's per-room mute flags.
// @Tags Chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param request body RoomSettingsRequest true "Room settings"
// @Success 200 {object} router.successResponse{data=RoomSettingsResponse} "Saved settings"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not a room member"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/chat/rooms/{id}/settings [put]
func (h *HTTPEndpoint) UpdateRoomSettings(r *router.Request) (any, error) {
	roomID, err := strconv.ParseInt(r.GetParam("id"), 10, 64)
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	var req RoomSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	set, err := h.uc.UpdateRoomSettings(r.Context(), usecase.UpdateRoomSettingsInput{
		RoomID:     roomID,
		IsMuted:    req.IsMuted,
		EmailMuted: req.EmailMuted,
	})
	if err != nil {
		return nil, err
	}

	return RoomSettingsResponse{IsMuted: set.IsMuted, EmailMuted: set.EmailMuted}, nil
}

func parseInt32(raw string) (int32, error) {
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}

	return int32(v), nil
}

package inbound

import (
	"strconv"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/notification/usecase"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// ListInbox returns user notifications.
// @Summary List notifications
// @Description Returns inbox notifications for the authenticated user.
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status (all|read|unread)"
// @Param limit query int false "Pagination limit"
// @Param offset query int false "Pagination offset"
// @Success 200 {object} router.successResponse{data=NotificationsResponse} "Notification list"
// @Failure 400 {object} router.errorResponse "Invalid query parameters"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications [get]
func (h *HTTPEndpoint) ListInbox(r *router.Request) (any, error) {
	query := r.URL.Query()
	limit, err := parseInt32(query.Get("limit"))
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}
	offset, err := parseInt32(query.Get("offset"))
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	items, err := h.uc.ListInbox(r.Context(), usecase.ListInboxInput{
		Status: query.Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, NotificationResponse{
			ID:        item.ID,
			EventKey:  item.EventKey.String(),
			Title:     item.Title,
			Body:      item.Body,
			Link:      item.Link,
			Data:      item.Data,
			ReadAt:    item.ReadAt,
			CreatedAt: item.CreatedAt,
		})
	}

	return NotificationsResponse{Notifications: resp}, nil
}

// CountUnread returns the unread notification count.
// @Summary Count unread notifications
// @Description Returns the number of unread notifications for the authenticated user.
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=UnreadCountResponse} "Unread count"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications/unread-count [get]
func (h *HTTPEndpoint) CountUnread(r *router.Request) (any, error) {
	count, err := h.uc.CountUnreadInbox(r.Context())
	if err != nil {
		return nil, err
	}

	return UnreadCountResponse{Count: count}, nil
}

// MarkInboxRead marks a notification as read.
// @Summary Mark notification read
// @Description Marks an inbox notification as read.
// @Tags Notification
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid notification id"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Notification not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications/{id}/read [patch]
func (h *HTTPEndpoint) MarkInboxRead(r *router.Request) (any, error) {
	id, err := strconv.ParseInt(r.GetParam("id"), 10, 64)
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	return nil, h.uc.MarkInboxRead(r.Context(), usecase.MarkInboxReadInput{ID: id})
}

// MarkAllInboxRead marks all notifications as read.
// @Summary Mark all notifications read
// @Description Marks all inbox notifications as read for the authenticated user.
// @Tags Notification
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications/read-all [put]
func (h *HTTPEndpoint) MarkAllInboxRead(r *router.Request) (any, error) {
	return nil, h.uc.MarkAllInboxRead(r.Context())
}

// DeleteInbox removes a notification.
// @Summary Delete notification
// @Description Soft deletes an inbox notification for the authenticated user.
// @Tags Notification
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid notification id"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Notification not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications/{id} [delete]
func (h *HTTPEndpoint) DeleteInbox(r *router.Request) (any, error) {
	id, err := strconv.ParseInt(r.GetParam("id"), 10, 64)
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	return nil, h.uc.DeleteInbox(r.Context(), usecase.DeleteInboxInput{ID: id})
}

// ClearInbox removes all notifications.
// @Summary Clear notifications
// @Description Soft deletes every inbox notification for the authenticated user.
// @Tags Notification
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications [delete]
func (h *HTTPEndpoint) ClearInbox(r *router.Request) (any, error) {
	return nil, h.uc.ClearInbox(r.Context())
}

// GetPreferences returns notification preferences.
// @Summary Get notification preferences
// @Description Returns the notification preference matrix for the authenticated user.
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=PreferencesPayload} "Preferences"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications/preferences [get]
func (h *HTTPEndpoint) GetPreferences(r *router.Request) (any, error) {
	prefs, err := h.uc.GetPreferences(r.Context())
	if err != nil {
		return nil, err
	}

	return preferencesPayload(prefs), nil
}

// UpdatePreferences replaces notification preferences.
// @Summary Update notification preferences
// @Description Replaces the notification preference matrix for the authenticated user.
// @Tags Notification
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body PreferencesPayload true "Preferences payload"
// @Success 200 {object} router.successResponse{data=PreferencesPayload} "Updated preferences"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications/preferences [put]
func (h *HTTPEndpoint) UpdatePreferences(r *router.Request) (any, error) {
	var req PreferencesPayload
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	prefs, err := h.uc.UpdatePreferences(r.Context(), usecase.UpdatePreferencesInput{
		EmailEnabled:       req.EmailEnabled,
		InAppEnabled:       req.InAppEnabled,
		EmailAnnouncements: req.EmailAnnouncements,
		InAppAnnouncements: req.InAppAnnouncements,
		PushAnnouncements:  req.PushAnnouncements,
		EmailChat:          req.EmailChat,
		InAppChat:          req.InAppChat,
		PushChat:           req.PushChat,
		EmailAssignments:   req.EmailAssignments,
		InAppAssignments:   req.InAppAssignments,
		PushAssignments:    req.PushAssignments,
		EmailGrades:        req.EmailGrades,
		InAppGrades:        req.InAppGrades,
		PushGrades:         req.PushGrades,
		EmailDeadlines:     req.EmailDeadlines,
		InAppDeadlines:     req.InAppDeadlines,
		PushDeadlines:      req.PushDeadlines,
	})
	if err != nil {
		return nil, err
	}

	return preferencesPayload(prefs), nil
}

// SubscribePush stores a web push subscription.
// @Summary Subscribe to push
// @Description Stores a browser push subscription for the authenticated user.
// @Tags Push
// @Security BearerAuth
// @Accept json
// @Param request body SubscribePushRequest true "Push subscription payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/push/subscription [post]
func (h *HTTPEndpoint) SubscribePush(r *router.Request) (any, error) {
	var req SubscribePushRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.SubscribePush(r.Context(), usecase.SubscribePushInput{
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	})
}

// UnsubscribePush removes a web push subscription.
// @Summary Unsubscribe from push
// @Description Removes a browser push subscription for the authenticated user.
// @Tags Push
// @Security BearerAuth
// @Accept json
// @Param request body UnsubscribePushRequest true "Push unsubscription payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Subscription not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/push/subscription [delete]
func (h *HTTPEndpoint) UnsubscribePush(r *router.Request) (any, error) {
	var req UnsubscribePushRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.UnsubscribePush(r.Context(), usecase.UnsubscribePushInput{Endpoint: req.Endpoint})
}

// VAPIDPublicKey returns the VAPID public key.
// @Summary Get VAPID public key
// @Description Returns the VAPID public key browsers subscribe with.
// @Tags Push
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=VAPIDKeyResponse} "VAPID key"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Router /api/v1/push/vapid-key [get]
func (h *HTTPEndpoint) VAPIDPublicKey(r *router.Request) (any, error) {
	key, err := h.uc.VAPIDPublicKey(r.Context())
	if err != nil {
		return nil, err
	}

	return VAPIDKeyResponse{PublicKey: key}, nil
}

// ListTemplates returns notification templates.
// @Summary List notification templates
// @Description Returns all notification templates. Admin only.
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=TemplatesResponse} "Template list"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/notification-templates [get]
func (h *HTTPEndpoint) ListTemplates(r *router.Request) (any, error) {
	items, err := h.uc.ListTemplates(r.Context())
	if err != nil {
		return nil, err
	}

	resp := make([]TemplateResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, TemplateResponse{
			ID:            item.ID,
			EventKey:      item.EventKey.String(),
			TitleTemplate: item.TitleTemplate,
			BodyTemplate:  item.BodyTemplate,
			InAppEnabled:  item.InAppEnabled,
			EmailEnabled:  item.EmailEnabled,
		})
	}

	return TemplatesResponse{Templates: resp}, nil
}

// CreateTemplate creates a notification template.
// @Summary Create notification template
// @Description Creates a notification template for an event key. Admin only.
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Param request body UpsertTemplateRequest true "Template payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 409 {object} router.errorResponse "Template already exists"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/notification-templates [post]
func (h *HTTPEndpoint) CreateTemplate(r *router.Request) (any, error) {
	var req UpsertTemplateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.CreateTemplate(r.Context(), usecase.CreateTemplateInput{
		EventKey:      req.EventKey,
		TitleTemplate: req.TitleTemplate,
		BodyTemplate:  req.BodyTemplate,
		InAppEnabled:  boolOrTrue(req.InAppEnabled),
		EmailEnabled:  boolOrTrue(req.EmailEnabled),
	})
}

// UpdateTemplate updates a notification template.
// @Summary Update notification template
// @Description Updates a notification template. Admin only.
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Param id path int true "Template ID"
// @Param request body UpsertTemplateRequest true "Template payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Template not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/notification-templates/{id} [put]
func (h *HTTPEndpoint) UpdateTemplate(r *router.Request) (any, error) {
	id, err := strconv.ParseInt(r.GetParam("id"), 10, 64)
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	var req UpsertTemplateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.UpdateTemplate(r.Context(), usecase.UpdateTemplateInput{
		ID:            id,
		EventKey:      req.EventKey,
		TitleTemplate: req.TitleTemplate,
		BodyTemplate:  req.BodyTemplate,
		InAppEnabled:  boolOrTrue(req.InAppEnabled),
		EmailEnabled:  boolOrTrue(req.EmailEnabled),
	})
}

// DeleteTemplate deletes a notification template.
// @Summary Delete notification template
// @Description Deletes a notification template. Admin only.
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid template id"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Template not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/notification-templates/{id} [delete]
func (h *HTTPEndpoint) DeleteTemplate(r *router.Request) (any, error) {
	id, err := strconv.ParseInt(r.GetParam("id"), 10, 64)
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	return nil, h.uc.DeleteTemplate(r.Context(), usecase.DeleteTemplateInput{ID: id})
}

func parseInt32(raw string) (int32, error) {
	if raw == "" {
		return 0, nil
	}

	val, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}

	return int32(val), nil
}

func boolOrTrue(v *bool) bool {
	if v == nil {
		return true
	}

	return *v
}

func preferencesPayload(prefs entity.Preferences) PreferencesPayload {
	return PreferencesPayload{
		EmailEnabled:       prefs.EmailEnabled,
		InAppEnabled:       prefs.InAppEnabled,
		EmailAnnouncements: prefs.EmailAnnouncements,
		InAppAnnouncements: prefs.InAppAnnouncements,
		PushAnnouncements:  prefs.PushAnnouncements,
		EmailChat:          prefs.EmailChat,
		InAppChat:          prefs.InAppChat,
		PushChat:           prefs.PushChat,
		EmailAssignments:   prefs.EmailAssignments,
		InAppAssignments:   prefs.InAppAssignments,
		PushAssignments:    prefs.PushAssignments,
		EmailGrades:        prefs.EmailGrades,
		InAppGrades:        prefs.InAppGrades,
		PushGrades:         prefs.PushGrades,
		EmailDeadlines:     prefs.EmailDeadlines,
		InAppDeadlines:     prefs.InAppDeadlines,
		PushDeadlines:      prefs.PushDeadlines,
	}
}

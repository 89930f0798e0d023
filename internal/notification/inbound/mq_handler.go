package inbound

import (
	"context"
	"encoding/json"
	"log/slog"
	"runtime/debug"

	"github.com/demirti/cverse-lms/internal/notification/usecase"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/messaging"
	"github.com/demirti/cverse-lms/internal/pkg/uid"
	"github.com/demirti/cverse-lms/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// guard is the top-level boundary around a consumer: whatever happens inside
// the pipeline, the message is acked and the producer is unaffected.
func (h *MQHandler) guard(ctx context.Context, name string, body []byte, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic in notification consumer",
				"consumer", name, "msg_body", string(body), "panic", r, "stack", string(debug.Stack()))
		}
	}()

	if err := fn(); err != nil {
		slog.ErrorContext(ctx, "failed to consume notification event",
			"consumer", name, "msg_body", string(body), "error", err)
	}
}

func (h *MQHandler) ChatMessageNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "ChatMessageNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: chat message notification", "msg_body", string(body))

	var payload event.ChatMessageMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of chat message notification", "msg_body", string(body), "error", err)
		return nil
	}

	h.guard(ctx, "chat_message", body, func() error {
		return h.uc.ConsumeChatMessage(ctx, usecase.ConsumeChatMessageInput{
			RoomID:     payload.RoomID,
			RoomName:   payload.RoomName,
			MessageID:  payload.MessageID,
			SenderID:   payload.SenderID,
			SenderName: payload.SenderName,
			Preview:    payload.Preview,
		})
	})

	return nil
}

func (h *MQHandler) AnnouncementNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "AnnouncementNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: announcement notification", "msg_body", string(body))

	var payload event.AnnouncementPublishedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of announcement notification", "msg_body", string(body), "error", err)
		return nil
	}

	h.guard(ctx, "announcement_published", body, func() error {
		return h.uc.ConsumeAnnouncement(ctx, usecase.ConsumeAnnouncementInput{
			AnnouncementID: payload.AnnouncementID,
			Title:          payload.Title,
			Preview:        payload.Preview,
			Scope:          payload.Scope,
			TrackID:        payload.TrackID,
			CohortID:       payload.CohortID,
			SendEmail:      payload.SendEmail,
			ActorID:        payload.ActorID,
		})
	})

	return nil
}

func (h *MQHandler) AssignmentPostedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "AssignmentPostedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: assignment posted notification", "msg_body", string(body))

	var payload event.AssignmentPostedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of assignment posted notification", "msg_body", string(body), "error", err)
		return nil
	}

	h.guard(ctx, "assignment_posted", body, func() error {
		return h.uc.ConsumeAssignmentPosted(ctx, usecase.ConsumeAssignmentPostedInput{
			AssignmentID: payload.AssignmentID,
			CohortID:     payload.CohortID,
			Title:        payload.Title,
			DueAt:        payload.DueAt,
			ActorID:      payload.ActorID,
		})
	})

	return nil
}

func (h *MQHandler) AssignmentDeadlineNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "AssignmentDeadlineNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: assignment deadline notification", "msg_body", string(body))

	var payload event.AssignmentDeadlineMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of assignment deadline notification", "msg_body", string(body), "error", err)
		return nil
	}

	h.guard(ctx, "assignment_deadline", body, func() error {
		return h.uc.ConsumeAssignmentDeadline(ctx, usecase.ConsumeAssignmentDeadlineInput{
			AssignmentID: payload.AssignmentID,
			CohortID:     payload.CohortID,
			Title:        payload.Title,
			DueAt:        payload.DueAt,
		})
	})

	return nil
}

func (h *MQHandler) SubmissionGradedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "SubmissionGradedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: submission graded notification", "msg_body", string(body))

	var payload event.SubmissionGradedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of submission graded notification", "msg_body", string(body), "error", err)
		return nil
	}

	h.guard(ctx, "submission_graded", body, func() error {
		return h.uc.ConsumeSubmissionGraded(ctx, usecase.ConsumeSubmissionGradedInput{
			SubmissionID:    payload.SubmissionID,
			AssignmentID:    payload.AssignmentID,
			AssignmentTitle: payload.AssignmentTitle,
			StudentID:       payload.StudentID,
			Score:           payload.Score,
			MaxScore:        payload.MaxScore,
			GraderID:        payload.GraderID,
		})
	})

	return nil
}

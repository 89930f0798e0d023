package mq

import (
	"context"
	"encoding/json"

	"github.com/demirti/cverse-lms/internal/course/entity"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/messaging"
	"github.com/demirti/cverse-lms/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) publish(ctx context.Context, destination string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	_, err = m.client.Publish(ctx, destination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	})

	return err
}

func (m *Messaging) PublishAssignmentPosted(ctx context.Context, a entity.Assignment, actorID int64) error {
	ctx, span := m.ins.Tracer("course.outbound.mq").Start(ctx, "PublishAssignmentPosted")
	defer span.End()

	err := m.publish(ctx, event.AssignmentPostedDestination, event.AssignmentPostedMessage{
		AssignmentID: a.ID,
		CohortID:     a.CohortID,
		Title:        a.Title,
		DueAt:        a.DueAt,
		ActorID:      actorID,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishAssignmentDeadline(ctx context.Context, a entity.Assignment) error {
	ctx, span := m.ins.Tracer("course.outbound.mq").Start(ctx, "PublishAssignmentDeadline")
	defer span.End()

	err := m.publish(ctx, event.AssignmentDeadlineDestination, event.AssignmentDeadlineMessage{
		AssignmentID: a.ID,
		CohortID:     a.CohortID,
		Title:        a.Title,
		DueAt:        a.DueAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishSubmissionGraded(ctx context.Context, sub entity.Submission, assignmentTitle string, maxScore int32) error {
	ctx, span := m.ins.Tracer("course.outbound.mq").Start(ctx, "PublishSubmissionGraded")
	defer span.End()

	var score int32
	if sub.Score != nil {
		score = *sub.Score
	}
	var graderID int64
	if sub.GradedBy != nil {
		graderID = *sub.GradedBy
	}

	err := m.publish(ctx, event.SubmissionGradedDestination, event.SubmissionGradedMessage{
		SubmissionID:    sub.ID,
		AssignmentID:    sub.AssignmentID,
		AssignmentTitle: assignmentTitle,
		StudentID:       sub.StudentID,
		Score:           score,
		MaxScore:        maxScore,
		GraderID:        graderID,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

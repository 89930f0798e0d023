package inbound

import (
	"context"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/notification/usecase"
)

type ucConsumer interface {
	ConsumeChatMessage(ctx context.Context, in usecase.ConsumeChatMessageInput) error
	ConsumeAnnouncement(ctx context.Context, in usecase.ConsumeAnnouncementInput) error
	ConsumeAssignmentPosted(ctx context.Context, in usecase.ConsumeAssignmentPostedInput) error
	ConsumeAssignmentDeadline(ctx context.Context, in usecase.ConsumeAssignmentDeadlineInput) error
	ConsumeSubmissionGraded(ctx context.Context, in usecase.ConsumeSubmissionGradedInput) error
}

type ucStream interface {
	StreamNotifications(ctx context.Context, userID int64) <-chan usecase.StreamEvent
}

type uc interface {
	ucConsumer
	ucStream

	ListInbox(ctx context.Context, in usecase.ListInboxInput) ([]entity.InboxItem, error)
	CountUnreadInbox(ctx context.Context) (int64, error)
	MarkInboxRead(ctx context.Context, in usecase.MarkInboxReadInput) error
	MarkAllInboxRead(ctx context.Context) error
	DeleteInbox(ctx context.Context, in usecase.DeleteInboxInput) error
	ClearInbox(ctx context.Context) error

	GetPreferences(ctx context.Context) (entity.Preferences, error)
	UpdatePreferences(ctx context.Context, in usecase.UpdatePreferencesInput) (entity.Preferences, error)

	SubscribePush(ctx context.Context, in usecase.SubscribePushInput) error
	UnsubscribePush(ctx context.Context, in usecase.UnsubscribePushInput) error
	VAPIDPublicKey(ctx context.Context) (string, error)

	ListTemplates(ctx context.Context) ([]entity.Template, error)
	CreateTemplate(ctx context.Context, in usecase.CreateTemplateInput) error
	UpdateTemplate(ctx context.Context, in usecase.UpdateTemplateInput) error
	DeleteTemplate(ctx context.Context, in usecase.DeleteTemplateInput) error
}

package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

func (s *Usecase) ListTemplates(ctx context.Context) (_ []entity.Template, err error) {
	ctx, span := s.startSpan(ctx, "ListTemplates")
	defer span.End()

	if _, err := s.requireAuth(ctx); err != nil {
		return nil, err
	}

	items, err := s.repoDB.ListTemplates(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list templates", "error", err)
		return nil, goerror.NewServer(err)
	}

	return items, nil
}

type CreateTemplateInput struct {
	EventKey      string `validate:"required,max=100"`
	TitleTemplate string `validate:"required,max=255"`
	BodyTemplate  string `validate:"required"`
	InAppEnabled  bool
	EmailEnabled  bool
}

func (s *Usecase) CreateTemplate(ctx context.Context, in CreateTemplateInput) error {
	ctx, span := s.startSpan(ctx, "CreateTemplate")
	defer span.End()

	if _, err := s.requireAuth(ctx); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.CreateTemplate(ctx, entity.UpsertTemplate{
		ID:            s.uid.Generate(),
		EventKey:      entity.EventKey(in.EventKey),
		TitleTemplate: in.TitleTemplate,
		BodyTemplate:  in.BodyTemplate,
		InAppEnabled:  in.InAppEnabled,
		EmailEnabled:  in.EmailEnabled,
	})
	if errors.Is(err, goerror.ErrConflict) {
		return goerror.NewBusiness("template already exists for event key", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create template", "event_key", in.EventKey, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type UpdateTemplateInput struct {
	ID            int64  `validate:"required,gt=0"`
	EventKey      string `validate:"required,max=100"`
	TitleTemplate string `validate:"required,max=255"`
	BodyTemplate  string `validate:"required"`
	InAppEnabled  bool
	EmailEnabled  bool
}

func (s *Usecase) UpdateTemplate(ctx context.Context, in UpdateTemplateInput) error {
	ctx, span := s.startSpan(ctx, "UpdateTemplate")
	defer span.End()

	if _, err := s.requireAuth(ctx); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	updated, err := s.repoDB.UpdateTemplate(ctx, entity.UpsertTemplate{
		ID:            in.ID,
		EventKey:      entity.EventKey(in.EventKey),
		TitleTemplate: in.TitleTemplate,
		BodyTemplate:  in.BodyTemplate,
		InAppEnabled:  in.InAppEnabled,
		EmailEnabled:  in.EmailEnabled,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update template", "template_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}
	if !updated {
		return goerror.NewBusiness("template not found", goerror.CodeNotFound)
	}

	return nil
}

type DeleteTemplateInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) DeleteTemplate(ctx context.Context, in DeleteTemplateInput) error {
	ctx, span := s.startSpan(ctx, "DeleteTemplate")
	defer span.End()

	if _, err := s.requireAuth(ctx); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	deleted, err := s.repoDB.DeleteTemplate(ctx, in.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete template", "template_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}
	if !deleted {
		return goerror.NewBusiness("template not found", goerror.CodeNotFound)
	}

	return nil
}

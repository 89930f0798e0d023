package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
)

// resolveTemplate renders the stored template for an event. When no template
// row exists, or the lookup fails, it falls back to the provided title and
// body with every channel enabled so a missing row never drops deliveries.
func (s *Usecase) resolveTemplate(ctx context.Context, key entity.EventKey, fallbackTitle, fallbackBody string, values map[string]string) entity.ResolvedTemplate {
	resolved := entity.ResolvedTemplate{
		Title:        renderTokens(fallbackTitle, values),
		Body:         renderTokens(fallbackBody, values),
		InAppEnabled: true,
		EmailEnabled: true,
	}

	tpl, err := s.repoDB.GetTemplateByEventKey(ctx, key)
	if errors.Is(err, goerror.ErrNotFound) {
		return resolved
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get template by event key", "event_key", key.String(), "error", err)
		return resolved
	}

	resolved.Title = renderTokens(tpl.TitleTemplate, values)
	resolved.Body = renderTokens(tpl.BodyTemplate, values)
	resolved.InAppEnabled = tpl.InAppEnabled
	resolved.EmailEnabled = tpl.EmailEnabled

	return resolved
}

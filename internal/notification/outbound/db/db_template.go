package db

import (
	"context"

	"github.com/demirti/cverse-lms/internal/notification/entity"
)

func (s *DB) GetTemplateByEventKey(ctx context.Context, key entity.EventKey) (_ *entity.Template, err error) {
	ctx, span := s.startSpan(ctx, "GetTemplateByEventKey")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, event_key, title_template, body_template, in_app_enabled, email_enabled
		FROM notification_templates
		WHERE event_key = $1`

	var tpl entity.Template
	err = s.conn.QueryRow(ctx, query, key.String()).Scan(
		&tpl.ID, &tpl.EventKey, &tpl.TitleTemplate, &tpl.BodyTemplate, &tpl.InAppEnabled, &tpl.EmailEnabled,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &tpl, nil
}

func (s *DB) ListTemplates(ctx context.Context) (_ []entity.Template, err error) {
	ctx, span := s.startSpan(ctx, "ListTemplates")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, event_key, title_template, body_template, in_app_enabled, email_enabled
		FROM notification_templates
		ORDER BY event_key`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var items []entity.Template
	for rows.Next() {
		var tpl entity.Template
		if err = rows.Scan(&tpl.ID, &tpl.EventKey, &tpl.TitleTemplate, &tpl.BodyTemplate, &tpl.InAppEnabled, &tpl.EmailEnabled); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, tpl)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) CreateTemplate(ctx context.Context, data entity.UpsertTemplate) (err error) {
	ctx, span := s.startSpan(ctx, "CreateTemplate")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO notification_templates (id, event_key, title_template, body_template, in_app_enabled, email_enabled)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = s.conn.Exec(ctx, query,
		data.ID, data.EventKey.String(), data.TitleTemplate, data.BodyTemplate, data.InAppEnabled, data.EmailEnabled,
	)
	return s.mapError(err)
}

func (s *DB) UpdateTemplate(ctx context.Context, data entity.UpsertTemplate) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UpdateTemplate")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE notification_templates
		SET event_key = $2, title_template = $3, body_template = $4, in_app_enabled = $5, email_enabled = $6, updated_at = now()
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query,
		data.ID, data.EventKey.String(), data.TitleTemplate, data.BodyTemplate, data.InAppEnabled, data.EmailEnabled,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *DB) DeleteTemplate(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "DeleteTemplate")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM notification_templates WHERE id = $1`, id)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

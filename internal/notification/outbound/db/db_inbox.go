package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/demirti/cverse-lms/internal/notification/entity"
)

func (s *DB) CreateInboxBulk(ctx context.Context, items []entity.CreateInboxItem) (err error) {
	ctx, span := s.startSpan(ctx, "CreateInboxBulk")
	defer func() { s.endSpan(span, err) }()

	if len(items) == 0 {
		return nil
	}

	const query = `
		INSERT INTO notifications (id, user_id, event_key, title, body, link, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.UserID, item.EventKey.String(), item.Title, item.Body, item.Link, item.Data)
	}

	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return s.mapError(err)
	}

	return tx.Commit(ctx)
}

func (s *DB) ListInbox(ctx context.Context, userID int64, status entity.InboxStatus, limit, offset int32) (_ []entity.InboxItem, err error) {
	ctx, span := s.startSpan(ctx, "ListInbox")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, event_key, title, body, link, data, read_at, created_at
		FROM notifications
		WHERE user_id = $1 AND deleted_at IS NULL`

	switch status {
	case entity.InboxStatusUnread:
		query += ` AND read_at IS NULL`
	case entity.InboxStatusRead:
		query += ` AND read_at IS NOT NULL`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := s.conn.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	items := make([]entity.InboxItem, 0, limit)
	for rows.Next() {
		var item entity.InboxItem
		if err = rows.Scan(&item.ID, &item.EventKey, &item.Title, &item.Body, &item.Link, &item.Data, &item.ReadAt, &item.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) CountUnreadInbox(ctx context.Context, userID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountUnreadInbox")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT count(*) FROM notifications
		WHERE user_id = $1 AND read_at IS NULL AND deleted_at IS NULL`

	var count int64
	err = s.conn.QueryRow(ctx, query, userID).Scan(&count)
	return count, s.mapError(err)
}

func (s *DB) MarkInboxRead(ctx context.Context, userID, notificationID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "MarkInboxRead")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE notifications SET read_at = now()
		WHERE id = $1 AND user_id = $2 AND read_at IS NULL AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *DB) MarkAllInboxRead(ctx context.Context, userID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "MarkAllInboxRead")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE notifications SET read_at = now()
		WHERE user_id = $1 AND read_at IS NULL AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, userID)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}

func (s *DB) DeleteInbox(ctx context.Context, userID, notificationID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "DeleteInbox")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE notifications SET deleted_at = now()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *DB) ClearInbox(ctx context.Context, userID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "ClearInbox")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE notifications SET deleted_at = now()
		WHERE user_id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, userID)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}

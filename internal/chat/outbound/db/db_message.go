package db

import (
	"context"

	"github.com/demirti/cverse-lms/internal/chat/entity"
)

func (s *DB) CreateMessage(ctx context.Context, msg entity.CreateMessage) (err error) {
	ctx, span := s.startSpan(ctx, "CreateMessage")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO chat_messages (id, room_id, sender_id, body)
		VALUES ($1, $2, $3, $4)`

	_, err = s.conn.Exec(ctx, query, msg.ID, msg.RoomID, msg.SenderID, msg.Body)
	return s.mapError(err)
}

func (s *DB) ListMessages(ctx context.Context, roomID int64, limit, offset int32) (_ []entity.Message, err error) {
	ctx, span := s.startSpan(ctx, "ListMessages")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT m.id, m.room_id, m.sender_id, u.first_name, m.body, m.created_at
		FROM chat_messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.room_id = $1
		ORDER BY m.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.conn.Query(ctx, query, roomID, limit, offset)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var msgs []entity.Message
	for rows.Next() {
		var m entity.Message
		if err = rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.SenderName, &m.Body, &m.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		msgs = append(msgs, m)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return msgs, nil
}

func (s *DB) GetUserName(ctx context.Context, userID int64) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "GetUserName")
	defer func() { s.endSpan(span, err) }()

	var name string
	err = s.conn.QueryRow(ctx, `SELECT first_name FROM users WHERE id = $1`, userID).Scan(&name)
	if err != nil {
		return "", s.mapError(err)
	}

	return name, nil
}

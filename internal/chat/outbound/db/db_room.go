package db

import (
	"context"
	"time"

	"github.com/demirti/cverse-lms/internal/chat/entity"
)

func (s *DB) GetRoom(ctx context.Context, roomID int64) (_ *entity.Room, err error) {
	ctx, span := s.startSpan(ctx, "GetRoom")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, name, kind, cohort_id, created_at
		FROM chat_rooms
		WHERE id = $1`

	var (
		room entity.Room
		kind string
	)
	err = s.conn.QueryRow(ctx, query, roomID).
		Scan(&room.ID, &room.Name, &kind, &room.CohortID, &room.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}
	room.Kind = entity.RoomKindFromString(kind)

	return &room, nil
}

func (s *DB) ListRooms(ctx context.Context, userID int64) (_ []entity.RoomListItem, err error) {
	ctx, span := s.startSpan(ctx, "ListRooms")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT r.id, r.name, r.kind, r.cohort_id, r.created_at,
			m.is_muted, m.email_muted, m.last_read_at,
			(
				SELECT count(*) FROM chat_messages msg
				WHERE msg.room_id = r.id
					AND msg.sender_id <> m.user_id
					AND (m.last_read_at IS NULL OR msg.created_at > m.last_read_at)
			) AS unread_count
		FROM chat_rooms r
		JOIN chat_room_members m ON m.room_id = r.id
		WHERE m.user_id = $1
		ORDER BY r.name`

	rows, err := s.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var items []entity.RoomListItem
	for rows.Next() {
		var (
			item entity.RoomListItem
			kind string
		)
		err = rows.Scan(
			&item.ID, &item.Name, &kind, &item.CohortID, &item.CreatedAt,
			&item.IsMuted, &item.EmailMuted, &item.LastReadAt, &item.UnreadCount,
		)
		if err != nil {
			return nil, s.mapError(err)
		}
		item.Kind = entity.RoomKindFromString(kind)
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) GetMember(ctx context.Context, roomID, userID int64) (_ *entity.Member, err error) {
	ctx, span := s.startSpan(ctx, "GetMember")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT room_id, user_id, is_muted, email_muted, last_read_at
		FROM chat_room_members
		WHERE room_id = $1 AND user_id = $2`

	var m entity.Member
	err = s.conn.QueryRow(ctx, query, roomID, userID).
		Scan(&m.RoomID, &m.UserID, &m.IsMuted, &m.EmailMuted, &m.LastReadAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &m, nil
}

func (s *DB) UpdateMemberSettings(ctx context.Context, roomID, userID int64, set entity.MemberSettings) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UpdateMemberSettings")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE chat_room_members
		SET is_muted = $3, email_muted = $4
		WHERE room_id = $1 AND user_id = $2`

	tag, err := s.conn.Exec(ctx, query, roomID, userID, set.IsMuted, set.EmailMuted)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *DB) MarkRoomRead(ctx context.Context, roomID, userID int64, at time.Time) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "MarkRoomRead")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE chat_room_members
		SET last_read_at = $3
		WHERE room_id = $1 AND user_id = $2`

	tag, err := s.conn.Exec(ctx, query, roomID, userID, at)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

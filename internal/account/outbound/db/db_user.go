package db

import (
	"context"
	"strconv"

	"github.com/demirti/cverse-lms/internal/account/entity"
)

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, email, first_name, last_name, role, status, created_at
		FROM users
		WHERE id = $1`

	var (
		u    entity.User
		role string
	)
	err = s.conn.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &role, &u.Status, &u.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}
	u.Role = entity.RoleFromString(role)

	return &u, nil
}

func (s *DB) ListUsers(ctx context.Context, filter entity.UserListFilter) (_ []entity.User, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListUsers")
	defer func() { s.endSpan(span, err) }()

	where := ` WHERE 1=1`
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += ` AND (email ILIKE $` + itoa(n) + ` OR first_name ILIKE $` + itoa(n) + ` OR last_name ILIKE $` + itoa(n) + `)`
	}
	if filter.Role != entity.RoleUnknown {
		args = append(args, filter.Role.String())
		where += ` AND role = $` + itoa(len(args))
	}

	var total int64
	if err = s.conn.QueryRow(ctx, `SELECT count(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `SELECT id, email, first_name, last_name, role, status, created_at FROM users` + where +
		` ORDER BY created_at DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var (
			u    entity.User
			role string
		)
		if err = rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &role, &u.Status, &u.CreatedAt); err != nil {
			return nil, 0, s.mapError(err)
		}
		u.Role = entity.RoleFromString(role)
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return users, total, nil
}

func (s *DB) UpdateUserRole(ctx context.Context, id int64, role entity.Role) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserRole")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, role.String())
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

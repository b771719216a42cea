package repo

import (
	"context"
	"errors"
	"time"

	"ems/internal/pagination"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var ErrNotFound = errors.New("not found")

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string
	Department   string
	Position     string
	HiredAt      *time.Time
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const userColumns = `id, email, password_hash, name, role, status, department, position,
        hired_at, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var item User
	var hiredAt, lastLoginAt pgtype.Timestamptz
	err := row.Scan(
		&item.ID,
		&item.Email,
		&item.PasswordHash,
		&item.Name,
		&item.Role,
		&item.Status,
		&item.Department,
		&item.Position,
		&hiredAt,
		&lastLoginAt,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item.HiredAt = timePtr(hiredAt)
	item.LastLoginAt = timePtr(lastLoginAt)
	return &item, nil
}

func (r *User) GetByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE lower(email) = lower($1)", email))
}

func (r *User) GetByID(ctx context.Context, id int64) (*User, error) {
	return scanUser(DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (r *User) Count(ctx context.Context) (int, error) {
	var total int
	err := DB.QueryRow(ctx, "SELECT count(*) FROM users").Scan(&total)
	return total, err
}

func (r *User) List(ctx context.Context, p pagination.Pager) ([]User, int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	rows, err := DB.Query(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY name, id LIMIT $1 OFFSET $2",
		p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []User
	for rows.Next() {
		item, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *item)
	}
	return list, total, rows.Err()
}

func (r *User) UpdateName(ctx context.Context, id int64, name string) error {
	tag, err := DB.Exec(ctx,
		"UPDATE users SET name = $1, updated_at = $2 WHERE id = $3",
		name, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *User) UpdateLastLogin(ctx context.Context, id int64, loggedAt time.Time) error {
	_, err := DB.Exec(ctx,
		"UPDATE users SET last_login_at = $1, updated_at = $2 WHERE id = $3",
		loggedAt, loggedAt, id)
	return err
}

func timePtr(value pgtype.Timestamptz) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time
	return &t
}

package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Body      string
	Link      string
	ReadAt    *time.Time
	CreatedAt time.Time
}

func (n Notification) Unread() bool {
	return n.ReadAt == nil
}

func (r *Notification) ListByUser(ctx context.Context, userID int64, limit int) ([]Notification, error) {
	rows, err := DB.Query(ctx,
		`SELECT id, user_id, title, body, link, read_at, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Notification
	for rows.Next() {
		var item Notification
		var readAt pgtype.Timestamptz
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Body, &item.Link, &readAt, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.ReadAt = timePtr(readAt)
		list = append(list, item)
	}
	return list, rows.Err()
}

func (r *Notification) CountUnread(ctx context.Context, userID int64) (int, error) {
	var total int
	err := DB.QueryRow(ctx,
		"SELECT count(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL",
		userID).Scan(&total)
	return total, err
}

// MarkRead only touches notifications owned by userID.
func (r *Notification) MarkRead(ctx context.Context, userID, id int64) error {
	tag, err := DB.Exec(ctx,
		"UPDATE notifications SET read_at = $1 WHERE id = $2 AND user_id = $3 AND read_at IS NULL",
		time.Now(), id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

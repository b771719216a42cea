package repo

import (
	"context"
	"errors"
	"time"

	"ems/internal/pagination"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrNotCheckedIn     = errors.New("no open check-in for today")
)

type Attendance struct {
	ID         int64
	UserID     int64
	WorkDate   time.Time
	CheckInAt  time.Time
	CheckOutAt *time.Time
}

// Hours is the worked time, or zero while the day is still open.
func (a Attendance) Hours() float64 {
	if a.CheckOutAt == nil {
		return 0
	}
	return a.CheckOutAt.Sub(a.CheckInAt).Hours()
}

type AttendanceSummary struct {
	UserID     int64
	Name       string
	Email      string
	Department string
	Days       int
	Hours      float64
}

func (r *Attendance) ListByUser(ctx context.Context, p pagination.Pager, userID int64) ([]Attendance, int, error) {
	var total int
	if err := DB.QueryRow(ctx, "SELECT count(*) FROM attendance WHERE user_id = $1", userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := DB.Query(ctx,
		`SELECT id, user_id, work_date, check_in_at, check_out_at
		FROM attendance
		WHERE user_id = $1
		ORDER BY work_date DESC
		LIMIT $2 OFFSET $3`,
		userID, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []Attendance
	for rows.Next() {
		var item Attendance
		var checkOut pgtype.Timestamptz
		if err := rows.Scan(&item.ID, &item.UserID, &item.WorkDate, &item.CheckInAt, &checkOut); err != nil {
			return nil, 0, err
		}
		item.CheckOutAt = timePtr(checkOut)
		list = append(list, item)
	}
	return list, total, rows.Err()
}

func (r *Attendance) CheckIn(ctx context.Context, userID int64, at time.Time) error {
	tag, err := DB.Exec(ctx,
		`INSERT INTO attendance (user_id, work_date, check_in_at)
		VALUES ($1, $2::date, $2)
		ON CONFLICT (user_id, work_date) DO NOTHING`,
		userID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyCheckedIn
	}
	return nil
}

func (r *Attendance) CheckOut(ctx context.Context, userID int64, at time.Time) error {
	tag, err := DB.Exec(ctx,
		`UPDATE attendance SET check_out_at = $2
		WHERE user_id = $1 AND work_date = $2::date AND check_out_at IS NULL`,
		userID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotCheckedIn
	}
	return nil
}

// Summary aggregates attendance per employee for the given period.
func (r *Attendance) Summary(ctx context.Context, from, to time.Time) ([]AttendanceSummary, error) {
	rows, err := DB.Query(ctx,
		`SELECT u.id, u.name, u.email, u.department,
		        count(a.id),
		        COALESCE(sum(EXTRACT(EPOCH FROM (a.check_out_at - a.check_in_at))) / 3600, 0)::float8
		FROM users u
		LEFT JOIN attendance a
		       ON a.user_id = u.id AND a.work_date >= $1::date AND a.work_date <= $2::date
		GROUP BY u.id, u.name, u.email, u.department
		ORDER BY u.name, u.id`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []AttendanceSummary
	for rows.Next() {
		var item AttendanceSummary
		if err := rows.Scan(&item.UserID, &item.Name, &item.Email, &item.Department, &item.Days, &item.Hours); err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Today returns the record for the calendar day of now, or ErrNotFound.
func (r *Attendance) Today(ctx context.Context, userID int64, now time.Time) (*Attendance, error) {
	var item Attendance
	var checkOut pgtype.Timestamptz
	err := DB.QueryRow(ctx,
		`SELECT id, user_id, work_date, check_in_at, check_out_at
		FROM attendance
		WHERE user_id = $1 AND work_date = $2::date`,
		userID, now).Scan(&item.ID, &item.UserID, &item.WorkDate, &item.CheckInAt, &checkOut)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item.CheckOutAt = timePtr(checkOut)
	return &item, nil
}

package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Payslip amounts are stored in cents.
type Payslip struct {
	ID         int64
	UserID     int64
	Period     time.Time
	Gross      int64
	Deductions int64
	Net        int64
	PaidAt     *time.Time
}

func (r *Payslip) ListByUser(ctx context.Context, userID int64, limit int) ([]Payslip, error) {
	rows, err := DB.Query(ctx,
		`SELECT id, user_id, period, gross_cents, deduction_cents, gross_cents - deduction_cents, paid_at
		FROM payslips
		WHERE user_id = $1
		ORDER BY period DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Payslip
	for rows.Next() {
		var item Payslip
		var paidAt pgtype.Timestamptz
		if err := rows.Scan(&item.ID, &item.UserID, &item.Period, &item.Gross, &item.Deductions, &item.Net, &paidAt); err != nil {
			return nil, err
		}
		item.PaidAt = timePtr(paidAt)
		list = append(list, item)
	}
	return list, rows.Err()
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/pkg/apierror"
)

type TransferRepository struct {
	pool *pgxpool.Pool
}

func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

const transferColumns = `tr.id, tr.status, tr.reason, tr.teacher_id,
	tr.from_school_id, tr.to_school_id, tr.created_at, tr.updated_at`

func scanTransfer(row pgx.Row) (model.Transfer, error) {
	var tr model.Transfer
	err := row.Scan(&tr.ID, &tr.Status, &tr.Reason, &tr.TeacherID,
		&tr.FromSchoolID, &tr.ToSchoolID, &tr.CreatedAt, &tr.UpdatedAt)
	return tr, err
}

func (r *TransferRepository) List(ctx context.Context) ([]model.Transfer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+transferColumns+` FROM transfers tr ORDER BY tr.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	transfers := make([]model.Transfer, 0)
	for rows.Next() {
		tr, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		transfers = append(transfers, tr)
	}
	return transfers, rows.Err()
}

func (r *TransferRepository) FindByID(ctx context.Context, id int64) (model.Transfer, error) {
	tr, err := scanTransfer(r.pool.QueryRow(ctx,
		`SELECT `+transferColumns+` FROM transfers tr WHERE tr.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Transfer{}, apierror.New("NOT_FOUND", "transfer not found", strconv.FormatInt(id, 10), http.StatusNotFound)
	}
	if err != nil {
		return model.Transfer{}, fmt.Errorf("find transfer by id: %w", err)
	}
	return tr, nil
}

func (r *TransferRepository) Create(ctx context.Context, tr model.Transfer) (model.Transfer, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO transfers (status, reason, teacher_id, from_school_id, to_school_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		tr.Status, tr.Reason, tr.TeacherID, tr.FromSchoolID, tr.ToSchoolID, tr.CreatedAt, tr.UpdatedAt).
		Scan(&tr.ID)
	if err != nil {
		return model.Transfer{}, fmt.Errorf("create transfer: %w", err)
	}
	return tr, nil
}

// UpdateStatus moves a transfer to next only when the row is still in the
// expected current status. The guard keeps two racing approvals from both
// succeeding.
func (r *TransferRepository) UpdateStatus(ctx context.Context, id int64, current model.TransferStatus, next model.TransferStatus, reason string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE transfers SET status = $3, reason = $4, updated_at = $5
		 WHERE id = $1 AND status = $2`,
		id, current, next, reason, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.New("CONFLICT", "transfer status changed concurrently", strconv.FormatInt(id, 10), http.StatusConflict)
	}
	return nil
}

func (r *TransferRepository) CountByStatus(ctx context.Context, status model.TransferStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transfers WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transfers: %w", err)
	}
	return count, nil
}

// MonthlyBreakdown groups transfers by calendar month. Headteacher-stage
// statuses count toward the matching final bucket so the dashboard chart
// stays three-series.
func (r *TransferRepository) MonthlyBreakdown(ctx context.Context) ([]model.MonthBreakdown, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(created_at, 'YYYY-MM') AS month,
		       COUNT(*) FILTER (WHERE status = 'pending') AS pending,
		       COUNT(*) FILTER (WHERE status IN ('approved', 'headteacher_approved')) AS approved,
		       COUNT(*) FILTER (WHERE status IN ('rejected', 'headteacher_rejected')) AS rejected
		FROM transfers
		GROUP BY month
		ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("monthly breakdown: %w", err)
	}
	defer rows.Close()

	breakdown := make([]model.MonthBreakdown, 0)
	for rows.Next() {
		var mb model.MonthBreakdown
		if err := rows.Scan(&mb.Month, &mb.Pending, &mb.Approved, &mb.Rejected); err != nil {
			return nil, fmt.Errorf("scan breakdown: %w", err)
		}
		breakdown = append(breakdown, mb)
	}
	return breakdown, rows.Err()
}

// Recent returns the newest transfers with the teacher's name, for the
// notifications feed.
func (r *TransferRepository) Recent(ctx context.Context, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx, `
		SELECT tr.id, tr.status, t.first_name || ' ' || t.last_name, tr.updated_at
		FROM transfers tr
		JOIN teachers t ON t.id = tr.teacher_id
		ORDER BY tr.updated_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent transfers: %w", err)
	}
	defer rows.Close()

	feed := make([]model.Notification, 0, limit)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.TeacherName, &n.Date); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		feed = append(feed, n)
	}
	return feed, rows.Err()
}

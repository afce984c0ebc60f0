package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/domainerr"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/reservation"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/transaction"
)

// uniqueViolation はPostgreSQLの一意性制約違反コード
const uniqueViolation = "23505"

type reservationRow struct {
	ID           string         `db:"id"`
	CustomerID   string         `db:"customer_id"`
	StartDate    time.Time      `db:"start_date"`
	EndDate      time.Time      `db:"end_date"`
	Status       string         `db:"status"`
	CancelReason sql.NullString `db:"cancel_reason"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type ReservationRepository struct{ db *sqlx.DB }

func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("トランザクションが不正です")
	}
	query := `INSERT INTO reservations (id, customer_id, start_date, end_date, status, cancel_reason, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := sqlxTx.ExecContext(ctx, query,
		res.ID, res.CustomerID, res.StartDate, res.EndDate,
		res.Status.String(), nullableReason(res.CancelReason), res.CreatedAt, res.UpdatedAt)
	if err != nil {
		// 同一顧客・同一開始日時の重複はストレージ側で検出され、競合として返す
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && string(pgErr.Code) == uniqueViolation {
			return domainerr.NewConflictError(res.CustomerID + "/" + res.StartDate.Format(time.RFC3339))
		}
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	var row reservationRow
	query := `SELECT id, customer_id, start_date, end_date, status, cancel_reason, created_at, updated_at
	          FROM reservations WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainerr.NewNotFoundError("予約", id)
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return toEntity(&row)
}

func (r *ReservationRepository) GetByCustomerID(ctx context.Context, customerID string) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT id, customer_id, start_date, end_date, status, cancel_reason, created_at, updated_at
	          FROM reservations WHERE customer_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, customerID); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	result := make([]*reservation.Reservation, len(rows))
	for i := range rows {
		entity, err := toEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		result[i] = entity
	}
	return result, nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("トランザクションが不正です")
	}
	query := `UPDATE reservations SET status = $1, cancel_reason = $2, updated_at = $3 WHERE id = $4`
	result, err := sqlxTx.ExecContext(ctx, query,
		res.Status.String(), nullableReason(res.CancelReason), res.UpdatedAt, res.ID)
	if err != nil {
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domainerr.NewNotFoundError("予約", res.ID)
	}
	return nil
}

func (r *ReservationRepository) GetStartedUnconfirmed(ctx context.Context, now time.Time) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT id, customer_id, start_date, end_date, status, cancel_reason, created_at, updated_at
	          FROM reservations WHERE status = 'created' AND start_date < $1`
	if err := r.db.SelectContext(ctx, &rows, query, now); err != nil {
		return nil, fmt.Errorf("未確定予約取得に失敗: %w", err)
	}
	result := make([]*reservation.Reservation, len(rows))
	for i := range rows {
		entity, err := toEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		result[i] = entity
	}
	return result, nil
}

// toEntity は行データから集約を復元する
// 格納名からの Status 復元はここ（永続化側）が所有する
func toEntity(row *reservationRow) (*reservation.Reservation, error) {
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("格納されたステータスが不正です: %w", err)
	}
	return &reservation.Reservation{
		ID:           row.ID,
		CustomerID:   row.CustomerID,
		StartDate:    row.StartDate,
		EndDate:      row.EndDate,
		Status:       status,
		CancelReason: row.CancelReason.String,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func nullableReason(reason string) sql.NullString {
	return sql.NullString{String: reason, Valid: reason != ""}
}

var _ reservation.Repository = (*ReservationRepository)(nil)

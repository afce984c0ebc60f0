package application

import (
	"context"
	"time"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/domainerr"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/reservation"
)

// ReservationDTO は呼び出し側へ返す予約の表現
type ReservationDTO struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Status       string    `json:"status"`
	CancelReason string    `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReservationResult はコマンドの構造化された結果
// ドメインエラーはここで文言に変換され、生のエラーは呼び出し側へ渡らない
type ReservationResult struct {
	Success      bool            `json:"success"`
	Reservation  *ReservationDTO `json:"reservation,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

// ReservationListResult はクエリの結果
type ReservationListResult struct {
	Success      bool             `json:"success"`
	Reservations []ReservationDTO `json:"reservations,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`
}

// StaleCancelResult はクリーンアップの結果
type StaleCancelResult struct {
	Cancelled int `json:"cancelled"`
}

// Cache は顧客別予約一覧のキャッシュ（Redis実装は任意）
// キャッシュ障害は結果に影響させず、ログに留める
type Cache interface {
	// GetList は一覧を取得する（ok=false はキャッシュミス）
	GetList(ctx context.Context, customerID string) ([]ReservationDTO, bool, error)
	// SetList は一覧を保存する
	SetList(ctx context.Context, customerID string, list []ReservationDTO) error
	// InvalidateList は一覧を無効化する
	InvalidateList(ctx context.Context, customerID string) error
}

func toReservationDTO(r *reservation.Reservation) *ReservationDTO {
	return &ReservationDTO{
		ID:           r.ID,
		CustomerID:   r.CustomerID,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Status:       r.Status.String(),
		CancelReason: r.CancelReason,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// failureResult はドメインエラーを失敗結果へ変換する
// 5種別を網羅的に判別し、それ以外（インフラ障害）は ok=false で
// 呼び出し側がエラーとして伝播させる
func failureResult(err error) (ReservationResult, bool) {
	kind, ok := domainerr.KindOf(err)
	if !ok {
		return ReservationResult{}, false
	}
	var msg string
	switch kind {
	case domainerr.KindValidation:
		msg = err.Error()
	case domainerr.KindInvalidState:
		msg = err.Error()
	case domainerr.KindBusinessRule:
		msg = err.Error()
	case domainerr.KindConflict:
		msg = "同一条件の予約が既に存在します"
	case domainerr.KindNotFound:
		msg = err.Error()
	}
	return ReservationResult{Success: false, ErrorMessage: msg}, true
}

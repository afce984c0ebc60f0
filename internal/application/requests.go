package application

import "time"

// CreateReservationCommand は予約作成の意図を表す
type CreateReservationCommand struct {
	CustomerID string    `json:"customer_id" validate:"required,notblank"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

func (CreateReservationCommand) RequestName() string { return "CreateReservation" }

// ConfirmReservationCommand は予約確定の意図を表す
type ConfirmReservationCommand struct {
	ReservationID string `json:"reservation_id" validate:"required"`
}

func (ConfirmReservationCommand) RequestName() string { return "ConfirmReservation" }

// CancelReservationCommand は予約キャンセルの意図を表す
// Reason は任意だが、指定する場合に空白のみは認めない
type CancelReservationCommand struct {
	ReservationID string `json:"reservation_id" validate:"required"`
	Reason        string `json:"reason,omitempty" validate:"omitempty,notblank"`
}

func (CancelReservationCommand) RequestName() string { return "CancelReservation" }

// GetReservationsQuery は顧客の予約一覧取得を表す（副作用なし）
type GetReservationsQuery struct {
	CustomerID string `json:"customer_id" validate:"required,notblank"`
}

func (GetReservationsQuery) RequestName() string { return "GetReservations" }

// CancelStaleReservationsCommand は開始日時を過ぎても未確定の
// 予約を一括キャンセルする（クリーンアップワーカーが発行）
type CancelStaleReservationsCommand struct{}

func (CancelStaleReservationsCommand) RequestName() string { return "CancelStaleReservations" }

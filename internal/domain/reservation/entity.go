package reservation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/domainerr"
)

// Policy は予約作成時の検証パラメーター
// 最小リードタイムは呼び出し側の方針で1時間〜1日の間で設定する
type Policy struct {
	// MinStartLead は現在時刻から開始日時までに必要な最小の猶予
	MinStartLead time.Duration
	// MaxSpan は予約期間（endDate - startDate）の上限
	MaxSpan time.Duration
}

// DefaultPolicy は既定の検証パラメーター（猶予1時間、期間上限365日）
var DefaultPolicy = Policy{
	MinStartLead: time.Hour,
	MaxSpan:      365 * 24 * time.Hour,
}

// RuleNoCancelAfterStart は確定済み予約を開始日時以降に
// キャンセルすることを禁止するビジネスルール名
const RuleNoCancelAfterStart = "NoCancelAfterStart"

// Reservation は予約の集約ルート
// フィールドの変更は自身の操作（Confirm / Cancel）を通じてのみ行う
type Reservation struct {
	ID           string
	CustomerID   string
	StartDate    time.Time
	EndDate      time.Time
	Status       Status
	CancelReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New は検証済みの予約を作成するファクトリ
// いずれかの不変条件に違反する場合は ValidationError を返し、
// 部分的に構築された集約は決して返さない
// 違反は最初の1件で止めず、全フィールド分を収集する
func New(customerID string, startDate, endDate, now time.Time, policy Policy) (*Reservation, error) {
	var fields []domainerr.FieldError

	if strings.TrimSpace(customerID) == "" {
		fields = append(fields, domainerr.FieldError{
			Field: "customerId", Reason: "必須です",
		})
	}
	if !startDate.Before(endDate) {
		fields = append(fields, domainerr.FieldError{
			Field: "endDate", Reason: "開始日時より後である必要があります",
		})
	}
	if startDate.Before(now.Add(policy.MinStartLead)) {
		fields = append(fields, domainerr.FieldError{
			Field: "startDate", Reason: "現在時刻から十分先の日時を指定してください",
		})
	}
	if endDate.Sub(startDate) > policy.MaxSpan {
		fields = append(fields, domainerr.FieldError{
			Field: "endDate", Reason: "予約期間が上限を超えています",
		})
	}
	if len(fields) > 0 {
		return nil, domainerr.NewValidationError(fields...)
	}

	return &Reservation{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     StatusCreated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Confirm は予約を確定する
// Created 以外の状態からは InvalidStateError になる
func (r *Reservation) Confirm(now time.Time) error {
	if !r.Status.CanTransitionTo(StatusConfirmed) {
		return domainerr.NewInvalidStateError(r.Status.String(), "confirm")
	}
	r.Status = StatusConfirmed
	r.UpdatedAt = now
	return nil
}

// Cancel は予約をキャンセルする
// 遷移表で許可されない場合は InvalidStateError、
// 確定済み予約の開始日時を過ぎている場合は
// NoCancelAfterStart のビジネスルール違反になる
// reason は監査用に記録する（空白のみの reason の検証は境界側の責務）
func (r *Reservation) Cancel(now time.Time, reason string) error {
	if !r.Status.CanTransitionTo(StatusCancelled) {
		return domainerr.NewInvalidStateError(r.Status.String(), "cancel")
	}
	if r.Status == StatusConfirmed && !r.StartDate.After(now) {
		return domainerr.NewBusinessRuleViolationError(RuleNoCancelAfterStart)
	}
	r.Status = StatusCancelled
	r.CancelReason = reason
	r.UpdatedAt = now
	return nil
}

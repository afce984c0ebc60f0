package reservation

import (
	"context"
	"time"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
// 同一集約への並行更新の直列化は実装側（ストレージ）の責務であり、
// 競合は domainerr.ConflictError として返す
type Repository interface {
	// Create は新しい予約を保存する（トランザクション必須）
	// 一意性制約の違反は ConflictError になる
	Create(ctx context.Context, tx transaction.Tx, r *Reservation) error

	// GetByID はIDから予約を取得する
	// 見つからない場合は NotFoundError になる
	GetByID(ctx context.Context, id string) (*Reservation, error)

	// GetByCustomerID は顧客IDから予約一覧を取得する
	GetByCustomerID(ctx context.Context, customerID string) ([]*Reservation, error)

	// Update は予約を更新する（トランザクション必須）
	// 対象が存在しない場合は NotFoundError になる
	Update(ctx context.Context, tx transaction.Tx, r *Reservation) error

	// GetStartedUnconfirmed は開始日時を過ぎても未確定のままの
	// 予約を取得する（クリーンアップワーカー用）
	GetStartedUnconfirmed(ctx context.Context, now time.Time) ([]*Reservation, error)
}

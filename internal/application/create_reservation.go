package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/reservation"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/transaction"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/pkg/logger"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/pkg/metrics"
)

// CreateReservationHandler は予約作成コマンドを処理する
type CreateReservationHandler struct {
	repo    reservation.Repository
	txm     transaction.Manager
	cache   Cache
	metrics *metrics.Metrics
	policy  reservation.Policy
	clock   func() time.Time
}

func NewCreateReservationHandler(
	repo reservation.Repository,
	txm transaction.Manager,
	cache Cache,
	m *metrics.Metrics,
	policy reservation.Policy,
) *CreateReservationHandler {
	return &CreateReservationHandler{
		repo: repo, txm: txm, cache: cache, metrics: m,
		policy: policy, clock: time.Now,
	}
}

// Handle は集約のファクトリを呼び、成功時にトランザクションで永続化する
// ドメインエラーは失敗結果へ変換され、インフラ障害のみ error として返る
func (h *CreateReservationHandler) Handle(ctx context.Context, cmd CreateReservationCommand) (ReservationResult, error) {
	res, err := reservation.New(cmd.CustomerID, cmd.StartDate, cmd.EndDate, h.clock(), h.policy)
	if err != nil {
		if result, ok := failureResult(err); ok {
			return result, nil
		}
		return ReservationResult{}, err
	}

	tx, err := h.txm.Begin(ctx)
	if err != nil {
		return ReservationResult{}, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := h.repo.Create(ctx, tx, res); err != nil {
		if result, ok := failureResult(err); ok {
			return result, nil
		}
		return ReservationResult{}, fmt.Errorf("予約作成に失敗: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return ReservationResult{}, fmt.Errorf("コミットに失敗: %w", err)
	}

	if h.metrics != nil {
		h.metrics.ReservationsByStatus.WithLabelValues(reservation.StatusCreated.String()).Inc()
	}
	invalidateList(ctx, h.cache, res.CustomerID)

	return ReservationResult{Success: true, Reservation: toReservationDTO(res)}, nil
}

// invalidateList はキャッシュの無効化を試みる
// 結果の正しさには関わらないため、失敗はログに留める
func invalidateList(ctx context.Context, cache Cache, customerID string) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateList(ctx, customerID); err != nil {
		logger.Warn("予約一覧キャッシュの無効化に失敗",
			zap.String("customer_id", customerID), zap.Error(err))
	}
}

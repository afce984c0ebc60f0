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

// staleCancelReason は自動キャンセル時に監査用に残す理由
const staleCancelReason = "開始日時までに確定されなかったため自動キャンセル"

// CancelStaleReservationsHandler は開始日時を過ぎても未確定の
// 予約を一括キャンセルする
type CancelStaleReservationsHandler struct {
	repo    reservation.Repository
	txm     transaction.Manager
	cache   Cache
	metrics *metrics.Metrics
	clock   func() time.Time
}

func NewCancelStaleReservationsHandler(
	repo reservation.Repository,
	txm transaction.Manager,
	cache Cache,
	m *metrics.Metrics,
) *CancelStaleReservationsHandler {
	return &CancelStaleReservationsHandler{
		repo: repo, txm: txm, cache: cache, metrics: m, clock: time.Now,
	}
}

func (h *CancelStaleReservationsHandler) Handle(ctx context.Context, _ CancelStaleReservationsCommand) (StaleCancelResult, error) {
	now := h.clock()

	stale, err := h.repo.GetStartedUnconfirmed(ctx, now)
	if err != nil {
		return StaleCancelResult{}, fmt.Errorf("未確定予約の取得に失敗: %w", err)
	}
	if len(stale) == 0 {
		return StaleCancelResult{}, nil
	}

	tx, err := h.txm.Begin(ctx)
	if err != nil {
		return StaleCancelResult{}, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	cancelled := 0
	for _, r := range stale {
		if err := r.Cancel(now, staleCancelReason); err != nil {
			// 競合などで既に終端状態になっていた場合は飛ばす
			logger.Warn("未確定予約のキャンセルを飛ばしました",
				zap.String("reservation_id", r.ID), zap.Error(err))
			continue
		}
		if err := h.repo.Update(ctx, tx, r); err != nil {
			return StaleCancelResult{}, fmt.Errorf("予約更新に失敗: %w", err)
		}
		invalidateList(ctx, h.cache, r.CustomerID)
		cancelled++
	}

	if err := tx.Commit(); err != nil {
		return StaleCancelResult{}, fmt.Errorf("コミットに失敗: %w", err)
	}

	if h.metrics != nil && cancelled > 0 {
		h.metrics.StaleReservationsCancelled.Add(float64(cancelled))
		h.metrics.ReservationsByStatus.WithLabelValues(reservation.StatusCreated.String()).Sub(float64(cancelled))
		h.metrics.ReservationsByStatus.WithLabelValues(reservation.StatusCancelled.String()).Add(float64(cancelled))
	}

	return StaleCancelResult{Cancelled: cancelled}, nil
}

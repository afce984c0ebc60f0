package application

import (
	"context"
	"fmt"
	"time"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/reservation"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/transaction"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/pkg/metrics"
)

// ConfirmReservationHandler は予約確定コマンドを処理する
type ConfirmReservationHandler struct {
	repo    reservation.Repository
	txm     transaction.Manager
	cache   Cache
	metrics *metrics.Metrics
	clock   func() time.Time
}

func NewConfirmReservationHandler(
	repo reservation.Repository,
	txm transaction.Manager,
	cache Cache,
	m *metrics.Metrics,
) *ConfirmReservationHandler {
	return &ConfirmReservationHandler{
		repo: repo, txm: txm, cache: cache, metrics: m, clock: time.Now,
	}
}

func (h *ConfirmReservationHandler) Handle(ctx context.Context, cmd ConfirmReservationCommand) (ReservationResult, error) {
	res, err := h.repo.GetByID(ctx, cmd.ReservationID)
	if err != nil {
		// 対象なしは例外ではなく失敗結果として返す
		if result, ok := failureResult(err); ok {
			return result, nil
		}
		return ReservationResult{}, fmt.Errorf("予約取得に失敗: %w", err)
	}

	if err := res.Confirm(h.clock()); err != nil {
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

	if err := h.repo.Update(ctx, tx, res); err != nil {
		if result, ok := failureResult(err); ok {
			return result, nil
		}
		return ReservationResult{}, fmt.Errorf("予約更新に失敗: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return ReservationResult{}, fmt.Errorf("コミットに失敗: %w", err)
	}

	if h.metrics != nil {
		h.metrics.ReservationsByStatus.WithLabelValues(reservation.StatusCreated.String()).Dec()
		h.metrics.ReservationsByStatus.WithLabelValues(reservation.StatusConfirmed.String()).Inc()
	}
	invalidateList(ctx, h.cache, res.CustomerID)

	return ReservationResult{Success: true, Reservation: toReservationDTO(res)}, nil
}

package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/reservation"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/pkg/logger"
)

// GetReservationsHandler は顧客の予約一覧クエリを処理する
// キャッシュがあればリードスルーで利用する
type GetReservationsHandler struct {
	repo  reservation.Repository
	cache Cache
}

func NewGetReservationsHandler(repo reservation.Repository, cache Cache) *GetReservationsHandler {
	return &GetReservationsHandler{repo: repo, cache: cache}
}

func (h *GetReservationsHandler) Handle(ctx context.Context, q GetReservationsQuery) (ReservationListResult, error) {
	if h.cache != nil {
		list, ok, err := h.cache.GetList(ctx, q.CustomerID)
		if err != nil {
			logger.Warn("予約一覧キャッシュの取得に失敗",
				zap.String("customer_id", q.CustomerID), zap.Error(err))
		} else if ok {
			return ReservationListResult{Success: true, Reservations: list}, nil
		}
	}

	items, err := h.repo.GetByCustomerID(ctx, q.CustomerID)
	if err != nil {
		if _, ok := failureResult(err); ok {
			return ReservationListResult{Success: false, ErrorMessage: err.Error()}, nil
		}
		return ReservationListResult{}, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}

	list := make([]ReservationDTO, len(items))
	for i, r := range items {
		list[i] = *toReservationDTO(r)
	}

	if h.cache != nil {
		if err := h.cache.SetList(ctx, q.CustomerID, list); err != nil {
			logger.Warn("予約一覧キャッシュの保存に失敗",
				zap.String("customer_id", q.CustomerID), zap.Error(err))
		}
	}

	return ReservationListResult{Success: true, Reservations: list}, nil
}

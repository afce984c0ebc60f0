package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/pkg/logger"
)

// StaleDispatcher は未確定のまま開始日時を過ぎた予約の一括キャンセルを実行するインターフェース
type StaleDispatcher interface {
	CancelStaleReservations(ctx context.Context) (int, error)
}

// StaleReservationCanceller は開始日時までに確定されなかった予約を
// 定期的にキャンセルするワーカー
type StaleReservationCanceller struct {
	dispatcher StaleDispatcher
	interval   time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// NewStaleReservationCanceller は新しいワーカーを作成
func NewStaleReservationCanceller(d StaleDispatcher, interval time.Duration) *StaleReservationCanceller {
	return &StaleReservationCanceller{
		dispatcher: d,
		interval:   interval,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start はワーカーを開始
func (w *StaleReservationCanceller) Start(ctx context.Context) {
	logger.Info("未確定予約キャンセルワーカー開始",
		zap.Duration("interval", w.interval),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("未確定予約キャンセルワーカー停止（コンテキストキャンセル）")
			return
		case <-w.stopCh:
			logger.Info("未確定予約キャンセルワーカー停止（シグナル受信）")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// Stop はワーカーを停止
func (w *StaleReservationCanceller) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

// sweep は対象予約をキャンセル
func (w *StaleReservationCanceller) sweep(ctx context.Context) {
	log := logger.Get()
	log.Debug("未確定予約の確認開始")

	count, err := w.dispatcher.CancelStaleReservations(ctx)
	if err != nil {
		log.Error("未確定予約のキャンセル失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("未確定予約をキャンセル", zap.Int("count", count))
	} else {
		log.Debug("対象の予約なし")
	}
}

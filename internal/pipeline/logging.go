package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/domainerr"
)

// LoggingBehavior はリクエスト名・結果・所要時間を継続の前後で記録する
// 失敗時はエラー種別を記録してそのまま返す（結果を握り潰したり
// 書き換えたりしない）
type LoggingBehavior struct {
	log *zap.Logger
}

// NewLoggingBehavior はロギング Behavior を作成する
func NewLoggingBehavior(log *zap.Logger) *LoggingBehavior {
	return &LoggingBehavior{log: log}
}

func (b *LoggingBehavior) Handle(ctx context.Context, req Request, next Next) (any, error) {
	start := time.Now()

	out, err := next(ctx)

	elapsed := time.Since(start)
	fields := []zap.Field{
		zap.String("request", req.RequestName()),
		zap.Duration("elapsed", elapsed),
	}

	if err != nil {
		if kind, ok := domainerr.KindOf(err); ok {
			b.log.Warn("リクエスト失敗",
				append(fields, zap.String("kind", string(kind)), zap.Error(err))...)
		} else {
			// 5種別のいずれでもないエラーはインフラ障害として高い深刻度で記録
			b.log.Error("リクエスト処理中にインフラ障害",
				append(fields, zap.Error(err))...)
		}
		return out, err
	}

	b.log.Info("リクエスト完了", fields...)
	return out, nil
}

package pipeline

import (
	"context"
	"fmt"
)

// Request はパイプラインを通過するコマンド／クエリの共通インターフェース
// リフレクションを避けるため、各リクエストが自身の名前を明示する
type Request interface {
	RequestName() string
}

// Next はチェーンの残り（最終的にはハンドラー自身）を実行する継続
type Next func(ctx context.Context) (any, error)

// Behavior はリクエスト実行を包む横断的な振る舞い
// リクエスト型には依存しない
type Behavior interface {
	Handle(ctx context.Context, req Request, next Next) (any, error)
}

// Handler は1つのコマンド／クエリを処理するハンドラー
type Handler[R Request, T any] interface {
	Handle(ctx context.Context, req R) (T, error)
}

// Pipeline は順序付きの Behavior チェーン
// プロセス起動時に一度構築され、以降は読み取り専用なので
// 並行リクエストから同期なしで共有できる
type Pipeline struct {
	behaviors []Behavior
}

// New は指定した順序で Behavior を適用するパイプラインを作成する
// 順序には意味がある：バリデーションがハンドラー計時のログより先に
// 走ることで、拒否されたリクエストにハンドラーのレイテンシが乗らない
func New(behaviors ...Behavior) *Pipeline {
	return &Pipeline{behaviors: behaviors}
}

func (p *Pipeline) run(ctx context.Context, req Request, terminal Next) (any, error) {
	next := terminal
	for i := len(p.behaviors) - 1; i >= 0; i-- {
		b := p.behaviors[i]
		inner := next
		next = func(ctx context.Context) (any, error) {
			return b.Handle(ctx, req, inner)
		}
	}
	return next(ctx)
}

// Execute はリクエストをパイプライン経由でハンドラーまで通す
// リクエストとレスポンスの対応は型パラメーターで表現する
func Execute[R Request, T any](ctx context.Context, p *Pipeline, h Handler[R, T], req R) (T, error) {
	var zero T
	out, err := p.run(ctx, req, func(ctx context.Context) (any, error) {
		return h.Handle(ctx, req)
	})
	if err != nil {
		return zero, err
	}
	res, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("ハンドラーの戻り値の型が不正です: %s", req.RequestName())
	}
	return res, nil
}

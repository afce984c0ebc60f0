package transaction

import "context"

// Tx はトランザクション境界（作業単位）を表すインターフェース
// ドメイン層がインフラ層（sqlx等）に依存しないようにするための抽象化
// 一連の永続化操作はコミットでまとめて確定するか、ロールバックで破棄する
type Tx interface {
	// Commit はトランザクションをコミットする
	// 失敗した場合、呼び出し側は必ず Rollback してから失敗を上位へ返す
	Commit() error
	// Rollback はトランザクションをロールバックする
	Rollback() error
}

// Manager はトランザクションを開始するインターフェース
type Manager interface {
	// Begin は新しいトランザクションを開始する
	// キャンセルは ctx を通じてこのI/O境界でのみ確認される
	Begin(ctx context.Context) (Tx, error)
}

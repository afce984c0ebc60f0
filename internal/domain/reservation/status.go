package reservation

import (
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/domainerr"
)

// Status は予約の状態を表す
type Status string

const (
	StatusCreated   Status = "created"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// transitions は合法な状態遷移の静的テーブル
// プロセス起動時に一度構築され、以降は読み取り専用
var transitions = map[Status][]Status{
	StatusCreated:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

// CanTransitionTo は遷移表に基づいて next への遷移可否を返す
// 副作用はない
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal は以降の遷移が存在しない終端状態かを返す
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// String は永続化にも使われる正規名を返す
func (s Status) String() string {
	return string(s)
}

// ParseStatus は格納名から Status を復元する
// 未知の名前は NotFound 種別のエラーになる
func ParseStatus(name string) (Status, error) {
	switch Status(name) {
	case StatusCreated, StatusConfirmed, StatusCancelled:
		return Status(name), nil
	}
	return "", domainerr.NewNotFoundError("予約ステータス", name)
}

package domainerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind はドメインエラーの種別を表す
// この5種別以外のエラーはすべてインフラ障害として扱う
type Kind string

const (
	KindValidation   Kind = "validation"
	KindInvalidState Kind = "invalid_state"
	KindBusinessRule Kind = "business_rule"
	KindConflict     Kind = "conflict"
	KindNotFound     Kind = "not_found"
)

// FieldError は単一フィールドのバリデーション失敗を表す
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError は入力値の検証失敗を表す
// 最初の失敗で止めず、全フィールドの失敗を保持する
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "入力値が不正です"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return "入力値が不正です: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Kind() Kind { return KindValidation }

// InvalidStateError は状態遷移表で許可されていない操作を表す
type InvalidStateError struct {
	CurrentState string
	Operation    string
}

func NewInvalidStateError(currentState, operation string) *InvalidStateError {
	return &InvalidStateError{CurrentState: currentState, Operation: operation}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("状態 %s では操作 %s は実行できません", e.CurrentState, e.Operation)
}

func (e *InvalidStateError) Kind() Kind { return KindInvalidState }

// BusinessRuleViolationError は状態遷移表では許可されるが
// 横断的なビジネスルールによって禁止される操作を表す
type BusinessRuleViolationError struct {
	Rule string
}

func NewBusinessRuleViolationError(rule string) *BusinessRuleViolationError {
	return &BusinessRuleViolationError{Rule: rule}
}

func (e *BusinessRuleViolationError) Error() string {
	return fmt.Sprintf("ビジネスルール %s に違反しています", e.Rule)
}

func (e *BusinessRuleViolationError) Kind() Kind { return KindBusinessRule }

// ConflictError は一意性制約や同時更新の競合を表す
// 発生源はストレージ側のコラボレーターであり、コアは検出しない
type ConflictError struct {
	ID string
}

func NewConflictError(id string) *ConflictError {
	return &ConflictError{ID: id}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("競合が発生しました: %s", e.ID)
}

func (e *ConflictError) Kind() Kind { return KindConflict }

// NotFoundError は対象が存在しないことを表す
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s が見つかりません: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Kind() Kind { return KindNotFound }

// kinded はドメインエラー種別を持つエラーの共通インターフェース
type kinded interface {
	error
	Kind() Kind
}

// KindOf はエラーのドメイン種別を返す
// 5種別のいずれでもない場合は ok=false（＝インフラ障害）
func KindOf(err error) (Kind, bool) {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind(), true
	}
	return "", false
}

// IsDomain はエラーがドメインエラー種別であるかを返す
func IsDomain(err error) bool {
	_, ok := KindOf(err)
	return ok
}

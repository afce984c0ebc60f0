package pipeline

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/domainerr"
)

// Rule はリクエスト型固有の追加バリデーション
// 失敗したフィールドの一覧を返す（なければ空）
type Rule func(req Request) []domainerr.FieldError

// ValidationBehavior はハンドラー実行前に全バリデーションを走らせる
// 最初の失敗で止めず、全フィールドの失敗を収集してから
// ValidationError で短絡する（ハンドラーは実行されない）
// 登録済みのバリデーションがないリクエストはそのまま通過する
type ValidationBehavior struct {
	validate *validator.Validate
	rules    map[string][]Rule
}

// NewValidationBehavior はバリデーション Behavior を作成する
func NewValidationBehavior() *ValidationBehavior {
	v := validator.New()

	// json タグ名で失敗フィールドを報告する
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// notblank: 指定された場合に空白のみを拒否する（omitempty と併用）
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &ValidationBehavior{
		validate: v,
		rules:    make(map[string][]Rule),
	}
}

// RegisterRule はリクエスト名に対する追加バリデーションを登録する
// 起動時にのみ呼び出すこと（以降は読み取り専用）
func (b *ValidationBehavior) RegisterRule(requestName string, rule Rule) {
	b.rules[requestName] = append(b.rules[requestName], rule)
}

func (b *ValidationBehavior) Handle(ctx context.Context, req Request, next Next) (any, error) {
	var fields []domainerr.FieldError

	if err := b.validate.StructCtx(ctx, req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			// タグ定義の誤りなど、入力値起因でない失敗はインフラ障害
			return nil, fmt.Errorf("バリデーション実行に失敗: %w", err)
		}
		for _, fe := range verrs {
			fields = append(fields, domainerr.FieldError{
				Field:  fe.Field(),
				Reason: reasonFor(fe),
			})
		}
	}

	for _, rule := range b.rules[req.RequestName()] {
		fields = append(fields, rule(req)...)
	}

	if len(fields) > 0 {
		return nil, domainerr.NewValidationError(fields...)
	}
	return next(ctx)
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "必須です"
	case "notblank":
		return "空白のみは指定できません"
	case "gtfield":
		return fmt.Sprintf("%s より後である必要があります", fe.Param())
	case "min":
		return fmt.Sprintf("%s 以上を指定してください", fe.Param())
	case "max":
		return fmt.Sprintf("%s 以下を指定してください", fe.Param())
	default:
		return fmt.Sprintf("制約 %s を満たしていません", fe.Tag())
	}
}

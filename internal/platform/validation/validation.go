// Package validation 在写入存储前校验实体上的 validate 标签
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/go-playground/validator/v10"
)

// slugPattern 限制对外标识只含字母、数字、下划线和连字符，它们会出现在URL和文件名中
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return IsSlug(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

// IsSlug 报告 s 是否是合法的业务标识
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Struct 校验结构体，失败时返回包装了 apperr.ErrValidation 的错误
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s 不满足 %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", apperr.ErrValidation, strings.Join(msgs, "; "))
}

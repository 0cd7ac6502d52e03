package domain

import "errors"

// 错误类别；具体消息放在 *Error 里
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

func Validation(msg string) error { return &Error{Kind: ErrValidation, Msg: msg} }
func NotFound(msg string) error   { return &Error{Kind: ErrNotFound, Msg: msg} }
func Forbidden(msg string) error  { return &Error{Kind: ErrForbidden, Msg: msg} }

// Models 自动迁移用
func Models() []any { return []any{&Category{}, &Restaurant{}, &User{}} }

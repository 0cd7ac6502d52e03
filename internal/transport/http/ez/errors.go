package ez

import (
	"context"
	"errors"
	"net/http"

	"restaurant-admin/internal/domain"
)

// AErr 传输层错误（参数不合法等）；业务错误用 domain.Error
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// Status 错误 → HTTP 状态码
func Status(err error) int {
	var ae *AErr
	switch {
	case errors.As(err, &ae):
		return ae.Code
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Message 展示给用户的文案；5xx 不暴露底层错误
func Message(err error) string {
	var ae *AErr
	if errors.As(err, &ae) && ae.Msg != "" {
		return ae.Msg
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Error()
	}
	if code := Status(err); code >= 500 {
		return http.StatusText(code)
	}
	return err.Error()
}

// Package flash 一次性提示消息：重定向前写入，下一次渲染时取出并清除。
package flash

import (
	"github.com/gin-gonic/gin"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

type Messages struct {
	Success []string `json:"success,omitempty"`
	Error   []string `json:"error,omitempty"`
}

func (m Messages) Empty() bool { return len(m.Success) == 0 && len(m.Error) == 0 }

func (m *Messages) add(kind Kind, msg string) {
	switch kind {
	case Error:
		m.Error = append(m.Error, msg)
	default:
		m.Success = append(m.Success, msg)
	}
}

func (m *Messages) merge(o Messages) {
	m.Success = append(m.Success, o.Success...)
	m.Error = append(m.Error, o.Error...)
}

// Store 跨请求保存消息
type Store interface {
	Save(c *gin.Context, m Messages) error
	Load(c *gin.Context) (Messages, error)
	Clear(c *gin.Context) error
}

const (
	keyStore   = "flash.store"
	keyPending = "flash.pending"
)

func Middleware(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(keyStore, s)
		c.Next()
	}
}

func storeOf(c *gin.Context) Store {
	if v, ok := c.Get(keyStore); ok {
		if s, ok := v.(Store); ok {
			return s
		}
	}
	return nil
}

func pending(c *gin.Context) Messages {
	if v, ok := c.Get(keyPending); ok {
		if m, ok := v.(Messages); ok {
			return m
		}
	}
	return Messages{}
}

// Add 记一条消息并立即落到 store（要赶在写响应头之前）
func Add(c *gin.Context, kind Kind, msg string) {
	m := pending(c)
	m.add(kind, msg)
	c.Set(keyPending, m)
	if s := storeOf(c); s != nil {
		if err := s.Save(c, m); err != nil {
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		}
	}
}

func SetSuccess(c *gin.Context, msg string) { Add(c, Success, msg) }
func SetError(c *gin.Context, msg string)   { Add(c, Error, msg) }

// Pop 取出上一次请求留下的消息和本次请求新加的消息，并清空
func Pop(c *gin.Context) Messages {
	var out Messages
	s := storeOf(c)
	if s != nil {
		if m, err := s.Load(c); err == nil {
			out = m
		}
	}
	out.merge(pending(c))
	c.Set(keyPending, Messages{})
	if s != nil && !out.Empty() {
		_ = s.Clear(c)
	}
	return out
}

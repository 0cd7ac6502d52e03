package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CookieStore 消息直接编码进 cookie，不需要服务端存储
type CookieStore struct {
	Name   string
	MaxAge int // 秒
	Secure bool
}

func NewCookieStore(name string, maxAge int) *CookieStore {
	if name == "" {
		name = "flash"
	}
	return &CookieStore{Name: name, MaxAge: maxAge}
}

func (s *CookieStore) Save(c *gin.Context, m Messages) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	s.set(c, base64.RawURLEncoding.EncodeToString(b), s.MaxAge)
	return nil
}

func (s *CookieStore) Load(c *gin.Context) (Messages, error) {
	var m Messages
	raw, err := c.Cookie(s.Name)
	if err != nil || raw == "" {
		return m, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(b, &m)
	return m, err
}

func (s *CookieStore) Clear(c *gin.Context) error {
	s.set(c, "", -1)
	return nil
}

// set 同一请求内多次写入时只保留最后一个 Set-Cookie
func (s *CookieStore) set(c *gin.Context, value string, maxAge int) {
	h := c.Writer.Header()
	if prev := h.Values("Set-Cookie"); len(prev) > 0 {
		kept := make([]string, 0, len(prev))
		for _, v := range prev {
			if !strings.HasPrefix(v, s.Name+"=") {
				kept = append(kept, v)
			}
		}
		h.Del("Set-Cookie")
		for _, v := range kept {
			h.Add("Set-Cookie", v)
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, value, maxAge, "/", "", s.Secure, true)
}

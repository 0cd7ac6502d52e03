package flash

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore cookie 里只放会话 id，消息存 redis
type RedisStore struct {
	RDB        *redis.Client
	CookieName string
	Prefix     string
	TTL        time.Duration
}

func NewRedisStore(rdb *redis.Client, cookieName string, ttl time.Duration) *RedisStore {
	if cookieName == "" {
		cookieName = "flash_sid"
	}
	return &RedisStore{RDB: rdb, CookieName: cookieName, Prefix: "flash:", TTL: ttl}
}

const keySID = "flash.sid"

func (s *RedisStore) sid(c *gin.Context, create bool) string {
	if v := c.GetString(keySID); v != "" {
		return v
	}
	if v, err := c.Cookie(s.CookieName); err == nil && v != "" {
		if _, err := uuid.Parse(v); err == nil {
			return v
		}
	}
	if !create {
		return ""
	}
	id := uuid.NewString()
	c.Set(keySID, id)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.CookieName, id, 0, "/", "", false, true)
	return id
}

func (s *RedisStore) Save(c *gin.Context, m Messages) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.RDB.Set(c.Request.Context(), s.Prefix+s.sid(c, true), b, s.TTL).Err()
}

func (s *RedisStore) Load(c *gin.Context) (Messages, error) {
	var m Messages
	id := s.sid(c, false)
	if id == "" {
		return m, nil
	}
	b, err := s.RDB.Get(c.Request.Context(), s.Prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return m, nil
	}
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(b, &m)
	return m, err
}

func (s *RedisStore) Clear(c *gin.Context) error {
	id := s.sid(c, false)
	if id == "" {
		return nil
	}
	return s.RDB.Del(c.Request.Context(), s.Prefix+id).Err()
}

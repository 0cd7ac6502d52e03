package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type recMod struct {
	name string
	prio int
	seen *[]string
}

func (m recMod) MountAdmin(g *gin.RouterGroup) {
	*m.seen = append(*m.seen, m.name)
	g.GET("/"+m.name, func(c *gin.Context) { c.String(http.StatusOK, m.name) })
}

func (m recMod) Priority() int { return m.prio }

type plainMod struct{ seen *[]string }

func (m plainMod) MountAdmin(*gin.RouterGroup) { *m.seen = append(*m.seen, "plain") }

func TestRegistryMountsByPriority(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var seen []string
	reg := &Registry{}
	reg.Register(plainMod{&seen}, recMod{"restaurants", 30, &seen}, recMod{"users", 10, &seen}, recMod{"categories", 20, &seen})

	r := gin.New()
	reg.MountAll(r.Group("/admin"))
	assert.Equal(t, []string{"users", "categories", "restaurants", "plain"}, seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	assert.Equal(t, "users", w.Body.String())
}

package ez

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"restaurant-admin/internal/transport/http/flash"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// Result 处理结果：渲染模板或重定向，可附带一条 flash
type Result struct {
	Status   int
	Template string
	Data     gin.H
	Location string
	back     bool
	flash    *flashMsg
}

type flashMsg struct {
	kind flash.Kind
	msg  string
}

func Render(tpl string, data gin.H) Result {
	return Result{Status: http.StatusOK, Template: tpl, Data: data}
}

func Redirect(to string) Result { return Result{Status: http.StatusFound, Location: to} }

// Back 回到来源页（Referer），取不到时用 fallback
func Back(fallback string) Result {
	return Result{Status: http.StatusFound, Location: fallback, back: true}
}

func (r Result) WithSuccess(msg string) Result {
	r.flash = &flashMsg{kind: flash.Success, msg: msg}
	return r
}

func (r Result) WithError(msg string) Result {
	r.flash = &flashMsg{kind: flash.Error, msg: msg}
	return r
}

type Action struct {
	Method      string // GET | POST | PUT | PATCH | DELETE
	Path        string
	Middlewares []gin.HandlerFunc // 例如单文件上传，只挂在需要的路由上
	Handler     func(c *gin.Context) (Result, error)
}

// Handle 注册动作；错误只记到 c.Errors，由错误中间件统一处理
func (e EZ) Handle(a Action) {
	h := func(c *gin.Context) {
		res, err := a.Handler(c)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		Write(c, res)
	}
	handlers := append(append([]gin.HandlerFunc{}, a.Middlewares...), h)
	e.g.Handle(strings.ToUpper(a.Method), a.Path, handlers...)
}

func Write(c *gin.Context, res Result) {
	if res.flash != nil {
		flash.Add(c, res.flash.kind, res.flash.msg)
	}
	if res.Location != "" {
		to := res.Location
		if res.back {
			to = BackURL(c, res.Location)
		}
		c.Redirect(res.Status, to)
		return
	}
	HTML(c, res.Status, res.Template, res.Data)
}

// HTML 渲染模板，顺带取出待展示的 flash
func HTML(c *gin.Context, status int, tpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	m := flash.Pop(c)
	data["success_messages"] = m.Success
	data["error_messages"] = m.Error
	c.HTML(status, tpl, data)
}

// BackURL 只接受同站 Referer，防止开放重定向
func BackURL(c *gin.Context, fallback string) string {
	ref := c.Request.Referer()
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) {
		return fallback
	}
	if u.Path == "" {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}

func ParamID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, BadRequest("invalid id")
	}
	return uint(id), nil
}

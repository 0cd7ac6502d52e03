// Package view 后台页面模板，编译进二进制。
package view

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"

	"restaurant-admin/internal/domain"
)

//go:embed templates/*.tmpl
var files embed.FS

var funcs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	// cur 可能是 *uint 或模板里的空值
	"selected": func(cur any, id uint) bool {
		p, ok := cur.(*uint)
		return ok && p != nil && *p == id
	},
	"categoryName": func(c *domain.Category) string {
		if c == nil {
			return "-"
		}
		return c.Name
	},
}

// Templates 每个页面用 {{define "admin/xxx"}} 命名，和 c.HTML 的名字一致
func Templates() *template.Template {
	return template.Must(template.New("admin").Funcs(funcs).ParseFS(files, "templates/*.tmpl"))
}

func Load(r *gin.Engine) { r.SetHTMLTemplate(Templates()) }

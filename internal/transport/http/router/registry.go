package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// AdminModule 一组后台路由
type AdminModule interface{ MountAdmin(*gin.RouterGroup) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

// Registry 按优先级挂载模块；在 main 里组装，不用全局变量
type Registry struct {
	mods []AdminModule
}

func (r *Registry) Register(mods ...AdminModule) {
	r.mods = append(r.mods, mods...)
}

func (r *Registry) Modules() []AdminModule {
	mods := append([]AdminModule(nil), r.mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	return mods
}

func (r *Registry) MountAll(admin *gin.RouterGroup) {
	for _, m := range r.Modules() {
		m.MountAdmin(admin)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}

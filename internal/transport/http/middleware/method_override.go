package middleware

import (
	"net/http"
	"strings"
)

const MethodOverrideField = "_method"

var overridable = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// MethodOverride HTML 表单只能发 POST；带 _method=PUT|PATCH|DELETE 时改写方法。
// gin 先路由后跑中间件，所以必须包在 engine 外面。
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m := r.URL.Query().Get(MethodOverrideField)
			if m == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
				m = r.PostFormValue(MethodOverrideField)
			}
			if m = strings.ToUpper(m); overridable[m] {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

package router

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"restaurant-admin/internal/core/auth"
	"restaurant-admin/internal/core/upload/uploadtest"
	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/repo"
	"restaurant-admin/internal/repo/repotest"
	"restaurant-admin/internal/service"
	"restaurant-admin/internal/transport/http/handler"
)

type app struct {
	t        *testing.T
	db       *gorm.DB
	h        http.Handler
	uploader *uploadtest.Fake
	cookies  []*http.Cookie
}

func newApp(t *testing.T, jwter *auth.JWTer) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := repotest.Open(t)
	l := zap.NewNop()
	up := &uploadtest.Fake{Link: "https://i.imgur.com/up.png"}

	reg := &Registry{}
	reg.Register(
		handler.NewRestaurantHandler(service.NewRestaurantService(repo.NewRestaurantRepo(db), repo.NewCategoryRepo(db), up, l)),
		handler.NewCategoryHandler(service.NewCategoryService(repo.NewCategoryRepo(db), l)),
		handler.NewUserHandler(service.NewUserService(repo.NewUserRepo(db), "root@example.com", l)),
	)
	h := NewAdminHandler(Options{Log: l, JWT: jwter, Modules: reg, Limits: Limits{Timeout: 5 * time.Second}})
	return &app{t: t, db: db, h: h, uploader: up}
}

// do 发请求并像浏览器一样保存 cookie
func (a *app) do(req *http.Request) *httptest.ResponseRecorder {
	a.t.Helper()
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)
	for _, nc := range w.Result().Cookies() {
		kept := a.cookies[:0]
		for _, c := range a.cookies {
			if c.Name != nc.Name {
				kept = append(kept, c)
			}
		}
		a.cookies = kept
		if nc.MaxAge >= 0 {
			a.cookies = append(a.cookies, nc)
		}
	}
	return w
}

func (a *app) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *app) form(method, path string, vals url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *app) multipart(path string, vals map[string]string, file []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range vals {
		require.NoError(a.t, mw.WriteField(k, v))
	}
	if file != nil {
		part, err := mw.CreateFormFile("image", "photo.png")
		require.NoError(a.t, err)
		_, _ = part.Write(file)
	}
	require.NoError(a.t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.do(req)
}

func (a *app) restaurants() []domain.Restaurant {
	var rs []domain.Restaurant
	require.NoError(a.t, a.db.Order("id").Find(&rs).Error)
	return rs
}

func (a *app) seedRestaurant(name string, image *string) domain.Restaurant {
	cat := domain.Category{Name: "Chinese"}
	require.NoError(a.t, a.db.Create(&cat).Error)
	rs := domain.Restaurant{Name: name, CategoryID: &cat.ID, Image: image}
	require.NoError(a.t, a.db.Create(&rs).Error)
	return rs
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, to string) {
	t.Helper()
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, to, w.Header().Get("Location"))
}

func TestListAndShow(t *testing.T) {
	a := newApp(t, nil)
	rs := a.seedRestaurant("Din Tai Fung", nil)

	w := a.get("/admin/restaurants")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Din Tai Fung")
	assert.Contains(t, w.Body.String(), "Chinese")

	w = a.get("/admin/restaurants/create")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `enctype="multipart/form-data"`)

	w = a.get("/admin/restaurants/" + itoa(rs.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Din Tai Fung</h1>")

	w = a.get("/admin/restaurants/" + itoa(rs.ID) + "/edit")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "selected>Chinese")
}

func TestCreateFlow(t *testing.T) {
	a := newApp(t, nil)

	w := a.multipart("/admin/restaurants", map[string]string{"name": "Sushi", "tel": "02-1", "openingHours": "11:00"}, nil)
	assertRedirect(t, w, "/admin/restaurants")

	w = a.get("/admin/restaurants")
	assert.Contains(t, w.Body.String(), "restaurant was successfully created")
	// flash 只显示一次
	w = a.get("/admin/restaurants")
	assert.NotContains(t, w.Body.String(), "restaurant was successfully created")

	w = a.multipart("/admin/restaurants", map[string]string{"name": "Ramen"}, []byte("png"))
	assertRedirect(t, w, "/admin/restaurants")

	rs := a.restaurants()
	require.Len(t, rs, 2)
	assert.Nil(t, rs[0].Image)
	assert.Equal(t, "02-1", rs[0].Tel)
	assert.Equal(t, "11:00", rs[0].OpeningHours)
	require.NotNil(t, rs[1].Image)
	assert.Equal(t, "https://i.imgur.com/up.png", *rs[1].Image)
	assert.Equal(t, 1, a.uploader.Calls())
}

func TestCreateWithoutNameCreatesNothing(t *testing.T) {
	a := newApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/restaurants",
		strings.NewReader(url.Values{"name": {""}, "tel": {"02-1"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "http://example.com/admin/restaurants/create")
	w := a.do(req)

	assertRedirect(t, w, "/admin/restaurants/create")
	assert.Empty(t, a.restaurants())
	assert.Zero(t, a.uploader.Calls())

	w = a.get("/admin/restaurants/create")
	assert.Contains(t, w.Body.String(), "Restaurant name is required!")
}

func TestCreateWithBadCategory(t *testing.T) {
	a := newApp(t, nil)
	w := a.form(http.MethodPost, "/admin/restaurants", url.Values{"name": {"x"}, "categoryId": {"abc"}})
	assertRedirect(t, w, "/admin/restaurants")
	assert.Empty(t, a.restaurants())
}

func TestMissingRestaurant(t *testing.T) {
	a := newApp(t, nil)
	a.seedRestaurant("Keep", nil)

	for _, w := range []*httptest.ResponseRecorder{
		a.get("/admin/restaurants/999"),
		a.get("/admin/restaurants/999/edit"),
		a.form(http.MethodPost, "/admin/restaurants/999?_method=PUT", url.Values{"name": {"Ghost"}}),
		a.form(http.MethodPost, "/admin/restaurants/999?_method=DELETE", nil),
	} {
		assertRedirect(t, w, "/admin/restaurants")
	}
	w := a.get("/admin/restaurants")
	assert.Contains(t, w.Body.String(), "Restaurant didn&#39;t exist!")

	rs := a.restaurants()
	require.Len(t, rs, 1)
	assert.Equal(t, "Keep", rs[0].Name)
}

func TestUpdateKeepsOrReplacesImage(t *testing.T) {
	a := newApp(t, nil)
	old := "/upload/old.png"
	rs := a.seedRestaurant("Old", &old)

	w := a.form(http.MethodPost, "/admin/restaurants/"+itoa(rs.ID)+"?_method=PUT",
		url.Values{"name": {"New"}, "address": {"Taipei"}, "categoryId": {""}})
	assertRedirect(t, w, "/admin/restaurants")

	got := a.restaurants()[0]
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "Taipei", got.Address)
	assert.Nil(t, got.CategoryID)
	require.NotNil(t, got.Image)
	assert.Equal(t, old, *got.Image)

	w = a.multipart("/admin/restaurants/"+itoa(rs.ID)+"?_method=PUT", map[string]string{"name": "Newer"}, []byte("png"))
	assertRedirect(t, w, "/admin/restaurants")
	got = a.restaurants()[0]
	assert.Equal(t, "Newer", got.Name)
	require.NotNil(t, got.Image)
	assert.Equal(t, "https://i.imgur.com/up.png", *got.Image)

	w = a.get("/admin/restaurants")
	assert.Contains(t, w.Body.String(), "restaurant was successfully updated")
}

func TestDelete(t *testing.T) {
	a := newApp(t, nil)
	rs := a.seedRestaurant("Gone", nil)

	w := a.form(http.MethodPost, "/admin/restaurants/"+itoa(rs.ID)+"?_method=DELETE", nil)
	assertRedirect(t, w, "/admin/restaurants")
	assert.Empty(t, a.restaurants())
}

func TestToggleUserAdmin(t *testing.T) {
	a := newApp(t, nil)
	require.NoError(t, a.db.Create(&domain.User{ID: 5, Email: "user5@example.com"}).Error)
	isAdmin := func() bool {
		var u domain.User
		require.NoError(t, a.db.First(&u, 5).Error)
		return u.IsAdmin
	}

	req := httptest.NewRequest(http.MethodPatch, "/admin/users/5", nil)
	assertRedirect(t, a.do(req), "/admin/users")
	assert.True(t, isAdmin())

	w := a.get("/admin/users")
	assert.Contains(t, w.Body.String(), "user privileges updated")
	assert.Contains(t, w.Body.String(), "user5@example.com")

	assertRedirect(t, a.form(http.MethodPost, "/admin/users/5?_method=PATCH", nil), "/admin/users")
	assert.False(t, isAdmin())
}

func TestToggleRootIsRejected(t *testing.T) {
	a := newApp(t, nil)
	root := domain.User{Email: "root@example.com", IsAdmin: true}
	require.NoError(t, a.db.Create(&root).Error)

	req := httptest.NewRequest(http.MethodPatch, "/admin/users/"+itoa(root.ID), nil)
	req.Header.Set("Referer", "/admin/users?tab=all")
	assertRedirect(t, a.do(req), "/admin/users?tab=all")

	var got domain.User
	require.NoError(t, a.db.First(&got, root.ID).Error)
	assert.True(t, got.IsAdmin)

	w := a.get("/admin/users")
	assert.Contains(t, w.Body.String(), "root account privileges cannot be changed")
	assert.NotContains(t, w.Body.String(), "user privileges updated")
}

func TestToggleMissingUser(t *testing.T) {
	a := newApp(t, nil)
	assertRedirect(t, a.do(httptest.NewRequest(http.MethodPatch, "/admin/users/42", nil)), "/admin/restaurants")
	w := a.get("/admin/users")
	assert.Contains(t, w.Body.String(), "User didn&#39;t exist!")
}

func TestCategories(t *testing.T) {
	a := newApp(t, nil)

	assertRedirect(t, a.form(http.MethodPost, "/admin/categories", url.Values{"name": {"Thai"}}), "/admin/categories")
	var c domain.Category
	require.NoError(t, a.db.First(&c).Error)

	w := a.get("/admin/categories/" + itoa(c.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Thai"`)

	assertRedirect(t, a.form(http.MethodPost, "/admin/categories/"+itoa(c.ID)+"?_method=PUT", url.Values{"name": {"Thai food"}}), "/admin/categories")
	require.NoError(t, a.db.First(&c, c.ID).Error)
	assert.Equal(t, "Thai food", c.Name)

	w = a.get("/admin/categories")
	assert.Contains(t, w.Body.String(), "category was successfully updated")
}

func TestCatchAllRedirect(t *testing.T) {
	a := newApp(t, nil)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/admin"},
		{http.MethodGet, "/admin/nope"},
		{http.MethodPost, "/admin/users"},
		{http.MethodDelete, "/admin/users/1/extra"},
		{http.MethodGet, "/"},
	} {
		assertRedirect(t, a.do(httptest.NewRequest(tc.method, tc.path, nil)), "/admin/restaurants")
	}
	assert.Equal(t, http.StatusNotFound, a.get("/elsewhere").Code)
	assert.Equal(t, http.StatusOK, a.get("/health").Code)
	assert.Equal(t, http.StatusOK, a.get("/metrics").Code)
}

func TestStoreFailureRendersErrorPage(t *testing.T) {
	a := newApp(t, nil)
	sqlDB, err := a.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := a.get("/admin/restaurants")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")
}

func TestAdminRequiresToken(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "restaurant-admin", TTL: time.Hour}
	a := newApp(t, j)

	assert.Equal(t, http.StatusUnauthorized, a.get("/admin/restaurants").Code)

	userTok, err := j.Issue("2", "user")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/admin/restaurants", nil)
	req.Header.Set("Authorization", "Bearer "+userTok)
	assert.Equal(t, http.StatusForbidden, a.do(req).Code)

	adminTok, err := j.Issue("1", "admin")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/admin/restaurants", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: adminTok})
	assert.Equal(t, http.StatusOK, a.do(req).Code)

	assert.Equal(t, http.StatusOK, a.get("/health").Code)
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

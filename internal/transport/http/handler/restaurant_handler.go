package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/service"
	"restaurant-admin/internal/transport/http/ez"
	mdw "restaurant-admin/internal/transport/http/middleware"
)

const (
	PathRestaurants = "/admin/restaurants"

	msgRestaurantCreated = "restaurant was successfully created"
	msgRestaurantUpdated = "restaurant was successfully updated"
	msgRestaurantDeleted = "restaurant was successfully deleted"

	uploadField = "image"
)

type RestaurantHandler struct{ svc *service.RestaurantService }

func NewRestaurantHandler(svc *service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{svc: svc}
}

func (h *RestaurantHandler) Priority() int { return 30 }

type restaurantForm struct {
	Name         string `form:"name"`
	Tel          string `form:"tel"`
	Address      string `form:"address"`
	OpeningHours string `form:"openingHours"`
	Description  string `form:"description"`
	CategoryID   string `form:"categoryId"`
}

func bindRestaurant(c *gin.Context) (domain.RestaurantInput, error) {
	var f restaurantForm
	if err := c.ShouldBind(&f); err != nil {
		return domain.RestaurantInput{}, ez.BadRequest("invalid form")
	}
	in := domain.RestaurantInput{
		Name:         f.Name,
		Tel:          f.Tel,
		Address:      f.Address,
		OpeningHours: f.OpeningHours,
		Description:  f.Description,
	}
	// 空值表示不选分类
	if s := strings.TrimSpace(f.CategoryID); s != "" {
		id, err := strconv.ParseUint(s, 10, 0)
		if err != nil || id == 0 {
			return in, ez.BadRequest("invalid category")
		}
		cid := uint(id)
		in.CategoryID = &cid
	}
	return in, nil
}

// MountAdmin 路径越具体越先注册
func (h *RestaurantHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	e.Handle(ez.Action{Method: "GET", Path: "/restaurants/create", Handler: h.createForm})
	e.Handle(ez.Action{Method: "GET", Path: "/restaurants/:id/edit", Handler: h.editForm})
	e.Handle(ez.Action{Method: "GET", Path: "/restaurants/:id", Handler: h.show})
	e.Handle(ez.Action{
		Method:      "PUT",
		Path:        "/restaurants/:id",
		Middlewares: []gin.HandlerFunc{mdw.SingleFile(uploadField)},
		Handler:     h.update,
	})
	e.Handle(ez.Action{Method: "DELETE", Path: "/restaurants/:id", Handler: h.delete})
	e.Handle(ez.Action{Method: "GET", Path: "/restaurants", Handler: h.list})
	e.Handle(ez.Action{
		Method:      "POST",
		Path:        "/restaurants",
		Middlewares: []gin.HandlerFunc{mdw.SingleFile(uploadField)},
		Handler:     h.create,
	})
}

func (h *RestaurantHandler) list(c *gin.Context) (ez.Result, error) {
	rs, err := h.svc.List(c.Request.Context())
	if err != nil {
		return ez.Result{}, err
	}
	return ez.Render("admin/restaurants", gin.H{"restaurants": rs}), nil
}

func (h *RestaurantHandler) createForm(c *gin.Context) (ez.Result, error) {
	cs, err := h.svc.CreateForm(c.Request.Context())
	if err != nil {
		return ez.Result{}, err
	}
	return ez.Render("admin/create-restaurant", gin.H{"categories": cs}), nil
}

func (h *RestaurantHandler) create(c *gin.Context) (ez.Result, error) {
	in, err := bindRestaurant(c)
	if err != nil {
		return ez.Result{}, err
	}
	if _, err := h.svc.Create(c.Request.Context(), in, mdw.UploadedFile(c)); err != nil {
		return ez.Result{}, err
	}
	return ez.Redirect(PathRestaurants).WithSuccess(msgRestaurantCreated), nil
}

func (h *RestaurantHandler) show(c *gin.Context) (ez.Result, error) {
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return ez.Result{}, err
	}
	rs, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		return ez.Result{}, err
	}
	return ez.Render("admin/restaurant", gin.H{"restaurant": rs}), nil
}

func (h *RestaurantHandler) editForm(c *gin.Context) (ez.Result, error) {
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return ez.Result{}, err
	}
	rs, cs, err := h.svc.EditForm(c.Request.Context(), id)
	if err != nil {
		return ez.Result{}, err
	}
	return ez.Render("admin/edit-restaurant", gin.H{"restaurant": rs, "categories": cs}), nil
}

func (h *RestaurantHandler) update(c *gin.Context) (ez.Result, error) {
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return ez.Result{}, err
	}
	in, err := bindRestaurant(c)
	if err != nil {
		return ez.Result{}, err
	}
	if _, err := h.svc.Update(c.Request.Context(), id, in, mdw.UploadedFile(c)); err != nil {
		return ez.Result{}, err
	}
	return ez.Redirect(PathRestaurants).WithSuccess(msgRestaurantUpdated), nil
}

func (h *RestaurantHandler) delete(c *gin.Context) (ez.Result, error) {
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return ez.Result{}, err
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		return ez.Result{}, err
	}
	return ez.Redirect(PathRestaurants).WithSuccess(msgRestaurantDeleted), nil
}

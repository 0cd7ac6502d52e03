package handler

import (
	"github.com/gin-gonic/gin"

	"restaurant-admin/internal/service"
	"restaurant-admin/internal/transport/http/ez"
)

const (
	PathCategories = "/admin/categories"

	msgCategoryCreated = "category was successfully created"
	msgCategoryUpdated = "category was successfully updated"
)

type CategoryHandler struct{ svc *service.CategoryService }

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) Priority() int { return 20 }

type categoryForm struct {
	Name string `form:"name"`
}

func (h *CategoryHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)
	e.Handle(ez.Action{Method: "GET", Path: "/categories/:id", Handler: h.list})
	e.Handle(ez.Action{Method: "PUT", Path: "/categories/:id", Handler: h.update})
	e.Handle(ez.Action{Method: "GET", Path: "/categories", Handler: h.list})
	e.Handle(ez.Action{Method: "POST", Path: "/categories", Handler: h.create})
}

// list /categories/:id 时同一页面带上正在编辑的分类
func (h *CategoryHandler) list(c *gin.Context) (ez.Result, error) {
	ctx := c.Request.Context()
	data := gin.H{}
	if c.Param("id") != "" {
		id, err := ez.ParamID(c, "id")
		if err != nil {
			return ez.Result{}, err
		}
		cat, err := h.svc.Get(ctx, id)
		if err != nil {
			return ez.Result{}, err
		}
		data["category"] = cat
	}
	cs, err := h.svc.List(ctx)
	if err != nil {
		return ez.Result{}, err
	}
	data["categories"] = cs
	return ez.Render("admin/categories", data), nil
}

func (h *CategoryHandler) create(c *gin.Context) (ez.Result, error) {
	var f categoryForm
	if err := c.ShouldBind(&f); err != nil {
		return ez.Result{}, ez.BadRequest("invalid form")
	}
	if _, err := h.svc.Create(c.Request.Context(), f.Name); err != nil {
		return ez.Result{}, err
	}
	return ez.Redirect(PathCategories).WithSuccess(msgCategoryCreated), nil
}

func (h *CategoryHandler) update(c *gin.Context) (ez.Result, error) {
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return ez.Result{}, err
	}
	var f categoryForm
	if err := c.ShouldBind(&f); err != nil {
		return ez.Result{}, ez.BadRequest("invalid form")
	}
	if _, err := h.svc.Update(c.Request.Context(), id, f.Name); err != nil {
		return ez.Result{}, err
	}
	return ez.Redirect(PathCategories).WithSuccess(msgCategoryUpdated), nil
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/service"
	"restaurant-admin/internal/transport/http/ez"
)

const (
	PathUsers = "/admin/users"

	msgUserToggled = "user privileges updated"
)

type UserHandler struct{ svc *service.UserService }

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Priority() int { return 10 }

func (h *UserHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)
	e.Handle(ez.Action{Method: "PATCH", Path: "/users/:id", Handler: h.toggleAdmin})
	e.Handle(ez.Action{Method: "GET", Path: "/users", Handler: h.list})
}

func (h *UserHandler) list(c *gin.Context) (ez.Result, error) {
	us, err := h.svc.List(c.Request.Context())
	if err != nil {
		return ez.Result{}, err
	}
	return ez.Render("admin/users", gin.H{"users": us}), nil
}

func (h *UserHandler) toggleAdmin(c *gin.Context) (ez.Result, error) {
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return ez.Result{}, err
	}
	_, err = h.svc.ToggleAdmin(c.Request.Context(), id)
	if errors.Is(err, domain.ErrForbidden) {
		// 受保护账号：提示后回到来源页，不做任何修改
		return ez.Back(PathUsers).WithError(err.Error()), nil
	}
	if err != nil {
		return ez.Result{}, err
	}
	return ez.Redirect(PathUsers).WithSuccess(msgUserToggled), nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"restaurant-admin/internal/domain"
)

const (
	DefaultProtectedEmail = "root@example.com"

	MsgUserNotFound  = "User didn't exist!"
	MsgRootProtected = "root account privileges cannot be changed"
)

type UserService struct {
	users          domain.UserRepository
	protectedEmail string
	log            *zap.Logger
}

func NewUserService(users domain.UserRepository, protectedEmail string, log *zap.Logger) *UserService {
	if protectedEmail == "" {
		protectedEmail = DefaultProtectedEmail
	}
	return &UserService{users: users, protectedEmail: protectedEmail, log: log}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	us, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return us, nil
}

// ToggleAdmin 翻转 is_admin；受保护账号直接拒绝，不写库
func (s *UserService) ToggleAdmin(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, domain.NotFound(MsgUserNotFound)
	}
	if strings.EqualFold(u.Email, s.protectedEmail) {
		s.log.Warn("protected account toggle rejected", zap.Uint("id", u.ID))
		return nil, domain.Forbidden(MsgRootProtected)
	}
	if err := s.users.SetAdmin(ctx, u, !u.IsAdmin); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.log.Info("user admin toggled", zap.Uint("id", u.ID), zap.Bool("is_admin", u.IsAdmin))
	return u, nil
}

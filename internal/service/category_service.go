package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"restaurant-admin/internal/domain"
)

const (
	MsgCategoryNameRequired = "Category name is required!"
	MsgCategoryNotFound     = "Category didn't exist!"
)

type CategoryService struct {
	categories domain.CategoryRepository
	log        *zap.Logger
}

func NewCategoryService(categories domain.CategoryRepository, log *zap.Logger) *CategoryService {
	return &CategoryService{categories: categories, log: log}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	cs, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cs, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*domain.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if c == nil {
		return nil, domain.NotFound(MsgCategoryNotFound)
	}
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation(MsgCategoryNameRequired)
	}
	c := &domain.Category{Name: name}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.log.Info("category created", zap.Uint("id", c.ID), zap.String("name", c.Name))
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation(MsgCategoryNameRequired)
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	s.log.Info("category updated", zap.Uint("id", c.ID))
	return c, nil
}

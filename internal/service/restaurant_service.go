package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"restaurant-admin/internal/core/upload"
	"restaurant-admin/internal/domain"
)

const (
	MsgRestaurantNameRequired = "Restaurant name is required!"
	MsgRestaurantNotFound     = "Restaurant didn't exist!"
)

type RestaurantService struct {
	restaurants domain.RestaurantRepository
	categories  domain.CategoryRepository
	uploader    upload.Uploader
	log         *zap.Logger
}

func NewRestaurantService(
	restaurants domain.RestaurantRepository,
	categories domain.CategoryRepository,
	uploader upload.Uploader,
	log *zap.Logger,
) *RestaurantService {
	return &RestaurantService{restaurants: restaurants, categories: categories, uploader: uploader, log: log}
}

func validateRestaurant(in domain.RestaurantInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Validation(MsgRestaurantNameRequired)
	}
	return nil
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	rs, err := s.restaurants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return rs, nil
}

// CreateForm 新增页只需要分类下拉
func (s *RestaurantService) CreateForm(ctx context.Context) ([]domain.Category, error) {
	cs, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cs, nil
}

func (s *RestaurantService) Create(ctx context.Context, in domain.RestaurantInput, file *multipart.FileHeader) (*domain.Restaurant, error) {
	if err := validateRestaurant(in); err != nil {
		return nil, err
	}
	link, err := s.uploader.Upload(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	rs := &domain.Restaurant{}
	in.Apply(rs)
	if link != "" {
		rs.Image = &link
	}
	if err := s.restaurants.Create(ctx, rs); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	s.log.Info("restaurant created", zap.Uint("id", rs.ID), zap.String("name", rs.Name))
	return rs, nil
}

func (s *RestaurantService) Get(ctx context.Context, id uint) (*domain.Restaurant, error) {
	rs, err := s.restaurants.FindByID(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	if rs == nil {
		return nil, domain.NotFound(MsgRestaurantNotFound)
	}
	return rs, nil
}

// EditForm 餐厅和分类互不依赖，并发取
func (s *RestaurantService) EditForm(ctx context.Context, id uint) (*domain.Restaurant, []domain.Category, error) {
	var (
		rs *domain.Restaurant
		cs []domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.restaurants.FindByID(gctx, id, false)
		if err != nil {
			return fmt.Errorf("find restaurant: %w", err)
		}
		rs = r
		return nil
	})
	g.Go(func() error {
		c, err := s.categories.List(gctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		cs = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if rs == nil {
		return nil, nil, domain.NotFound(MsgRestaurantNotFound)
	}
	return rs, cs, nil
}

// Update 整体覆盖；没传新图时保留原 image
func (s *RestaurantService) Update(ctx context.Context, id uint, in domain.RestaurantInput, file *multipart.FileHeader) (*domain.Restaurant, error) {
	if err := validateRestaurant(in); err != nil {
		return nil, err
	}

	var (
		rs   *domain.Restaurant
		link string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.restaurants.FindByID(gctx, id, false)
		if err != nil {
			return fmt.Errorf("find restaurant: %w", err)
		}
		rs = r
		return nil
	})
	g.Go(func() error {
		l, err := s.uploader.Upload(gctx, file)
		if err != nil {
			return fmt.Errorf("upload image: %w", err)
		}
		link = l
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if rs == nil {
		return nil, domain.NotFound(MsgRestaurantNotFound)
	}

	in.Apply(rs)
	if link != "" {
		rs.Image = &link
	}
	if err := s.restaurants.Update(ctx, rs); err != nil {
		return nil, fmt.Errorf("update restaurant: %w", err)
	}
	s.log.Info("restaurant updated", zap.Uint("id", rs.ID), zap.Bool("new_image", link != ""))
	return rs, nil
}

func (s *RestaurantService) Delete(ctx context.Context, id uint) error {
	rs, err := s.restaurants.FindByID(ctx, id, false)
	if err != nil {
		return fmt.Errorf("find restaurant: %w", err)
	}
	if rs == nil {
		return domain.NotFound(MsgRestaurantNotFound)
	}
	if err := s.restaurants.Delete(ctx, rs); err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	s.log.Info("restaurant deleted", zap.Uint("id", rs.ID))
	return nil
}

package domain

import (
	"context"
	"time"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }

type Restaurant struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Tel          string    `gorm:"size:32" json:"tel"`
	Address      string    `gorm:"size:255" json:"address"`
	OpeningHours string    `gorm:"size:64" json:"openingHours"`
	Description  string    `gorm:"type:text" json:"description"`
	Image        *string   `gorm:"size:512" json:"image"` // URL 或本地路径，可空
	CategoryID   *uint     `gorm:"index" json:"categoryId"`
	Category     *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Restaurant) TableName() string { return "restaurants" }

// RestaurantInput 表单里可编辑的字段
type RestaurantInput struct {
	Name         string
	Tel          string
	Address      string
	OpeningHours string
	Description  string
	CategoryID   *uint
}

// Apply 整体覆盖（id、image 除外）
func (in RestaurantInput) Apply(r *Restaurant) {
	r.Name = in.Name
	r.Tel = in.Tel
	r.Address = in.Address
	r.OpeningHours = in.OpeningHours
	r.Description = in.Description
	r.CategoryID = in.CategoryID
}

type RestaurantRepository interface {
	List(ctx context.Context) ([]Restaurant, error) // 带 Category
	FindByID(ctx context.Context, id uint, withCategory bool) (*Restaurant, error)
	Create(ctx context.Context, r *Restaurant) error
	Update(ctx context.Context, r *Restaurant) error
	Delete(ctx context.Context, r *Restaurant) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	FindByID(ctx context.Context, id uint) (*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
}

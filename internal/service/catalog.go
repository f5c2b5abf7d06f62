package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gorm.io/gorm"

	"github.com/stridewear/storefront/internal/events"
	"github.com/stridewear/storefront/internal/logging"
	"github.com/stridewear/storefront/internal/models"
	"github.com/stridewear/storefront/internal/repo"
	"github.com/stridewear/storefront/internal/util"
)

type CatalogService struct {
	repo     *repo.GormRepo
	producer *events.Producer
}

func NewCatalogService(r *repo.GormRepo, p *events.Producer) *CatalogService {
	return &CatalogService{repo: r, producer: p}
}

type ProductPage struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	Size     int              `json:"size"`
	Total    int64            `json:"total"`
}

func (s *CatalogService) ListProducts(ctx context.Context, page, size int, category string) (*ProductPage, error) {
	offset, limit := util.Calculate(page, size)
	products, total, err := s.repo.ListProducts(ctx, repo.ProductFilter{
		Category: category,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if page < 1 {
		page = 1
	}
	return &ProductPage{Products: products, Page: page, Size: limit, Total: total}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.repo.ProductByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	return p, nil
}

type ProductInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	Sizes       *[]string `json:"sizes"`
	Colors      *[]string `json:"colors"`
	Image       *string   `json:"image"`
	Stock       *int      `json:"stock"`
	Brand       *string   `json:"brand"`
	IsActive    *bool     `json:"is_active"`
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	p := &models.Product{IsActive: true}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Sizes != nil {
		p.Sizes = *in.Sizes
	}
	if in.Colors != nil {
		p.Colors = *in.Colors
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			v := newValidationError()
			v.add("stock", "must not be negative")
			return nil, v
		}
		p.Stock = uint(*in.Stock)
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.publishProductEvent(ctx, "product_created", p.ID)
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Sizes != nil {
		p.Sizes = *in.Sizes
	}
	if in.Colors != nil {
		p.Colors = *in.Colors
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			v := newValidationError()
			v.add("stock", "must not be negative")
			return nil, v
		}
		p.Stock = uint(*in.Stock)
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.repo.SaveProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	s.publishProductEvent(ctx, "product_updated", p.ID)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.publishProductEvent(ctx, "product_deleted", id)
	return nil
}

// validateProduct enforces the catalog invariants. An active product
// must be fully orderable, so sizes and colors cannot be empty.
func validateProduct(p *models.Product) error {
	v := newValidationError()
	if p.Name == "" {
		v.add("name", "is required")
	}
	if p.Price <= 0 {
		v.add("price", "must be positive")
	}
	if !slices.Contains(models.Categories(), p.Category) {
		v.add("category", "must be one of "+strings.Join(models.Categories(), ", "))
	}
	for _, size := range p.Sizes {
		if !slices.Contains(models.Sizes(), size) {
			v.add("sizes", "contains unknown size "+size)
			break
		}
	}
	if p.IsActive {
		if len(p.Sizes) == 0 {
			v.add("sizes", "must not be empty for an active product")
		}
		if len(p.Colors) == 0 {
			v.add("colors", "must not be empty for an active product")
		}
	}
	if !v.ok() {
		return v
	}
	return nil
}

func (s *CatalogService) publishProductEvent(ctx context.Context, eventType string, productID uint) {
	err := s.producer.Publish(ctx, events.TopicProductEvents, fmt.Sprint(productID), eventType, map[string]any{"product_id": productID})
	if err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "type", eventType, "error", err)
	}
}

package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"novadash/internal/domain"
)

var errSKUTaken = Validation("SKU already exists",
	FieldError{Path: "body.sku", Message: "SKU already exists"})

type ProductService struct {
	Products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{Products: products}
}

func NormalizeSKU(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

func (s *ProductService) Create(ctx context.Context, in domain.Product) (domain.Product, error) {
	sku := NormalizeSKU(in.SKU)
	taken, err := s.Products.SKUTaken(ctx, sku, "")
	if err != nil {
		return domain.Product{}, err
	}
	if taken {
		return domain.Product{}, errSKUTaken
	}

	ts := now()
	p := domain.Product{
		ID:          uuid.NewString(),
		SKU:         sku,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := s.Products.Create(ctx, &p); err != nil {
		return domain.Product{}, translate(err, "Product not found", errSKUTaken)
	}
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.Products.Get(ctx, id)
	return p, translate(err, "Product not found", nil)
}

// Update merges the patch; price changes never touch existing order lines.
func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	p, err := s.Products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, translate(err, "Product not found", nil)
	}
	if patch.SKU != nil {
		sku := NormalizeSKU(*patch.SKU)
		taken, err := s.Products.SKUTaken(ctx, sku, id)
		if err != nil {
			return domain.Product{}, err
		}
		if taken {
			return domain.Product{}, errSKUTaken
		}
		p.SKU = sku
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.IsDeleted != nil {
		p.IsDeleted = *patch.IsDeleted
	}
	p.UpdatedAt = now()
	if err := s.Products.Update(ctx, &p); err != nil {
		return domain.Product{}, translate(err, "Product not found", errSKUTaken)
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) (domain.Product, error) {
	if err := s.Products.SoftDelete(ctx, id, now()); err != nil {
		return domain.Product{}, translate(err, "Product not found", nil)
	}
	return s.Get(ctx, id)
}

func (s *ProductService) List(ctx context.Context, f domain.ProductFilter) (domain.Page[domain.Product], error) {
	f.ListParams = f.ListParams.Normalize()
	items, total, err := s.Products.List(ctx, f)
	if err != nil {
		return domain.Page[domain.Product]{}, err
	}
	return domain.NewPage(items, f.ListParams, total), nil
}

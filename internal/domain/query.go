package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams holds the paging, sorting and soft-delete options shared by every list endpoint.
// Sort is the JSON name of a stored field, e.g. "createdAt" or "price". Sorting is descending
// unless Asc is set.
type ListParams struct {
	Page      int
	Limit     int
	Sort      string
	Asc       bool
	IsDeleted bool
	From      *time.Time
	To        *time.Time
}

func (p ListParams) Offset() int { return (p.Page - 1) * p.Limit }

// Normalize applies the defaults and clamps the limit.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Sort == "" {
		p.Sort = "createdAt"
	}
	return p
}

type CustomerFilter struct {
	ListParams
	Name  string
	Email string
	Phone string
}

type ProductFilter struct {
	ListParams
	SKU      string
	Name     string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	InStock  *bool
}

type OrderFilter struct {
	ListParams
	Status     OrderStatus
	Priority   OrderPriority
	CustomerID string
}

// Sortable fields per entity, keyed by JSON name.
var (
	CustomerSortFields = []string{"name", "email", "phone", "createdAt", "updatedAt"}
	ProductSortFields  = []string{"sku", "name", "category", "price", "stock", "createdAt", "updatedAt"}
	OrderSortFields    = []string{"status", "priority", "total", "customerId", "createdAt", "updatedAt"}
)

// Patches: nil means "leave unchanged".

type CustomerPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

type ProductPatch struct {
	SKU         *string
	Name        *string
	Description *string
	Category    *string
	Price       *decimal.Decimal
	Stock       *int
	IsDeleted   *bool
}

type OrderPatch struct {
	Status   *OrderStatus
	Priority *OrderPriority
}

// LineRequest is one requested (product, quantity) pair of a new order.
type LineRequest struct {
	ProductID string
	Quantity  int
}

type NewOrder struct {
	CustomerID string
	Priority   OrderPriority
	Items      []LineRequest
}

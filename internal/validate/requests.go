package validate

import (
	"strings"

	"github.com/shopspring/decimal"

	"novadash/internal/domain"
)

type Register struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

func (r *Register) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

type Login struct {
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

func (r *Login) trim() { r.Email = strings.TrimSpace(r.Email) }

type CustomerCreate struct {
	Name    string `json:"name" validate:"required,min=2,max=80"`
	Email   string `json:"email" validate:"required,email,max=120"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Address string `json:"address" validate:"omitempty,max=200"`
}

func (r *CustomerCreate) trim() {
	trimAll(&r.Name, &r.Email, &r.Phone, &r.Address)
}

func (r *CustomerCreate) Customer() domain.Customer {
	return domain.Customer{Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address}
}

type CustomerUpdate struct {
	Name    *string `json:"name" validate:"omitnil,min=2,max=80"`
	Email   *string `json:"email" validate:"omitnil,email,max=120"`
	Phone   *string `json:"phone" validate:"omitnil,max=30"`
	Address *string `json:"address" validate:"omitnil,max=200"`
}

func (r *CustomerUpdate) trim() { trimAllPtr(r.Name, r.Email, r.Phone, r.Address) }

func (r *CustomerUpdate) Patch() domain.CustomerPatch {
	return domain.CustomerPatch{Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address}
}

type ProductCreate struct {
	SKU         string           `json:"sku" validate:"required,min=1,max=40"`
	Name        string           `json:"name" validate:"required,min=2,max=120"`
	Description string           `json:"description" validate:"omitempty,max=1000"`
	Category    string           `json:"category" validate:"omitempty,max=80"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Stock       *int             `json:"stock" validate:"required,gte=0"`
}

func (r *ProductCreate) trim() { trimAll(&r.SKU, &r.Name, &r.Description, &r.Category) }

func (r *ProductCreate) Product() domain.Product {
	return domain.Product{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       *r.Price,
		Stock:       *r.Stock,
	}
}

type ProductUpdate struct {
	SKU         *string          `json:"sku" validate:"omitnil,min=1,max=40"`
	Name        *string          `json:"name" validate:"omitnil,min=2,max=120"`
	Description *string          `json:"description" validate:"omitnil,max=1000"`
	Category    *string          `json:"category" validate:"omitnil,max=80"`
	Price       *decimal.Decimal `json:"price" validate:"omitnil,gte=0"`
	Stock       *int             `json:"stock" validate:"omitnil,gte=0"`
	IsDeleted   *bool            `json:"isDeleted"`
}

func (r *ProductUpdate) trim() { trimAllPtr(r.SKU, r.Name, r.Description, r.Category) }

func (r *ProductUpdate) Patch() domain.ProductPatch {
	return domain.ProductPatch{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		Stock:       r.Stock,
		IsDeleted:   r.IsDeleted,
	}
}

type OrderLine struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type OrderCreate struct {
	CustomerID string      `json:"customerId" validate:"required,uuid"`
	Priority   string      `json:"priority" validate:"omitempty,oneof=low medium high"`
	Items      []OrderLine `json:"items" validate:"required,min=1,dive"`
}

func (r *OrderCreate) trim() {
	trimAll(&r.CustomerID, &r.Priority)
	for i := range r.Items {
		r.Items[i].ProductID = strings.TrimSpace(r.Items[i].ProductID)
	}
}

func (r *OrderCreate) NewOrder() domain.NewOrder {
	o := domain.NewOrder{CustomerID: r.CustomerID, Priority: domain.OrderPriority(r.Priority)}
	for _, l := range r.Items {
		o.Items = append(o.Items, domain.LineRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return o
}

type OrderUpdate struct {
	Status   *string `json:"status" validate:"omitnil,oneof=pending paid shipped delivered cancelled"`
	Priority *string `json:"priority" validate:"omitnil,oneof=low medium high"`
}

func (r *OrderUpdate) trim() { trimAllPtr(r.Status, r.Priority) }

func (r *OrderUpdate) Patch() domain.OrderPatch {
	var p domain.OrderPatch
	if r.Status != nil {
		s := domain.OrderStatus(*r.Status)
		p.Status = &s
	}
	if r.Priority != nil {
		pr := domain.OrderPriority(*r.Priority)
		p.Priority = &pr
	}
	return p
}

func trimAll(ss ...*string) {
	for _, s := range ss {
		*s = strings.TrimSpace(*s)
	}
}

func trimAllPtr(ss ...*string) {
	for _, s := range ss {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
}

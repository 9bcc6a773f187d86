package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"novadash/internal/domain"
)

var (
	errCustomerNotFound = NotFound("Customer not found")
	errProductsNotFound = InvalidReference("One or more products not found")
)

type CustomerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProductSummary struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category,omitempty"`
}

type OrderLineView struct {
	domain.OrderLine
	Product *ProductSummary `json:"product,omitempty"`
}

// OrderView is an order with its customer and products resolved for display.
// Summaries are omitted when the referenced record no longer exists.
type OrderView struct {
	domain.Order
	Customer *CustomerSummary `json:"customer,omitempty"`
	Items    []OrderLineView  `json:"items"`
}

type OrderService struct {
	Customers CustomerStore
	Products  ProductStore
	Orders    OrderStore
}

func NewOrderService(customers CustomerStore, products ProductStore, orders OrderStore) *OrderService {
	return &OrderService{Customers: customers, Products: products, Orders: orders}
}

// Create prices the requested lines at current product prices and stores the order
// as a single document. Nothing is written when a reference is missing or deleted.
// Stock is not reserved.
func (s *OrderService) Create(ctx context.Context, in domain.NewOrder) (domain.Order, error) {
	cust, err := s.Customers.Get(ctx, in.CustomerID)
	if err != nil {
		return domain.Order{}, translate(err, errCustomerNotFound.Message, nil)
	}
	if cust.IsDeleted {
		return domain.Order{}, errCustomerNotFound
	}

	lines, total, err := s.Price(ctx, in.Items)
	if err != nil {
		return domain.Order{}, err
	}

	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	ts := now()
	o := domain.Order{
		ID:         uuid.NewString(),
		CustomerID: cust.ID,
		Items:      lines,
		Status:     domain.StatusPending,
		Priority:   priority,
		Total:      total,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if err := s.Orders.Create(ctx, &o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// Price resolves every requested line against the active catalog in one batch.
// Repeated product ids produce separate lines.
func (s *OrderService) Price(ctx context.Context, reqs []domain.LineRequest) ([]domain.OrderLine, decimal.Decimal, error) {
	ids := distinctProductIDs(reqs)
	found, err := s.Products.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if len(found) != len(ids) {
		return nil, decimal.Zero, errProductsNotFound
	}
	byID := make(map[string]domain.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	lines := make([]domain.OrderLine, 0, len(reqs))
	total := decimal.Zero
	for _, r := range reqs {
		p, ok := byID[r.ProductID]
		if !ok {
			return nil, decimal.Zero, errProductsNotFound
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(r.Quantity)))
		lines = append(lines, domain.OrderLine{
			ProductID: p.ID,
			Quantity:  r.Quantity,
			UnitPrice: p.Price,
			LineTotal: lineTotal,
		})
		total = total.Add(lineTotal)
	}
	return lines, total, nil
}

func distinctProductIDs(reqs []domain.LineRequest) []string {
	seen := make(map[string]struct{}, len(reqs))
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if _, ok := seen[r.ProductID]; ok {
			continue
		}
		seen[r.ProductID] = struct{}{}
		ids = append(ids, r.ProductID)
	}
	return ids
}

func (s *OrderService) Get(ctx context.Context, id string) (OrderView, error) {
	o, err := s.Orders.Get(ctx, id)
	if err != nil {
		return OrderView{}, translate(err, "Order not found", nil)
	}
	views, err := s.enrich(ctx, []domain.Order{o})
	if err != nil {
		return OrderView{}, err
	}
	return views[0], nil
}

// Update changes status and priority only; lines, total and customer are fixed.
func (s *OrderService) Update(ctx context.Context, id string, p domain.OrderPatch) (OrderView, error) {
	o, err := s.Orders.Get(ctx, id)
	if err != nil {
		return OrderView{}, translate(err, "Order not found", nil)
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.Priority != nil {
		o.Priority = *p.Priority
	}
	o.UpdatedAt = now()
	if err := s.Orders.Update(ctx, &o); err != nil {
		return OrderView{}, translate(err, "Order not found", nil)
	}
	views, err := s.enrich(ctx, []domain.Order{o})
	if err != nil {
		return OrderView{}, err
	}
	return views[0], nil
}

func (s *OrderService) Delete(ctx context.Context, id string) (domain.Order, error) {
	if err := s.Orders.SoftDelete(ctx, id, now()); err != nil {
		return domain.Order{}, translate(err, "Order not found", nil)
	}
	o, err := s.Orders.Get(ctx, id)
	return o, translate(err, "Order not found", nil)
}

func (s *OrderService) List(ctx context.Context, f domain.OrderFilter) (domain.Page[OrderView], error) {
	f.ListParams = f.ListParams.Normalize()
	orders, total, err := s.Orders.List(ctx, f)
	if err != nil {
		return domain.Page[OrderView]{}, err
	}
	views, err := s.enrich(ctx, orders)
	if err != nil {
		return domain.Page[OrderView]{}, err
	}
	return domain.NewPage(views, f.ListParams, total), nil
}

// enrich batch-loads the customers and products referenced by orders. Soft-deleted
// records are included; the stored line snapshot is left as is.
func (s *OrderService) enrich(ctx context.Context, orders []domain.Order) ([]OrderView, error) {
	var custIDs, prodIDs []string
	seen := map[string]struct{}{}
	for _, o := range orders {
		if _, ok := seen["c:"+o.CustomerID]; !ok {
			seen["c:"+o.CustomerID] = struct{}{}
			custIDs = append(custIDs, o.CustomerID)
		}
		for _, l := range o.Items {
			if _, ok := seen["p:"+l.ProductID]; !ok {
				seen["p:"+l.ProductID] = struct{}{}
				prodIDs = append(prodIDs, l.ProductID)
			}
		}
	}

	customers := map[string]*CustomerSummary{}
	if len(custIDs) > 0 {
		found, err := s.Customers.FindByIDs(ctx, custIDs)
		if err != nil {
			return nil, err
		}
		for _, c := range found {
			customers[c.ID] = &CustomerSummary{ID: c.ID, Name: c.Name, Email: c.Email}
		}
	}
	products := map[string]*ProductSummary{}
	if len(prodIDs) > 0 {
		found, err := s.Products.FindByIDs(ctx, prodIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			products[p.ID] = &ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price, Category: p.Category}
		}
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		v := OrderView{Order: o, Customer: customers[o.CustomerID], Items: make([]OrderLineView, 0, len(o.Items))}
		for _, l := range o.Items {
			v.Items = append(v.Items, OrderLineView{OrderLine: l, Product: products[l.ProductID]})
		}
		views = append(views, v)
	}
	return views, nil
}

package services

import (
	"context"
	"time"

	"novadash/internal/domain"
)

// The storage contracts below are satisfied by the SQLite repos and the Mongo store.

type CustomerStore interface {
	Create(ctx context.Context, c *domain.Customer) error
	Get(ctx context.Context, id string) (domain.Customer, error)
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	Update(ctx context.Context, c *domain.Customer) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, int, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Customer, error)
	DeleteAll(ctx context.Context) error
}

type ProductStore interface {
	Create(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, id string) (domain.Product, error)
	SKUTaken(ctx context.Context, sku, exceptID string) (bool, error)
	Update(ctx context.Context, p *domain.Product) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error)
	FindActiveByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	DeleteAll(ctx context.Context) error
}

type OrderStore interface {
	Create(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id string) (domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int, error)
	DeleteAll(ctx context.Context) error
}

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	ByID(ctx context.Context, id string) (*domain.User, error)
}

// Stores bundles one backend's repositories.
type Stores struct {
	Customers CustomerStore
	Products  ProductStore
	Orders    OrderStore
	Users     UserStore
}

var now = func() time.Time { return time.Now().UTC() }

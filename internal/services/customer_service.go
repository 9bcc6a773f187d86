package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"novadash/internal/domain"
)

var errEmailTaken = Validation("Customer email already exists",
	FieldError{Path: "body.email", Message: "Customer email already exists"})

type CustomerService struct {
	Customers CustomerStore
}

func NewCustomerService(customers CustomerStore) *CustomerService {
	return &CustomerService{Customers: customers}
}

func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (s *CustomerService) Create(ctx context.Context, in domain.Customer) (domain.Customer, error) {
	email := NormalizeEmail(in.Email)
	taken, err := s.Customers.EmailTaken(ctx, email, "")
	if err != nil {
		return domain.Customer{}, err
	}
	if taken {
		return domain.Customer{}, errEmailTaken
	}

	ts := now()
	c := domain.Customer{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.Customers.Create(ctx, &c); err != nil {
		return domain.Customer{}, translate(err, "Customer not found", errEmailTaken)
	}
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (domain.Customer, error) {
	c, err := s.Customers.Get(ctx, id)
	return c, translate(err, "Customer not found", nil)
}

func (s *CustomerService) Update(ctx context.Context, id string, p domain.CustomerPatch) (domain.Customer, error) {
	c, err := s.Customers.Get(ctx, id)
	if err != nil {
		return domain.Customer{}, translate(err, "Customer not found", nil)
	}
	if p.Email != nil {
		email := NormalizeEmail(*p.Email)
		taken, err := s.Customers.EmailTaken(ctx, email, id)
		if err != nil {
			return domain.Customer{}, err
		}
		if taken {
			return domain.Customer{}, errEmailTaken
		}
		c.Email = email
	}
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Phone != nil {
		c.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Address != nil {
		c.Address = strings.TrimSpace(*p.Address)
	}
	c.UpdatedAt = now()
	if err := s.Customers.Update(ctx, &c); err != nil {
		return domain.Customer{}, translate(err, "Customer not found", errEmailTaken)
	}
	return c, nil
}

// Delete flags the customer as deleted; orders referencing it stay valid.
func (s *CustomerService) Delete(ctx context.Context, id string) (domain.Customer, error) {
	if err := s.Customers.SoftDelete(ctx, id, now()); err != nil {
		return domain.Customer{}, translate(err, "Customer not found", nil)
	}
	return s.Get(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, f domain.CustomerFilter) (domain.Page[domain.Customer], error) {
	f.ListParams = f.ListParams.Normalize()
	items, total, err := s.Customers.List(ctx, f)
	if err != nil {
		return domain.Page[domain.Customer]{}, err
	}
	return domain.NewPage(items, f.ListParams, total), nil
}

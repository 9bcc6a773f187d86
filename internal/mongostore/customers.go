package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"novadash/internal/domain"
)

type customerDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Phone     string    `bson:"phone,omitempty"`
	Address   string    `bson:"address,omitempty"`
	IsDeleted bool      `bson:"isDeleted"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func newCustomerDoc(c *domain.Customer) customerDoc {
	return customerDoc{
		ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address,
		IsDeleted: c.IsDeleted, CreatedAt: c.CreatedAt.UTC(), UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func (d customerDoc) toDomain() domain.Customer {
	return domain.Customer{
		ID: d.ID, Name: d.Name, Email: d.Email, Phone: d.Phone, Address: d.Address,
		IsDeleted: d.IsDeleted, CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type CustomerRepo struct{ col *mongo.Collection }

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	_, err := r.col.InsertOne(ctx, newCustomerDoc(c))
	return storeErr(err, "insert customer "+c.Email)
}

func (r *CustomerRepo) Get(ctx context.Context, id string) (domain.Customer, error) {
	var d customerDoc
	if err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&d); err != nil {
		return domain.Customer{}, storeErr(err, "get customer "+id)
	}
	return d.toDomain(), nil
}

// EmailTaken reports whether another customer (not exceptID) already uses email.
// Emails are stored lower-cased, so equality is enough.
func (r *CustomerRepo) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	return exists(ctx, r.col, bson.D{
		{Key: "email", Value: email},
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: exceptID}}},
	})
}

func (r *CustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	res, err := r.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: c.ID}}, newCustomerDoc(c))
	if err != nil {
		return storeErr(err, "update customer "+c.ID)
	}
	return matchedOne(res)
}

func (r *CustomerRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return softDelete(ctx, r.col, id, at)
}

func (r *CustomerRepo) List(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, int, error) {
	docs, total, err := list[customerDoc](ctx, r.col, customerFilter(f), findOptions(customerSort, f.ListParams))
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.Customer, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, total, nil
}

func (r *CustomerRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Customer, error) {
	docs, err := findByIDs[customerDoc](ctx, r.col, ids, bson.E{})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Customer, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *CustomerRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.col.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to reset customers: %w", err)
	}
	return nil
}

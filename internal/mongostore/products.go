package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"novadash/internal/domain"
)

type productDoc struct {
	ID          string               `bson:"_id"`
	SKU         string               `bson:"sku"`
	Name        string               `bson:"name"`
	Description string               `bson:"description,omitempty"`
	Category    string               `bson:"category,omitempty"`
	Price       primitive.Decimal128 `bson:"price"`
	Stock       int                  `bson:"stock"`
	IsDeleted   bool                 `bson:"isDeleted"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

func newProductDoc(p *domain.Product) (productDoc, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return productDoc{}, err
	}
	return productDoc{
		ID: p.ID, SKU: p.SKU, Name: p.Name, Description: p.Description, Category: p.Category,
		Price: price, Stock: p.Stock, IsDeleted: p.IsDeleted,
		CreatedAt: p.CreatedAt.UTC(), UpdatedAt: p.UpdatedAt.UTC(),
	}, nil
}

func (d productDoc) toDomain() domain.Product {
	return domain.Product{
		ID: d.ID, SKU: d.SKU, Name: d.Name, Description: d.Description, Category: d.Category,
		Price: fromDecimal128(d.Price), Stock: d.Stock, IsDeleted: d.IsDeleted,
		CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func productsToDomain(docs []productDoc) []domain.Product {
	out := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out
}

type ProductRepo struct{ col *mongo.Collection }

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	doc, err := newProductDoc(p)
	if err != nil {
		return err
	}
	_, err = r.col.InsertOne(ctx, doc)
	return storeErr(err, "insert product "+p.SKU)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var d productDoc
	if err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&d); err != nil {
		return domain.Product{}, storeErr(err, "get product "+id)
	}
	return d.toDomain(), nil
}

func (r *ProductRepo) SKUTaken(ctx context.Context, sku, exceptID string) (bool, error) {
	return exists(ctx, r.col, bson.D{
		{Key: "sku", Value: sku},
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: exceptID}}},
	})
}

func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	doc, err := newProductDoc(p)
	if err != nil {
		return err
	}
	res, err := r.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: p.ID}}, doc)
	if err != nil {
		return storeErr(err, "update product "+p.ID)
	}
	return matchedOne(res)
}

func (r *ProductRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return softDelete(ctx, r.col, id, at)
}

func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error) {
	filter, err := productFilter(f)
	if err != nil {
		return nil, 0, err
	}
	docs, total, err := list[productDoc](ctx, r.col, filter, findOptions(productSort, f.ListParams))
	if err != nil {
		return nil, 0, err
	}
	return productsToDomain(docs), total, nil
}

// FindActiveByIDs returns the non-deleted products among ids in one query.
func (r *ProductRepo) FindActiveByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	docs, err := findByIDs[productDoc](ctx, r.col, ids, bson.E{Key: "isDeleted", Value: false})
	if err != nil {
		return nil, err
	}
	return productsToDomain(docs), nil
}

func (r *ProductRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	docs, err := findByIDs[productDoc](ctx, r.col, ids, bson.E{})
	if err != nil {
		return nil, err
	}
	return productsToDomain(docs), nil
}

func (r *ProductRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.col.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to reset products: %w", err)
	}
	return nil
}

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

type lineDoc struct {
	ProductID string               `bson:"productId"`
	Quantity  int                  `bson:"quantity"`
	UnitPrice primitive.Decimal128 `bson:"unitPrice"`
	LineTotal primitive.Decimal128 `bson:"lineTotal"`
}

// orderDoc embeds its lines; an order is written in a single insert.
type orderDoc struct {
	ID           string               `bson:"_id"`
	CustomerID   string               `bson:"customerId"`
	Items        []lineDoc            `bson:"items"`
	Status       string               `bson:"status"`
	Priority     string               `bson:"priority"`
	PriorityRank int                  `bson:"priorityRank"`
	Total        primitive.Decimal128 `bson:"total"`
	IsDeleted    bool                 `bson:"isDeleted"`
	CreatedAt    time.Time            `bson:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt"`
}

func newOrderDoc(o *domain.Order) (orderDoc, error) {
	total, err := toDecimal128(o.Total)
	if err != nil {
		return orderDoc{}, err
	}
	d := orderDoc{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		Items:        make([]lineDoc, 0, len(o.Items)),
		Status:       string(o.Status),
		Priority:     string(o.Priority),
		PriorityRank: priorityRank[o.Priority],
		Total:        total,
		IsDeleted:    o.IsDeleted,
		CreatedAt:    o.CreatedAt.UTC(),
		UpdatedAt:    o.UpdatedAt.UTC(),
	}
	for _, l := range o.Items {
		unit, err := toDecimal128(l.UnitPrice)
		if err != nil {
			return orderDoc{}, err
		}
		line, err := toDecimal128(l.LineTotal)
		if err != nil {
			return orderDoc{}, err
		}
		d.Items = append(d.Items, lineDoc{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: unit, LineTotal: line})
	}
	return d, nil
}

func (d orderDoc) toDomain() domain.Order {
	o := domain.Order{
		ID:         d.ID,
		CustomerID: d.CustomerID,
		Items:      make([]domain.OrderLine, 0, len(d.Items)),
		Status:     domain.OrderStatus(d.Status),
		Priority:   domain.OrderPriority(d.Priority),
		Total:      fromDecimal128(d.Total),
		IsDeleted:  d.IsDeleted,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
	for _, l := range d.Items {
		o.Items = append(o.Items, domain.OrderLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: fromDecimal128(l.UnitPrice),
			LineTotal: fromDecimal128(l.LineTotal),
		})
	}
	return o
}

type OrderRepo struct{ col *mongo.Collection }

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	doc, err := newOrderDoc(o)
	if err != nil {
		return err
	}
	_, err = r.col.InsertOne(ctx, doc)
	return storeErr(err, "insert order "+o.ID)
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	var d orderDoc
	if err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&d); err != nil {
		return domain.Order{}, storeErr(err, "get order "+id)
	}
	return d.toDomain(), nil
}

// Update writes the mutable fields only; lines, total and customer are never rewritten.
func (r *OrderRepo) Update(ctx context.Context, o *domain.Order) error {
	res, err := r.col.UpdateByID(ctx, o.ID, bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: string(o.Status)},
		{Key: "priority", Value: string(o.Priority)},
		{Key: "priorityRank", Value: priorityRank[o.Priority]},
		{Key: "isDeleted", Value: o.IsDeleted},
		{Key: "updatedAt", Value: o.UpdatedAt.UTC()},
	}}})
	if err != nil {
		return storeErr(err, "update order "+o.ID)
	}
	return matchedOne(res)
}

func (r *OrderRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return softDelete(ctx, r.col, id, at)
}

func (r *OrderRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int, error) {
	docs, total, err := list[orderDoc](ctx, r.col, orderFilter(f), findOptions(orderSort, f.ListParams))
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, total, nil
}

func (r *OrderRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.col.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to reset orders: %w", err)
	}
	return nil
}

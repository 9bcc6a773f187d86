// Package mongostore is the MongoDB storage backend, selected with DB_DRIVER=mongo.
// Documents use string UUIDs as _id and camelCase field names.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"novadash/internal/domain"
	"novadash/internal/services"
)

const (
	colCustomers = "customers"
	colProducts  = "products"
	colOrders    = "orders"
	colUsers     = "users"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects, pings and ensures the unique indexes exist.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	s := &Store{client: client, db: client.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

// Drop removes the whole database; used by integration tests.
func (s *Store) Drop(ctx context.Context) error { return s.db.Drop(ctx) }

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := func(col, field string) error {
		_, err := s.db.Collection(col).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("failed to create %s.%s index: %w", col, field, err)
		}
		return nil
	}
	if err := unique(colCustomers, "email"); err != nil {
		return err
	}
	if err := unique(colProducts, "sku"); err != nil {
		return err
	}
	if err := unique(colUsers, "email"); err != nil {
		return err
	}
	_, err := s.db.Collection(colOrders).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "customerId", Value: 1}}},
		{Keys: bson.D{{Key: "isDeleted", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create orders indexes: %w", err)
	}
	return nil
}

func (s *Store) Stores() services.Stores {
	return services.Stores{
		Customers: &CustomerRepo{col: s.db.Collection(colCustomers)},
		Products:  &ProductRepo{col: s.db.Collection(colProducts)},
		Orders:    &OrderRepo{col: s.db.Collection(colOrders)},
		Users:     &UserRepo{col: s.db.Collection(colUsers)},
	}
}

// storeErr maps driver errors onto the shared storage sentinels.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, what)
	default:
		return fmt.Errorf("failed to %s: %w", what, err)
	}
}

func matchedOne(res *mongo.UpdateResult) error {
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func softDelete(ctx context.Context, col *mongo.Collection, id string, at time.Time) error {
	res, err := col.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "isDeleted", Value: true},
		{Key: "updatedAt", Value: at.UTC()},
	}}})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", col.Name(), id, err)
	}
	return matchedOne(res)
}

func exists(ctx context.Context, col *mongo.Collection, filter bson.D) (bool, error) {
	n, err := col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count %s: %w", col.Name(), err)
	}
	return n > 0, nil
}

// list runs a paged find and a count with the same filter.
func list[D any](ctx context.Context, col *mongo.Collection, filter bson.D, opts *options.FindOptions) ([]D, int, error) {
	total, err := col.CountDocuments(ctx, filter, options.Count().SetCollation(opts.Collation))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", col.Name(), err)
	}
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", col.Name(), err)
	}
	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s: %w", col.Name(), err)
	}
	return docs, int(total), nil
}

func findByIDs[D any](ctx context.Context, col *mongo.Collection, ids []string, extra bson.E) ([]D, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	if extra.Key != "" {
		filter = append(filter, extra)
	}
	cur, err := col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", col.Name(), err)
	}
	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", col.Name(), err)
	}
	return docs, nil
}

package mongostore

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"novadash/internal/domain"
)

// Sort keys per entity. Priority sorts by rank, not alphabetically.
var (
	customerSort = withCommon(map[string]string{"name": "name", "email": "email", "phone": "phone"})
	productSort  = withCommon(map[string]string{"sku": "sku", "name": "name", "category": "category", "price": "price", "stock": "stock"})
	orderSort    = withCommon(map[string]string{"status": "status", "priority": "priorityRank", "total": "total", "customerId": "customerId"})
)

func withCommon(m map[string]string) map[string]string {
	m["createdAt"] = "createdAt"
	m["updatedAt"] = "updatedAt"
	return m
}

func commonFilter(p domain.ListParams) bson.D {
	f := bson.D{{Key: "isDeleted", Value: p.IsDeleted}}
	created := bson.D{}
	if p.From != nil {
		created = append(created, bson.E{Key: "$gte", Value: p.From.UTC()})
	}
	if p.To != nil {
		created = append(created, bson.E{Key: "$lte", Value: p.To.UTC()})
	}
	if len(created) > 0 {
		f = append(f, bson.E{Key: "createdAt", Value: created})
	}
	return f
}

// contains is a case-insensitive substring match with q taken literally.
func contains(f bson.D, field, q string) bson.D {
	if q == "" {
		return f
	}
	return append(f, bson.E{Key: field, Value: primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}})
}

func customerFilter(f domain.CustomerFilter) bson.D {
	d := commonFilter(f.ListParams)
	d = contains(d, "name", f.Name)
	d = contains(d, "email", f.Email)
	d = contains(d, "phone", f.Phone)
	return d
}

func productFilter(f domain.ProductFilter) (bson.D, error) {
	d := commonFilter(f.ListParams)
	if f.SKU != "" {
		d = append(d, bson.E{Key: "sku", Value: f.SKU})
	}
	d = contains(d, "name", f.Name)
	d = contains(d, "category", f.Category)

	price := bson.D{}
	for _, b := range []struct {
		op string
		v  *decimal.Decimal
	}{{"$gte", f.MinPrice}, {"$lte", f.MaxPrice}} {
		if b.v == nil {
			continue
		}
		d128, err := toDecimal128(*b.v)
		if err != nil {
			return nil, err
		}
		price = append(price, bson.E{Key: b.op, Value: d128})
	}
	if len(price) > 0 {
		d = append(d, bson.E{Key: "price", Value: price})
	}

	if f.InStock != nil {
		if *f.InStock {
			d = append(d, bson.E{Key: "stock", Value: bson.D{{Key: "$gt", Value: 0}}})
		} else {
			d = append(d, bson.E{Key: "stock", Value: 0})
		}
	}
	return d, nil
}

func orderFilter(f domain.OrderFilter) bson.D {
	d := commonFilter(f.ListParams)
	if f.Status != "" {
		d = append(d, bson.E{Key: "status", Value: string(f.Status)})
	}
	if f.Priority != "" {
		d = append(d, bson.E{Key: "priority", Value: string(f.Priority)})
	}
	if f.CustomerID != "" {
		d = append(d, bson.E{Key: "customerId", Value: f.CustomerID})
	}
	return d
}

// listCollation compares strings case-insensitively, matching the LOWER(...) ordering of the SQL stores.
var listCollation = &options.Collation{Locale: "en", Strength: 2}

// findOptions applies sort, skip and limit. _id breaks ties so pages are stable.
func findOptions(fields map[string]string, p domain.ListParams) *options.FindOptions {
	field, ok := fields[p.Sort]
	if !ok {
		field = "createdAt"
	}
	dir := -1
	if p.Asc {
		dir = 1
	}
	return options.Find().
		SetSort(bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}).
		SetCollation(listCollation).
		SetSkip(int64(p.Offset())).
		SetLimit(int64(p.Limit))
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	out, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("price %s out of decimal128 range: %w", d, err)
	}
	return out, nil
}

func fromDecimal128(d primitive.Decimal128) decimal.Decimal {
	out, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return out
}

var priorityRank = map[domain.OrderPriority]int{
	domain.PriorityLow:    1,
	domain.PriorityMedium: 2,
	domain.PriorityHigh:   3,
}

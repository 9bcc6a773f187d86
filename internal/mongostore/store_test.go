package mongostore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novadash/internal/domain"
)

// openTestStore connects to NOVADASH_TEST_MONGO_URI, or skips.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("NOVADASH_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("NOVADASH_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, uri, "novadash_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Drop(ctx)
		_ = s.Close(ctx)
	})
	return s
}

func TestMongoProductRoundTripAndDuplicate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	st := s.Stores()

	now := time.Now().UTC().Truncate(time.Millisecond)
	p := domain.Product{ID: uuid.NewString(), SKU: "ABC-1", Name: "Widget", Price: decimal.RequireFromString("19.99"), Stock: 3, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Products.Create(ctx, &p))

	got, err := st.Products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(got.Price))
	assert.Equal(t, "ABC-1", got.SKU)

	dup := p
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, st.Products.Create(ctx, &dup), domain.ErrDuplicate)

	_, err = st.Products.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMongoOrderListAndSoftDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	st := s.Stores()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, pr := range []domain.OrderPriority{domain.PriorityLow, domain.PriorityHigh, domain.PriorityMedium} {
		o := domain.Order{
			ID:         uuid.NewString(),
			CustomerID: "c-1",
			Items:      []domain.OrderLine{{ProductID: "p-1", Quantity: 2, UnitPrice: decimal.RequireFromString("19.99"), LineTotal: decimal.RequireFromString("39.98")}},
			Status:     domain.StatusPending,
			Priority:   pr,
			Total:      decimal.RequireFromString("39.98"),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:  base,
		}
		require.NoError(t, st.Orders.Create(ctx, &o))
	}

	p := domain.ListParams{Sort: "priority"}.Normalize()
	items, total, err := st.Orders.List(ctx, domain.OrderFilter{ListParams: p})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 3)
	assert.Equal(t, domain.PriorityHigh, items[0].Priority)
	assert.Equal(t, domain.PriorityLow, items[2].Priority)
	assert.Equal(t, "39.98", items[0].Items[0].LineTotal.String())

	require.NoError(t, st.Orders.SoftDelete(ctx, items[0].ID, time.Now()))
	_, total, err = st.Orders.List(ctx, domain.OrderFilter{ListParams: p})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	got, err := st.Orders.Get(ctx, items[0].ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
}

func TestMongoNameSortIgnoresCase(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	st := s.Stores()

	now := time.Now().UTC().Truncate(time.Millisecond)
	for i, name := range []string{"banana", "Cherry", "apple"} {
		c := domain.Customer{ID: uuid.NewString(), Name: name, Email: name + "@example.com",
			CreatedAt: now.Add(time.Duration(i) * time.Second), UpdatedAt: now}
		require.NoError(t, st.Customers.Create(ctx, &c))
	}

	got, total, err := st.Customers.List(ctx, domain.CustomerFilter{
		ListParams: domain.ListParams{Page: 1, Limit: 10, Sort: "name", Asc: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	var names []string
	for _, c := range got {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"apple", "banana", "Cherry"}, names)
}

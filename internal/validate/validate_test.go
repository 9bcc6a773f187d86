package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novadash/internal/domain"
	"novadash/internal/services"
)

func fieldPaths(t *testing.T, err error) []string {
	t.Helper()
	e, ok := services.AsError(err)
	require.True(t, ok, "expected *services.Error, got %v", err)
	require.Equal(t, services.KindValidation, e.Kind)
	var paths []string
	for _, f := range e.Fields {
		paths = append(paths, f.Path)
	}
	return paths
}

func TestBodyOrderCreate(t *testing.T) {
	var in OrderCreate
	err := Body([]byte(`{"customerId":"not-a-uuid","items":[{"productId":"6f1c2b1e-8a7d-4c55-9a51-6f0d2b7a9e10","quantity":0}]}`), &in)
	paths := fieldPaths(t, err)
	assert.ElementsMatch(t, []string{"body.customerId", "body.items.0.quantity"}, paths)
}

func TestBodyOrderCreateEmptyItems(t *testing.T) {
	var in OrderCreate
	err := Body([]byte(`{"customerId":"6f1c2b1e-8a7d-4c55-9a51-6f0d2b7a9e10","items":[]}`), &in)
	assert.Equal(t, []string{"body.items"}, fieldPaths(t, err))
}

func TestBodyOrderCreateBadPriority(t *testing.T) {
	var in OrderCreate
	err := Body([]byte(`{"customerId":"6f1c2b1e-8a7d-4c55-9a51-6f0d2b7a9e10","priority":"urgent","items":[{"productId":"6f1c2b1e-8a7d-4c55-9a51-6f0d2b7a9e10","quantity":1}]}`), &in)
	assert.Equal(t, []string{"body.priority"}, fieldPaths(t, err))
}

func TestBodyOrderCreateValid(t *testing.T) {
	var in OrderCreate
	err := Body([]byte(`{"customerId":" 6f1c2b1e-8a7d-4c55-9a51-6f0d2b7a9e10 ","items":[{"productId":"6f1c2b1e-8a7d-4c55-9a51-6f0d2b7a9e10","quantity":2}]}`), &in)
	require.NoError(t, err)
	o := in.NewOrder()
	assert.Equal(t, "6f1c2b1e-8a7d-4c55-9a51-6f0d2b7a9e10", o.CustomerID)
	assert.Equal(t, domain.OrderPriority(""), o.Priority)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].Quantity)
}

func TestBodyProductCreate(t *testing.T) {
	var in ProductCreate
	err := Body([]byte(`{"sku":"abc-1","name":"Widget","price":0,"stock":0}`), &in)
	require.NoError(t, err)
	assert.True(t, in.Product().Price.IsZero())

	var missing ProductCreate
	err = Body([]byte(`{"sku":"abc-1","name":"Widget"}`), &missing)
	assert.ElementsMatch(t, []string{"body.price", "body.stock"}, fieldPaths(t, err))

	var negative ProductCreate
	err = Body([]byte(`{"sku":"abc-1","name":"Widget","price":-1,"stock":3}`), &negative)
	assert.Equal(t, []string{"body.price"}, fieldPaths(t, err))
}

func TestBodyCustomerUpdateRejectsShortName(t *testing.T) {
	var in CustomerUpdate
	err := Body([]byte(`{"name":" A "}`), &in)
	assert.Equal(t, []string{"body.name"}, fieldPaths(t, err))

	var ok CustomerUpdate
	require.NoError(t, Body([]byte(`{"phone":"+1 555"}`), &ok))
	assert.Nil(t, ok.Patch().Name)
	assert.Equal(t, "+1 555", *ok.Patch().Phone)
}

func TestBodyMalformedJSON(t *testing.T) {
	var in Login
	err := Body([]byte(`{"email":`), &in)
	e, ok := services.AsError(err)
	require.True(t, ok)
	assert.Equal(t, services.KindValidation, e.Kind)
	assert.Equal(t, "Invalid JSON body", e.Message)
}

func TestParseListDefaultsAndClamp(t *testing.T) {
	f, err := ParseCustomerList(map[string]string{"limit": "200", "page": "-3"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, "createdAt", f.Sort)
	assert.False(t, f.Asc)
	assert.False(t, f.IsDeleted)

	f, err = ParseCustomerList(map[string]string{"limit": "abc", "order": "asc", "isDeleted": "true"})
	require.NoError(t, err)
	assert.Equal(t, 10, f.Limit)
	assert.True(t, f.Asc)
	assert.True(t, f.IsDeleted)

	f, err = ParseCustomerList(map[string]string{"limit": "99999999999999999999", "page": "99999999999999999999"})
	require.NoError(t, err)
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, maxPaging, f.Page)
	assert.Equal(t, (maxPaging-1)*100, f.Offset())
}

func TestParseListRejectsBadParams(t *testing.T) {
	cases := []struct {
		name string
		q    map[string]string
		path string
	}{
		{"sort", map[string]string{"sort": "passwordHash"}, "query.sort"},
		{"order", map[string]string{"order": "up"}, "query.order"},
		{"isDeleted", map[string]string{"isDeleted": "yes"}, "query.isDeleted"},
		{"from", map[string]string{"from": "yesterday"}, "query.from"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCustomerList(tc.q)
			assert.Equal(t, []string{tc.path}, fieldPaths(t, err))
		})
	}
}

func TestParseProductList(t *testing.T) {
	f, err := ParseProductList(map[string]string{"sku": " abc-1 ", "minPrice": "5", "maxPrice": "10.50", "inStock": "false", "sort": "price"})
	require.NoError(t, err)
	assert.Equal(t, "ABC-1", f.SKU)
	assert.Equal(t, "5", f.MinPrice.String())
	assert.Equal(t, "10.5", f.MaxPrice.String())
	require.NotNil(t, f.InStock)
	assert.False(t, *f.InStock)

	_, err = ParseProductList(map[string]string{"inStock": "maybe"})
	assert.Equal(t, []string{"query.inStock"}, fieldPaths(t, err))
	_, err = ParseProductList(map[string]string{"minPrice": "-1"})
	assert.Equal(t, []string{"query.minPrice"}, fieldPaths(t, err))
}

func TestParseOrderList(t *testing.T) {
	f, err := ParseOrderList(map[string]string{"status": "paid", "priority": "high", "customerId": "c-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, f.Status)
	assert.Equal(t, domain.PriorityHigh, f.Priority)
	assert.Equal(t, "c-1", f.CustomerID)

	_, err = ParseOrderList(map[string]string{"status": "lost"})
	assert.Equal(t, []string{"query.status"}, fieldPaths(t, err))
	_, err = ParseOrderList(map[string]string{"priority": "urgent"})
	assert.Equal(t, []string{"query.priority"}, fieldPaths(t, err))
}

func TestParseToDateCoversWholeDay(t *testing.T) {
	f, err := ParseOrderList(map[string]string{"from": "2024-03-01", "to": "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T00:00:00Z", f.From.Format("2006-01-02T15:04:05Z07:00"))
	assert.Equal(t, 23, f.To.Hour())
}

func TestID(t *testing.T) {
	_, ok := ID("6f1c2b1e-8a7d-4c55-9a51-6f0d2b7a9e10")
	assert.True(t, ok)
	_, ok = ID("../etc")
	assert.False(t, ok)
	_, ok = ID("")
	assert.False(t, ok)
}

package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novadash/internal/config"
)

func num(v any) string {
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	return fmt.Sprint(v)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t, config.Config{})

	cust := env.mustCreate(t, "/api/users", map[string]any{"name": "Ada Lovelace", "email": "ada@example.com"})
	prod := env.mustCreate(t, "/api/products", map[string]any{"sku": "abc-1", "name": "Widget", "price": 19.99, "stock": 5})
	assert.Equal(t, "ABC-1", prod["sku"])
	assert.Equal(t, "19.99", num(prod["price"]))

	order := env.mustCreate(t, "/api/orders", map[string]any{
		"customerId": cust["id"],
		"items":      []map[string]any{{"productId": prod["id"], "quantity": 2}},
	})
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, "medium", order["priority"])
	assert.Equal(t, "39.98", num(order["total"]))
	lines := order["items"].([]any)
	require.Len(t, lines, 1)
	line := lines[0].(map[string]any)
	assert.Equal(t, "19.99", num(line["unitPrice"]))
	assert.Equal(t, "39.98", num(line["lineTotal"]))

	// Reprice the product; the order keeps its snapshot.
	resp, out := env.do(t, http.MethodPut, "/api/products/"+prod["id"].(string), env.token, map[string]any{"price": 25})
	require.Equal(t, http.StatusOK, resp.StatusCode, out)

	orderPath := "/api/orders/" + order["id"].(string)
	resp, out = env.do(t, http.MethodGet, orderPath, env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, out)
	assert.Equal(t, "39.98", num(out["total"]))
	line = out["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "19.99", num(line["unitPrice"]))
	product := line["product"].(map[string]any)
	assert.Equal(t, "25", num(product["price"]))
	customer := out["customer"].(map[string]any)
	assert.Equal(t, "ada@example.com", customer["email"])

	resp, out = env.do(t, http.MethodPut, orderPath, env.token, map[string]any{"status": "shipped", "priority": "high"})
	require.Equal(t, http.StatusOK, resp.StatusCode, out)
	assert.Equal(t, "shipped", out["status"])
	assert.Equal(t, "high", out["priority"])

	resp, out = env.do(t, http.MethodPut, orderPath, env.token, map[string]any{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"body.status"}, errorPaths(out))

	resp, out = env.do(t, http.MethodDelete, orderPath, env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, out["isDeleted"])

	resp, out = env.do(t, http.MethodGet, "/api/orders", env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0", num(out["total"]))

	resp, out = env.do(t, http.MethodGet, "/api/orders?isDeleted=true", env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", num(out["total"]))
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	cust := env.mustCreate(t, "/api/users", map[string]any{"name": "Ada Lovelace", "email": "ada@example.com"})
	prod := env.mustCreate(t, "/api/products", map[string]any{"sku": "abc-1", "name": "Widget", "price": 1, "stock": 5})

	cases := []struct {
		name  string
		body  any
		paths []string
	}{
		{"empty items", map[string]any{"customerId": cust["id"], "items": []any{}}, []string{"body.items"}},
		{"zero quantity", map[string]any{"customerId": cust["id"], "items": []map[string]any{{"productId": prod["id"], "quantity": 0}}}, []string{"body.items.0.quantity"}},
		{"bad priority", map[string]any{"customerId": cust["id"], "priority": "urgent", "items": []map[string]any{{"productId": prod["id"], "quantity": 1}}}, []string{"body.priority"}},
		{"missing customer", map[string]any{"items": []map[string]any{{"productId": prod["id"], "quantity": 1}}}, []string{"body.customerId"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, out := env.do(t, http.MethodPost, "/api/orders", env.token, tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "Validation error", out["message"])
			assert.ElementsMatch(t, tc.paths, errorPaths(out))
		})
	}

	resp, out := env.do(t, http.MethodPost, "/api/orders", env.token, `{"customerId":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid JSON body", out["message"])

	resp, out = env.do(t, http.MethodPost, "/api/orders", env.token, map[string]any{
		"customerId": cust["id"],
		"items":      []map[string]any{{"productId": "6f1c2b1e-8a7d-4c55-9a51-6f0d2b7a9e10", "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "One or more products not found", out["message"])

	resp, out = env.do(t, http.MethodPost, "/api/orders", env.token, map[string]any{
		"customerId": "6f1c2b1e-8a7d-4c55-9a51-6f0d2b7a9e10",
		"items":      []map[string]any{{"productId": prod["id"], "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Customer not found", out["message"])

	resp, out = env.do(t, http.MethodGet, "/api/orders", env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0", num(out["total"]))
}

func TestCustomerCRUDOverHTTP(t *testing.T) {
	env := newTestEnv(t, config.Config{})

	c := env.mustCreate(t, "/api/users", map[string]any{"name": "Ada Lovelace", "email": " ADA@example.com ", "phone": "+44 20"})
	assert.Equal(t, "ada@example.com", c["email"])
	assert.Equal(t, false, c["isDeleted"])
	path := "/api/users/" + c["id"].(string)

	resp, out := env.do(t, http.MethodPost, "/api/users", env.token, map[string]any{"name": "Copy", "email": "ada@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Customer email already exists", out["message"])
	assert.Equal(t, []string{"body.email"}, errorPaths(out))

	resp, out = env.do(t, http.MethodPut, path, env.token, map[string]any{"address": "London"})
	require.Equal(t, http.StatusOK, resp.StatusCode, out)
	assert.Equal(t, "London", out["address"])
	assert.Equal(t, "Ada Lovelace", out["name"])

	resp, out = env.do(t, http.MethodDelete, path, env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, out["isDeleted"])

	resp, out = env.do(t, http.MethodGet, path, env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, out["isDeleted"])

	resp, out = env.do(t, http.MethodGet, "/api/users/6f1c2b1e-8a7d-4c55-9a51-6f0d2b7a9e10", env.token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Customer not found", out["message"])
}

func TestListParamsOverHTTP(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	for i := 0; i < 3; i++ {
		env.mustCreate(t, "/api/products", map[string]any{"sku": fmt.Sprintf("sku-%d", i), "name": "Item", "price": i, "stock": i})
	}

	resp, out := env.do(t, http.MethodGet, "/api/products?limit=200", env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "100", num(out["limit"]))
	assert.Equal(t, "1", num(out["page"]))
	assert.Equal(t, "3", num(out["total"]))
	assert.Equal(t, "1", num(out["pages"]))

	resp, out = env.do(t, http.MethodGet, "/api/products?limit=2&page=2&sort=price&order=asc", env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", num(out["pages"]))
	items := out["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "SKU-2", items[0].(map[string]any)["sku"])

	resp, out = env.do(t, http.MethodGet, "/api/products?inStock=false", env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", num(out["total"]))

	for _, q := range []string{"sort=password_hash", "order=sideways", "isDeleted=maybe", "inStock=1", "minPrice=cheap"} {
		resp, out = env.do(t, http.MethodGet, "/api/products?"+q, env.token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Equal(t, "Validation error", out["message"], q)
	}

	resp, _ = env.do(t, http.MethodGet, "/api/orders?status=lost", env.token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

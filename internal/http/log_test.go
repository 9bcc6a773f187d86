package handlers_test

import (
	"net/http"
	"testing"

	"novadash/internal/config"
)

func TestAuthEventsAreLogged(t *testing.T) {
	env := newTestEnv(t, config.Config{})

	entries := captureLogs(t, func() {
		env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "admin@example.com", "password": "wrong-pass"})
		env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "admin@example.com", "password": "secret1"})
		env.do(t, http.MethodGet, "/api/orders", "forged.token.value", nil)
	})

	fail, ok := findLog(entries, "auth.login.fail")
	if !ok || fail.Level != "warn" {
		t.Fatalf("expected warn auth.login.fail, got %+v", entries)
	}
	success, ok := findLog(entries, "auth.login.success")
	if !ok || success.Level != "audit" || success.UserID == "" {
		t.Fatalf("expected audit auth.login.success with user id, got %+v", success)
	}
	if _, ok := findLog(entries, "auth.token.reject"); !ok {
		t.Fatalf("expected auth.token.reject log")
	}
	for _, e := range entries {
		if pw, ok := e.Fields["password"]; ok {
			t.Fatalf("password logged: %v", pw)
		}
	}
}

func TestMutationsAreAudited(t *testing.T) {
	env := newTestEnv(t, config.Config{})

	var cust, prod map[string]any
	entries := captureLogs(t, func() {
		cust = env.mustCreate(t, "/api/users", map[string]any{"name": "Ada Lovelace", "email": "ada@example.com"})
		prod = env.mustCreate(t, "/api/products", map[string]any{"sku": "abc-1", "name": "Widget", "price": 19.99, "stock": 5})
		env.mustCreate(t, "/api/orders", map[string]any{
			"customerId": cust["id"],
			"items":      []map[string]any{{"productId": prod["id"], "quantity": 2}},
		})
	})

	for _, action := range []string{"customer.create", "product.create", "order.create"} {
		e, ok := findLog(entries, action)
		if !ok {
			t.Fatalf("expected %s audit log", action)
		}
		if e.Level != "audit" || e.UserID == "" {
			t.Fatalf("%s: expected audit entry with user id, got %+v", action, e)
		}
	}
	order, _ := findLog(entries, "order.create")
	if order.Fields["total"] != "39.98" {
		t.Fatalf("order.create total = %v", order.Fields["total"])
	}

	entries = captureLogs(t, func() {
		env.do(t, http.MethodPost, "/api/users", env.token, map[string]any{"name": "A"})
	})
	if _, ok := findLog(entries, "validation.fail"); !ok {
		t.Fatalf("expected validation.fail log")
	}
}

func TestMalformedIDsAreLoggedEverywhere(t *testing.T) {
	env := newTestEnv(t, config.Config{})

	for _, base := range []string{"/api/users", "/api/products", "/api/orders"} {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			var status int
			entries := captureLogs(t, func() {
				resp, _ := env.do(t, method, base+"/bad~id", env.token, map[string]any{})
				status = resp.StatusCode
			})
			if status != http.StatusNotFound {
				t.Fatalf("%s %s: expected 404, got %d", method, base, status)
			}
			e, ok := findLog(entries, "validation.fail")
			if !ok || e.Fields["param"] != "id" {
				t.Fatalf("%s %s: expected validation.fail for the id, got %+v", method, base, entries)
			}
		}
	}
}

func TestUnknownRouteIsLogged(t *testing.T) {
	env := newTestEnv(t, config.Config{})
	entries := captureLogs(t, func() {
		env.do(t, http.MethodGet, "/api/nowhere", "", nil)
	})
	e, ok := findLog(entries, "route.not_found")
	if !ok || e.Level != "info" {
		t.Fatalf("expected info route.not_found, got %+v", entries)
	}
}

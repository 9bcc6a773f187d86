package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"novadash/internal/domain"
)

const (
	SeedAdminEmail    = "admin@novadash.com"
	SeedAdminPassword = "Admin@123"
)

type SeedResult struct {
	AdminCreated bool
	Customers    int
	Products     int
	Orders       int
}

var seedCustomers = []domain.Customer{
	{Name: "Sherlock Holmes", Email: "sherlock@bakerstreet.com", Phone: "+44-20-221B", Address: "221B Baker Street, London"},
	{Name: "Sung Jinwoo", Email: "jinwoo@hunters.kr", Phone: "+82-10-0000-0110", Address: "Seoul, South Korea"},
	{Name: "Levi Ackerman", Email: "levi@scouts.paradis", Phone: "+00-104", Address: "Scouting Regiment HQ"},
	{Name: "Tony Stark", Email: "tony@starkindustries.com", Phone: "+1-555-IRONMAN", Address: "Malibu, California"},
	{Name: "Mikasa Ackerman", Email: "mikasa@scouts.paradis", Phone: "+00-105", Address: "Wall Rose District"},
}

var seedProducts = []domain.Product{
	{SKU: "IPHONE-15PM-001", Name: "iPhone 15 Pro Max", Description: "6.7-inch Super Retina XDR display, A17 Pro chip, Titanium design, 256GB.", Price: decimal.RequireFromString("1199.99"), Stock: 45, Category: "Smartphones"},
	{SKU: "GALAXY-S24U-002", Name: "Samsung Galaxy S24 Ultra", Description: "6.8-inch Dynamic AMOLED, Snapdragon 8 Gen 3, S Pen included, 256GB.", Price: decimal.RequireFromString("1299.99"), Stock: 38, Category: "Smartphones"},
	{SKU: "PIXEL-8PRO-003", Name: "Google Pixel 8 Pro", Description: "6.7-inch LTPO OLED, Google Tensor G3, Best AI camera, 128GB.", Price: decimal.RequireFromString("999.00"), Stock: 52, Category: "Smartphones"},
	{SKU: "ONEPLUS-12-004", Name: "OnePlus 12", Description: "6.82-inch AMOLED 120Hz, Snapdragon 8 Gen 3, Fast charging 100W, 256GB.", Price: decimal.RequireFromString("799.99"), Stock: 30, Category: "Smartphones"},
	{SKU: "XIAOMI-14PRO-005", Name: "Xiaomi 14 Pro", Description: "6.73-inch AMOLED, Leica camera system, Snapdragon 8 Gen 3, 512GB.", Price: decimal.RequireFromString("899.99"), Stock: 25, Category: "Smartphones"},
	{SKU: "XPERIA-1V-006", Name: "Sony Xperia 1 V", Description: "6.5-inch 4K HDR OLED, Snapdragon 8 Gen 2, Pro camera features, 256GB.", Price: decimal.RequireFromString("1099.00"), Stock: 18, Category: "Smartphones"},
}

type seedLine struct {
	sku string
	qty int
}

type seedOrder struct {
	customer string
	priority domain.OrderPriority
	status   domain.OrderStatus
	lines    []seedLine
}

var seedOrders = []seedOrder{
	{"sherlock@bakerstreet.com", domain.PriorityHigh, domain.StatusPaid, []seedLine{{"IPHONE-15PM-001", 1}, {"XPERIA-1V-006", 1}}},
	{"jinwoo@hunters.kr", domain.PriorityHigh, domain.StatusShipped, []seedLine{{"GALAXY-S24U-002", 2}}},
	{"tony@starkindustries.com", domain.PriorityMedium, domain.StatusPending, []seedLine{{"ONEPLUS-12-004", 1}, {"PIXEL-8PRO-003", 1}}},
	{"levi@scouts.paradis", domain.PriorityLow, domain.StatusDelivered, []seedLine{{"XIAOMI-14PRO-005", 1}}},
}

// Seed ensures the demo admin account exists, then replaces all customers, products
// and orders with the demo data set.
func Seed(ctx context.Context, st Stores, a *AuthService) (SeedResult, error) {
	var res SeedResult

	if _, err := st.Users.ByEmail(ctx, SeedAdminEmail); errors.Is(err, domain.ErrNotFound) {
		if _, err := a.Register(ctx, "Nova Admin", SeedAdminEmail, SeedAdminPassword); err != nil {
			return res, fmt.Errorf("seed admin: %w", err)
		}
		res.AdminCreated = true
	} else if err != nil {
		return res, fmt.Errorf("seed admin: %w", err)
	}

	if err := st.Orders.DeleteAll(ctx); err != nil {
		return res, fmt.Errorf("reset orders: %w", err)
	}
	if err := st.Customers.DeleteAll(ctx); err != nil {
		return res, fmt.Errorf("reset customers: %w", err)
	}
	if err := st.Products.DeleteAll(ctx); err != nil {
		return res, fmt.Errorf("reset products: %w", err)
	}

	customers := NewCustomerService(st.Customers)
	products := NewProductService(st.Products)
	orders := NewOrderService(st.Customers, st.Products, st.Orders)

	custByEmail := map[string]string{}
	for _, c := range seedCustomers {
		created, err := customers.Create(ctx, c)
		if err != nil {
			return res, fmt.Errorf("seed customer %s: %w", c.Email, err)
		}
		custByEmail[created.Email] = created.ID
		res.Customers++
	}
	prodBySKU := map[string]string{}
	for _, p := range seedProducts {
		created, err := products.Create(ctx, p)
		if err != nil {
			return res, fmt.Errorf("seed product %s: %w", p.SKU, err)
		}
		prodBySKU[created.SKU] = created.ID
		res.Products++
	}

	for _, def := range seedOrders {
		in := domain.NewOrder{CustomerID: custByEmail[def.customer], Priority: def.priority}
		for _, l := range def.lines {
			in.Items = append(in.Items, domain.LineRequest{ProductID: prodBySKU[l.sku], Quantity: l.qty})
		}
		o, err := orders.Create(ctx, in)
		if err != nil {
			return res, fmt.Errorf("seed order for %s: %w", def.customer, err)
		}
		if def.status != domain.StatusPending {
			status := def.status
			if _, err := orders.Update(ctx, o.ID, domain.OrderPatch{Status: &status}); err != nil {
				return res, fmt.Errorf("seed order status: %w", err)
			}
		}
		res.Orders++
	}
	return res, nil
}

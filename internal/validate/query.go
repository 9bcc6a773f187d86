package validate

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"novadash/internal/domain"
)

var (
	orderStatuses   = []string{"pending", "paid", "shipped", "delivered", "cancelled"}
	orderPriorities = []string{"low", "medium", "high"}
)

// listParams reads the paging, sort and soft-delete parameters shared by every list endpoint.
func listParams(q map[string]string, sortable []string) (domain.ListParams, error) {
	p := domain.ListParams{
		Page:  positive(q["page"]),
		Limit: positive(q["limit"]),
		Sort:  strings.TrimSpace(q["sort"]),
	}
	if p.Sort != "" && !slices.Contains(sortable, p.Sort) {
		return p, queryError("sort", "Must be one of: "+strings.Join(sortable, ", "))
	}

	switch q["order"] {
	case "", "desc":
	case "asc":
		p.Asc = true
	default:
		return p, queryError("order", "Must be one of: asc, desc")
	}

	del, err := parseBool("isDeleted", q["isDeleted"])
	if err != nil {
		return p, err
	}
	if del != nil {
		p.IsDeleted = *del
	}

	if p.From, err = parseTime("from", q["from"], false); err != nil {
		return p, err
	}
	if p.To, err = parseTime("to", q["to"], true); err != nil {
		return p, err
	}
	return p.Normalize(), nil
}

// parseTime accepts RFC 3339 or a bare date. A bare "to" date covers the whole day.
func parseTime(name, s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, queryError(name, "Must be an RFC 3339 timestamp or YYYY-MM-DD date")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func parseMoney(name, s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil, queryError(name, "Must be a non-negative number")
	}
	return &d, nil
}

func ParseCustomerList(q map[string]string) (domain.CustomerFilter, error) {
	p, err := listParams(q, domain.CustomerSortFields)
	if err != nil {
		return domain.CustomerFilter{}, err
	}
	return domain.CustomerFilter{
		ListParams: p,
		Name:       strings.TrimSpace(q["name"]),
		Email:      strings.TrimSpace(q["email"]),
		Phone:      strings.TrimSpace(q["phone"]),
	}, nil
}

func ParseProductList(q map[string]string) (domain.ProductFilter, error) {
	p, err := listParams(q, domain.ProductSortFields)
	if err != nil {
		return domain.ProductFilter{}, err
	}
	f := domain.ProductFilter{
		ListParams: p,
		SKU:        strings.ToUpper(strings.TrimSpace(q["sku"])),
		Name:       strings.TrimSpace(q["name"]),
		Category:   strings.TrimSpace(q["category"]),
	}
	if f.MinPrice, err = parseMoney("minPrice", q["minPrice"]); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parseMoney("maxPrice", q["maxPrice"]); err != nil {
		return f, err
	}
	if f.InStock, err = parseBool("inStock", q["inStock"]); err != nil {
		return f, err
	}
	return f, nil
}

func ParseOrderList(q map[string]string) (domain.OrderFilter, error) {
	p, err := listParams(q, domain.OrderSortFields)
	if err != nil {
		return domain.OrderFilter{}, err
	}
	f := domain.OrderFilter{ListParams: p, CustomerID: strings.TrimSpace(q["customerId"])}
	if s := q["status"]; s != "" {
		if !slices.Contains(orderStatuses, s) {
			return f, queryError("status", "Must be one of: "+strings.Join(orderStatuses, ", "))
		}
		f.Status = domain.OrderStatus(s)
	}
	if s := q["priority"]; s != "" {
		if !slices.Contains(orderPriorities, s) {
			return f, queryError("priority", "Must be one of: "+strings.Join(orderPriorities, ", "))
		}
		f.Priority = domain.OrderPriority(s)
	}
	return f, nil
}

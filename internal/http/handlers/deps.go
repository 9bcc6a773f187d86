package handlers

import (
	"novadash/internal/auth"
	"novadash/internal/services"
)

type Deps struct {
	Auth            *services.AuthService
	AuthHandler     *AuthHandler
	CustomerHandler *CustomerHandler
	ProductHandler  *ProductHandler
	OrderHandler    *OrderHandler
}

func NewDeps(st services.Stores, tokens *auth.Tokens) *Deps {
	authSvc := services.NewAuthService(st.Users, tokens)
	customerSvc := services.NewCustomerService(st.Customers)
	productSvc := services.NewProductService(st.Products)
	orderSvc := services.NewOrderService(st.Customers, st.Products, st.Orders)

	return &Deps{
		Auth:            authSvc,
		AuthHandler:     &AuthHandler{Auth: authSvc},
		CustomerHandler: &CustomerHandler{Customers: customerSvc},
		ProductHandler:  &ProductHandler{Products: productSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
	}
}

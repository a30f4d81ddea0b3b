package http

import (
	"net/http"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
)

type Services struct {
	Catalog  interfaces.CatalogService
	Cart     interfaces.CartService
	Orders   interfaces.OrderService
	Payments interfaces.PaymentService
	Checkout interfaces.CheckoutService
	Tracking interfaces.TrackingService
	Revenue  interfaces.RevenueService
	Session  interfaces.SessionService
}

// NewRouter wires every route behind logging and panic recovery.
func NewRouter(svc Services, lgr logger.Logger) http.Handler {
	menu := NewMenuHandler(svc.Catalog, lgr)
	cart := NewCartHandler(svc.Cart, lgr)
	orders := NewOrderHandler(svc.Orders, svc.Payments, lgr)
	checkout := NewCheckoutHandler(svc.Checkout, lgr)
	tracking := NewTrackingHandler(svc.Tracking, lgr)
	revenue := NewRevenueHandler(svc.Revenue, lgr)
	session := NewSessionHandler(svc.Session, lgr)

	staff := StaffOnly(svc.Session, lgr)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /menu", menu.List)
	mux.HandleFunc("GET /menu/{id}", menu.Get)
	mux.Handle("POST /menu", staff(http.HandlerFunc(menu.Create)))
	mux.Handle("PATCH /menu/{id}", staff(http.HandlerFunc(menu.Update)))
	mux.Handle("DELETE /menu/{id}", staff(http.HandlerFunc(menu.Delete)))

	mux.HandleFunc("GET /cart", cart.View)
	mux.HandleFunc("POST /cart/items", cart.Add)
	mux.HandleFunc("PATCH /cart/items/{id}", cart.UpdateQuantity)
	mux.HandleFunc("DELETE /cart/items/{id}", cart.Remove)
	mux.HandleFunc("DELETE /cart", cart.Clear)

	mux.HandleFunc("POST /orders", orders.CreateOrder)
	mux.HandleFunc("GET /orders/{id}/status", tracking.OrderStatus)
	mux.Handle("GET /orders", staff(http.HandlerFunc(orders.ListOrders)))
	mux.Handle("PATCH /orders/{id}/status", staff(http.HandlerFunc(orders.UpdateStatus)))

	mux.HandleFunc("POST /payments", orders.AuthorizePayment)

	mux.HandleFunc("POST /checkout", checkout.Submit)
	mux.HandleFunc("POST /checkout/{id}/retry", checkout.Retry)

	mux.Handle("GET /revenue", staff(http.HandlerFunc(revenue.Revenue)))

	mux.HandleFunc("POST /tables/validate", session.ValidateTable)
	mux.HandleFunc("GET /session/table", session.Table)
	mux.HandleFunc("PUT /session/table", session.SetTable)
	mux.HandleFunc("POST /staff/login", session.Login)
	mux.HandleFunc("POST /staff/logout", session.Logout)

	handler := LoggingMiddleware(lgr)(mux)
	handler = RecoveryMiddleware(lgr)(handler)
	return handler
}

package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/el-receso/cafeteria-service/internal/api/handler"
	"github.com/el-receso/cafeteria-service/internal/db"
	"github.com/el-receso/cafeteria-service/internal/middleware"
	"github.com/el-receso/cafeteria-service/internal/service"
)

// Handlers bundles the route handlers the router wires up.
type Handlers struct {
	Auth  *handler.AuthHandler
	Menu  *handler.MenuHandler
	Cart  *handler.CartHandler
	Order *handler.OrderHandler
	Feed  *handler.FeedHandler
}

// New builds the HTTP router. The route table mirrors the original
// application's surface: public registration/login and menu browsing,
// session-scoped cart and checkout, and admin-gated fulfilment.
func New(h Handlers, auth *service.AuthService, database *db.Postgres, logger *logrus.Logger) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(routeTemplate))

	// Public routes
	r.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/menu", h.Menu.List).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := database.HealthCheck(req.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// Session routes
	authed := r.PathPrefix("/").Subrouter()
	authed.Use(middleware.Auth(auth))
	authed.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/dashboard", h.Auth.Dashboard).Methods(http.MethodGet)
	authed.HandleFunc("/password", h.Auth.ChangePassword).Methods(http.MethodPut)
	authed.HandleFunc("/add_to_cart/{itemId}", h.Cart.AddToCart).Methods(http.MethodPost)
	authed.HandleFunc("/cart", h.Cart.ViewCart).Methods(http.MethodGet)
	// GET kept alongside POST for parity with the original surface.
	authed.HandleFunc("/checkout", h.Cart.Checkout).Methods(http.MethodPost, http.MethodGet)
	authed.HandleFunc("/my_orders", h.Order.MyOrders).Methods(http.MethodGet)

	// Admin routes
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(auth), middleware.RequireAdmin)
	admin.HandleFunc("/add_product", h.Menu.AddProduct).Methods(http.MethodPost)
	admin.HandleFunc("/product/{itemId}", h.Menu.UpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/product/{itemId}", h.Menu.DeleteProduct).Methods(http.MethodDelete)
	admin.HandleFunc("/orders", h.Order.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/order/{orderId}", h.Order.Detail).Methods(http.MethodGet)
	admin.HandleFunc("/order/{orderId}/mark_delivered", h.Order.MarkDelivered).Methods(http.MethodPost)
	admin.HandleFunc("/order/{orderId}/mark_not_delivered", h.Order.MarkNotDelivered).Methods(http.MethodPost)

	// The live order feed is admin-only, like the fulfilment routes.
	feed := r.PathPrefix("/ws").Subrouter()
	feed.Use(middleware.Auth(auth), middleware.RequireAdmin)
	feed.HandleFunc("/orders", h.Feed.OrderFeed).Methods(http.MethodGet)

	return r
}

// routeTemplate returns the matched route pattern for metrics labels,
// falling back to the raw path when no route matched.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/sprinkles/storefront/internal/storage"
)

// Handler builds the router. Every route below the anonymous and
// authenticated groups carries an explicit role guard.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.identify, s.auditLogMiddleware)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	anonymous := router.NewRoute().Subrouter()
	anonymous.Use(s.requireUnauthenticated)
	anonymous.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	anonymous.HandleFunc("/login", s.handleLoginPage).Methods(http.MethodGet)
	anonymous.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	anonymous.HandleFunc("/signup", s.handleSignupPage).Methods(http.MethodGet)
	anonymous.HandleFunc("/signup", s.handleSignup).Methods(http.MethodPost)

	authenticated := router.NewRoute().Subrouter()
	authenticated.Use(s.requireAuthenticated)
	authenticated.HandleFunc("/logout", s.handleLogout).Methods(http.MethodGet)
	authenticated.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)

	admin := authenticated.NewRoute().Subrouter()
	admin.Use(s.requireRole(storage.RoleAdmin))
	admin.HandleFunc("/dashboard/createpost", s.handleCreateProduct).Methods(http.MethodPost)
	admin.HandleFunc("/dashboard/viewusers", s.handleViewUsers).Methods(http.MethodGet)
	admin.HandleFunc("/dashboard/viewusers/updateuser", s.handleUpdateUser).Methods(http.MethodPost)
	admin.HandleFunc("/dashboard/viewproducts", s.handleViewProducts).Methods(http.MethodGet)
	admin.HandleFunc("/viewproducts/delete/{id:[0-9]+}", s.handleDeleteProductPage).Methods(http.MethodGet)
	admin.HandleFunc("/viewproducts/delete/{id:[0-9]+}", s.handleDeleteProduct).Methods(http.MethodPost)
	admin.HandleFunc("/dashboard/vieworders", s.handleViewOrders).Methods(http.MethodGet)
	admin.HandleFunc("/dashboard/vieworders/{id:[0-9]+}/history", s.handleOrderHistory).Methods(http.MethodGet)

	customer := authenticated.NewRoute().Subrouter()
	customer.Use(s.requireRole(storage.RoleCustomer))
	customer.HandleFunc("/dashboard/products/{id:[0-9]+}", s.handleProductDetail).Methods(http.MethodGet)
	customer.HandleFunc("/dashboard/products", s.handlePlaceOrder).Methods(http.MethodPost)
	customer.HandleFunc("/dashboard/orders", s.handleCustomerOrders).Methods(http.MethodGet)

	delivery := authenticated.NewRoute().Subrouter()
	delivery.Use(s.requireRole(storage.RoleDelivery))
	delivery.HandleFunc("/dashboard/deliverydash", s.handleClaimOrder).Methods(http.MethodPost)
	delivery.HandleFunc("/dashboard/delivered", s.handleMarkDelivered).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	return router
}

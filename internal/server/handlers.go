package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"gitlab.com/sprinkles/storefront/internal/session"
	"gitlab.com/sprinkles/storefront/internal/storage"
)

const unavailableMessage = "Service temporarily unavailable, please try again later"

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (s *Server) flash(w http.ResponseWriter, r *http.Request, kind session.FlashKind, message string) {
	s.sessions.AddFlash(w, r, kind, message)
}

// flashFailure turns an engine error into flash messages. Error details
// only go to the log.
func (s *Server) flashFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	var formErr *storage.FormError
	switch {
	case errors.As(err, &formErr):
		for _, msg := range formErr.Messages {
			s.flash(w, r, session.FlashError, msg)
		}
	case errors.Is(err, storage.ErrClaimLost):
		s.flash(w, r, session.FlashError, "This order has already been claimed")
	case errors.Is(err, storage.ErrInvalidTransition):
		s.flash(w, r, session.FlashError, "Only dispatched orders can be marked as delivered")
	case errors.Is(err, storage.ErrAuthorization):
		s.flash(w, r, session.FlashError, "You are not allowed to do that")
	case errors.Is(err, storage.ErrNotFound):
		s.flash(w, r, session.FlashError, "The requested item does not exist")
	default:
		s.logger.Error("operation failed", zap.String("operation", op), zap.Error(err))
		s.flash(w, r, session.FlashError, unavailableMessage)
	}
}

// pageFailure answers a failed page load.
func (s *Server) pageFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrAuthorization):
		s.redirect(w, r, "/dashboard")
	case errors.Is(err, storage.ErrNotFound):
		s.renderError(w, r, http.StatusNotFound, "The requested item does not exist")
	default:
		s.logger.Error("failed to load page", zap.String("operation", op), zap.Error(err))
		s.renderError(w, r, http.StatusServiceUnavailable, unavailableMessage)
	}
}

// formStatus is the status of a re-rendered form.
func formStatus(formErr *storage.FormError) int {
	if errors.Is(formErr, storage.ErrConflict) {
		return http.StatusConflict
	}
	return http.StatusUnprocessableEntity
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	return id, err == nil && id > 0
}

func currentAccount(r *http.Request) storage.Account {
	account, _ := accountFrom(r.Context())
	return *account
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound, "Page not found")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "index", pageData{Title: "Welcome"})
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login", pageData{Title: "Login"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed request")
		return
	}

	account, err := s.engine.Authenticate(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	switch {
	case errors.Is(err, storage.ErrAuthentication):
		s.flash(w, r, session.FlashError, "Email or password is incorrect")
		s.redirect(w, r, "/login")
		return
	case err != nil:
		s.flashFailure(w, r, "login", err)
		s.redirect(w, r, "/login")
		return
	}

	if err := s.sessions.Begin(r.Context(), w, account.ID); err != nil {
		s.logger.Error("failed to begin session", zap.Int64("account_id", account.ID), zap.Error(err))
		s.flash(w, r, session.FlashError, unavailableMessage)
		s.redirect(w, r, "/login")
		return
	}

	s.redirect(w, r, "/dashboard")
}

func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "signup", pageData{Title: "Sign up"})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed request")
		return
	}

	form := storage.SignupForm{
		Name:      r.PostFormValue("name"),
		Address:   r.PostFormValue("address"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
		Password2: r.PostFormValue("password2"),
		Type:      r.PostFormValue("type"),
	}

	_, err := s.engine.Signup(r.Context(), form)
	var formErr *storage.FormError
	switch {
	case errors.As(err, &formErr):
		s.render(w, r, formStatus(formErr), "signup", pageData{
			Title:  "Sign up",
			Errors: formErr.Messages,
			Form: map[string]string{
				"name":    form.Name,
				"address": form.Address,
				"email":   form.Email,
				"type":    form.Type,
			},
		})
		return
	case err != nil:
		s.flashFailure(w, r, "signup", err)
		s.redirect(w, r, "/signup")
		return
	}

	s.flash(w, r, session.FlashSuccess, "You are now registered and can log in")
	s.redirect(w, r, "/login")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.End(r.Context(), w, r); err != nil {
		s.logger.Warn("failed to end session", zap.Error(err))
	}
	s.flash(w, r, session.FlashSuccess, "You have successfully logged out")
	s.redirect(w, r, "/login")
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	account := currentAccount(r)

	dashboard, err := s.engine.ResolveDashboard(r.Context(), account)
	if err != nil {
		if errors.Is(err, storage.ErrUnknownRole) {
			s.logger.Error("account has no usable role",
				zap.Int64("account_id", account.ID),
				zap.Int16("role", int16(account.Role)),
				zap.Error(err),
			)
			s.renderError(w, r, http.StatusInternalServerError, "Your account is misconfigured, please contact support")
			return
		}
		s.pageFailure(w, r, "resolve_dashboard", err)
		return
	}

	switch dashboard.Role {
	case storage.RoleCustomer:
		s.render(w, r, http.StatusOK, "customer_dashboard", pageData{Title: "Dashboard", Data: dashboard})
	case storage.RoleDelivery:
		s.render(w, r, http.StatusOK, "delivery_dashboard", pageData{Title: "Deliveries", Data: dashboard})
	default:
		s.render(w, r, http.StatusOK, "admin_dashboard", pageData{Title: "Administration"})
	}
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed request")
		return
	}

	form := storage.ProductForm{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Price:       r.PostFormValue("price"),
		Category:    r.PostFormValue("category"),
	}

	_, err := s.engine.AddProduct(r.Context(), currentAccount(r), form)
	var formErr *storage.FormError
	switch {
	case errors.As(err, &formErr):
		s.render(w, r, formStatus(formErr), "admin_dashboard", pageData{
			Title:  "Administration",
			Errors: formErr.Messages,
			Form: map[string]string{
				"name":        form.Name,
				"description": form.Description,
				"price":       form.Price,
				"category":    form.Category,
			},
		})
		return
	case err != nil:
		s.flashFailure(w, r, "add_product", err)
		s.redirect(w, r, "/dashboard")
		return
	}

	s.flash(w, r, session.FlashSuccess, "Successfully added product!")
	s.redirect(w, r, "/dashboard")
}

func (s *Server) handleViewUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.engine.ListAccounts(r.Context(), currentAccount(r))
	if err != nil {
		s.pageFailure(w, r, "list_accounts", err)
		return
	}
	s.render(w, r, http.StatusOK, "admin_users", pageData{Title: "Users", Data: accounts})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	const back = "/dashboard/viewusers"

	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed request")
		return
	}

	accountID, ok := parseID(r.PostFormValue("userid"))
	if !ok {
		s.flash(w, r, session.FlashError, "Please select a valid user")
		s.redirect(w, r, back)
		return
	}
	role, err := storage.ParseRole(r.PostFormValue("newType"))
	if err != nil {
		s.flash(w, r, session.FlashError, "Please select a valid role")
		s.redirect(w, r, back)
		return
	}

	if err := s.engine.UpdateAccountRole(r.Context(), currentAccount(r), accountID, role); err != nil {
		s.flashFailure(w, r, "update_account_role", err)
		s.redirect(w, r, back)
		return
	}

	s.flash(w, r, session.FlashSuccess, "Successfully updated user!")
	s.redirect(w, r, back)
}

func (s *Server) handleViewProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.engine.ListProducts(r.Context())
	if err != nil {
		s.pageFailure(w, r, "list_products", err)
		return
	}
	s.render(w, r, http.StatusOK, "admin_products", pageData{Title: "Products", Data: products})
}

// handleDeleteProductPage asks for confirmation. Only the POST deletes.
func (s *Server) handleDeleteProductPage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		s.renderError(w, r, http.StatusNotFound, "The requested item does not exist")
		return
	}

	product, err := s.engine.GetProduct(r.Context(), id)
	if err != nil {
		s.pageFailure(w, r, "get_product", err)
		return
	}
	s.render(w, r, http.StatusOK, "admin_product_delete", pageData{Title: "Delete " + product.Name, Data: product})
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	const back = "/dashboard/viewproducts"

	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		s.flash(w, r, session.FlashError, "The requested item does not exist")
		s.redirect(w, r, back)
		return
	}

	if err := s.engine.DeleteProduct(r.Context(), currentAccount(r), id); err != nil {
		s.flashFailure(w, r, "delete_product", err)
		s.redirect(w, r, back)
		return
	}

	s.flash(w, r, session.FlashSuccess, "Successfully deleted product")
	s.redirect(w, r, back)
}

func (s *Server) handleViewOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.engine.ListOrders(r.Context(), currentAccount(r))
	if err != nil {
		s.pageFailure(w, r, "list_orders", err)
		return
	}
	s.render(w, r, http.StatusOK, "admin_orders", pageData{Title: "Orders", Data: orders})
}

type orderHistoryView struct {
	Order   *storage.Order
	Entries []storage.HistoryEntry
}

func (s *Server) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		s.renderError(w, r, http.StatusNotFound, "The requested item does not exist")
		return
	}

	order, entries, err := s.engine.OrderHistory(r.Context(), currentAccount(r), id)
	if err != nil {
		s.pageFailure(w, r, "order_history", err)
		return
	}
	s.render(w, r, http.StatusOK, "order_history", pageData{
		Title: fmt.Sprintf("Order #%d", order.ID),
		Data:  orderHistoryView{Order: order, Entries: entries},
	})
}

func (s *Server) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		s.renderError(w, r, http.StatusNotFound, "The requested item does not exist")
		return
	}

	product, err := s.engine.GetProduct(r.Context(), id)
	if err != nil {
		s.pageFailure(w, r, "get_product", err)
		return
	}
	s.render(w, r, http.StatusOK, "product", pageData{Title: product.Name, Data: product})
}

// handlePlaceOrder orders a catalog product. Name and price come from the
// catalog, never from the submitted form.
func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed request")
		return
	}

	productID, ok := parseID(r.PostFormValue("productid"))
	if !ok {
		s.flash(w, r, session.FlashError, "Please choose a product")
		s.redirect(w, r, "/dashboard")
		return
	}
	back := fmt.Sprintf("/dashboard/products/%d", productID)

	product, err := s.engine.GetProduct(r.Context(), productID)
	if err != nil {
		s.flashFailure(w, r, "get_product", err)
		s.redirect(w, r, "/dashboard")
		return
	}

	quantity, err := strconv.ParseInt(strings.TrimSpace(r.PostFormValue("qty")), 10, 32)
	if err != nil {
		s.flash(w, r, session.FlashError, "Please enter a valid quantity")
		s.redirect(w, r, back)
		return
	}

	_, err = s.engine.PlaceOrder(r.Context(), currentAccount(r), product.Name, int32(quantity), product.Price)
	if err != nil {
		s.flashFailure(w, r, "place_order", err)
		s.redirect(w, r, back)
		return
	}

	s.flash(w, r, session.FlashSuccess, "Successfully ordered "+product.Name)
	s.redirect(w, r, "/dashboard/orders")
}

func (s *Server) handleCustomerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.engine.CustomerOrders(r.Context(), currentAccount(r))
	if err != nil {
		s.pageFailure(w, r, "customer_orders", err)
		return
	}
	s.render(w, r, http.StatusOK, "customer_orders", pageData{Title: "My orders", Data: orders})
}

func (s *Server) handleClaimOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed request")
		return
	}

	orderID, ok := parseID(r.PostFormValue("orderid"))
	if !ok {
		s.flash(w, r, session.FlashError, "The requested item does not exist")
		s.redirect(w, r, "/dashboard")
		return
	}

	if err := s.engine.ClaimOrder(r.Context(), currentAccount(r), orderID, r.PostFormValue("eta")); err != nil {
		s.flashFailure(w, r, "claim_order", err)
		s.redirect(w, r, "/dashboard")
		return
	}

	s.flash(w, r, session.FlashSuccess, "Successfully claimed order")
	s.redirect(w, r, "/dashboard")
}

func (s *Server) handleMarkDelivered(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed request")
		return
	}

	orderID, ok := parseID(r.PostFormValue("orderid"))
	if !ok {
		s.flash(w, r, session.FlashError, "The requested item does not exist")
		s.redirect(w, r, "/dashboard")
		return
	}

	if err := s.engine.MarkDelivered(r.Context(), currentAccount(r), orderID); err != nil {
		s.flashFailure(w, r, "mark_delivered", err)
		s.redirect(w, r, "/dashboard")
		return
	}

	s.flash(w, r, session.FlashSuccess, "Successfully delivered order")
	s.redirect(w, r, "/dashboard")
}

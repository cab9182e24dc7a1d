package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	mock_server "gitlab.com/sprinkles/storefront/internal/server/mocks"
	"gitlab.com/sprinkles/storefront/internal/session"
	"gitlab.com/sprinkles/storefront/internal/storage"
)

var (
	customer = storage.Account{ID: 1, Name: "Cara", Address: "12 Baker St", Email: "cara@example.com", Role: storage.RoleCustomer}
	courier  = storage.Account{ID: 2, Name: "Dan", Address: "12 Baker St", Email: "dan@example.com", Role: storage.RoleDelivery}
	admin    = storage.Account{ID: 3, Name: "Ada", Address: "-", Email: "ada@example.com", Role: storage.RoleAdmin}
)

type testServer struct {
	server   *Server
	engine   *mock_server.MockEngine
	sessions *mock_server.MockSessions
}

func newTestServer(t *testing.T) *testServer {
	ctrl := gomock.NewController(t)
	ts := &testServer{
		engine:   mock_server.NewMockEngine(ctrl),
		sessions: mock_server.NewMockSessions(ctrl),
	}
	ts.server = New(ts.engine, ts.sessions, zap.NewNop())
	ts.sessions.EXPECT().Flashes(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return ts
}

func (ts *testServer) anonymous() {
	ts.sessions.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(int64(0), false, nil).AnyTimes()
}

func (ts *testServer) signedInAs(account storage.Account) {
	ts.sessions.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(account.ID, true, nil).AnyTimes()
	ts.engine.EXPECT().GetAccount(gomock.Any(), account.ID).Return(&account, nil).AnyTimes()
}

func (ts *testServer) expectFlash(kind session.FlashKind, message string) {
	ts.sessions.EXPECT().AddFlash(gomock.Any(), gomock.Any(), kind, message)
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rr, req)
	return rr
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func assertRedirect(t *testing.T, rr *httptest.ResponseRecorder, location string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, location, rr.Header().Get("Location"))
}

func TestGuards(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(ts *testServer)
		request  func() *http.Request
		location string
	}{
		{
			name: "anonymous caller is sent to login",
			setup: func(ts *testServer) {
				ts.anonymous()
				ts.expectFlash(session.FlashError, "Please log in to view that resource")
			},
			request:  func() *http.Request { return httptest.NewRequest(http.MethodGet, "/dashboard", nil) },
			location: "/login",
		},
		{
			name:     "signed in caller cannot open login",
			setup:    func(ts *testServer) { ts.signedInAs(customer) },
			request:  func() *http.Request { return httptest.NewRequest(http.MethodGet, "/login", nil) },
			location: "/dashboard",
		},
		{
			name:     "signed in caller cannot sign up again",
			setup:    func(ts *testServer) { ts.signedInAs(courier) },
			request:  func() *http.Request { return postForm("/signup", url.Values{"name": {"x"}}) },
			location: "/dashboard",
		},
		{
			name:     "customer cannot list users",
			setup:    func(ts *testServer) { ts.signedInAs(customer) },
			request:  func() *http.Request { return httptest.NewRequest(http.MethodGet, "/dashboard/viewusers", nil) },
			location: "/dashboard",
		},
		{
			name:  "delivery cannot place orders",
			setup: func(ts *testServer) { ts.signedInAs(courier) },
			request: func() *http.Request {
				return postForm("/dashboard/products", url.Values{"productid": {"1"}, "qty": {"1"}})
			},
			location: "/dashboard",
		},
		{
			name:  "admin cannot claim orders",
			setup: func(ts *testServer) { ts.signedInAs(admin) },
			request: func() *http.Request {
				return postForm("/dashboard/deliverydash", url.Values{"orderid": {"1"}, "eta": {"1h"}})
			},
			location: "/dashboard",
		},
		{
			name:     "customer cannot delete products",
			setup:    func(ts *testServer) { ts.signedInAs(customer) },
			request:  func() *http.Request { return postForm("/viewproducts/delete/4", url.Values{}) },
			location: "/dashboard",
		},
		{
			name: "session of a deleted account counts as anonymous",
			setup: func(ts *testServer) {
				ts.sessions.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(int64(99), true, nil)
				ts.engine.EXPECT().GetAccount(gomock.Any(), int64(99)).Return(nil, storage.ErrNotFound)
				ts.expectFlash(session.FlashError, "Please log in to view that resource")
			},
			request:  func() *http.Request { return httptest.NewRequest(http.MethodGet, "/dashboard", nil) },
			location: "/login",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			tc.setup(ts)

			rr := ts.do(tc.request())

			assertRedirect(t, rr, tc.location)
		})
	}
}

func TestIdentify_StoreFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.sessions.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(int64(0), false, errors.New("connection refused"))

	rr := ts.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), unavailableMessage)
	assert.NotContains(t, rr.Body.String(), "connection refused")
}

func TestHandleLogin(t *testing.T) {
	form := url.Values{"email": {"cara@example.com"}, "password": {"secret1"}}

	tests := []struct {
		name       string
		setupMocks func(ts *testServer)
		location   string
	}{
		{
			name: "valid credentials start a session",
			setupMocks: func(ts *testServer) {
				ts.engine.EXPECT().Authenticate(gomock.Any(), "cara@example.com", "secret1").Return(&customer, nil)
				ts.sessions.EXPECT().Begin(gomock.Any(), gomock.Any(), customer.ID).Return(nil)
			},
			location: "/dashboard",
		},
		{
			name: "invalid credentials get one generic message",
			setupMocks: func(ts *testServer) {
				ts.engine.EXPECT().Authenticate(gomock.Any(), "cara@example.com", "secret1").Return(nil, storage.ErrAuthentication)
				ts.expectFlash(session.FlashError, "Email or password is incorrect")
			},
			location: "/login",
		},
		{
			name: "storage failure",
			setupMocks: func(ts *testServer) {
				ts.engine.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("authenticate: %w", storage.ErrStorageUnavailable))
				ts.expectFlash(session.FlashError, unavailableMessage)
			},
			location: "/login",
		},
		{
			name: "session store failure",
			setupMocks: func(ts *testServer) {
				ts.engine.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(&customer, nil)
				ts.sessions.EXPECT().Begin(gomock.Any(), gomock.Any(), customer.ID).Return(errors.New("insert failed"))
				ts.expectFlash(session.FlashError, unavailableMessage)
			},
			location: "/login",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.anonymous()
			tc.setupMocks(ts)

			rr := ts.do(postForm("/login", form))

			assertRedirect(t, rr, tc.location)
		})
	}
}

func TestHandleSignup(t *testing.T) {
	form := url.Values{
		"name":      {"<Cara>"},
		"address":   {"12 Baker St"},
		"email":     {"cara@example.com"},
		"password":  {"secret1"},
		"password2": {"secret2"},
		"type":      {"1"},
	}

	t.Run("validation errors re-render the form", func(t *testing.T) {
		ts := newTestServer(t)
		ts.anonymous()
		ts.engine.EXPECT().Signup(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f storage.SignupForm) (int64, error) {
				assert.Equal(t, "secret1", f.Password)
				assert.Equal(t, "secret2", f.Password2)
				assert.Equal(t, "1", f.Type)
				return 0, &storage.FormError{
					Kind:     storage.ErrValidation,
					Messages: []string{"Passwords do not match", "Password should be at least 6 characters long"},
				}
			})

		rr := ts.do(postForm("/signup", form))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "Passwords do not match")
		assert.Contains(t, body, "Password should be at least 6 characters long")
		assert.Contains(t, body, "&lt;Cara&gt;")
		assert.NotContains(t, body, "secret1")
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		ts := newTestServer(t)
		ts.anonymous()
		ts.engine.EXPECT().Signup(gomock.Any(), gomock.Any()).
			Return(int64(0), &storage.FormError{Kind: storage.ErrConflict, Messages: []string{"Email already in use"}})

		rr := ts.do(postForm("/signup", form))

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "Email already in use")
	})

	t.Run("success redirects to login", func(t *testing.T) {
		ts := newTestServer(t)
		ts.anonymous()
		ts.engine.EXPECT().Signup(gomock.Any(), gomock.Any()).Return(int64(7), nil)
		ts.expectFlash(session.FlashSuccess, "You are now registered and can log in")

		rr := ts.do(postForm("/signup", form))

		assertRedirect(t, rr, "/login")
	})
}

func TestHandleLogout(t *testing.T) {
	ts := newTestServer(t)
	ts.signedInAs(customer)
	ts.sessions.EXPECT().End(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	ts.expectFlash(session.FlashSuccess, "You have successfully logged out")

	rr := ts.do(httptest.NewRequest(http.MethodGet, "/logout", nil))

	assertRedirect(t, rr, "/login")
}

func TestHandleDashboard(t *testing.T) {
	deliveryID := courier.ID

	tests := []struct {
		name           string
		account        storage.Account
		setupMocks     func(ts *testServer, account storage.Account)
		expectedStatus int
		expectedBody   []string
	}{
		{
			name:    "customer sees the catalog",
			account: customer,
			setupMocks: func(ts *testServer, account storage.Account) {
				ts.engine.EXPECT().ResolveDashboard(gomock.Any(), account).Return(&storage.Dashboard{
					Role: storage.RoleCustomer,
					Products: []storage.Product{
						{ID: 4, Name: "Rainbow Sprinkles", Price: decimal.RequireFromString("9.99"), Category: "Toppings"},
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{"Rainbow Sprinkles", "$9.99", "/dashboard/products/4"},
		},
		{
			name:    "delivery sees eligible and own orders",
			account: courier,
			setupMocks: func(ts *testServer, account storage.Account) {
				ts.engine.EXPECT().ResolveDashboard(gomock.Any(), account).Return(&storage.Dashboard{
					Role: storage.RoleDelivery,
					Eligible: []storage.Order{
						{ID: 10, ProductName: "Rainbow Sprinkles", CustomerName: "Cara", DispatchStatus: storage.StatusPlaced},
					},
					Yours: []storage.Order{
						{ID: 11, ProductName: "Choc Chips", DeliveryID: &deliveryID, ETA: "2h", DispatchStatus: storage.StatusDispatched},
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{"Rainbow Sprinkles", "Choc Chips", "/dashboard/deliverydash", "/dashboard/delivered"},
		},
		{
			name:    "admin sees the product form",
			account: admin,
			setupMocks: func(ts *testServer, account storage.Account) {
				ts.engine.EXPECT().ResolveDashboard(gomock.Any(), account).Return(&storage.Dashboard{Role: storage.RoleAdmin}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{"/dashboard/createpost"},
		},
		{
			name:    "unknown role is a server error",
			account: storage.Account{ID: 8, Name: "Ghost", Role: storage.Role(9)},
			setupMocks: func(ts *testServer, account storage.Account) {
				ts.engine.EXPECT().ResolveDashboard(gomock.Any(), account).
					Return(nil, fmt.Errorf("%w: account 8 has role 9", storage.ErrUnknownRole))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   []string{"misconfigured"},
		},
		{
			name:    "storage failure",
			account: courier,
			setupMocks: func(ts *testServer, account storage.Account) {
				ts.engine.EXPECT().ResolveDashboard(gomock.Any(), account).
					Return(nil, fmt.Errorf("resolve_dashboard: %w", storage.ErrStorageUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   []string{unavailableMessage},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.signedInAs(tc.account)
			tc.setupMocks(ts, tc.account)

			rr := ts.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil))

			assert.Equal(t, tc.expectedStatus, rr.Code)
			for _, want := range tc.expectedBody {
				assert.Contains(t, rr.Body.String(), want)
			}
		})
	}
}

func TestHandlePlaceOrder(t *testing.T) {
	product := &storage.Product{ID: 4, Name: "Rainbow Sprinkles", Price: decimal.RequireFromString("9.99")}

	t.Run("uses catalog name and price", func(t *testing.T) {
		ts := newTestServer(t)
		ts.signedInAs(customer)
		ts.engine.EXPECT().GetProduct(gomock.Any(), int64(4)).Return(product, nil)
		ts.engine.EXPECT().PlaceOrder(gomock.Any(), customer, "Rainbow Sprinkles", int32(2), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ storage.Account, _ string, _ int32, price decimal.Decimal) (int64, error) {
				assert.True(t, price.Equal(decimal.RequireFromString("9.99")))
				return 12, nil
			})
		ts.expectFlash(session.FlashSuccess, "Successfully ordered Rainbow Sprinkles")

		rr := ts.do(postForm("/dashboard/products", url.Values{
			"productid": {"4"},
			"qty":       {"2"},
			"price":     {"0.01"},
		}))

		assertRedirect(t, rr, "/dashboard/orders")
	})

	t.Run("non numeric quantity", func(t *testing.T) {
		ts := newTestServer(t)
		ts.signedInAs(customer)
		ts.engine.EXPECT().GetProduct(gomock.Any(), int64(4)).Return(product, nil)
		ts.expectFlash(session.FlashError, "Please enter a valid quantity")

		rr := ts.do(postForm("/dashboard/products", url.Values{"productid": {"4"}, "qty": {"two"}}))

		assertRedirect(t, rr, "/dashboard/products/4")
	})

	t.Run("engine validation is flashed", func(t *testing.T) {
		ts := newTestServer(t)
		ts.signedInAs(customer)
		ts.engine.EXPECT().GetProduct(gomock.Any(), int64(4)).Return(product, nil)
		ts.engine.EXPECT().PlaceOrder(gomock.Any(), customer, "Rainbow Sprinkles", int32(0), gomock.Any()).
			Return(int64(0), &storage.FormError{Kind: storage.ErrValidation, Messages: []string{"Quantity must be at least 1"}})
		ts.expectFlash(session.FlashError, "Quantity must be at least 1")

		rr := ts.do(postForm("/dashboard/products", url.Values{"productid": {"4"}, "qty": {"0"}}))

		assertRedirect(t, rr, "/dashboard/products/4")
	})

	t.Run("deleted product", func(t *testing.T) {
		ts := newTestServer(t)
		ts.signedInAs(customer)
		ts.engine.EXPECT().GetProduct(gomock.Any(), int64(4)).Return(nil, fmt.Errorf("get_product: %w", storage.ErrNotFound))
		ts.expectFlash(session.FlashError, "The requested item does not exist")

		rr := ts.do(postForm("/dashboard/products", url.Values{"productid": {"4"}, "qty": {"1"}}))

		assertRedirect(t, rr, "/dashboard")
	})
}

func TestHandleClaimOrder(t *testing.T) {
	tests := []struct {
		name       string
		engineErr  error
		flashKind  session.FlashKind
		flashTexts []string
	}{
		{
			name:       "claimed",
			flashKind:  session.FlashSuccess,
			flashTexts: []string{"Successfully claimed order"},
		},
		{
			name:       "lost race",
			engineErr:  storage.ErrClaimLost,
			flashKind:  session.FlashError,
			flashTexts: []string{"This order has already been claimed"},
		},
		{
			name:       "missing eta",
			engineErr:  &storage.FormError{Kind: storage.ErrValidation, Messages: []string{"Please enter an ETA"}},
			flashKind:  session.FlashError,
			flashTexts: []string{"Please enter an ETA"},
		},
		{
			name:       "missing order",
			engineErr:  fmt.Errorf("claim_order: %w", storage.ErrNotFound),
			flashKind:  session.FlashError,
			flashTexts: []string{"The requested item does not exist"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.signedInAs(courier)
			ts.engine.EXPECT().ClaimOrder(gomock.Any(), courier, int64(10), "2h").Return(tc.engineErr)
			for _, text := range tc.flashTexts {
				ts.expectFlash(tc.flashKind, text)
			}

			rr := ts.do(postForm("/dashboard/deliverydash", url.Values{"orderid": {"10"}, "eta": {"2h"}}))

			assertRedirect(t, rr, "/dashboard")
		})
	}
}

func TestHandleMarkDelivered(t *testing.T) {
	tests := []struct {
		name      string
		engineErr error
		flashKind session.FlashKind
		flashText string
	}{
		{
			name:      "delivered",
			flashKind: session.FlashSuccess,
			flashText: "Successfully delivered order",
		},
		{
			name:      "claimed by someone else",
			engineErr: storage.ErrAuthorization,
			flashKind: session.FlashError,
			flashText: "You are not allowed to do that",
		},
		{
			name:      "not dispatched",
			engineErr: storage.ErrInvalidTransition,
			flashKind: session.FlashError,
			flashText: "Only dispatched orders can be marked as delivered",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.signedInAs(courier)
			ts.engine.EXPECT().MarkDelivered(gomock.Any(), courier, int64(11)).Return(tc.engineErr)
			ts.expectFlash(tc.flashKind, tc.flashText)

			rr := ts.do(postForm("/dashboard/delivered", url.Values{"orderid": {"11"}}))

			assertRedirect(t, rr, "/dashboard")
		})
	}
}

func TestAdminHandlers(t *testing.T) {
	t.Run("create product re-renders on validation error", func(t *testing.T) {
		ts := newTestServer(t)
		ts.signedInAs(admin)
		ts.engine.EXPECT().AddProduct(gomock.Any(), admin, storage.ProductForm{Name: "Sprinkles", Price: "abc"}).
			Return(int64(0), &storage.FormError{Kind: storage.ErrValidation, Messages: []string{"Enter all fields", "Please enter a valid price"}})

		rr := ts.do(postForm("/dashboard/createpost", url.Values{"name": {"Sprinkles"}, "price": {"abc"}}))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "Please enter a valid price")
		assert.Contains(t, rr.Body.String(), `value="abc"`)
	})

	t.Run("create product", func(t *testing.T) {
		ts := newTestServer(t)
		ts.signedInAs(admin)
		ts.engine.EXPECT().AddProduct(gomock.Any(), admin, gomock.Any()).Return(int64(5), nil)
		ts.expectFlash(session.FlashSuccess, "Successfully added product!")

		rr := ts.do(postForm("/dashboard/createpost", url.Values{
			"name": {"Sprinkles"}, "description": {"d"}, "price": {"1.50"}, "category": {"c"},
		}))

		assertRedirect(t, rr, "/dashboard")
	})

	t.Run("update user accepts role names", func(t *testing.T) {
		ts := newTestServer(t)
		ts.signedInAs(admin)
		ts.engine.EXPECT().UpdateAccountRole(gomock.Any(), admin, int64(1), storage.RoleDelivery).Return(nil)
		ts.expectFlash(session.FlashSuccess, "Successfully updated user!")

		rr := ts.do(postForm("/dashboard/viewusers/updateuser", url.Values{"userid": {"1"}, "newType": {"Delivery"}}))

		assertRedirect(t, rr, "/dashboard/viewusers")
	})

	t.Run("update user rejects unknown role", func(t *testing.T) {
		ts := newTestServer(t)
		ts.signedInAs(admin)
		ts.expectFlash(session.FlashError, "Please select a valid role")

		rr := ts.do(postForm("/dashboard/viewusers/updateuser", url.Values{"userid": {"1"}, "newType": {"7"}}))

		assertRedirect(t, rr, "/dashboard/viewusers")
	})

	t.Run("delete product", func(t *testing.T) {
		ts := newTestServer(t)
		ts.signedInAs(admin)
		ts.engine.EXPECT().DeleteProduct(gomock.Any(), admin, int64(4)).Return(nil)
		ts.expectFlash(session.FlashSuccess, "Successfully deleted product")

		rr := ts.do(postForm("/viewproducts/delete/4", url.Values{}))

		assertRedirect(t, rr, "/dashboard/viewproducts")
	})

	t.Run("delete link only asks for confirmation", func(t *testing.T) {
		ts := newTestServer(t)
		ts.signedInAs(admin)
		ts.engine.EXPECT().GetProduct(gomock.Any(), int64(4)).Return(&storage.Product{ID: 4, Name: "Cake"}, nil)
		ts.engine.EXPECT().DeleteProduct(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		rr := ts.do(httptest.NewRequest(http.MethodGet, "/viewproducts/delete/4", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `<form method="POST" action="/viewproducts/delete/4">`)
		assert.Contains(t, rr.Body.String(), "Delete Cake?")
	})

	t.Run("delete confirmation for a missing product", func(t *testing.T) {
		ts := newTestServer(t)
		ts.signedInAs(admin)
		ts.engine.EXPECT().GetProduct(gomock.Any(), int64(4)).Return(nil, storage.ErrNotFound)

		rr := ts.do(httptest.NewRequest(http.MethodGet, "/viewproducts/delete/4", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("product list deletes with a form", func(t *testing.T) {
		ts := newTestServer(t)
		ts.signedInAs(admin)
		ts.engine.EXPECT().ListProducts(gomock.Any()).Return([]storage.Product{{ID: 4, Name: "Cake"}}, nil)

		rr := ts.do(httptest.NewRequest(http.MethodGet, "/dashboard/viewproducts", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `<form method="POST" action="/viewproducts/delete/4">`)
		assert.NotContains(t, rr.Body.String(), `href="/viewproducts/delete/4"`)
	})

	t.Run("list users", func(t *testing.T) {
		ts := newTestServer(t)
		ts.signedInAs(admin)
		ts.engine.EXPECT().ListAccounts(gomock.Any(), admin).Return([]storage.Account{customer, courier}, nil)

		rr := ts.do(httptest.NewRequest(http.MethodGet, "/dashboard/viewusers", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "cara@example.com")
		assert.Contains(t, rr.Body.String(), "dan@example.com")
	})

	t.Run("order history", func(t *testing.T) {
		ts := newTestServer(t)
		ts.signedInAs(admin)
		at := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
		ts.engine.EXPECT().OrderHistory(gomock.Any(), admin, int64(10)).Return(
			&storage.Order{ID: 10, ProductName: "Rainbow Sprinkles", CustomerName: "Cara"},
			[]storage.HistoryEntry{
				{Status: storage.StatusPlaced, ChangedAt: at},
				{Status: storage.StatusDispatched, ChangedAt: at.Add(time.Hour)},
			},
			nil,
		)

		rr := ts.do(httptest.NewRequest(http.MethodGet, "/dashboard/vieworders/10/history", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Order #10")
		assert.Contains(t, rr.Body.String(), "2024-03-01 11:30")
	})
}

func TestNotFoundAndMetrics(t *testing.T) {
	ts := newTestServer(t)
	ts.anonymous()

	rr := ts.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestViewsParse(t *testing.T) {
	v, err := loadViews()
	require.NoError(t, err)
	assert.Len(t, v.pages, len(pages))
}

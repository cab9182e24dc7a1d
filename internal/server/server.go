//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gitlab.com/sprinkles/storefront/internal/session"
	"gitlab.com/sprinkles/storefront/internal/storage"
)

type Engine interface {
	Signup(ctx context.Context, form storage.SignupForm) (int64, error)
	Authenticate(ctx context.Context, email, password string) (*storage.Account, error)
	GetAccount(ctx context.Context, id int64) (*storage.Account, error)
	ListAccounts(ctx context.Context, actor storage.Account) ([]storage.Account, error)
	UpdateAccountRole(ctx context.Context, actor storage.Account, accountID int64, newRole storage.Role) error
	AddProduct(ctx context.Context, actor storage.Account, form storage.ProductForm) (int64, error)
	DeleteProduct(ctx context.Context, actor storage.Account, id int64) error
	GetProduct(ctx context.Context, id int64) (*storage.Product, error)
	ListProducts(ctx context.Context) ([]storage.Product, error)
	PlaceOrder(ctx context.Context, customer storage.Account, productName string, quantity int32, unitPrice decimal.Decimal) (int64, error)
	ClaimOrder(ctx context.Context, delivery storage.Account, orderID int64, eta string) error
	MarkDelivered(ctx context.Context, actor storage.Account, orderID int64) error
	CustomerOrders(ctx context.Context, customer storage.Account) (*storage.CustomerOrders, error)
	ListOrders(ctx context.Context, actor storage.Account) ([]storage.Order, error)
	OrderHistory(ctx context.Context, actor storage.Account, orderID int64) (*storage.Order, []storage.HistoryEntry, error)
	ResolveDashboard(ctx context.Context, account storage.Account) (*storage.Dashboard, error)
}

type Sessions interface {
	Begin(ctx context.Context, w http.ResponseWriter, accountID int64) error
	Resolve(ctx context.Context, r *http.Request) (int64, bool, error)
	End(ctx context.Context, w http.ResponseWriter, r *http.Request) error
	AddFlash(w http.ResponseWriter, r *http.Request, kind session.FlashKind, message string)
	Flashes(w http.ResponseWriter, r *http.Request) []session.Flash
}

type Server struct {
	engine       Engine
	sessions     Sessions
	views        *views
	logger       *zap.Logger
	server       *http.Server
	AuditManager *AuditManager
}

func New(engine Engine, sessions Sessions, logger *zap.Logger) *Server {
	return &Server{
		engine:       engine,
		sessions:     sessions,
		views:        mustLoadViews(),
		logger:       logger.With(zap.String("component", "http")),
		AuditManager: NewAuditManager(2, 20, 500*time.Millisecond, logger),
	}
}

// Run serves HTTP on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	s.AuditManager.Start(context.Background())

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("http server shutdown completed")

	s.AuditManager.Shutdown(ctx)
	return nil
}

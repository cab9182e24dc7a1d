//go:generate mockgen -source ./repositories.go -destination=./mocks/repositories.go -package=mock_storage
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.com/sprinkles/storefront/internal/db"
	"gitlab.com/sprinkles/storefront/internal/repository"
)

type AccountRepository interface {
	Create(ctx context.Context, account *repository.Account, password string) (int64, error)
	GetByID(ctx context.Context, id int64) (*repository.Account, error)
	GetByEmail(ctx context.Context, email string) (*repository.Account, error)
	Authenticate(ctx context.Context, email, password string) (*repository.Account, error)
	GetAll(ctx context.Context) ([]*repository.Account, error)
	UpdateRole(ctx context.Context, id int64, role int16) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *repository.Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*repository.Product, error)
	GetByName(ctx context.Context, name string) (*repository.Product, error)
	GetAll(ctx context.Context) ([]*repository.Product, error)
	Delete(ctx context.Context, id int64) error
}

type OrderRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) (int64, error)
	GetByID(ctx context.Context, id int64) (*repository.Order, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.Order, error)
	GetByAddress(ctx context.Context, address string) ([]*repository.Order, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]*repository.Order, error)
	GetAll(ctx context.Context) ([]*repository.Order, error)
	ClaimTx(ctx context.Context, tx db.Tx, id, deliveryID int64, deliveryName, eta string) (bool, error)
	MarkDeliveredTx(ctx context.Context, tx db.Tx, id, deliveryID int64) (bool, error)
}

type HistoryRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, entry *repository.HistoryEntry) error
	GetByOrderID(ctx context.Context, orderID int64) ([]*repository.HistoryEntry, error)
}

type OutboxTaskRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
	GetProcessableTasksTx(ctx context.Context, tx db.Tx, limit, maxAttempts int) ([]*repository.OutboxTask, error)
	UpdateTaskStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
	UpdateTaskStatus(ctx context.Context, db db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
}
